// video_cmdlists.go - Render command lists for LegacyCap Engine

/*
 _                                  ____
| |    ___  __ _  __ _  ___ _   _ / ___|__ _ _ __
| |   / _ \/ _` |/ _` |/ __| | | | |   / _` | '_ \
| |__|  __/ (_| | (_| | (__| |_| | |__| (_| | |_) |
|_____\___|\__, |\__,_|\___|\__, |\____\__,_| .__/
           |___/            |___/           |_|

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/LegacyCapEngine
License: GPLv3 or later
*/

package main

// Command stream opcodes, one per word, arguments in following words.
const (
	opNop         uint32 = 0x00 << 24
	opClearRT     uint32 = 0x01 << 24 // arg: BGR color
	opBindCapture uint32 = 0x02 << 24
	opDrawCapture uint32 = 0x03 << 24 // args: packed dim, packed origin
	opEnd         uint32 = 0x0F << 24
)

func packDim(d Dim) uint32       { return uint32(d.H)<<16 | uint32(d.W)&0xFFFF }
func unpackDim(w uint32) Dim     { return Dim{int(w & 0xFFFF), int(w >> 16)} }
func packOrigin(x, y int) uint32 { return uint32(y)<<16 | uint32(x)&0xFFFF }

// CmdLists holds the two command sequences the pipeline submits: Init runs
// once on the task's first frame and sets up the render target, Frame runs
// on every frame after that.
type CmdLists struct {
	Init  []uint32
	Frame []uint32
}

// buildCmdLists assembles both lists pre-patched for the active scaler mode:
// the draw geometry and centering origin are the only mode-dependent words.
// Init binds the capture texture on top of the steady-state draw; the bind
// persists in the command processor, so Frame omits it. Neither list clears
// the render target: the border laid down at init must survive every frame.
func buildCmdLists(scaler uint8) *CmdLists {
	dim := captureDim(scaler)
	x := (presentW - dim.W) / 2
	y := (presentH - dim.H) / 2

	return &CmdLists{
		Init: []uint32{
			opBindCapture,
			opDrawCapture, packDim(dim), packOrigin(x, y),
			opEnd,
		},
		Frame: []uint32{
			opDrawCapture, packDim(dim), packOrigin(x, y),
			opEnd,
		},
	}
}

// clearList builds the one-shot render target clear submitted at init time,
// before the border load.
func clearList(color uint32) []uint32 {
	return []uint32{opClearRT, color, opEnd}
}
