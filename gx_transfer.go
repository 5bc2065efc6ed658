// gx_transfer.go - Command processor and format/transfer engine contracts for LegacyCap Engine

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

// Dim is a width/height pair in pixels. For transfers the width doubles as
// the source row stride.
type Dim struct {
	W, H int
}

// TexFormat enumerates the pixel formats the transfer engine understands.
type TexFormat uint32

const (
	FmtA1BGR5 TexFormat = iota // 16bpp: bit 0 alpha, then 5 bits each B/G/R
	FmtBGR8                    // 24bpp, byte order B,G,R
)

// TransferFlags packs the transfer engine's control word: input format,
// output format, crop enable and output tiling.
type TransferFlags uint32

const (
	XferCropEnable TransferFlags = 1 << 8
	XferOutTiled   TransferFlags = 1 << 9
)

func XferInFmt(f TexFormat) TransferFlags  { return TransferFlags(f) }
func XferOutFmt(f TexFormat) TransferFlags { return TransferFlags(f) << 4 }

func (f TransferFlags) inFmt() TexFormat  { return TexFormat(f & 0xF) }
func (f TransferFlags) outFmt() TexFormat { return TexFormat(f >> 4 & 0xF) }

func (f TransferFlags) crop() bool  { return f&XferCropEnable != 0 }
func (f TransferFlags) tiled() bool { return f&XferOutTiled != 0 }

func (f TexFormat) bytesPerPixel() int {
	if f == FmtBGR8 {
		return 3
	}
	return 2
}

// CommandProcessor executes submitted command word streams. Submit starts
// execution; WaitDone blocks until the stream has fully retired. A hang here
// has no recovery path, matching the hardware.
type CommandProcessor interface {
	Submit(list []uint32)
	WaitDone()
}

// TransferEngine performs format-converting memory-to-memory copies,
// optionally cropping the source to the destination geometry. Transfer
// starts the copy; WaitDone blocks until it completes.
type TransferEngine interface {
	Transfer(src []byte, srcDim Dim, dst []byte, dstDim Dim, flags TransferFlags)
	WaitDone()
}

// a1bgr5 packs 8-bit channels into the capture unit's 16bpp format.
func a1bgr5(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>3)<<6 | uint16(b>>3)<<1 | 1
}

func a1bgr5Split(p uint16) (r, g, b uint8) {
	r = uint8(p >> 11 & 0x1F << 3)
	g = uint8(p >> 6 & 0x1F << 3)
	b = uint8(p >> 1 & 0x1F << 3)
	return
}
