// gx_sim.go - Simulated command processor and transfer engine for LegacyCap Engine

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

import "encoding/binary"

// CmdProcSim interprets the small command vocabulary of video_cmdlists.go
// against the shared capture texture and render buffer. Submit starts
// execution on a worker goroutine; WaitDone blocks until the stream retires.
// Unknown opcodes are skipped, like real hardware eating reserved commands.
type CmdProcSim struct {
	captureTex []byte // A1BGR5, captureTexW stride
	renderBuf  []byte // BGR8, presentW x presentH

	bound bool
	done  chan struct{}
}

func NewCmdProcSim(captureTex, renderBuf []byte) *CmdProcSim {
	return &CmdProcSim{captureTex: captureTex, renderBuf: renderBuf}
}

func (g *CmdProcSim) Submit(list []uint32) {
	done := make(chan struct{})
	g.done = done
	go func() {
		defer close(done)
		g.exec(list)
	}()
}

func (g *CmdProcSim) WaitDone() {
	if g.done != nil {
		<-g.done
	}
}

func (g *CmdProcSim) exec(list []uint32) {
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case opNop:
		case opClearRT:
			i++
			g.clearRenderTarget(list[i])
		case opBindCapture:
			g.bound = true
		case opDrawCapture:
			dim := unpackDim(list[i+1])
			origin := list[i+2]
			i += 2
			if g.bound {
				g.drawCapture(dim, int(origin&0xFFFF), int(origin>>16))
			}
		case opEnd:
			return
		}
	}
}

func (g *CmdProcSim) clearRenderTarget(color uint32) {
	b, gr, r := byte(color), byte(color>>8), byte(color>>16)
	for i := 0; i+2 < len(g.renderBuf); i += 3 {
		g.renderBuf[i] = b
		g.renderBuf[i+1] = gr
		g.renderBuf[i+2] = r
	}
}

// drawCapture blits dim pixels of the capture texture into the render
// buffer at (x,y), converting A1BGR5 to BGR8. Capture may overwrite the
// texture between draws; the arbitration lock only guarantees whole frames,
// so a slow consumer skips frames rather than tearing them.
func (g *CmdProcSim) drawCapture(dim Dim, x, y int) {
	captureTexMu.RLock()
	defer captureTexMu.RUnlock()
	for row := 0; row < dim.H; row++ {
		dy := y + row
		if dy < 0 || dy >= presentH {
			continue
		}
		src := g.captureTex[row*captureTexW*2:]
		dst := g.renderBuf[(dy*presentW+x)*3:]
		for col := 0; col < dim.W; col++ {
			if x+col >= presentW {
				break
			}
			r, gr, b := a1bgr5Split(binary.LittleEndian.Uint16(src[col*2:]))
			dst[col*3] = b
			dst[col*3+1] = gr
			dst[col*3+2] = r
		}
	}
}

// TransferSim implements the format/transfer engine on plain byte slices.
// The output-tiled flag is accepted but a no-op: the simulated render buffer
// is linear, whereas the real engine swizzles into texture tiles.
type TransferSim struct {
	done chan struct{}
}

func NewTransferSim() *TransferSim {
	return &TransferSim{}
}

func (t *TransferSim) Transfer(src []byte, srcDim Dim, dst []byte, dstDim Dim, flags TransferFlags) {
	done := make(chan struct{})
	t.done = done
	go func() {
		defer close(done)
		runTransfer(src, srcDim, dst, dstDim, flags)
	}()
}

func (t *TransferSim) WaitDone() {
	if t.done != nil {
		<-t.done
	}
}

func runTransfer(src []byte, srcDim Dim, dst []byte, dstDim Dim, flags TransferFlags) {
	inBpp := flags.inFmt().bytesPerPixel()
	outBpp := flags.outFmt().bytesPerPixel()

	w, h := srcDim.W, srcDim.H
	if flags.crop() {
		w, h = dstDim.W, dstDim.H
	}

	for y := 0; y < h; y++ {
		srcOff := y * srcDim.W * inBpp
		dstOff := y * dstDim.W * outBpp
		for x := 0; x < w; x++ {
			so := srcOff + x*inBpp
			do := dstOff + x*outBpp
			if so+inBpp > len(src) || do+outBpp > len(dst) {
				return
			}
			convertPixel(src[so:], dst[do:], flags.inFmt(), flags.outFmt())
		}
	}
}

func convertPixel(src, dst []byte, in, out TexFormat) {
	var r, g, b uint8
	switch in {
	case FmtA1BGR5:
		r, g, b = a1bgr5Split(binary.LittleEndian.Uint16(src))
	case FmtBGR8:
		b, g, r = src[0], src[1], src[2]
	}
	switch out {
	case FmtA1BGR5:
		binary.LittleEndian.PutUint16(dst, a1bgr5(r, g, b))
	case FmtBGR8:
		dst[0], dst[1], dst[2] = b, g, r
	}
}
