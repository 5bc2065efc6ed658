// display_pair.go - Presentation buffer pair for LegacyCap Engine

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

import (
	"fmt"
	"sync/atomic"
)

// Presented image geometry, BGR8 in the buffers, RGBA at the frontend.
const (
	presentW       = 400
	presentH       = 240
	presentBufSize = presentW * presentH * 3
)

// BufferSide selects one of the two presentation buffers by role. Roles
// exchange on every swap.
type BufferSide int

const (
	SideFront BufferSide = iota // currently visible, display side reads it
	SideBack                    // hidden, the pipeline's write target
)

// Display is the presentation buffer subsystem: a double-buffer pair where
// exactly one buffer is visible. SwapBuffers is the only licensed way to
// change which buffer plays which role and the only point at which a newly
// written frame becomes observable.
type Display interface {
	Buffer(side BufferSide) []byte
	SwapBuffers()
}

// ColorLUTRegs is the display controller's gamma lookup register file: a
// write-only data port with an implicit cursor that advances on every write
// and wraps after 256 entries. Until a table is loaded it holds an identity
// ramp.
type ColorLUTRegs struct {
	entries [256]uint32
	cursor  int
}

func NewColorLUTRegs() *ColorLUTRegs {
	r := &ColorLUTRegs{}
	for i := range r.entries {
		v := uint32(i)
		r.entries[i] = v<<16 | v<<8 | v
	}
	return r
}

func (r *ColorLUTRegs) Write(entry uint32) {
	r.entries[r.cursor&255] = entry
	r.cursor++
}

func (r *ColorLUTRegs) lookup(red, green, blue uint8) (uint8, uint8, uint8) {
	return uint8(r.entries[red] >> 16), uint8(r.entries[green] >> 8), uint8(r.entries[blue])
}

// DisplayPair owns the two presentation buffers and feeds the visible one,
// mapped through the gamma LUT, to the active frontend after every swap.
//
// Ownership protocol: the frame pipeline task is the sole writer of the
// back buffer and SwapBuffers is called from that same task, so no locking
// is needed here. The screenshot path borrows the back buffer as scratch,
// which is only safe because capture is paused first.
type DisplayPair struct {
	bufs    [2][]byte
	visible atomic.Int32
	swaps   atomic.Uint64
	lut     *ColorLUTRegs
	output  VideoOutput
	rgba    []byte
}

func NewDisplayPair(lut *ColorLUTRegs, output VideoOutput) *DisplayPair {
	d := &DisplayPair{
		lut:    lut,
		output: output,
		rgba:   make([]byte, presentW*presentH*4),
	}
	d.bufs[0] = make([]byte, presentBufSize)
	d.bufs[1] = make([]byte, presentBufSize)
	return d
}

func (d *DisplayPair) Buffer(side BufferSide) []byte {
	if side == SideFront {
		return d.bufs[d.visible.Load()]
	}
	return d.bufs[d.visible.Load()^1]
}

func (d *DisplayPair) SwapBuffers() {
	d.visible.Store(d.visible.Load() ^ 1)
	d.swaps.Add(1)
	d.present()
}

// VisibleIndex reports which physical buffer is currently visible.
func (d *DisplayPair) VisibleIndex() int {
	return int(d.visible.Load())
}

func (d *DisplayPair) SwapCount() uint64 {
	return d.swaps.Load()
}

// present converts the newly visible BGR8 buffer to RGBA through the gamma
// LUT and hands it to the frontend. The frontend copies under its own lock.
func (d *DisplayPair) present() {
	if d.output == nil {
		return
	}
	src := d.bufs[d.visible.Load()]
	for i, j := 0, 0; i+2 < len(src); i, j = i+3, j+4 {
		r, g, b := d.lut.lookup(src[i+2], src[i+1], src[i])
		d.rgba[j] = r
		d.rgba[j+1] = g
		d.rgba[j+2] = b
		d.rgba[j+3] = 0xFF
	}
	if err := d.output.UpdateFrame(d.rgba); err != nil {
		fmt.Printf("Error updating frame: %v\n", err)
	}
}
