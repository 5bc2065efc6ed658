// video_pipeline.go - Frame pipeline task for LegacyCap Engine

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

import "sync/atomic"

// PipelineState is the frame pipeline task's externally visible state.
type PipelineState int32

const (
	StateIdle       PipelineState = iota // blocked on the frame-ready event
	StateRendering                       // submitting and consuming commands
	StateTerminated                      // event destroyed, task exited
)

// FramePipeline is the steady-state per-frame task. Exactly one goroutine
// runs Run per instance; it is the sole writer of the hidden presentation
// buffer and of the render buffer, so the whole hot path is lock-free. All
// hardware waits block rather than spin.
type FramePipeline struct {
	cp    CommandProcessor
	xfer  TransferEngine
	disp  Display
	input Input
	cap   CaptureUnit
	clock Clock
	fs    Storage

	lists      *CmdLists
	captureTex []byte
	renderBuf  []byte
	scaler     uint8
	shotDir    string

	// onScreenshot, if set, observes every dump attempt. The result is
	// consumed here either way; a failed write never stops the pipeline.
	onScreenshot func(path string, err error)

	inited bool
	state  atomic.Int32
	frames atomic.Uint64
}

// Run services frame-ready events until the event is destroyed.
//
// Per frame: acknowledge the event first (a signal raised during processing
// is then picked up by the next wait), render via command list, transfer the
// render buffer into the hidden presentation buffer, swap, and only then
// evaluate the screenshot trigger so a dump captures the frame that was just
// presented.
func (p *FramePipeline) Run(ev *KEvent) {
	for {
		p.state.Store(int32(StateIdle))
		if ev.Wait() != nil {
			break
		}
		ev.Clear()
		p.state.Store(int32(StateRendering))

		var list []uint32
		if !p.inited {
			p.inited = true
			list = p.lists.Init
		} else {
			list = p.lists.Frame
		}
		p.cp.Submit(list)
		p.cp.WaitDone()

		p.xfer.Transfer(p.renderBuf, Dim{presentW, presentH},
			p.disp.Buffer(SideBack), Dim{presentW, presentH},
			XferInFmt(FmtBGR8)|XferOutFmt(FmtBGR8))
		p.xfer.WaitDone()
		p.disp.SwapBuffers()

		// Trigger only if both chord buttons are held, nothing else is, and
		// at least one key went down in this sample.
		if p.input.KeysHeld() == screenshotChord && p.input.KeysDown() != 0 {
			path, err := p.dumpFrame()
			if p.onScreenshot != nil {
				p.onScreenshot(path, err)
			}
		}

		p.frames.Add(1)
	}
	p.state.Store(int32(StateTerminated))
}

// State reports the task's current lifecycle state.
func (p *FramePipeline) State() PipelineState {
	return PipelineState(p.state.Load())
}

// Frames reports how many frames the task has fully processed.
func (p *FramePipeline) Frames() uint64 {
	return p.frames.Load()
}
