//go:build headless

package main

import "sync/atomic"

// HeadlessOutput swallows frames and counts them. Input comes from the
// raw-mode terminal host instead of a window.
type HeadlessOutput struct {
	started    bool
	frameCount uint64
	done       chan struct{}
	term       *TerminalInput
}

func newFrontend() (VideoOutput, Input, error) {
	term := NewTerminalInput()
	return &HeadlessOutput{done: make(chan struct{}), term: term}, term, nil
}

func (h *HeadlessOutput) Start() error {
	h.started = true
	h.term.Start()
	return nil
}

func (h *HeadlessOutput) Stop() error {
	if h.started {
		h.started = false
		h.term.Stop()
		close(h.done)
	}
	return nil
}

func (h *HeadlessOutput) IsStarted() bool {
	return h.started
}

func (h *HeadlessOutput) UpdateFrame(rgba []byte) error {
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

func (h *HeadlessOutput) SetShotPath(path string) {}

func (h *HeadlessOutput) Done() <-chan struct{} {
	return h.done
}

func (h *HeadlessOutput) FrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}
