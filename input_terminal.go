//go:build headless

// input_terminal.go - Raw-mode terminal input host for LegacyCap Engine

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
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// TerminalInput feeds the pad from raw-mode stdin when there is no window.
// Terminals have no key-up events, so each byte counts as a one-sample
// press: held and down both carry the key for exactly one pipeline sample.
// 'p' injects the full screenshot chord since chords cannot be typed.
type TerminalInput struct {
	mu       sync.Mutex
	pending  uint32
	pendDown uint32
	lastDown uint32

	fd           int
	oldTermState *term.State
	stopCh       chan struct{}
	done         chan struct{}
}

func NewTerminalInput() *TerminalInput {
	return &TerminalInput{
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start puts stdin in raw mode and begins polling for key bytes.
func (t *TerminalInput) Start() {
	t.fd = int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal input: failed to set raw mode: %v\n", err)
		close(t.done)
		return
	}
	t.oldTermState = oldState

	if err := syscall.SetNonblock(t.fd, true); err != nil {
		_ = term.Restore(t.fd, t.oldTermState)
		close(t.done)
		return
	}
	go t.readLoop()
}

// Stop restores the terminal and stops the reader.
func (t *TerminalInput) Stop() {
	select {
	case <-t.stopCh:
		return
	default:
	}
	close(t.stopCh)
	<-t.done
	if t.oldTermState != nil {
		_ = syscall.SetNonblock(t.fd, false)
		_ = term.Restore(t.fd, t.oldTermState)
	}
}

func (t *TerminalInput) readLoop() {
	defer close(t.done)
	buf := make([]byte, 16)
	for {
		select {
		case <-t.stopCh:
			return
		default:
		}
		n, _ := os.Stdin.Read(buf)
		for _, b := range buf[:max(n, 0)] {
			if m := padByteMap(b); m != 0 {
				t.mu.Lock()
				t.pending |= m
				t.pendDown |= m
				t.mu.Unlock()
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// KeysHeld starts a sample: it consumes the pending press and parks the
// matching edge mask for the KeysDown call that follows it.
func (t *TerminalInput) KeysHeld() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	held := t.pending
	t.lastDown = t.pendDown
	t.pending = 0
	t.pendDown = 0
	return held
}

func (t *TerminalInput) KeysDown() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	down := t.lastDown
	t.lastDown = 0
	return down
}

func padByteMap(b byte) uint32 {
	switch b {
	case 'x':
		return KeyA
	case 'z':
		return KeyB
	case 'a':
		return KeyY
	case 's':
		return KeyX
	case 'q':
		return KeyL
	case 'w':
		return KeyR
	case '\r', '\n':
		return KeyStart
	case 0x7F, '\b':
		return KeySelect
	case 'i':
		return KeyUp
	case 'k':
		return KeyDown
	case 'j':
		return KeyLeft
	case 'l':
		return KeyRight
	case 'p':
		return screenshotChord
	}
	return 0
}
