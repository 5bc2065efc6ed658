package main

import (
	"errors"
	"sync"
)

// ErrEventDestroyed is returned by KEvent.Wait once the event has been
// destroyed. A waiter seeing this error must not touch pipeline resources
// afterwards; it is the shutdown signal.
var ErrEventDestroyed = errors.New("event destroyed")

// KEvent is a manual-reset, single-slot event in the style of a hardware
// interrupt flag: Signal latches it, Wait returns while it is latched and
// the consumer clears it explicitly with Clear. A Signal that arrives while
// the flag is already set is absorbed; the producer keeps writing into its
// own storage regardless of consumer readiness, so nothing is lost beyond
// one wait period.
type KEvent struct {
	mu        sync.Mutex
	cond      *sync.Cond
	signaled  bool
	destroyed bool
}

func NewKEvent() *KEvent {
	e := &KEvent{}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// Signal latches the event and wakes any waiter.
func (e *KEvent) Signal() {
	e.mu.Lock()
	e.signaled = true
	e.mu.Unlock()
	e.cond.Broadcast()
}

// Clear resets the latch. The consumer calls this immediately after waking
// so a signal raised during processing is observed on the next Wait.
func (e *KEvent) Clear() {
	e.mu.Lock()
	e.signaled = false
	e.mu.Unlock()
}

// Wait blocks until the event is signaled. It returns ErrEventDestroyed if
// the event was destroyed before or while waiting.
func (e *KEvent) Wait() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for !e.signaled && !e.destroyed {
		e.cond.Wait()
	}
	if e.destroyed {
		return ErrEventDestroyed
	}
	return nil
}

// Destroy invalidates the event and wakes all waiters with an error.
// Destroying is the only cancellation primitive the pipeline has.
func (e *KEvent) Destroy() {
	e.mu.Lock()
	e.destroyed = true
	e.mu.Unlock()
	e.cond.Broadcast()
}
