package main

import (
	"errors"
	"testing"
	"time"
)

func TestKEvent_SignalWakesWaiter(t *testing.T) {
	ev := NewKEvent()
	done := make(chan error, 1)
	go func() { done <- ev.Wait() }()
	ev.Signal()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waiter not woken by Signal")
	}
}

func TestKEvent_SignalLatchesUntilCleared(t *testing.T) {
	ev := NewKEvent()
	ev.Signal()
	// Wait must return immediately while latched, repeatedly.
	for i := 0; i < 3; i++ {
		if err := ev.Wait(); err != nil {
			t.Fatalf("wait %d: expected nil, got %v", i, err)
		}
	}
	ev.Clear()
	woke := make(chan struct{})
	go func() {
		_ = ev.Wait()
		close(woke)
	}()
	select {
	case <-woke:
		t.Fatal("waiter woke after Clear without a new Signal")
	case <-time.After(50 * time.Millisecond):
	}
	ev.Signal()
	<-woke
}

func TestKEvent_DestroyWakesWaiterWithError(t *testing.T) {
	ev := NewKEvent()
	done := make(chan error, 1)
	go func() { done <- ev.Wait() }()
	time.Sleep(10 * time.Millisecond)
	ev.Destroy()
	select {
	case err := <-done:
		if !errors.Is(err, ErrEventDestroyed) {
			t.Fatalf("expected ErrEventDestroyed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waiter not woken by Destroy")
	}
	// Subsequent waits fail immediately.
	if err := ev.Wait(); !errors.Is(err, ErrEventDestroyed) {
		t.Fatalf("expected ErrEventDestroyed on destroyed event, got %v", err)
	}
}

func TestKEvent_SignalAfterDestroyStillFails(t *testing.T) {
	ev := NewKEvent()
	ev.Destroy()
	ev.Signal()
	if err := ev.Wait(); !errors.Is(err, ErrEventDestroyed) {
		t.Fatalf("expected ErrEventDestroyed, got %v", err)
	}
}
