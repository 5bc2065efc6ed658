package main

import (
	"testing"
	"time"
)

func cmdListsEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFramePipeline_FirstFrameUsesInitList(t *testing.T) {
	rig := newTestRig(t, 2)
	for i := 0; i < 3; i++ {
		rig.frame(t)
	}

	want := buildCmdLists(2)
	got := rig.cp.submitted()
	// One render target clear at init time, then one list per frame.
	if len(got) != 4 {
		t.Fatalf("expected 4 submitted lists, got %d", len(got))
	}
	if !cmdListsEqual(got[0], clearList(0x000000)) {
		t.Fatalf("init time: expected clear list, got %08X", got[0])
	}
	if !cmdListsEqual(got[1], want.Init) {
		t.Fatalf("first frame: expected init list %08X, got %08X", want.Init, got[1])
	}
	for i := 2; i < 4; i++ {
		if !cmdListsEqual(got[i], want.Frame) {
			t.Fatalf("frame %d: expected steady-state list %08X, got %08X", i-1, want.Frame, got[i])
		}
	}
}

func TestFramePipeline_SwapParity(t *testing.T) {
	rig := newTestRig(t, 2)
	start := rig.disp.VisibleIndex()
	for n := 1; n <= 5; n++ {
		rig.frame(t)
		if got := rig.disp.VisibleIndex(); got != start^(n&1) {
			t.Fatalf("after %d frames: expected visible buffer %d, got %d", n, start^(n&1), got)
		}
	}
	if got := rig.disp.SwapCount(); got != 5 {
		t.Fatalf("expected 5 swaps, got %d", got)
	}
}

func TestFramePipeline_BackBufferIsNeverVisible(t *testing.T) {
	rig := newTestRig(t, 2)
	rig.frame(t)
	front := &rig.disp.Buffer(SideFront)[0]
	back := &rig.disp.Buffer(SideBack)[0]
	if front == back {
		t.Fatal("front and back resolve to the same buffer")
	}
	rig.frame(t)
	if &rig.disp.Buffer(SideFront)[0] != back {
		t.Fatal("swap did not exchange buffer roles")
	}
}

func TestFramePipeline_ScreenshotTriggerExactChord(t *testing.T) {
	cases := []struct {
		name  string
		held  uint32
		down  uint32
		fires bool
	}{
		{"exact chord", screenshotChord, KeySelect, true},
		{"chord held no new press", screenshotChord, 0, false},
		{"extra key held", screenshotChord | KeyA, KeyA, false},
		{"partial chord", KeyY, KeyY, false},
		{"unrelated keys", KeyA | KeyB, KeyA, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rig := newTestRig(t, 2)
			rig.frame(t) // init frame, no input

			rig.input.set(c.held, c.down)
			rig.frame(t)
			rig.input.set(0, 0)

			want := 0
			if c.fires {
				want = 1
			}
			if got := rig.shotCount(); got != want {
				t.Fatalf("expected %d screenshots, got %d", want, got)
			}
			if got := rig.fs.writeCount(); got != want {
				t.Fatalf("expected %d file writes, got %d", want, got)
			}
		})
	}
}

func TestFramePipeline_TerminatesOnEventDestroy(t *testing.T) {
	rig := newTestRig(t, 2)
	rig.frame(t)
	rig.frame(t)

	pipe := rig.video.Pipeline()
	rig.video.ExitVideo()
	rig.ev.Destroy()
	waitFor(t, "pipeline to terminate", func() bool {
		return pipe.State() == StateTerminated
	})

	frames := pipe.Frames()
	swaps := rig.disp.SwapCount()
	rig.capSim.TriggerFrame()
	time.Sleep(20 * time.Millisecond)
	if pipe.Frames() != frames || rig.disp.SwapCount() != swaps {
		t.Fatal("terminated pipeline still processed a frame")
	}
}

func TestFramePipeline_IdleBetweenFrames(t *testing.T) {
	rig := newTestRig(t, 2)
	rig.frame(t)
	pipe := rig.video.Pipeline()
	waitFor(t, "pipeline to go idle", func() bool {
		return pipe.State() == StateIdle
	})
}
