package main

import (
	"io"
	"sync"
	"testing"
	"time"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

type fakeInput struct {
	mu   sync.Mutex
	held uint32
	down uint32
}

func (f *fakeInput) set(held, down uint32) {
	f.mu.Lock()
	f.held, f.down = held, down
	f.mu.Unlock()
}

func (f *fakeInput) KeysHeld() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.held
}

func (f *fakeInput) KeysDown() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.down
}

type fakeStorage struct {
	mu       sync.Mutex
	files    map[string][]byte
	readErr  map[string]error
	writeErr error
	writes   []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		files:   make(map[string][]byte),
		readErr: make(map[string]error),
	}
}

func (f *fakeStorage) put(path string, data []byte) {
	f.mu.Lock()
	f.files[path] = append([]byte(nil), data...)
	f.mu.Unlock()
}

func (f *fakeStorage) get(path string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.files[path]
}

func (f *fakeStorage) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

func (f *fakeStorage) ReadFile(path string, buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.readErr[path]; ok {
		return err
	}
	data, ok := f.files[path]
	if !ok {
		return ErrFileNotFound
	}
	if len(data) < len(buf) {
		return io.ErrUnexpectedEOF
	}
	copy(buf, data)
	return nil
}

func (f *fakeStorage) WriteFile(path string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[path] = append([]byte(nil), data...)
	f.writes = append(f.writes, path)
	return nil
}

type fakeClock struct {
	td RtcTimeDate
}

func (f fakeClock) DateTime() RtcTimeDate {
	return f.td
}

// recordingCmdProc wraps the simulated command processor and keeps every
// submitted list for inspection.
type recordingCmdProc struct {
	inner *CmdProcSim
	mu    sync.Mutex
	lists [][]uint32
}

func (r *recordingCmdProc) Submit(list []uint32) {
	r.mu.Lock()
	r.lists = append(r.lists, list)
	r.mu.Unlock()
	r.inner.Submit(list)
}

func (r *recordingCmdProc) WaitDone() {
	r.inner.WaitDone()
}

func (r *recordingCmdProc) submitted() [][]uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]uint32(nil), r.lists...)
}

// recordLUT captures gamma table writes in order.
type recordLUT struct {
	entries []uint32
}

func (r *recordLUT) Write(entry uint32) {
	r.entries = append(r.entries, entry)
}

// fakeOutput is a minimal VideoOutput capturing the last presented frame.
type fakeOutput struct {
	mu      sync.Mutex
	started bool
	frames  int
	last    []byte
	shot    string
	done    chan struct{}
}

func newFakeOutput() *fakeOutput {
	return &fakeOutput{done: make(chan struct{})}
}

func (f *fakeOutput) Start() error { f.started = true; return nil }
func (f *fakeOutput) Stop() error  { f.started = false; return nil }
func (f *fakeOutput) IsStarted() bool {
	return f.started
}

func (f *fakeOutput) UpdateFrame(rgba []byte) error {
	f.mu.Lock()
	f.frames++
	f.last = append(f.last[:0], rgba...)
	f.mu.Unlock()
	return nil
}

func (f *fakeOutput) SetShotPath(path string) {
	f.mu.Lock()
	f.shot = path
	f.mu.Unlock()
}

func (f *fakeOutput) Done() <-chan struct{} {
	return f.done
}

func (f *fakeOutput) lastFrame() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.last...)
}

// testRig assembles a full pipeline on simulated hardware, driven frame by
// frame through the capture sim's TriggerFrame.
type testRig struct {
	cfg        *Config
	video      *Video
	capSim     *CaptureSim
	cp         *recordingCmdProc
	input      *fakeInput
	fs         *fakeStorage
	lut        *ColorLUTRegs
	disp       *DisplayPair
	ev         *KEvent
	captureTex []byte
	renderBuf  []byte
	shots      []string
	shotErrs   []error
	shotMu     sync.Mutex
}

func newTestRig(t *testing.T, scaler uint8) *testRig {
	t.Helper()
	rig := &testRig{
		cfg:        DefaultConfig(),
		input:      &fakeInput{},
		fs:         newFakeStorage(),
		lut:        NewColorLUTRegs(),
		captureTex: make([]byte, captureTexW*captureTexH*2),
		renderBuf:  make([]byte, presentBufSize),
	}
	rig.cfg.Scaler = scaler
	rig.cfg.ScreenshotDir = "shots"
	rig.capSim = NewCaptureSim(rig.captureTex, time.Hour)
	rig.cp = &recordingCmdProc{inner: NewCmdProcSim(rig.captureTex, rig.renderBuf)}
	rig.disp = NewDisplayPair(rig.lut, nil)

	rig.video = &Video{
		Cfg:        rig.cfg,
		Cap:        rig.capSim,
		Cp:         rig.cp,
		Xfer:       NewTransferSim(),
		Disp:       rig.disp,
		Lut:        rig.lut,
		Input:      rig.input,
		Clock:      fakeClock{RtcTimeDate{Y: 0x26, Mon: 0x08, D: 0x23, H: 0x12, Min: 0x34, S: 0x56}},
		Fs:         rig.fs,
		CaptureTex: rig.captureTex,
		RenderBuf:  rig.renderBuf,
		OnScreenshot: func(path string, err error) {
			rig.shotMu.Lock()
			rig.shots = append(rig.shots, path)
			rig.shotErrs = append(rig.shotErrs, err)
			rig.shotMu.Unlock()
		},
	}

	ev, err := rig.video.InitVideo()
	if err != nil {
		t.Fatalf("InitVideo failed: %v", err)
	}
	rig.ev = ev
	t.Cleanup(func() {
		rig.video.ExitVideo()
		ev.Destroy()
	})
	return rig
}

// frame pushes exactly one frame through the pipeline and waits for it to
// be fully processed.
func (r *testRig) frame(t *testing.T) {
	t.Helper()
	pipe := r.video.Pipeline()
	want := pipe.Frames() + 1
	r.capSim.TriggerFrame()
	waitFor(t, "frame to be processed", func() bool { return pipe.Frames() >= want })
}

func (r *testRig) shotCount() int {
	r.shotMu.Lock()
	defer r.shotMu.Unlock()
	return len(r.shots)
}
