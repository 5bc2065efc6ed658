//go:build !headless

// display_backend_ebiten.go - Ebiten display frontend for LegacyCap Engine

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
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const windowScale = 2

// padKeyMap maps host keys to legacy pad buttons. A+Backspace is the
// screenshot chord.
var padKeyMap = []struct {
	key ebiten.Key
	bit uint32
}{
	{ebiten.KeyX, KeyA},
	{ebiten.KeyZ, KeyB},
	{ebiten.KeyA, KeyY},
	{ebiten.KeyS, KeyX},
	{ebiten.KeyQ, KeyL},
	{ebiten.KeyW, KeyR},
	{ebiten.KeyEnter, KeyStart},
	{ebiten.KeyBackspace, KeySelect},
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
}

// EbitenOutput is the windowed frontend: it presents the visible buffer and
// doubles as the HID input source, sampling the pad mapping once per host
// frame.
type EbitenOutput struct {
	running     bool
	fullscreen  bool
	frameBuffer []byte
	frameImg    *ebiten.Image
	bufferMutex sync.RWMutex
	frameCount  uint64
	vsyncChan   chan struct{}
	done        chan struct{}

	heldMask uint32
	downMask uint32
	prevHeld uint32

	shotPath      string
	showStatusBar bool
	clipboardOnce sync.Once
	clipboardOK   bool
}

func newFrontend() (VideoOutput, Input, error) {
	eo := &EbitenOutput{
		frameBuffer:   make([]byte, presentW*presentH*4),
		vsyncChan:     make(chan struct{}, 1),
		done:          make(chan struct{}),
		showStatusBar: true,
	}
	return eo, eo, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running {
		return nil
	}
	eo.running = true
	ebiten.SetWindowSize(presentW*windowScale, presentH*windowScale)
	ebiten.SetWindowTitle("LegacyCap Engine (c) 2024 - 2026 Zayn Otley")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		defer func() {
			eo.running = false
			select {
			case <-eo.done:
			default:
				close(eo.done)
			}
		}()
		if err := ebiten.RunGame(eo); err != nil {
			fmt.Printf("Ebiten error: %v\n", err)
		}
	}()

	// Wait for first Draw call to ensure Ebiten is ready
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) Stop() error {
	eo.running = false
	return nil
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running
}

func (eo *EbitenOutput) Done() <-chan struct{} {
	return eo.done
}

func (eo *EbitenOutput) UpdateFrame(rgba []byte) error {
	if len(rgba) != len(eo.frameBuffer) {
		return &VideoError{Operation: "frame update", Details: "buffer size mismatch"}
	}
	eo.bufferMutex.Lock()
	copy(eo.frameBuffer, rgba)
	eo.bufferMutex.Unlock()
	atomic.AddUint64(&eo.frameCount, 1)
	return nil
}

func (eo *EbitenOutput) SetShotPath(path string) {
	eo.bufferMutex.Lock()
	eo.shotPath = path
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) KeysHeld() uint32 {
	return atomic.LoadUint32(&eo.heldMask)
}

func (eo *EbitenOutput) KeysDown() uint32 {
	return atomic.LoadUint32(&eo.downMask)
}

func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() || !eo.running {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.fullscreen = !eo.fullscreen
		ebiten.SetFullscreen(eo.fullscreen)
		if !eo.fullscreen {
			ebiten.SetWindowSize(presentW*windowScale, presentH*windowScale)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		eo.bufferMutex.Lock()
		eo.showStatusBar = !eo.showStatusBar
		eo.bufferMutex.Unlock()
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		eo.copyShotPath()
	}

	eo.samplePad()
	return nil
}

// samplePad refreshes the held/down masks from the host keyboard. The edge
// mask is relative to the previous host frame, which is close enough to the
// pad's own sampling cadence.
func (eo *EbitenOutput) samplePad() {
	var held uint32
	for _, m := range padKeyMap {
		if ebiten.IsKeyPressed(m.key) {
			held |= m.bit
		}
	}
	atomic.StoreUint32(&eo.downMask, held&^eo.prevHeld)
	atomic.StoreUint32(&eo.heldMask, held)
	eo.prevHeld = held
}

// copyShotPath puts the most recent screenshot path on the system clipboard.
func (eo *EbitenOutput) copyShotPath() {
	eo.clipboardOnce.Do(func() {
		eo.clipboardOK = clipboard.Init() == nil
	})
	eo.bufferMutex.RLock()
	path := eo.shotPath
	eo.bufferMutex.RUnlock()
	if eo.clipboardOK && path != "" {
		clipboard.Write(clipboard.FmtText, []byte(path))
	}
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	// Signal first-frame readiness without blocking later draws.
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}

	if eo.frameImg == nil {
		eo.frameImg = ebiten.NewImage(presentW, presentH)
	}
	eo.bufferMutex.RLock()
	eo.frameImg.WritePixels(eo.frameBuffer)
	shotPath := eo.shotPath
	showBar := eo.showStatusBar
	eo.bufferMutex.RUnlock()

	var op ebiten.DrawImageOptions
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op.GeoM.Scale(float64(sw)/presentW, float64(sh)/presentH)
	screen.DrawImage(eo.frameImg, &op)

	if showBar {
		status := fmt.Sprintf("%d frames | %0.f fps", atomic.LoadUint64(&eo.frameCount), ebiten.ActualFPS())
		if shotPath != "" {
			status += " | saved " + shotPath
		}
		text.Draw(screen, status, basicfont.Face7x13, 4, sh-6, color.White)
	}
}

func (eo *EbitenOutput) Layout(outsideWidth, outsideHeight int) (int, int) {
	return presentW * windowScale, presentH * windowScale
}
