// capture_sim.go - Simulated legacy capture unit for LegacyCap Engine

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
	"encoding/binary"
	"sync"
	"time"
)

// sourceFramePeriod is the legacy console's frame period (59.73 Hz).
const sourceFramePeriod = 16742 * time.Microsecond

// captureTexMu arbitrates the shared capture texture between the capture
// unit (writer) and the command processor (reader), standing in for the
// memory arbitration the real hardware does. A draw therefore sees either
// the previous frame or the new one whole, never a mix.
var captureTexMu sync.RWMutex

// CaptureSim emulates the capture unit: once started it renders one source
// frame per frame period into the shared 512x512 A1BGR5 capture texture,
// applying the configured polyphase filter when scaling is enabled, then
// latches the frame-ready event. Capture keeps running whether or not the
// consumer is keeping up; a slow consumer only ever misses presentation,
// never data, because the texture is rewritten in place.
type CaptureSim struct {
	tex    []byte // captureTexW*captureTexH*2, shared with the transfer engine
	period time.Duration

	mu      sync.Mutex
	cfg     CaptureConfig
	ev      *KEvent
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	frame   uint64
}

func NewCaptureSim(tex []byte, period time.Duration) *CaptureSim {
	if period <= 0 {
		period = sourceFramePeriod
	}
	return &CaptureSim{tex: tex, period: period}
}

func (c *CaptureSim) Init(cfg *CaptureConfig) (*KEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = *cfg
	c.ev = NewKEvent()
	return c.ev, nil
}

func (c *CaptureSim) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running || c.ev == nil {
		return
	}
	c.running = true
	c.stopCh = make(chan struct{})
	c.doneCh = make(chan struct{})
	go c.run(c.stopCh, c.doneCh)
}

// Stop halts frame production and blocks until any in-flight frame render
// has finished. The screenshot path relies on this before it reads the
// capture texture.
func (c *CaptureSim) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.stopCh)
	done := c.doneCh
	c.mu.Unlock()
	<-done
}

func (c *CaptureSim) Deinit() {
	c.Stop()
}

// Running reports whether the unit is currently producing frames.
func (c *CaptureSim) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// TriggerFrame renders exactly one frame and signals the event. Tests and
// the headless frontend use it to drive the pipeline deterministically.
func (c *CaptureSim) TriggerFrame() {
	c.mu.Lock()
	c.renderFrame()
	ev := c.ev
	c.mu.Unlock()
	if ev != nil {
		ev.Signal()
	}
}

func (c *CaptureSim) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	ticker := time.NewTicker(c.period)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.renderFrame()
			ev := c.ev
			c.mu.Unlock()
			ev.Signal()
		}
	}
}

// renderFrame produces the next synthetic source frame and stores it in the
// capture texture at the configured output geometry. Callers hold c.mu.
func (c *CaptureSim) renderFrame() {
	c.frame++
	src := sourceTestFrame(c.frame)

	out := src
	outW, outH := srcFrameW, srcFrameH
	if c.cfg.Cnt&(capHScaleEn|capVScaleEn) != 0 {
		out = scalePolyphase(src, srcFrameW, srcFrameH, int(c.cfg.W), int(c.cfg.H), &c.cfg.VMatrix, &c.cfg.HMatrix)
		outW, outH = int(c.cfg.W), int(c.cfg.H)
	}

	captureTexMu.Lock()
	for y := 0; y < outH; y++ {
		row := c.tex[y*captureTexW*2:]
		for x := 0; x < outW; x++ {
			binary.LittleEndian.PutUint16(row[x*2:], out[y*outW+x])
		}
	}
	captureTexMu.Unlock()
}

// sourceTestFrame draws the stand-in for real console output: a color
// gradient with a moving vertical bar so motion is visible on screen.
func sourceTestFrame(n uint64) []uint16 {
	frame := make([]uint16, srcFrameW*srcFrameH)
	barX := int(n % srcFrameW)
	for y := 0; y < srcFrameH; y++ {
		for x := 0; x < srcFrameW; x++ {
			r := uint8(x * 255 / srcFrameW)
			g := uint8(y * 255 / srcFrameH)
			b := uint8(255 - r/2 - g/2)
			if x == barX || x == barX+1 {
				r, g, b = 255, 255, 255
			}
			frame[y*srcFrameW+x] = a1bgr5(r, g, b)
		}
	}
	return frame
}

// scalePolyphase applies the capture unit's 6-tap, 8-phase filter pair:
// horizontal first, then vertical, coefficients in signed 1.14 fixed point.
func scalePolyphase(src []uint16, srcW, srcH, dstW, dstH int, vm, hm *[48]int16) []uint16 {
	// Horizontal pass.
	mid := make([]uint16, dstW*srcH)
	for y := 0; y < srcH; y++ {
		filterAxis(srcW, dstW, hm,
			func(i int) uint16 { return src[y*srcW+i] },
			func(i int, p uint16) { mid[y*dstW+i] = p })
	}

	// Vertical pass.
	dst := make([]uint16, dstW*dstH)
	for x := 0; x < dstW; x++ {
		filterAxis(srcH, dstH, vm,
			func(i int) uint16 { return mid[i*dstW+x] },
			func(i int, p uint16) { dst[i*dstW+x] = p })
	}
	return dst
}

func filterAxis(n, outN int, m *[48]int16, get func(int) uint16, put func(int, uint16)) {
	for o := 0; o < outN; o++ {
		center := o * n / outN
		phase := o * n * 8 / outN % 8
		var ar, ag, ab int
		for t := 0; t < 6; t++ {
			s := center + t - 3
			if s < 0 {
				s = 0
			} else if s >= n {
				s = n - 1
			}
			w := int(m[t*8+phase])
			r, g, b := a1bgr5Split(get(s))
			ar += int(r) * w
			ag += int(g) * w
			ab += int(b) * w
		}
		put(o, a1bgr5(clampChan(ar>>14), clampChan(ag>>14), clampChan(ab>>14)))
	}
}

func clampChan(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
