// capture_unit.go - Capture unit configuration for LegacyCap Engine

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
	"errors"
	"fmt"
)

// Capture control flags.
const (
	capSwizzle   uint32 = 1 << 0
	capFmtA1BGR5 uint32 = 1 << 1
	capHScaleEn  uint32 = 1 << 2
	capVScaleEn  uint32 = 1 << 3
)

// Source and output geometries. Only two output geometries exist: the
// source's native 240x160 or the hardware-scaled 360x240.
const (
	srcFrameW = 240
	srcFrameH = 160

	scaledFrameW = 360
	scaledFrameH = 240

	// The capture unit writes frames into a 512x512 texture; transfers out
	// of it crop to the active geometry.
	captureTexW = 512
	captureTexH = 512
)

// CaptureConfig is handed once to CaptureUnit.Init. The two filter matrices
// are 6 taps by 8 phases of signed 1.14 fixed-point coefficients; they are
// only meaningful when the corresponding scale enable bit is set, but they
// are always loaded.
type CaptureConfig struct {
	Cnt     uint32
	W, H    uint16
	Irq     bool
	VLen    uint8
	VPatt   uint8
	VMatrix [48]int16
	HLen    uint8
	HPatt   uint8
	HMatrix [48]int16
}

// CaptureUnit is the hardware block producing frames from the legacy source.
// Init configures it and returns the frame-ready event, which fires once per
// completed input frame. Deinit stops the hardware; it does not destroy the
// event, which is owned by the caller of InitVideo.
type CaptureUnit interface {
	Init(cfg *CaptureConfig) (*KEvent, error)
	Start()
	Stop()
	Deinit()
}

// defaultScaleMatrix holds the compiled-in 1.5x filter coefficients:
// vertical 6x8 first, horizontal 6x8 second. 0x4000 is unity gain.
var defaultScaleMatrix = [96]int16{
	// Vertical.
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0x24B0, 0x4000, 0, 0x24B0, 0x4000, 0, 0,
	0x4000, 0x2000, 0, 0x4000, 0x2000, 0, 0, 0,
	0, -0x4B0, 0, 0, -0x4B0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,

	// Horizontal.
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0x24B0, 0, 0, 0x24B0, 0, 0,
	0x4000, 0x4000, 0x2000, 0x4000, 0x4000, 0x2000, 0, 0,
	0, 0, -0x4B0, 0, 0, -0x4B0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

const scaleMatrixFileSize = 96 * 2

// buildCaptureConfig derives the capture configuration from the scaler mode
// and tries to replace the built-in filter coefficients with an override
// file of identical byte layout. A missing file is the normal case; any
// other read failure is reported and the defaults stay in effect.
func buildCaptureConfig(scaler uint8, matrixFile string, fs Storage) *CaptureConfig {
	is240x160 := scaler < 2

	matrix := defaultScaleMatrix
	var raw [scaleMatrixFileSize]byte
	err := fs.ReadFile(matrixFile, raw[:])
	switch {
	case err == nil:
		for i := range matrix {
			matrix[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
		}
	case !errors.Is(err, ErrFileNotFound):
		fmt.Printf("Failed to load hardware scaling matrix: %v\n", err)
	}

	cfg := &CaptureConfig{
		Cnt:   capSwizzle | capFmtA1BGR5,
		W:     srcFrameW,
		H:     srcFrameH,
		Irq:   false,
		VLen:  6,
		VPatt: 0b00011011,
		HLen:  6,
		HPatt: 0b00011011,
	}
	if !is240x160 {
		cfg.Cnt |= capHScaleEn | capVScaleEn
		cfg.W = scaledFrameW
		cfg.H = scaledFrameH
	}
	copy(cfg.VMatrix[:], matrix[:48])
	copy(cfg.HMatrix[:], matrix[48:])
	return cfg
}

// setupFrameCapture configures and initializes the capture unit. Its only
// output is the frame-ready event handle.
func setupFrameCapture(scaler uint8, matrixFile string, fs Storage, unit CaptureUnit) (*KEvent, error) {
	return unit.Init(buildCaptureConfig(scaler, matrixFile, fs))
}

// captureDim returns the active output geometry for a scaler mode.
func captureDim(scaler uint8) Dim {
	if scaler < 2 {
		return Dim{srcFrameW, srcFrameH}
	}
	return Dim{scaledFrameW, scaledFrameH}
}
