// video_lifecycle.go - Pipeline startup and shutdown for LegacyCap Engine

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

// borderFileSize is the exact size of the optional border image: raw BGR8,
// full presentation geometry.
const borderFileSize = presentW * presentH * 3

// Video wires one pipeline instance to its hardware collaborators. Fields
// are filled by the composition root (main or a test) before Init.
type Video struct {
	Cfg   *Config
	Cap   CaptureUnit
	Cp    CommandProcessor
	Xfer  TransferEngine
	Disp  Display
	Lut   ColorLUT
	Input Input
	Clock Clock
	Fs    Storage

	// CaptureTex and RenderBuf are the shared hardware memory regions.
	CaptureTex []byte
	RenderBuf  []byte

	// OnScreenshot observes dump attempts (status bar, logging). Optional.
	OnScreenshot func(path string, err error)

	pipe *FramePipeline
}

// InitVideo configures the capture unit, starts the frame pipeline task,
// installs the gamma table and, in unscaled mode, loads the optional static
// border. It returns the frame-ready event; the caller owns it and destroys
// it after ExitVideo to let the task terminate.
func (v *Video) InitVideo() (*KEvent, error) {
	// Release builds force the secondary panel dark here; panel power is a
	// display-driver detail outside this pipeline.

	ev, err := setupFrameCapture(v.Cfg.Scaler, v.Cfg.MatrixFile, v.Fs, v.Cap)
	if err != nil {
		return nil, &VideoError{Operation: "capture init", Details: "capture unit rejected configuration", Err: err}
	}

	v.pipe = &FramePipeline{
		cp:           v.Cp,
		xfer:         v.Xfer,
		disp:         v.Disp,
		input:        v.Input,
		cap:          v.Cap,
		clock:        v.Clock,
		fs:           v.Fs,
		lists:        buildCmdLists(v.Cfg.Scaler),
		captureTex:   v.CaptureTex,
		renderBuf:    v.RenderBuf,
		scaler:       v.Cfg.Scaler,
		shotDir:      v.Cfg.ScreenshotDir,
		onScreenshot: v.OnScreenshot,
	}
	go v.pipe.Run(ev)

	adjustGammaTable(v.Cfg, v.Lut)

	// Initialize the render target once; the per-frame lists never clear it,
	// so whatever lands here now frames the capture area from then on.
	v.Cp.Submit(clearList(0x000000))
	v.Cp.WaitDone()

	// No borders for scaled modes.
	if v.Cfg.Scaler == 0 {
		v.loadBorder()
	}

	v.Cap.Start()
	return ev, nil
}

// ExitVideo deinitializes the capture unit. The pipeline task keeps running
// until the caller destroys the frame-ready event; its wait then fails and
// it terminates on its own without touching another buffer.
func (v *Video) ExitVideo() {
	v.Cap.Deinit()
}

// Pipeline exposes the running task for lifecycle tracking.
func (v *Video) Pipeline() *FramePipeline {
	return v.pipe
}

// loadBorder reads the optional border image and transfers it into the
// render buffer once, tiled the way the render path expects. The hidden
// presentation buffer doubles as read staging; the pipeline task is not
// running a frame yet, so the loan is safe without stopping capture.
func (v *Video) loadBorder() {
	borderBuf := v.Disp.Buffer(SideBack)
	if err := v.Fs.ReadFile(v.Cfg.BorderFile, borderBuf[:borderFileSize]); err != nil {
		return
	}
	v.Xfer.Transfer(borderBuf[:borderFileSize], Dim{presentW, presentH},
		v.RenderBuf, Dim{presentW, presentH},
		XferInFmt(FmtBGR8)|XferOutFmt(FmtBGR8)|XferOutTiled)
	v.Xfer.WaitDone()
}
