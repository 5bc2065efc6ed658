// main.go - Main entry point for the LegacyCap Engine

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
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func boilerPlate() {
	fmt.Println("LegacyCap Engine")
	fmt.Println("Real-time capture and display pipeline for legacy handheld video.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/LegacyCapEngine")
	fmt.Println("License: GPLv3 or later")
	fmt.Println()
	fmt.Println("Pad: arrows + X/Z (A/B), A/S (Y/X), Q/W (L/R), Enter (Start), Backspace (Select)")
	fmt.Println("Screenshot: hold A + Backspace | F11 fullscreen | F12 status bar")
}

func main() {
	boilerPlate()

	def := DefaultConfig()
	var cfg Config
	flag.Float64Var(&cfg.TargetGamma, "gamma", def.TargetGamma, "source gamma to emulate")
	flag.Float64Var(&cfg.LcdGamma, "lcd-gamma", def.LcdGamma, "gamma of the output LCD")
	flag.Float64Var(&cfg.Contrast, "contrast", def.Contrast, "contrast adjustment")
	flag.Float64Var(&cfg.Brightness, "brightness", def.Brightness, "brightness adjustment")
	scaler := flag.Uint("scaler", uint(def.Scaler), "scaler mode: 0/1 native 240x160, 2+ scaled 360x240")
	flag.StringVar(&cfg.ScreenshotDir, "screenshot-dir", def.ScreenshotDir, "directory for screenshot BMP files")
	flag.StringVar(&cfg.BorderFile, "border", def.BorderFile, "optional 400x240 BGR border image (scaler mode 0 only)")
	flag.StringVar(&cfg.MatrixFile, "matrix", def.MatrixFile, "optional scaling coefficient override file")
	flag.Parse()
	cfg.Scaler = uint8(*scaler)

	output, input, err := newFrontend()
	if err != nil {
		fmt.Printf("Failed to initialize display frontend: %v\n", err)
		os.Exit(1)
	}

	captureTex := make([]byte, captureTexW*captureTexH*2)
	renderBuf := make([]byte, presentBufSize)
	lut := NewColorLUTRegs()

	video := &Video{
		Cfg:        &cfg,
		Cap:        NewCaptureSim(captureTex, 0),
		Cp:         NewCmdProcSim(captureTex, renderBuf),
		Xfer:       NewTransferSim(),
		Disp:       NewDisplayPair(lut, output),
		Lut:        lut,
		Input:      input,
		Clock:      SystemClock{},
		Fs:         FsStorage{},
		CaptureTex: captureTex,
		RenderBuf:  renderBuf,
		OnScreenshot: func(path string, err error) {
			if err != nil {
				fmt.Printf("Screenshot failed: %v\n", err)
				return
			}
			fmt.Printf("Screenshot saved: %s\n", path)
			output.SetShotPath(path)
		},
	}

	frameReady, err := video.InitVideo()
	if err != nil {
		fmt.Printf("Failed to initialize video pipeline: %v\n", err)
		os.Exit(1)
	}

	if err := output.Start(); err != nil {
		fmt.Printf("Failed to start display frontend: %v\n", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-output.Done():
	}

	video.ExitVideo()
	frameReady.Destroy()
	_ = output.Stop()
}
