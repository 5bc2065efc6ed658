// video_gamma.go - Tone-mapping lookup table generation for LegacyCap Engine

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

import "math"

// ColorLUT is the display controller's color lookup register. It is
// write-only and index-implicit: each Write stores one entry and advances an
// internal cursor, so entries must be produced in increasing index order.
type ColorLUT interface {
	Write(entry uint32)
}

// adjustGammaTable computes the 256-entry tone curve from the configured
// scalars and streams it into the LUT register. Credits for the algorithm
// go to Extrems.
//
// The same corrected value is packed into all three channels of each entry.
// There is no error path: degenerate parameters propagate as non-finite
// floats and fall out of the clamp as 0 or 255.
func adjustGammaTable(cfg *Config, lut ColorLUT) {
	targetGamma := cfg.TargetGamma
	lcdGamma := 1 / cfg.LcdGamma
	contrast := cfg.Contrast
	brightness := cfg.Brightness / contrast
	contrastInTargetGamma := math.Pow(contrast, targetGamma)
	for i := 0; i < 256; i++ {
		// Adjust i with brightness and convert to target gamma.
		adjusted := math.Pow(float64(i)/255+brightness, targetGamma)

		// Apply contrast, convert to LCD gamma, round and clamp.
		res := clampLutEntry(math.Round(math.Pow(contrastInTargetGamma*adjusted, lcdGamma) * 255))

		lut.Write(res<<16 | res<<8 | res)
	}
}

// clampLutEntry clamps to [0,255]. The negated comparison deliberately sends
// NaN to 0 instead of tripping on it.
func clampLutEntry(v float64) uint32 {
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint32(v)
}
