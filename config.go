package main

// Config carries the already-validated tuning scalars for one pipeline
// instance. main() fills it from flags; tests build it directly.
type Config struct {
	TargetGamma float64 // Gamma of the emulated source panel
	LcdGamma    float64 // Gamma of the output LCD
	Contrast    float64
	Brightness  float64
	Scaler      uint8 // 0/1 = native 240x160, >=2 = scaled 360x240

	ScreenshotDir string
	BorderFile    string
	MatrixFile    string
}

// DefaultConfig mirrors the tuning that looks right on real hardware.
func DefaultConfig() *Config {
	return &Config{
		TargetGamma:   2.2,
		LcdGamma:      1.54,
		Contrast:      1.0,
		Brightness:    0.0,
		Scaler:        2,
		ScreenshotDir: "screenshots",
		BorderFile:    "border.bgr",
		MatrixFile:    "scaler_matrix.bin",
	}
}
