package main

import "testing"

func neutralGammaConfig() *Config {
	cfg := DefaultConfig()
	cfg.Contrast = 1.0
	cfg.Brightness = 0.0
	return cfg
}

func TestAdjustGammaTable_EntryCountAndOrder(t *testing.T) {
	lut := &recordLUT{}
	adjustGammaTable(neutralGammaConfig(), lut)
	if len(lut.entries) != 256 {
		t.Fatalf("expected 256 entries, got %d", len(lut.entries))
	}
}

func TestAdjustGammaTable_ChannelsReplicated(t *testing.T) {
	lut := &recordLUT{}
	adjustGammaTable(neutralGammaConfig(), lut)
	for i, e := range lut.entries {
		r, g, b := e>>16&0xFF, e>>8&0xFF, e&0xFF
		if r != g || g != b {
			t.Fatalf("entry %d: channels differ: %06X", i, e)
		}
		if e>>24 != 0 {
			t.Fatalf("entry %d: bits above 24 set: %08X", i, e)
		}
	}
}

func TestAdjustGammaTable_MonotonicAtNeutral(t *testing.T) {
	lut := &recordLUT{}
	adjustGammaTable(neutralGammaConfig(), lut)
	prev := uint32(0)
	for i, e := range lut.entries {
		v := e & 0xFF
		if v < prev {
			t.Fatalf("entry %d: %d < previous %d", i, v, prev)
		}
		prev = v
	}
	if first := lut.entries[0] & 0xFF; first != 0 {
		t.Fatalf("expected entry 0 to map to 0, got %d", first)
	}
	if last := lut.entries[255] & 0xFF; last != 255 {
		t.Fatalf("expected entry 255 to map to 255, got %d", last)
	}
}

func TestAdjustGammaTable_Pure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Contrast = 1.2
	cfg.Brightness = 0.05
	a, b := &recordLUT{}, &recordLUT{}
	adjustGammaTable(cfg, a)
	adjustGammaTable(cfg, b)
	for i := range a.entries {
		if a.entries[i] != b.entries[i] {
			t.Fatalf("entry %d differs between runs: %06X vs %06X", i, a.entries[i], b.entries[i])
		}
	}
}

func TestAdjustGammaTable_DegenerateParamsStayClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetGamma = 0
	cfg.LcdGamma = 0 // 1/0 propagates +Inf through the curve
	cfg.Contrast = 0
	lut := &recordLUT{}
	adjustGammaTable(cfg, lut)
	if len(lut.entries) != 256 {
		t.Fatalf("expected 256 entries, got %d", len(lut.entries))
	}
	for i, e := range lut.entries {
		if v := e & 0xFF; v > 255 {
			t.Fatalf("entry %d out of range: %d", i, v)
		}
	}
}

func TestClampLutEntry(t *testing.T) {
	nan := 0.0
	nan /= nan // force NaN without importing math here
	cases := []struct {
		in   float64
		want uint32
	}{
		{-5, 0},
		{0, 0},
		{128, 128},
		{255, 255},
		{300, 255},
		{nan, 0},
	}
	for _, c := range cases {
		if got := clampLutEntry(c.in); got != c.want {
			t.Fatalf("clampLutEntry(%v): expected %d, got %d", c.in, c.want, got)
		}
	}
}
