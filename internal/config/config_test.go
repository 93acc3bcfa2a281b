package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "field.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	charges := cfg.ChargeList()
	if len(charges) != 2 {
		t.Fatalf("expected 2 charges, got %d", len(charges))
	}
	if charges[0].Magnitude != 1e-9 || charges[0].Position.X != -2 {
		t.Errorf("unexpected charge 0: %v", charges[0])
	}
	if charges[1].Magnitude != -1e-9 || charges[1].Position.X != 2 {
		t.Errorf("unexpected charge 1: %v", charges[1])
	}
	if spec := cfg.GridSpec(); spec.Size != 10 || spec.Points != 30 {
		t.Errorf("unexpected grid %+v", spec)
	}
	ctl := cfg.SessionControls()
	if ctl.MagnitudeMin != -5 || ctl.MagnitudeMax != 5 || ctl.XMin != -4 || ctl.XMax != 4 {
		t.Errorf("unexpected controls %+v", ctl)
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
charges:
  - {q: 2.0e-9, x: -1, y: 0.5}
grid:
  size: 6
  points: 21
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Charges) != 1 || cfg.Charges[0].Q != 2e-9 || cfg.Charges[0].Y != 0.5 {
		t.Errorf("unexpected charges %+v", cfg.Charges)
	}
	if cfg.Grid.Size != 6 || cfg.Grid.Points != 21 {
		t.Errorf("unexpected grid %+v", cfg.Grid)
	}
	// untouched sections keep defaults
	if cfg.Controls.XMax != 4 || cfg.Render.Theme != DefaultTheme {
		t.Errorf("defaults lost: %+v %+v", cfg.Controls, cfg.Render)
	}
}

func TestLoad_PresetOnly(t *testing.T) {
	cfg, err := Load(writeFile(t, "preset: quadrupole\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Charges) != 4 {
		t.Errorf("expected quadrupole charges, got %d", len(cfg.Charges))
	}
}

func TestLoad_EmptyCharges(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"explicit empty list", "charges: []\n"},
		{"no charges key", "grid: {size: 10, points: 30}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.body))
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if cfg.Preset != "" || len(cfg.Charges) != 0 {
				t.Errorf("expected no charges, got preset=%q charges=%+v", cfg.Preset, cfg.Charges)
			}
			if n := len(cfg.ChargeList()); n != 0 {
				t.Errorf("charge list has %d entries", n)
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "charges: [1, 2"},
		{"one point", "grid: {size: 10, points: 1}"},
		{"zero size", "grid: {size: 0, points: 10}"},
		{"nan charge", "charges:\n  - {q: .nan, x: 0, y: 0}"},
		{"inverted controls", "controls: {magnitude_min: 5, magnitude_max: -5, x_min: -4, x_max: 4}"},
		{"unknown preset", "preset: nope"},
		{"unknown theme", "render: {theme: sepia}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ApplyPreset("triangle"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got.Charges) != 3 || got.Charges[0] != cfg.Charges[0] {
		t.Errorf("round trip mismatch: %+v", got.Charges)
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d names, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Error("ListPresets not sorted")
		}
	}

	p := GetPreset("dipole")
	p[0].Q = 42
	if Presets["dipole"][0].Q == 42 {
		t.Error("GetPreset returned shared storage")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}
