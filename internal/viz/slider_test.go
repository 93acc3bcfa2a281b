package viz

import (
	"math"
	"testing"
)

func TestSlider_Clamp(t *testing.T) {
	s := NewSlider("Q1", "nC", -5, 5, 0.1, 9)
	if s.Value != 5 {
		t.Fatalf("value = %v, want clamp to 5", s.Value)
	}
	if s.Adjust(1) {
		t.Error("adjusting past max should report no change")
	}
	if !s.Adjust(-1) || math.Abs(s.Value-4.9) > 1e-9 {
		t.Errorf("value = %v, want 4.9", s.Value)
	}
	s.SetValue(-100)
	if s.Value != -5 {
		t.Errorf("value = %v, want -5", s.Value)
	}
}

func TestSlider_Tick(t *testing.T) {
	s := NewSlider("X1", "m", -4, 4, 0.05, 4)
	if s.Fraction() != 1 {
		t.Fatalf("fraction = %v, want 1", s.Fraction())
	}

	s.SetValue(-4)
	if !s.Tick() {
		t.Fatal("thumb should start moving")
	}
	settled := false
	for i := 0; i < 2000; i++ {
		if !s.Tick() {
			settled = true
			break
		}
	}
	if !settled {
		t.Fatal("thumb never settled")
	}
	if s.Fraction() != 0 {
		t.Errorf("fraction = %v, want 0", s.Fraction())
	}
}

func TestSlider_View(t *testing.T) {
	s := NewSlider("Q1", "nC", -5, 5, 0.1, 0)
	if v := s.View(20, true, ThemeClassic); v == "" {
		t.Error("empty view")
	}
}
