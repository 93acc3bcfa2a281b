package viz

import (
	"strings"
	"testing"
)

func TestCanvas_SetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	if w, h := c.Pixels(); w != 8 || h != 8 {
		t.Fatalf("pixels = %dx%d, want 8x8", w, h)
	}

	c.Set(0, 0)
	c.Set(1, 3)
	if !c.IsSet(0, 0) || !c.IsSet(1, 3) {
		t.Error("set pixels should read back")
	}
	if c.IsSet(1, 0) {
		t.Error("unset pixel reads as set")
	}
	if got := c.Grid[0][0]; got != blank|0x1|0x80 {
		t.Errorf("cell = %U, want %U", got, blank|0x1|0x80)
	}

	// off-canvas writes are dropped
	c.Set(-1, 0)
	c.Set(100, 100)

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("clear should blank the canvas")
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for x := 0; x < 8; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("pixel %d not set", x)
		}
	}
	c.DrawLine(0, 3, 0, 0)
	for y := 0; y < 4; y++ {
		if !c.IsSet(0, y) {
			t.Errorf("pixel (0,%d) not set", y)
		}
	}
}

func TestCanvas_LabelsAndRender(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Pen = InkField
	c.Set(2, 0)
	c.Label(0, 0, "+", InkPositive)

	s := c.String()
	if !strings.HasPrefix(s, "+") {
		t.Errorf("label should replace the cell, got %q", s)
	}
	if strings.Count(s, "\n") != 1 {
		t.Errorf("expected one line, got %q", s)
	}
	if c.ink[0][1] != InkField {
		t.Errorf("ink = %d, want %d", c.ink[0][1], InkField)
	}

	r := c.Render(ThemeClassic)
	if !strings.Contains(r, "+") {
		t.Error("rendered output lost the label")
	}
}
