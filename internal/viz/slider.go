package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const sliderFPS = 60

// Slider is a bounded control. Value changes immediately; the drawn thumb
// eases toward it on each Tick.
type Slider struct {
	Label, Unit    string
	Min, Max, Step float64
	Value          float64

	shown, vel float64
	spring     harmonica.Spring
}

func NewSlider(label, unit string, min, max, step, value float64) *Slider {
	s := &Slider{
		Label:  label,
		Unit:   unit,
		Min:    min,
		Max:    max,
		Step:   step,
		spring: harmonica.NewSpring(harmonica.FPS(sliderFPS), 8.0, 0.9),
	}
	s.SetValue(value)
	s.shown = s.Value
	return s
}

// Adjust moves the value by n steps and reports whether it changed.
func (s *Slider) Adjust(n float64) bool {
	old := s.Value
	s.SetValue(s.Value + n*s.Step)
	return s.Value != old
}

func (s *Slider) SetValue(v float64) {
	s.Value = math.Max(s.Min, math.Min(s.Max, v))
}

// Tick advances the thumb animation and reports whether it is still moving.
func (s *Slider) Tick() bool {
	s.shown, s.vel = s.spring.Update(s.shown, s.vel, s.Value)
	if math.Abs(s.shown-s.Value) < s.Step*1e-3 && math.Abs(s.vel) < s.Step*1e-2 {
		s.shown, s.vel = s.Value, 0
		return false
	}
	return true
}

// Fraction returns the drawn thumb position in [0, 1].
func (s *Slider) Fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return math.Max(0, math.Min(1, (s.shown-s.Min)/(s.Max-s.Min)))
}

func (s *Slider) View(width int, active bool, th Theme) string {
	track := max(4, width)
	pos := int(math.Round(s.Fraction() * float64(track-1)))

	labelStyle := lipgloss.NewStyle().Foreground(th.Muted)
	thumbStyle := lipgloss.NewStyle().Foreground(th.Muted)
	if active {
		labelStyle = lipgloss.NewStyle().Foreground(th.Primary).Bold(true)
		thumbStyle = lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
	}

	bar := lipgloss.NewStyle().Foreground(th.Muted).Render(strings.Repeat("─", pos)) +
		thumbStyle.Render("●") +
		lipgloss.NewStyle().Foreground(th.Muted).Render(strings.Repeat("─", track-pos-1))

	head := fmt.Sprintf("%-8s %7.2f %s", s.Label, s.Value, s.Unit)
	return labelStyle.Render(head) + "\n" + bar
}
