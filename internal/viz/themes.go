package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI and the static renders.
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Field    lipgloss.Color // quiver arrows
	Contour  lipgloss.Color // equipotentials
	Surface  lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Primary:  lipgloss.Color("#ff00ff"),
		Accent:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Field:    lipgloss.Color("#00ffff"),
		Contour:  lipgloss.Color("#ff00ff"),
		Surface:  lipgloss.Color("#00ff88"),
		Positive: lipgloss.Color("#ff3355"),
		Negative: lipgloss.Color("#3388ff"),
	}

	// Blue arrows and red contours, as in a matplotlib quiver plot.
	ThemeClassic = Theme{
		Name:     "classic",
		Primary:  lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Field:    lipgloss.Color("#4466ff"),
		Contour:  lipgloss.Color("#ff4444"),
		Surface:  lipgloss.Color("#44cc88"),
		Positive: lipgloss.Color("#ff0000"),
		Negative: lipgloss.Color("#0000ff"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Field:    lipgloss.Color("#00cc00"),
		Contour:  lipgloss.Color("#88ff88"),
		Surface:  lipgloss.Color("#00ff00"),
		Positive: lipgloss.Color("#ffff00"),
		Negative: lipgloss.Color("#00ffff"),
	}

	ThemeViridis = Theme{
		Name:     "viridis",
		Primary:  lipgloss.Color("#fde725"),
		Accent:   lipgloss.Color("#5ec962"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#3b528b"),
		Field:    lipgloss.Color("#21918c"),
		Contour:  lipgloss.Color("#fde725"),
		Surface:  lipgloss.Color("#5ec962"),
		Positive: lipgloss.Color("#ff4444"),
		Negative: lipgloss.Color("#4488ff"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeClassic,
		ThemeRetroGreen,
		ThemeViridis,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) inkStyles() [numInks]lipgloss.Style {
	var s [numInks]lipgloss.Style
	s[InkAxis] = lipgloss.NewStyle().Foreground(t.Muted)
	s[InkField] = lipgloss.NewStyle().Foreground(t.Field)
	s[InkContour] = lipgloss.NewStyle().Foreground(t.Contour)
	s[InkSurface] = lipgloss.NewStyle().Foreground(t.Surface)
	s[InkPositive] = lipgloss.NewStyle().Foreground(t.Positive).Bold(true)
	s[InkNegative] = lipgloss.NewStyle().Foreground(t.Negative).Bold(true)
	return s
}
