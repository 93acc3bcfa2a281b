package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/chargefield/internal/electro"
	"github.com/san-kum/chargefield/internal/session"
)

const (
	panelWidth   = 40
	sliderQ      = 0
	sliderX      = 1
	coarseFactor = 10
)

type frameMsg time.Time

// InteractiveOptions configures the live view.
type InteractiveOptions struct {
	Width, Height int
	Theme         Theme
	Plot          FieldPlotOptions
	// Snapshot, when set, is called with the current grid on "s".
	Snapshot func(g *electro.FieldGrid) (string, error)
}

// Interactive is the bubbletea model of the live 2D view: the field plot on
// the left, the two charge-0 sliders and readouts on the right.
type Interactive struct {
	sess      *session.Session
	grid      *electro.FieldGrid
	sliders   [2]*Slider
	active    int
	theme     Theme
	plot      FieldPlotOptions
	levels    int
	canvas    *Canvas
	width     int
	height    int
	animating bool
	profile   bool
	showHelp  bool
	snapshot  func(g *electro.FieldGrid) (string, error)
	status    string
}

func NewInteractive(sess *session.Session, opts InteractiveOptions) Interactive {
	ctl := sess.Controls()
	q, x := sess.ControlValues()
	if opts.Width <= 0 {
		opts.Width = 72
	}
	if opts.Height <= 0 {
		opts.Height = 28
	}
	if opts.Theme.Name == "" {
		opts.Theme = CurrentTheme
	}

	m := Interactive{
		sess: sess,
		sliders: [2]*Slider{
			NewSlider("Q1", "nC", ctl.MagnitudeMin, ctl.MagnitudeMax, 0.1, q),
			NewSlider("X1", "m", ctl.XMin, ctl.XMax, 0.05, x),
		},
		theme:    opts.Theme,
		plot:     opts.Plot,
		canvas:   NewCanvas(opts.Width, opts.Height),
		width:    opts.Width + panelWidth + 4,
		height:   opts.Height + 4,
		snapshot: opts.Snapshot,
	}
	m.levels = opts.Plot.ContourLevels
	if m.levels <= 0 {
		m.levels = DefaultFieldPlotOptions().ContourLevels
	}

	m.grid = m.syncCharge(sess.Evaluate)
	m.redraw()
	return m
}

// syncCharge makes charge 0 match the sliders, which hold its values clamped
// into the control range. It falls back to eval when nothing was clamped.
func (m Interactive) syncCharge(eval func() *electro.FieldGrid) *electro.FieldGrid {
	q, x := m.sess.ControlValues()
	sq, sx := m.sliders[sliderQ].Value, m.sliders[sliderX].Value
	if _, ok := m.sess.Adjustable(); !ok || (sq == q && sx == x) {
		return eval()
	}
	g, err := m.sess.OnControlChange(sq, sx)
	if err != nil {
		return eval()
	}
	return g
}

func (m Interactive) Init() tea.Cmd { return nil }

func (m Interactive) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case frameMsg:
		moving := false
		for _, s := range m.sliders {
			if s.Tick() {
				moving = true
			}
		}
		m.animating = moving
		if moving {
			return m, frame()
		}
	}
	return m, nil
}

func (m Interactive) handleKey(msg tea.KeyMsg) (Interactive, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "up", "k", "down", "j":
		m.active = (m.active + 1) % len(m.sliders)
	case "left", "h":
		return m.adjust(-1)
	case "right", "l":
		return m.adjust(1)
	case "H", "shift+left":
		return m.adjust(-coarseFactor)
	case "L", "shift+right":
		return m.adjust(coarseFactor)
	case "r":
		grid := m.sess.Reset()
		q, x := m.sess.ControlValues()
		m.sliders[sliderQ].SetValue(q)
		m.sliders[sliderX].SetValue(x)
		m.grid = m.syncCharge(func() *electro.FieldGrid { return grid })
		m.redraw()
		return m.animate()
	case "c":
		if m.plot.ContourLevels > 0 {
			m.plot.ContourLevels = 0
		} else {
			m.plot.ContourLevels = m.levels
		}
		m.redraw()
	case "a":
		m.plot.HideArrows = !m.plot.HideArrows
		m.redraw()
	case "p":
		m.profile = !m.profile
	case "t":
		m.theme = NextTheme(m.theme)
	case "s":
		if m.snapshot != nil {
			if path, err := m.snapshot(m.grid); err != nil {
				m.status = "snapshot failed: " + err.Error()
			} else {
				m.status = "saved " + path
			}
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// adjust moves the active slider and re-evaluates the field synchronously.
func (m Interactive) adjust(steps float64) (Interactive, tea.Cmd) {
	if !m.sliders[m.active].Adjust(steps) {
		return m, nil
	}
	g, err := m.sess.OnControlChange(m.sliders[sliderQ].Value, m.sliders[sliderX].Value)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.grid = g
	m.redraw()
	return m.animate()
}

func (m Interactive) animate() (Interactive, tea.Cmd) {
	if m.animating {
		return m, nil
	}
	m.animating = true
	return m, frame()
}

func frame() tea.Cmd {
	return tea.Tick(time.Second/sliderFPS, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Interactive) resize(w, h int) {
	m.width, m.height = w, h
	cw := max(20, w-panelWidth-6)
	ch := max(8, h-4)
	// keep the plot square: a cell is about twice as tall as it is wide
	cw = min(cw, ch*2)
	ch = min(ch, cw/2)
	m.canvas = NewCanvas(cw, ch)
	m.redraw()
}

func (m *Interactive) redraw() {
	m.canvas.Clear()
	DrawField(m.canvas, m.grid, m.plot)
}

// Grid returns the grid currently on screen.
func (m Interactive) Grid() *electro.FieldGrid { return m.grid }

func (m Interactive) View() string {
	title := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).
		Render("Electrostatic Field and Equipotential Lines")
	axis := lipgloss.NewStyle().Foreground(m.theme.Muted)
	e := m.grid.Spec.Extent()

	plot := lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.canvas.Render(m.theme),
		axis.Render(fmt.Sprintf("X (m) %.1f … %.1f   Y (m) %.1f … %.1f", -e, e, -e, e)),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, plot, "  ", m.panel())
}

func (m Interactive) panel() string {
	th := m.theme
	var b strings.Builder
	head := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)
	label := lipgloss.NewStyle().Foreground(th.Muted)
	value := lipgloss.NewStyle().Foreground(th.Text)

	b.WriteString(head.Render("CHARGE 0") + "\n\n")
	for i, s := range m.sliders {
		b.WriteString(s.View(panelWidth-4, i == m.active, th) + "\n\n")
	}

	b.WriteString(head.Render("CHARGES") + "\n")
	for i, c := range m.grid.Charges {
		ink := lipgloss.NewStyle().Foreground(th.Negative)
		if c.Sign() > 0 {
			ink = lipgloss.NewStyle().Foreground(th.Positive)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", label.Render(fmt.Sprintf("q%d", i)), ink.Render(fmt.Sprintf("%+6.2f nC (%5.2f, %5.2f)", c.Magnitude/electro.Nano, c.Position.X, c.Position.Y))))
	}

	lo, hi := m.grid.PotentialRange()
	b.WriteString("\n" + head.Render("FIELD") + "\n")
	b.WriteString(label.Render("V range  ") + value.Render(fmt.Sprintf("%.3g … %.3g V", lo, hi)) + "\n")
	b.WriteString(label.Render("|E| max  ") + value.Render(fmt.Sprintf("%.3g V/m", m.grid.MaxFieldMagnitude())) + "\n")
	b.WriteString(label.Render("grid     ") + value.Render(fmt.Sprintf("%d×%d over %.1f m", m.grid.Cols(), m.grid.Rows(), m.grid.Spec.Size)) + "\n")

	if m.profile {
		b.WriteString("\n" + PotentialProfile(m.grid, 0, panelWidth-22, 6) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Accent).Render(m.status) + "\n")
	}

	keys := lipgloss.NewStyle().Foreground(th.Muted).Italic(true)
	if m.showHelp {
		b.WriteString("\n" + keys.Render(strings.Join([]string{
			"tab/j/k  select slider",
			"h/l      adjust  (H/L coarse)",
			"r        reset charges",
			"c / a    toggle contours / arrows",
			"p        potential profile",
			"s        save snapshot",
			"t        cycle theme",
			"q        quit",
		}, "\n")))
	} else {
		b.WriteString("\n" + keys.Render("h/l adjust  tab select  ? help  q quit"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Muted).
		Padding(0, 1).
		Width(panelWidth).
		Render(b.String())
}

// RunInteractive runs the live view until the user quits. The session keeps
// the final charge configuration.
func RunInteractive(sess *session.Session, opts InteractiveOptions) error {
	_, err := tea.NewProgram(NewInteractive(sess, opts), tea.WithAltScreen()).Run()
	return err
}
