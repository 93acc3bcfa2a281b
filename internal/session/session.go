package session

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/chargefield/internal/electro"
)

// Consumer receives every grid the session produces.
type Consumer interface {
	Consume(g *electro.FieldGrid)
}

type ConsumerFunc func(g *electro.FieldGrid)

func (f ConsumerFunc) Consume(g *electro.FieldGrid) { f(g) }

type Session struct {
	charges   *electro.ChargeSet
	initial   []electro.Charge
	eval      *electro.Evaluator
	spec      electro.GridSpec
	controls  Controls
	consumers []Consumer
	last      *electro.FieldGrid
	log       *slog.Logger
}

// New builds a session over a private copy of charges.
func New(charges []electro.Charge, spec electro.GridSpec, controls Controls, log *slog.Logger) (*Session, error) {
	cs := electro.NewChargeSet(charges...)
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := controls.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Session{
		charges:  cs,
		initial:  cs.Snapshot(),
		eval:     electro.NewEvaluator(cs),
		spec:     spec,
		controls: controls,
		log:      log,
	}, nil
}

// SetWorkers sets the goroutine bound for grid evaluation.
func (s *Session) SetWorkers(n int) { s.eval.Workers = n }

func (s *Session) Subscribe(c Consumer) { s.consumers = append(s.consumers, c) }

func (s *Session) Spec() electro.GridSpec { return s.spec }
func (s *Session) Controls() Controls     { return s.controls }

func (s *Session) Charges() []electro.Charge {
	return s.charges.Snapshot()
}

// Evaluator exposes point evaluation against the live charge set.
func (s *Session) Evaluator() *electro.Evaluator { return s.eval }

// Last returns the most recent grid, or nil before the first evaluation.
func (s *Session) Last() *electro.FieldGrid { return s.last }

// Adjustable returns charge 0, the one the controls act on.
func (s *Session) Adjustable() (electro.Charge, bool) {
	c, err := s.charges.At(0)
	return c, err == nil
}

// ControlValues returns charge 0 expressed in control units (nC, m).
func (s *Session) ControlValues() (magnitudeNC, x float64) {
	c, ok := s.Adjustable()
	if !ok {
		return 0, 0
	}
	return c.Magnitude / electro.Nano, c.Position.X
}

// Evaluate re-evaluates the grid without changing any charge.
func (s *Session) Evaluate() *electro.FieldGrid {
	g := s.eval.FieldGrid(s.spec)
	s.last = g
	for _, c := range s.consumers {
		c.Consume(g)
	}
	return g
}

// OnControlChange writes the control values into charge 0 and returns the
// freshly evaluated grid. Values outside the control range are clamped.
func (s *Session) OnControlChange(magnitudeNC, x float64) (*electro.FieldGrid, error) {
	if math.IsNaN(magnitudeNC) || math.IsInf(magnitudeNC, 0) || math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, fmt.Errorf("%w: magnitude=%v x=%v", ErrNonFiniteControl, magnitudeNC, x)
	}

	cur, ok := s.Adjustable()
	if !ok {
		s.log.Warn("session.control_ignored", "reason", "empty charge set")
		return s.Evaluate(), nil
	}

	mag, cx := s.controls.Clamp(magnitudeNC, x)
	if mag != magnitudeNC || cx != x {
		s.log.Info("session.control_clamped", "magnitude_nc", magnitudeNC, "x", x, "clamped_nc", mag, "clamped_x", cx)
	}

	next := electro.NewCharge(mag*electro.Nano, cx, cur.Position.Y)
	if err := s.charges.Set(0, next); err != nil {
		return nil, err
	}
	s.log.Debug("session.control_change", "charge", next.String())

	return s.Evaluate(), nil
}

// Reset restores the charges the session started with and re-evaluates.
func (s *Session) Reset() *electro.FieldGrid {
	for i, c := range s.initial {
		_ = s.charges.Set(i, c)
	}
	s.log.Debug("session.reset", "charges", len(s.initial))
	return s.Evaluate()
}
