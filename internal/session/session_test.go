package session_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chargefield/internal/electro"
	"github.com/san-kum/chargefield/internal/session"
)

func dipole() []electro.Charge {
	return []electro.Charge{
		electro.NewCharge(1e-9, -2, 0),
		electro.NewCharge(-1e-9, 2, 0),
	}
}

var _ = Describe("Session", func() {
	var (
		s    *session.Session
		spec electro.GridSpec
	)

	BeforeEach(func() {
		spec = electro.GridSpec{Size: 10, Points: 15}
		var err error
		s, err = session.New(dipole(), spec, session.DefaultControls(), nil)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("New", func() {
		It("rejects non-finite charges", func() {
			_, err := session.New([]electro.Charge{electro.NewCharge(math.NaN(), 0, 0)}, spec, session.DefaultControls(), nil)
			Expect(err).To(MatchError(electro.ErrNonFinite))
		})

		It("rejects an invalid grid", func() {
			_, err := session.New(dipole(), electro.GridSpec{Size: 10, Points: 1}, session.DefaultControls(), nil)
			Expect(err).To(MatchError(electro.ErrGridPoints))
		})

		It("rejects an inverted control range", func() {
			_, err := session.New(dipole(), spec, session.Controls{MagnitudeMin: 1, MagnitudeMax: -1, XMin: -4, XMax: 4}, nil)
			Expect(err).To(MatchError(session.ErrControlRange))
		})

		It("copies the caller's charges", func() {
			charges := dipole()
			s, err := session.New(charges, spec, session.DefaultControls(), nil)
			Expect(err).NotTo(HaveOccurred())
			charges[0].Magnitude = 1
			Expect(s.Charges()[0].Magnitude).To(Equal(1e-9))
		})
	})

	Describe("OnControlChange", func() {
		It("writes magnitude in nC and x into charge 0, keeping y", func() {
			_, err := s.OnControlChange(3, -1.5)
			Expect(err).NotTo(HaveOccurred())

			c, ok := s.Adjustable()
			Expect(ok).To(BeTrue())
			Expect(c.Magnitude).To(BeNumerically("~", 3e-9, 1e-21))
			Expect(c.Position.X).To(Equal(-1.5))
			Expect(c.Position.Y).To(Equal(0.0))

			mag, x := s.ControlValues()
			Expect(mag).To(BeNumerically("~", 3, 1e-12))
			Expect(x).To(Equal(-1.5))
		})

		It("leaves the other charges untouched", func() {
			_, err := s.OnControlChange(-4, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Charges()[1]).To(Equal(dipole()[1]))
		})

		It("returns the same grid as a fresh evaluation of the new configuration", func() {
			g, err := s.OnControlChange(2, -3)
			Expect(err).NotTo(HaveOccurred())

			want := electro.EvaluateGrid(s.Charges(), spec, 1)
			Expect(g.V).To(Equal(want.V))
			Expect(g.Ex).To(Equal(want.Ex))
			Expect(g.Ey).To(Equal(want.Ey))
			Expect(s.Last()).To(BeIdenticalTo(g))
		})

		It("does not depend on earlier updates", func() {
			_, err := s.OnControlChange(5, 3)
			Expect(err).NotTo(HaveOccurred())
			direct, err := s.OnControlChange(1, -2)
			Expect(err).NotTo(HaveOccurred())

			fresh, err := session.New(dipole(), spec, session.DefaultControls(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh.Evaluate().V).To(Equal(direct.V))
		})

		It("changes only charge 0's contribution", func() {
			before := s.Evaluate()
			after, err := s.OnControlChange(4, -2)
			Expect(err).NotTo(HaveOccurred())

			old0 := dipole()[0]
			new0, _ := s.Adjustable()
			for i := 0; i < after.Rows(); i++ {
				for j := 0; j < after.Cols(); j++ {
					p := after.Node(i, j)
					delta := electro.Potential([]electro.Charge{new0}, p) - electro.Potential([]electro.Charge{old0}, p)
					Expect(after.V[i][j] - before.V[i][j]).To(BeNumerically("~", delta, 1e-9))
				}
			}
		})

		It("clamps values outside the slider range", func() {
			_, err := s.OnControlChange(50, -40)
			Expect(err).NotTo(HaveOccurred())
			mag, x := s.ControlValues()
			Expect(mag).To(BeNumerically("~", 5, 1e-12))
			Expect(x).To(Equal(-4.0))
		})

		It("rejects NaN and Inf", func() {
			_, err := s.OnControlChange(math.NaN(), 0)
			Expect(err).To(MatchError(session.ErrNonFiniteControl))
			_, err = s.OnControlChange(0, math.Inf(1))
			Expect(err).To(MatchError(session.ErrNonFiniteControl))
			Expect(s.Charges()).To(Equal(dipole()))
		})

		It("degrades to an all-zero grid with no charges", func() {
			empty, err := session.New(nil, spec, session.DefaultControls(), nil)
			Expect(err).NotTo(HaveOccurred())

			g, err := empty.OnControlChange(1, 1)
			Expect(err).NotTo(HaveOccurred())
			lo, hi := g.PotentialRange()
			Expect(lo).To(Equal(0.0))
			Expect(hi).To(Equal(0.0))
			Expect(g.MaxFieldMagnitude()).To(Equal(0.0))
		})
	})

	Describe("consumers", func() {
		It("notifies every subscriber in order with the returned grid", func() {
			var order []string
			var seen []*electro.FieldGrid
			s.Subscribe(session.ConsumerFunc(func(g *electro.FieldGrid) {
				order = append(order, "2d")
				seen = append(seen, g)
			}))
			s.Subscribe(session.ConsumerFunc(func(g *electro.FieldGrid) {
				order = append(order, "3d")
			}))

			g, err := s.OnControlChange(1, 0)
			Expect(err).NotTo(HaveOccurred())
			s.Evaluate()

			Expect(order).To(Equal([]string{"2d", "3d", "2d", "3d"}))
			Expect(seen[0]).To(BeIdenticalTo(g))
		})
	})

	Describe("Reset", func() {
		It("restores the initial charges", func() {
			_, err := s.OnControlChange(-5, 4)
			Expect(err).NotTo(HaveOccurred())

			g := s.Reset()
			Expect(s.Charges()).To(Equal(dipole()))
			Expect(g.V).To(Equal(electro.EvaluateGrid(dipole(), spec, 1).V))
		})
	})

	Describe("Controls", func() {
		It("clamps independently per axis", func() {
			c := session.DefaultControls()
			m, x := c.Clamp(-9, 2)
			Expect(m).To(Equal(-5.0))
			Expect(x).To(Equal(2.0))
		})
	})
})
