// Package electro provides the electrostatics core: point charges, the
// field/potential evaluator and the regular sample grid it is batch-evaluated on.
//
//   - [Charge]: magnitude (C) and position (m) of a point charge
//   - [ChargeSet]: ordered, session-owned collection; charge 0 is the adjustable one
//   - [Evaluator]: field and potential at a point, or over a [GridSpec]
//   - [FieldGrid]: Ex, Ey and V sampled on a square mesh centred at the origin
//
// # Example
//
//	cs := electro.NewChargeSet(
//	    electro.NewCharge(1e-9, -2, 0),
//	    electro.NewCharge(-1e-9, 2, 0),
//	)
//	ev := electro.NewEvaluator(cs)
//	grid := ev.FieldGrid(electro.DefaultGridSpec())
//
// # Exclusion
//
// A charge closer than [MinDistance] to the evaluation point contributes
// nothing to that point. The rule is applied per charge and per point, so a
// grid node next to one charge still carries the contributions of the others.
//
// # Thread Safety
//
// The free functions and [EvaluateGrid] are pure. [Evaluator] reads the
// [ChargeSet] it was built with on every call; callers must not mutate the set
// while an evaluation is running.
package electro
