package factory

// Projection is a read-only forecast of where the pools are headed,
// assuming every in-flight action completes as expected. Assembly
// contributes its expectation (0.6 good, 0.4 recovered bar), not a
// sampled outcome, hence the float fields.
//
// The projection only feeds the mine-foo-vs-mine-bar choice; the higher
// dispatch tiers gate on current pool sizes alone.
type Projection struct {
	Foos  float64
	Bars  float64
	Goods float64
	Money float64
}

// Project computes the forecast from scratch. It is cheap at fleet sizes
// up to TargetFleet and is never cached across ticks.
func (s *State) Project() Projection {
	p := Projection{
		Foos:  float64(len(s.Foos)),
		Bars:  float64(len(s.Bars)),
		Goods: float64(len(s.Foobars)),
		Money: float64(s.Money),
	}
	for _, r := range s.Robots {
		act := r.Action
		if act.Kind == KindChangingTask {
			// One level of unwrapping: the pending action still counts.
			act = *act.Next
		}
		switch act.Kind {
		case KindMiningFoo:
			p.Foos++
		case KindMiningBar:
			p.Bars++
		case KindAssemblingFoobar:
			p.Goods += AssembleOdds
			p.Bars += 1 - AssembleOdds
		case KindSellingFoobars:
			p.Money += float64(len(act.Goods))
		}
	}
	return p
}
