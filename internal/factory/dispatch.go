package factory

import (
	"fmt"

	"github.com/talgya/foobartory/internal/entropy"
)

// Dispatch assigns a next action to every robot currently idle, in
// collection order. For each robot the four tiers are tried in strict
// priority order and the first match wins: buy a robot, sell foobars,
// assemble a foobar, mine. Tiers 1–3 gate on current pool sizes and the
// coordination rule; tier 4 always matches and consults the projection
// to pick which resource to mine.
//
// Resources are committed here, at dispatch time. Cash moves only when an
// action resolves.
func (s *State) Dispatch(src entropy.Source) error {
	for i, r := range s.Robots {
		if r.Action.Kind != KindIdle {
			continue
		}
		if err := s.dispatchRobot(i, r, src); err != nil {
			return fmt.Errorf("dispatch robot %d: %w", i, err)
		}
	}
	return nil
}

func (s *State) dispatchRobot(idx int, r *Robot, src entropy.Source) error {
	// Tier 1: buy a robot. Needs cash beyond the price and a foo reserve
	// beyond the six consumed, so mining is never starved outright.
	if s.Money > RobotCost && len(s.Foos) > BuyFooCount && s.claim(idx, KindBuyingRobot) {
		act, err := NewBuyingRobot(s.takeFoos(BuyFooCount))
		if err != nil {
			return err
		}
		s.start(r, act)
		return nil
	}

	// Tier 2: sell a full batch.
	if len(s.Foobars) >= SellBatchMax && s.claim(idx, KindSellingFoobars) {
		act, err := NewSellingFoobars(s.takeFoobars(SellBatchMax))
		if err != nil {
			return err
		}
		s.start(r, act)
		return nil
	}

	// Tier 3: assemble, keeping the same foo reserve as tier 1.
	if len(s.Foos) > BuyFooCount && len(s.Bars) > 0 && s.claim(idx, KindAssemblingFoobar) {
		foo := s.takeFoos(1)[0]
		s.start(r, NewAssemblingFoobar(foo, s.takeBar()))
		return nil
	}

	// Tier 4: mine whichever resource the projection says will run short.
	// Foo is favored until the projected surplus covers a robot purchase.
	p := s.Project()
	if p.Foos-p.Bars < float64(BuyFooCount) {
		s.start(r, NewMiningFoo())
	} else {
		s.start(r, NewMiningBar(src))
	}
	return nil
}

// claim is the peer-coordination rule: a contested action goes to the
// robot that last performed it (sticky preference, dodging the 50-tick
// switch cost), or to anyone when no robot's last completed action was
// that kind. If some other robot was the last to do it, this robot is
// denied and falls through to the next tier.
//
// This is a load-balancing heuristic over the fleet, not a reservation
// system: a plain linear scan, and it can starve a robot of an action in
// pathological fleet compositions. That is accepted behavior.
func (s *State) claim(idx int, kind ActionKind) bool {
	if s.Robots[idx].Last == kind {
		return true
	}
	for j, other := range s.Robots {
		if j != idx && other.Last == kind {
			return false
		}
	}
	return true
}

// start puts the robot to work. Picking up anything other than what the
// robot just finished costs the ChangingTask delay; resuming the same
// kind (or a fresh robot's first job) starts immediately.
func (s *State) start(r *Robot, act Action) {
	if r.Last != KindNone && r.Last != act.Kind {
		r.Action = NewChangingTask(act)
		return
	}
	r.Action = act
}
