package factory

import "github.com/talgya/foobartory/internal/entropy"

// Advance runs the progress engine for one tick: every robot's remaining
// duration drops by one, and any action that reaches zero resolves its
// effect on the world. Robots are processed in collection order, which is
// what makes randomness draws reproducible under a seeded source.
//
// A robot that goes idle here is eligible for dispatch in the same tick.
func (s *State) Advance(src entropy.Source) {
	for i, r := range s.Robots {
		if r.Action.Kind == KindIdle {
			continue
		}
		r.Action.Remaining--
		if r.Action.Remaining > 0 {
			continue
		}
		s.resolve(i, r, src)
	}
}

// resolve fires the completion of the robot's current action. A finished
// ChangingTask unwraps to its successor; if that successor is itself
// already at zero duration, resolution cascades within the same tick
// until a running action or an idle state is reached.
func (s *State) resolve(idx int, r *Robot, src entropy.Source) {
	act := r.Action
	for {
		switch act.Kind {
		case KindChangingTask:
			act = *act.Next
			if act.Remaining > 0 {
				r.Action = act
				return
			}
			// Zero-duration successor: fall through and resolve it now.
			continue

		case KindMiningFoo:
			foo := s.mintFoo()
			s.record(CategoryMining, "robot %d mined foo #%d", idx, foo)
			s.finish(r, KindMiningFoo)
			return

		case KindMiningBar:
			bar := s.mintBar()
			s.record(CategoryMining, "robot %d mined bar #%d", idx, bar)
			s.finish(r, KindMiningBar)
			return

		case KindAssemblingFoobar:
			if src.Float() < AssembleOdds {
				s.Foobars = append(s.Foobars, Foobar{Foo: act.Foo, Bar: act.Bar})
				s.GoodsAssembled++
				s.record(CategoryAssembly, "robot %d assembled foobar (foo #%d, bar #%d)", idx, act.Foo, act.Bar)
			} else {
				// The foo is ruined; the bar survives and goes back.
				s.Bars = append(s.Bars, act.Bar)
				s.AssembliesFailed++
				s.FoosLost++
				s.record(CategoryAssembly, "robot %d botched an assembly, foo #%d lost", idx, act.Foo)
			}
			s.finish(r, KindAssemblingFoobar)
			return

		case KindSellingFoobars:
			s.Money += Money(len(act.Goods))
			s.FoobarsSold += uint64(len(act.Goods))
			s.record(CategorySale, "robot %d sold %d foobars", idx, len(act.Goods))
			s.finish(r, KindSellingFoobars)
			return

		case KindBuyingRobot:
			s.Money -= RobotCost
			s.FoosSpent += uint64(len(act.Foos))
			s.Robots = append(s.Robots, NewRobot())
			s.RobotsBought++
			s.record(CategoryPurchase, "robot %d bought robot %d", idx, len(s.Robots)-1)
			s.finish(r, KindBuyingRobot)
			return

		default:
			// Idle never enters resolve; nothing else exists.
			r.Action = NewIdle(act.Kind)
			return
		}
	}
}

// finish parks the robot in Idle, remembering what it just completed.
func (s *State) finish(r *Robot, kind ActionKind) {
	r.Last = kind
	r.Action = NewIdle(kind)
}
