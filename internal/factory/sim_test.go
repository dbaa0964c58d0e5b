package factory

import (
	"reflect"
	"testing"

	"github.com/talgya/foobartory/internal/entropy"
)

func TestTwoFreshRobotsMineFooForTenTicks(t *testing.T) {
	s := NewState()
	src := entropy.NewSeeded(1)

	// Initial dispatch: empty world, projected diff 0 < 6, so both mine
	// foo — directly, with no task-switch for a first job.
	if err := s.Dispatch(src); err != nil {
		t.Fatal(err)
	}
	for i, r := range s.Robots {
		if r.Action.Kind != KindMiningFoo || r.Action.Remaining != MineFooTicks {
			t.Fatalf("robot %d: expected mining_foo for %d ticks, got %v/%d",
				i, MineFooTicks, r.Action.Kind, r.Action.Remaining)
		}
	}

	for tick := 0; tick < MineFooTicks; tick++ {
		s.Advance(src)
	}

	if len(s.Foos) != 2 {
		t.Fatalf("expected exactly 2 foos after 10 ticks, got %d", len(s.Foos))
	}
	for i, r := range s.Robots {
		if r.Action.Kind != KindIdle || r.Action.Prev != KindMiningFoo {
			t.Fatalf("robot %d: expected idle with prev=mining_foo, got %v prev=%v",
				i, r.Action.Kind, r.Action.Prev)
		}
	}
}

func TestRobotsIdleThisTickAreDispatchedThisTick(t *testing.T) {
	sim := NewSimulation(entropy.NewSeeded(1))
	sim.state.Robots[0].Action = Action{Kind: KindMiningFoo, Remaining: 1}
	sim.state.Robots[1].Action = Action{Kind: KindMiningFoo, Remaining: 5}

	if _, err := sim.Step(); err != nil {
		t.Fatal(err)
	}

	// Robot 0 completed and must already be on its next job, not idle
	// until the next tick.
	if sim.state.Robots[0].Action.Kind == KindIdle {
		t.Fatal("robot idled across the dispatch pass")
	}
}

// committed tallies the raw units and goods held inside in-flight actions.
func committed(s *State) (foos, bars, goods int) {
	for _, r := range s.Robots {
		act := r.Action
		if act.Kind == KindChangingTask {
			act = *act.Next
		}
		switch act.Kind {
		case KindAssemblingFoobar:
			foos++
			bars++
		case KindSellingFoobars:
			goods += len(act.Goods)
		case KindBuyingRobot:
			foos += len(act.Foos)
		}
	}
	return
}

// checkConservation verifies that nothing leaks and nothing is double
// spent: every unit ever minted is pooled, committed, inside a good, or
// accounted as permanently consumed.
func checkConservation(t *testing.T, s *State) {
	t.Helper()
	cFoos, cBars, cGoods := committed(s)

	foos := uint64(len(s.Foos)+cFoos) + s.GoodsAssembled + s.FoosLost + s.FoosSpent
	if s.FoosMined() != foos {
		t.Fatalf("foo leak at tick %d: minted %d, accounted %d", s.Clock, s.FoosMined(), foos)
	}

	bars := uint64(len(s.Bars)+cBars) + s.GoodsAssembled
	if s.BarsMined() != bars {
		t.Fatalf("bar leak at tick %d: minted %d, accounted %d", s.Clock, s.BarsMined(), bars)
	}

	goods := uint64(len(s.Foobars)+cGoods) + s.FoobarsSold
	if s.GoodsAssembled != goods {
		t.Fatalf("good leak at tick %d: assembled %d, accounted %d", s.Clock, s.GoodsAssembled, goods)
	}

	// Sales credit 1:1, purchases debit the fixed cost; nothing else
	// touches cash.
	if int64(s.Money) != int64(s.FoobarsSold)-int64(s.RobotsBought)*int64(RobotCost) {
		t.Fatalf("cash drift at tick %d: money=%d sold=%d bought=%d",
			s.Clock, s.Money, s.FoobarsSold, s.RobotsBought)
	}
}

func TestFullRunConservesUnitsAndTerminates(t *testing.T) {
	sim := NewSimulation(entropy.NewSeeded(42))

	const maxTicks = 500000
	ticks := 0
	for ; ticks < maxTicks && !sim.Done(); ticks++ {
		if _, err := sim.Step(); err != nil {
			t.Fatal(err)
		}
		if ticks%1000 == 0 {
			checkConservation(t, sim.state)
		}
	}
	if !sim.Done() {
		t.Fatalf("fleet did not reach %d robots within %d ticks (fleet=%d)",
			TargetFleet, maxTicks, len(sim.state.Robots))
	}
	checkConservation(t, sim.state)

	if len(sim.state.Robots) < TargetFleet {
		t.Fatalf("done with fleet %d", len(sim.state.Robots))
	}
	if uint64(sim.state.Clock) != uint64(ticks) {
		t.Fatalf("clock %d out of step with loop %d", sim.state.Clock, ticks)
	}
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	run := func() Status {
		sim := NewSimulation(entropy.NewSeeded(7))
		for i := 0; i < 20000 && !sim.Done(); i++ {
			if _, err := sim.Step(); err != nil {
				t.Fatal(err)
			}
		}
		return sim.Snapshot(true)
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestSnapshotMatchesState(t *testing.T) {
	sim := NewSimulation(entropy.NewSeeded(3))
	for i := 0; i < 500; i++ {
		if _, err := sim.Step(); err != nil {
			t.Fatal(err)
		}
	}

	st := sim.Snapshot(true)
	if st.Robots != len(sim.state.Robots) {
		t.Fatalf("fleet size mismatch: %d vs %d", st.Robots, len(sim.state.Robots))
	}
	if st.Tick != uint64(sim.state.Clock) {
		t.Fatalf("tick mismatch: %d vs %d", st.Tick, sim.state.Clock)
	}
	if len(st.Fleet) != st.Robots {
		t.Fatalf("fleet breakdown has %d entries for %d robots", len(st.Fleet), st.Robots)
	}
}

func TestStepEmitsEventsForCompletions(t *testing.T) {
	sim := NewSimulation(entropy.NewSeeded(1))

	var mined int
	for i := 0; i < MineFooTicks+1; i++ {
		events, err := sim.Step()
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range events {
			if e.Category == CategoryMining {
				mined++
			}
		}
	}
	if mined != 2 {
		t.Fatalf("expected 2 mining events from the first cycle, got %d", mined)
	}
}
