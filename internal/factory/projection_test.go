package factory

import (
	"math"
	"testing"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestProjectionCountsInFlightWork(t *testing.T) {
	s := NewState()
	mintFoos(s, 2)
	mintBars(s, 1)
	s.Money = 1

	miner := NewRobot()
	miner.Action = NewMiningFoo()

	// A pending bar miner still counts: projection unwraps one level of
	// task switch.
	switcher := NewRobot()
	switcher.Action = NewChangingTask(Action{Kind: KindMiningBar, Remaining: 12})

	assembler := NewRobot()
	assembler.Action = NewAssemblingFoobar(9, 9)

	seller := NewRobot()
	seller.Action = mustSell([]Foobar{{Foo: 1, Bar: 1}, {Foo: 2, Bar: 2}, {Foo: 3, Bar: 3}})

	s.Robots = []*Robot{miner, switcher, assembler, seller}

	p := s.Project()
	if !almost(p.Foos, 3) {
		t.Errorf("projected foos: expected 3, got %v", p.Foos)
	}
	if !almost(p.Bars, 2.4) { // 1 pooled + 1 pending miner + 0.4 expected recovery
		t.Errorf("projected bars: expected 2.4, got %v", p.Bars)
	}
	if !almost(p.Goods, 0.6) {
		t.Errorf("projected goods: expected 0.6, got %v", p.Goods)
	}
	if !almost(p.Money, 4) { // 1 cash + 3 expected from the sale
		t.Errorf("projected money: expected 4, got %v", p.Money)
	}
}

func TestProjectionIgnoresIdleRobots(t *testing.T) {
	s := NewState()
	mintFoos(s, 4)

	p := s.Project()
	if !almost(p.Foos, 4) || !almost(p.Bars, 0) || !almost(p.Goods, 0) {
		t.Fatalf("idle fleet should project pools as-is, got %+v", p)
	}
}

func TestProjectionIsReadOnly(t *testing.T) {
	s := NewState()
	mintFoos(s, 3)
	mintBars(s, 2)
	s.Robots[0].Action = NewMiningFoo()

	before := len(s.Foos) + len(s.Bars) + len(s.Foobars)
	_ = s.Project()
	_ = s.Project()
	after := len(s.Foos) + len(s.Bars) + len(s.Foobars)
	if before != after {
		t.Fatal("projection mutated the pools")
	}
}
