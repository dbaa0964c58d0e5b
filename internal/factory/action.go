// Package factory implements the foobartory production simulation: a fleet
// of robots mines foo and bar, assembles them into foobars, sells foobars
// for cash, and spends cash plus foo on new robots. The simulation advances
// in fixed 100ms ticks until the fleet reaches TargetFleet.
package factory

import (
	"fmt"
	"math"

	"github.com/talgya/foobartory/internal/entropy"
)

// ActionKind enumerates everything a robot can be doing.
type ActionKind uint8

const (
	KindNone ActionKind = iota // no history (freshly built robot)
	KindIdle
	KindChangingTask
	KindMiningFoo
	KindMiningBar
	KindAssemblingFoobar
	KindSellingFoobars
	KindBuyingRobot
)

// String returns a short human-readable name for the event log and API.
func (k ActionKind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindChangingTask:
		return "changing_task"
	case KindMiningFoo:
		return "mining_foo"
	case KindMiningBar:
		return "mining_bar"
	case KindAssemblingFoobar:
		return "assembling_foobar"
	case KindSellingFoobars:
		return "selling_foobars"
	case KindBuyingRobot:
		return "buying_robot"
	default:
		return "none"
	}
}

// Fixed action durations, in ticks (1 tick = 100ms).
const (
	ChangeTaskTicks = 50  // task-switch penalty
	MineFooTicks    = 10
	MineBarMinTicks = 5   // mining bar takes round(draw*15)+5, i.e. 5–20 ticks
	AssembleTicks   = 20
	SellTicks       = 100
	BuyTicks        = 100
)

// Economic constants.
const (
	RobotCost    Money = 3 // cash debited when a robot purchase resolves
	BuyFooCount        = 6 // foos consumed by a robot purchase
	SellBatchMax       = 5 // foobars sold per trip
	AssembleOdds       = 0.6
	TargetFleet        = 30
)

// Action is a tagged variant. Kind selects which payload fields are
// meaningful; Remaining is uniform across all variants and is driven to
// exactly 0 by the progress engine before any completion fires.
type Action struct {
	Kind      ActionKind `json:"kind"`
	Remaining int        `json:"remaining"`

	// Idle: the kind the robot last completed (KindNone for a new robot).
	Prev ActionKind `json:"prev,omitempty"`

	// ChangingTask: the action that begins once the switch delay elapses.
	Next *Action `json:"next,omitempty"`

	// AssemblingFoobar: the committed raw units.
	Foo FooUnit `json:"foo,omitempty"`
	Bar BarUnit `json:"bar,omitempty"`

	// SellingFoobars: the committed goods, at most SellBatchMax.
	Goods []Foobar `json:"goods,omitempty"`

	// BuyingRobot: the committed foos, exactly BuyFooCount.
	Foos []FooUnit `json:"foos,omitempty"`
}

// NewIdle returns the rest state, remembering what the robot just finished.
func NewIdle(prev ActionKind) Action {
	return Action{Kind: KindIdle, Prev: prev}
}

// NewChangingTask wraps next behind the fixed task-switch delay.
func NewChangingTask(next Action) Action {
	n := next
	return Action{Kind: KindChangingTask, Remaining: ChangeTaskTicks, Next: &n}
}

// NewMiningFoo returns a foo-mining action with its fixed duration.
func NewMiningFoo() Action {
	return Action{Kind: KindMiningFoo, Remaining: MineFooTicks}
}

// NewMiningBar returns a bar-mining action. Bar veins are uneven: the
// duration is drawn once at creation, uniform over 5–20 ticks.
func NewMiningBar(src entropy.Source) Action {
	ticks := int(math.Round(src.Float()*15)) + MineBarMinTicks
	return Action{Kind: KindMiningBar, Remaining: ticks}
}

// NewAssemblingFoobar returns an assembly action holding the two committed
// raw units. Success is rolled at completion, not here.
func NewAssemblingFoobar(foo FooUnit, bar BarUnit) Action {
	return Action{Kind: KindAssemblingFoobar, Remaining: AssembleTicks, Foo: foo, Bar: bar}
}

// NewSellingFoobars returns a sale action holding the committed goods.
// The dispatch policy never offers more than SellBatchMax; a larger batch
// is a programming error, not a runtime condition.
func NewSellingFoobars(goods []Foobar) (Action, error) {
	if len(goods) > SellBatchMax {
		return Action{}, fmt.Errorf("selling %d foobars exceeds batch limit %d", len(goods), SellBatchMax)
	}
	return Action{Kind: KindSellingFoobars, Remaining: SellTicks, Goods: goods}, nil
}

// NewBuyingRobot returns a purchase action holding the committed foos.
// The foos are consumed at dispatch time; the cash is debited when the
// purchase resolves.
func NewBuyingRobot(foos []FooUnit) (Action, error) {
	if len(foos) != BuyFooCount {
		return Action{}, fmt.Errorf("buying a robot requires exactly %d foos, got %d", BuyFooCount, len(foos))
	}
	return Action{Kind: KindBuyingRobot, Remaining: BuyTicks, Foos: foos}, nil
}
