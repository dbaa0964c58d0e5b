package factory

import "fmt"

// State is the whole simulated world: the clock, the fleet, the three
// resource pools, the cash balance, and the serial counters. It is
// exclusively owned by the simulation loop; the progress engine and the
// dispatch policy are its only mutators.
//
// Every raw unit and good lives in exactly one place at a time: a pool,
// or committed inside some robot's current action. Failed assemblies and
// robot purchases retire units permanently; the counters below account
// for them so conservation stays checkable.
type State struct {
	Clock   Tick      `json:"clock"`
	Robots  []*Robot  `json:"robots"` // append-only, never shrinks
	Foos    []FooUnit `json:"foos"`
	Bars    []BarUnit `json:"bars"`
	Foobars []Foobar  `json:"foobars"`
	Money   Money     `json:"money"`

	fooSerial uint64
	barSerial uint64

	// Lifetime totals, for the summary line and conservation checks.
	GoodsAssembled   uint64 `json:"goods_assembled"`
	AssembliesFailed uint64 `json:"assemblies_failed"`
	FoobarsSold      uint64 `json:"foobars_sold"`
	RobotsBought     uint64 `json:"robots_bought"`
	FoosLost         uint64 `json:"foos_lost"`  // destroyed by failed assemblies
	FoosSpent        uint64 `json:"foos_spent"` // consumed by robot purchases

	events []Event
}

// NewState returns the starting world: two idle robots, empty pools, no cash.
func NewState() *State {
	return &State{
		Robots: []*Robot{NewRobot(), NewRobot()},
	}
}

// FoosMined returns the total number of foos ever minted.
func (s *State) FoosMined() uint64 { return s.fooSerial }

// BarsMined returns the total number of bars ever minted.
func (s *State) BarsMined() uint64 { return s.barSerial }

// mintFoo assigns the next foo serial and adds the unit to the pool.
func (s *State) mintFoo() FooUnit {
	s.fooSerial++
	foo := FooUnit(s.fooSerial)
	s.Foos = append(s.Foos, foo)
	return foo
}

// mintBar assigns the next bar serial and adds the unit to the pool.
func (s *State) mintBar() BarUnit {
	s.barSerial++
	bar := BarUnit(s.barSerial)
	s.Bars = append(s.Bars, bar)
	return bar
}

// takeFoos pops the n most recently mined foos (LIFO). The caller has
// already checked availability.
func (s *State) takeFoos(n int) []FooUnit {
	taken := make([]FooUnit, 0, n)
	for i := 0; i < n; i++ {
		last := len(s.Foos) - 1
		taken = append(taken, s.Foos[last])
		s.Foos = s.Foos[:last]
	}
	return taken
}

// takeBar pops the most recently mined bar.
func (s *State) takeBar() BarUnit {
	last := len(s.Bars) - 1
	bar := s.Bars[last]
	s.Bars = s.Bars[:last]
	return bar
}

// takeFoobars pops the n most recently assembled goods (LIFO).
func (s *State) takeFoobars(n int) []Foobar {
	taken := make([]Foobar, 0, n)
	for i := 0; i < n; i++ {
		last := len(s.Foobars) - 1
		taken = append(taken, s.Foobars[last])
		s.Foobars = s.Foobars[:last]
	}
	return taken
}

// record appends an event at the current clock.
func (s *State) record(category, format string, args ...any) {
	s.events = append(s.events, Event{
		Tick:        uint64(s.Clock),
		Category:    category,
		Description: fmt.Sprintf(format, args...),
	})
}

// DrainEvents returns the events recorded since the last drain.
func (s *State) DrainEvents() []Event {
	ev := s.events
	s.events = nil
	return ev
}
