package factory

import (
	"sync"

	"github.com/talgya/foobartory/internal/entropy"
)

// Simulation wraps State with the per-tick control flow and a lock so the
// observation API can read consistent snapshots while the engine runs.
// The engine goroutine is the only writer.
type Simulation struct {
	mu    sync.RWMutex
	state *State
	src   entropy.Source
}

// NewSimulation builds a simulation over a fresh starting state.
func NewSimulation(src entropy.Source) *Simulation {
	return &Simulation{state: NewState(), src: src}
}

// Step advances the world by one tick: progress first, so completions
// (including cascaded zero-duration transitions) are fully resolved
// before dispatch observes anything, then dispatch over the now-idle
// robots, then the clock. Returns the tick's events for logging and
// storage.
//
// A dispatch error means the policy violated an action constructor's
// contract; callers should treat it as fatal.
func (sim *Simulation) Step() ([]Event, error) {
	sim.mu.Lock()
	defer sim.mu.Unlock()

	sim.state.Advance(sim.src)
	if err := sim.state.Dispatch(sim.src); err != nil {
		return nil, err
	}
	events := sim.state.DrainEvents()
	sim.state.Clock++
	return events, nil
}

// Done reports whether the fleet has reached its target size.
func (sim *Simulation) Done() bool {
	sim.mu.RLock()
	defer sim.mu.RUnlock()
	return len(sim.state.Robots) >= TargetFleet
}

// Status is a point-in-time summary of the world for the API and the
// final report.
type Status struct {
	Tick             uint64        `json:"tick"`
	Robots           int           `json:"robots"`
	Foos             int           `json:"foos"`
	Bars             int           `json:"bars"`
	Foobars          int           `json:"foobars"`
	Money            int64         `json:"money"`
	FoosMined        uint64        `json:"foos_mined"`
	BarsMined        uint64        `json:"bars_mined"`
	GoodsAssembled   uint64        `json:"goods_assembled"`
	AssembliesFailed uint64        `json:"assemblies_failed"`
	FoobarsSold      uint64        `json:"foobars_sold"`
	RobotsBought     uint64        `json:"robots_bought"`
	Fleet            []RobotStatus `json:"fleet,omitempty"`
}

// RobotStatus describes one robot's current activity.
type RobotStatus struct {
	Index     int    `json:"index"`
	Action    string `json:"action"`
	Pending   string `json:"pending,omitempty"` // set while changing task
	Remaining int    `json:"remaining"`
	Last      string `json:"last,omitempty"`
}

// Snapshot returns the current status. withFleet includes the per-robot
// breakdown, which the bulk status endpoint leaves out to keep payloads
// small.
func (sim *Simulation) Snapshot(withFleet bool) Status {
	sim.mu.RLock()
	defer sim.mu.RUnlock()

	s := sim.state
	st := Status{
		Tick:             uint64(s.Clock),
		Robots:           len(s.Robots),
		Foos:             len(s.Foos),
		Bars:             len(s.Bars),
		Foobars:          len(s.Foobars),
		Money:            int64(s.Money),
		FoosMined:        s.FoosMined(),
		BarsMined:        s.BarsMined(),
		GoodsAssembled:   s.GoodsAssembled,
		AssembliesFailed: s.AssembliesFailed,
		FoobarsSold:      s.FoobarsSold,
		RobotsBought:     s.RobotsBought,
	}
	if !withFleet {
		return st
	}

	st.Fleet = make([]RobotStatus, len(s.Robots))
	for i, r := range s.Robots {
		rs := RobotStatus{
			Index:     i,
			Action:    r.Action.Kind.String(),
			Remaining: r.Action.Remaining,
		}
		if r.Action.Kind == KindChangingTask {
			rs.Pending = r.Action.Next.Kind.String()
		}
		if r.Last != KindNone {
			rs.Last = r.Last.String()
		}
		st.Fleet[i] = rs
	}
	return st
}
