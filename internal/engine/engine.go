// Package engine provides the tick-based simulation driver.
package engine

import (
	"log/slog"
	"time"
)

// TickInterval is the real-time length of one tick at Speed 1.0. One tick
// represents 100ms of simulated time.
const TickInterval = 100 * time.Millisecond

// Engine drives the simulation forward until its Done predicate holds.
type Engine struct {
	Tick     uint64        // Ticks driven so far (monotonic, never resets)
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval (default TickInterval)
	Running  bool

	// OnTick runs the world forward by one tick. An error aborts the run.
	OnTick func(tick uint64) error

	// Done is checked after each tick; true stops the loop.
	Done func() bool
}

// NewEngine creates a simulation engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: TickInterval,
	}
}

// Run starts the simulation loop. Blocks until the Done predicate holds,
// OnTick fails, or Stop() is called. Returns the first OnTick error.
func (e *Engine) Run() error {
	e.Running = true
	slog.Info("simulation engine started", "tick", e.Tick, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.Tick++
		if e.OnTick != nil {
			if err := e.OnTick(e.Tick); err != nil {
				e.Running = false
				slog.Error("simulation engine aborted", "tick", e.Tick, "error", err)
				return err
			}
		}
		if e.Done != nil && e.Done() {
			e.Running = false
			break
		}

		// Sleep for the remainder of the tick interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("simulation engine stopped", "tick", e.Tick)
	return nil
}

// Stop halts the simulation loop.
func (e *Engine) Stop() {
	e.Running = false
}

// SimTime renders the simulated time elapsed after a number of ticks,
// at 100ms per tick.
func SimTime(tick uint64) string {
	return (time.Duration(tick) * TickInterval).String()
}
