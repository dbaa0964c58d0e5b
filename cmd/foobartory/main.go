// Command foobartory runs the robot factory simulation: two robots mine
// foo and bar, assemble and sell foobars, and reinvest in new robots
// until the fleet reaches thirty.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/foobartory/internal/api"
	"github.com/talgya/foobartory/internal/config"
	"github.com/talgya/foobartory/internal/engine"
	"github.com/talgya/foobartory/internal/entropy"
	"github.com/talgya/foobartory/internal/factory"
	"github.com/talgya/foobartory/internal/persistence"
)

func main() {
	configPath := flag.String("config", "foobartory.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Foobartory — Robot Factory Simulation")

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	// ── Randomness source ─────────────────────────────────────────────
	var src entropy.Source
	switch {
	case cfg.Seed != 0:
		src = entropy.NewSeeded(cfg.Seed)
		slog.Info("entropy source: seeded", "seed", cfg.Seed)
	case cfg.RandomOrgKey != "":
		src = entropy.NewClient(cfg.RandomOrgKey)
		slog.Info("entropy source: random.org")
	default:
		src = entropy.Crypto{}
		slog.Info("entropy source: crypto/rand")
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	runID, err := db.CreateRun(cfg.Seed)
	if err != nil {
		slog.Error("failed to register run", "error", err)
		os.Exit(1)
	}
	slog.Info("database opened", "path", cfg.DBPath, "run_id", runID)

	// ── Simulation ────────────────────────────────────────────────────
	sim := factory.NewSimulation(src)

	eng := engine.NewEngine()
	eng.Speed = cfg.Speed
	eng.Done = sim.Done

	// Wire the tick callback — log every event, flush to the database in
	// batches.
	var pending []factory.Event
	eng.OnTick = func(tick uint64) error {
		events, err := sim.Step()
		if err != nil {
			return err
		}
		for _, e := range events {
			slog.Info(e.Description, "tick", e.Tick, "category", e.Category)
		}
		pending = append(pending, events...)
		if tick%uint64(cfg.FlushEveryTicks) == 0 {
			if err := db.SaveEvents(runID, pending); err != nil {
				slog.Error("event flush failed", "error", err)
			} else {
				pending = pending[:0]
			}
		}
		return nil
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.AdminKey == "" {
		slog.Warn("admin key not set — admin POST endpoints will be disabled")
	}
	apiServer := &api.Server{
		Sim:      sim,
		Eng:      eng,
		DB:       db,
		RunID:    runID,
		Port:     cfg.APIPort,
		AdminKey: cfg.AdminKey,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\nThe factory is open: 2 robots, empty stocks, not a cent.\n")
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.APIPort)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	runErr := eng.Run()

	// ── Final flush and summary ──────────────────────────────────────
	st := sim.Snapshot(false)
	if err := db.SaveEvents(runID, pending); err != nil {
		slog.Error("final event flush failed", "error", err)
	}
	if err := db.FinishRun(runID, st.Tick, st.Robots); err != nil {
		slog.Error("failed to finalize run", "error", err)
	}

	if runErr != nil {
		slog.Error("simulation failed", "error", runErr)
		os.Exit(1)
	}

	slog.Info("run complete",
		"fleet", st.Robots,
		"ticks", st.Tick,
		"sim_time", engine.SimTime(st.Tick),
		"money", st.Money,
		"foos_mined", st.FoosMined,
		"bars_mined", st.BarsMined,
		"foobars_sold", st.FoobarsSold,
	)
	fmt.Printf("Fleet reached %d robots after %s ticks (%s of factory time).\n",
		st.Robots, humanize.Comma(int64(st.Tick)), engine.SimTime(st.Tick))
}
