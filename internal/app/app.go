// Package app wires configuration, logging, the hub, and the HTTP server
// into a runnable process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	server "ringfall/server"
	gamenet "ringfall/server/internal/net"
	"ringfall/server/internal/world"
	"ringfall/server/logging"
	"ringfall/server/logging/sinks"
)

const defaultAddr = ":8080"

// Options is the resolved process configuration.
type Options struct {
	Addr             string
	World            world.Config
	Logging          logging.Config
	SnapshotInterval time.Duration
}

// OptionsFromEnv loads an optional .env file and reads the RINGFALL_*
// overrides on top of the defaults. Unparseable values are reported through
// warn and skipped rather than aborting startup.
func OptionsFromEnv(warn *log.Logger) Options {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	opts := Options{
		Addr:    defaultAddr,
		World:   world.DefaultConfig(),
		Logging: logging.DefaultConfig(),
	}
	if addr := strings.TrimSpace(os.Getenv("SERVER_ADDR")); addr != "" {
		opts.Addr = addr
	}

	envFloat(warn, "RINGFALL_TICK_RATE", &opts.World.TickRate)
	envFloat(warn, "RINGFALL_SAFE_ZONE_RADIUS", &opts.World.SafeZoneRadius)
	envFloat(warn, "RINGFALL_RING_RADIUS", &opts.World.RingRadius)
	envInt(warn, "RINGFALL_MAX_RINGS", &opts.World.MaxRings)
	envFloat(warn, "RINGFALL_ENEMY_SPAWN_RATE", &opts.World.EnemySpawnRate)
	envFloat(warn, "RINGFALL_MAP_RADIUS", &opts.World.MapRadius)
	envInt(warn, "RINGFALL_SCORE_MIN_RING", &opts.World.ScoreMinRing)
	envInt(warn, "RINGFALL_MAX_SCOREBOARD_ENTRIES", &opts.World.MaxScoreboardEntries)
	if seed := strings.TrimSpace(os.Getenv("RINGFALL_SEED")); seed != "" {
		opts.World.Seed = seed
	}

	var snapshotMillis int
	envInt(warn, "RINGFALL_SNAPSHOT_INTERVAL_MS", &snapshotMillis)
	if snapshotMillis > 0 {
		opts.SnapshotInterval = time.Duration(snapshotMillis) * time.Millisecond
	}

	if raw := strings.TrimSpace(os.Getenv("RINGFALL_LOG_SINKS")); raw != "" {
		names := strings.Split(raw, ",")
		enabled := make([]string, 0, len(names))
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				enabled = append(enabled, name)
			}
		}
		if len(enabled) > 0 {
			opts.Logging.EnabledSinks = enabled
		}
	}
	if path := strings.TrimSpace(os.Getenv("RINGFALL_LOG_JSON_PATH")); path != "" {
		opts.Logging.JSON.FilePath = path
	}
	return opts
}

func envFloat(warn *log.Logger, key string, dst *float64) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if warn != nil {
			warn.Printf("ignoring %s=%q: %v", key, raw, err)
		}
		return
	}
	*dst = value
}

func envInt(warn *log.Logger, key string, dst *int) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		if warn != nil {
			warn.Printf("ignoring %s=%q: %v", key, raw, err)
		}
		return
	}
	*dst = value
}

// Run starts the process and blocks until ctx is cancelled or the server
// fails. The simulation loop and the HTTP listener run for the whole
// lifetime; there is no degraded mode with one of them down.
func Run(ctx context.Context) error {
	warn := log.New(os.Stderr, "ringfall: ", log.LstdFlags)
	opts := OptionsFromEnv(warn)

	sinkSet := make(map[string]logging.Sink)
	if opts.Logging.HasSink("console") {
		sinkSet["console"] = sinks.NewConsole(os.Stdout, opts.Logging.Console)
	}
	var jsonFile *os.File
	if opts.Logging.HasSink("json") && opts.Logging.JSON.FilePath != "" {
		f, err := os.OpenFile(opts.Logging.JSON.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", opts.Logging.JSON.FilePath, err)
		}
		jsonFile = f
		sinkSet["json"] = sinks.NewJSON(f, opts.Logging.JSON.FlushInterval)
	}

	router, err := logging.NewRouter(opts.Logging, logging.SystemClock{}, warn, sinkSet)
	if err != nil {
		return fmt.Errorf("logging router: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		router.Close(closeCtx)
		if jsonFile != nil {
			jsonFile.Close()
		}
	}()

	hub := server.NewHub(server.HubConfig{
		World:            opts.World,
		SnapshotInterval: opts.SnapshotInterval,
		Publisher:        router,
	})

	stop := make(chan struct{})
	defer close(stop)
	go hub.RunSimulation(stop)

	srv := &http.Server{
		Addr:    opts.Addr,
		Handler: gamenet.NewHandler(hub, router),
	}

	warn.Printf("listening on %s (tick rate %.0f/s, seed %q)",
		opts.Addr, hub.WorldConfig().TickRate, hub.WorldConfig().Seed)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}
