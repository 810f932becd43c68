// Command server wires engineconfig, one default engine.Engine hosted
// by session.Host, and transport's input/management HTTP surface into
// a runnable binary, mirroring the reference main.go's wiring order:
// load config, start the actor engine, spawn the initial actor, mount
// handlers, listen, shut down gracefully on exit.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/websocket"

	"github.com/tickforge/engine/engine"
	"github.com/tickforge/engine/engineconfig"
	"github.com/tickforge/engine/session"
	"github.com/tickforge/engine/transport"
)

const (
	defaultPort      = "8080"
	defaultSessionID = session.ID("default")
)

func main() {
	log := slog.Default()

	cfg := engineconfig.DefaultConfig()
	if path := os.Getenv("ENGINE_CONFIG"); path != "" {
		loaded, err := engineconfig.Load(path)
		if err != nil {
			log.Error("failed to load engine config, using defaults", "path", path, "error", err)
		} else {
			cfg = loaded
			log.Info("engine config loaded", "path", path)
		}
	}

	host := session.NewHost()
	sess := host.Spawn(defaultSessionID, engine.Options{
		Logger:        log,
		PruneEachTick: cfg.PruneEachTick,
	})

	startCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := sess.Start(startCtx); err != nil {
		cancel()
		log.Error("failed to start default session", "error", err)
		os.Exit(1)
	}
	cancel()

	inputServer := transport.NewInputServer(host, log)
	apiServer := transport.NewAPIServer(host, log, cfg.TickPeriod)

	mux := http.NewServeMux()
	mux.Handle("/subscribe", websocket.Handler(inputServer.Handler(defaultSessionID)))
	mux.Handle("/", apiServer.Router())

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	addr := ":" + port

	log.Info("server starting", "addr", addr, "tick_period", cfg.TickPeriod)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Info("server stopped", "error", err)
	}

	log.Info("shutting down session host")
	host.Shutdown(5 * time.Second)
}
