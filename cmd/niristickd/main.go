package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/calbryant/niristick/internal/config"
	"github.com/calbryant/niristick/internal/engine"
	"github.com/calbryant/niristick/internal/niri"
	"github.com/calbryant/niristick/internal/server"
	"github.com/calbryant/niristick/internal/store"
	"github.com/calbryant/niristick/internal/watcher"
)

func main() {
	// 1. Load configuration (defaults, optional file, env overrides)
	cfg, err := config.Load(os.Getenv("NIRISTICK_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.NiriSocket == "" {
		fmt.Fprintf(os.Stderr, "Error: NIRI_SOCKET must be set (is niri running?)\n")
		os.Exit(1)
	}

	// 2. Create the compositor client and verify niri is reachable
	client := niri.NewClient(cfg.NiriBinary, cfg.NiriSocket, cfg.CommandTimeout.Std())
	ctx := context.Background()
	if _, err := client.Windows(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: niri not accessible: %v\n", err)
		os.Exit(1)
	}

	// 3. Wire the state store, engine, event subscription and server.
	// All state is in-memory and rebuilt from zero on every start.
	st := store.New()
	eng := engine.New(st, client, client, cfg.StageWorkspace)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	subscription, err := client.SubscribeWorkspaceEvents(runCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to subscribe to niri events: %v\n", err)
		os.Exit(1)
	}
	defer subscription.Close()

	srv := server.New(cfg.SocketPath, eng)

	fmt.Printf("niristickd starting (socket: %s, stage workspace: %q)\n", cfg.SocketPath, cfg.StageWorkspace)

	// 4. Run the request server and the event watcher concurrently. Either
	// one returning an error takes the daemon down; event stream loss is
	// fail-fast and left to process supervision to restart.
	errCh := make(chan error, 2)
	go func() { errCh <- srv.Run(runCtx) }()
	go func() { errCh <- watcher.Run(runCtx, eng, subscription) }()

	// 5. Block until a signal or a component failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		fmt.Printf("Received %v, shutting down\n", sig)
		cancel()
		<-errCh
	case err := <-errCh:
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
