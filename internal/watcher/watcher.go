// Package watcher runs the workspace-event synchronizer: one long-lived
// loop that waits for workspace activations and asks the engine to relocate
// the sticky windows.
package watcher

import (
	"context"
	"fmt"
	"log"

	"github.com/calbryant/niristick/internal/compositor"
)

// Synchronizer is the slice of the engine the watcher needs.
type Synchronizer interface {
	SyncWorkspace(ctx context.Context, ws compositor.WorkspaceID) error
}

// Stream is a live feed of workspace activations, as produced by
// niri.SubscribeWorkspaceEvents.
type Stream interface {
	Events() <-chan compositor.WorkspaceID
	Errors() <-chan error
}

// Run processes events until the context is cancelled (returns nil) or the
// stream ends (returns an error so the daemon can exit and be restarted by
// supervision; the stream is not restartable in-process). A failed sync is
// logged and the loop keeps going.
func Run(ctx context.Context, sync Synchronizer, stream Stream) error {
	log.Printf("[Watcher] Watching workspace events")
	for {
		select {
		case <-ctx.Done():
			log.Printf("[Watcher] Shutting down...")
			return nil

		case ws, ok := <-stream.Events():
			if !ok {
				return fmt.Errorf("event stream closed")
			}
			log.Printf("[Watcher] Workspace activated: %d", ws)
			if err := sync.SyncWorkspace(ctx, ws); err != nil {
				log.Printf("[Watcher] Sync for workspace %d failed: %v", ws, err)
			}

		case err, ok := <-stream.Errors():
			if !ok {
				return fmt.Errorf("event stream closed")
			}
			log.Printf("[Watcher] Event stream error: %v", err)
		}
	}
}
