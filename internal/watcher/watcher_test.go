package watcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calbryant/niristick/internal/compositor"
)

type fakeStream struct {
	events chan compositor.WorkspaceID
	errors chan error
}

func newFakeStream() *fakeStream {
	return &fakeStream{
		events: make(chan compositor.WorkspaceID, 10),
		errors: make(chan error, 10),
	}
}

func (f *fakeStream) Events() <-chan compositor.WorkspaceID { return f.events }
func (f *fakeStream) Errors() <-chan error                  { return f.errors }

type fakeSynchronizer struct {
	synced chan compositor.WorkspaceID
	err    error
}

func (f *fakeSynchronizer) SyncWorkspace(ctx context.Context, ws compositor.WorkspaceID) error {
	f.synced <- ws
	return f.err
}

func TestRun(t *testing.T) {
	t.Run("syncs each activation", func(t *testing.T) {
		stream := newFakeStream()
		sync := &fakeSynchronizer{synced: make(chan compositor.WorkspaceID, 10)}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- Run(ctx, sync, stream) }()

		stream.events <- 3
		stream.events <- 7
		assert.Equal(t, compositor.WorkspaceID(3), <-sync.synced)
		assert.Equal(t, compositor.WorkspaceID(7), <-sync.synced)

		cancel()
		require.NoError(t, <-done)
	})

	t.Run("a failed sync does not stop the loop", func(t *testing.T) {
		stream := newFakeStream()
		sync := &fakeSynchronizer{
			synced: make(chan compositor.WorkspaceID, 10),
			err:    errors.New("niri went away"),
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		done := make(chan error, 1)
		go func() { done <- Run(ctx, sync, stream) }()

		stream.events <- 3
		stream.events <- 4
		assert.Equal(t, compositor.WorkspaceID(3), <-sync.synced)
		assert.Equal(t, compositor.WorkspaceID(4), <-sync.synced)

		cancel()
		require.NoError(t, <-done)
	})

	t.Run("stream errors are logged, not fatal", func(t *testing.T) {
		stream := newFakeStream()
		sync := &fakeSynchronizer{synced: make(chan compositor.WorkspaceID, 10)}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		done := make(chan error, 1)
		go func() { done <- Run(ctx, sync, stream) }()

		stream.errors <- errors.New("short read")
		stream.events <- 5
		assert.Equal(t, compositor.WorkspaceID(5), <-sync.synced)

		cancel()
		require.NoError(t, <-done)
	})

	t.Run("closed stream ends the watcher with an error", func(t *testing.T) {
		stream := newFakeStream()
		sync := &fakeSynchronizer{synced: make(chan compositor.WorkspaceID, 10)}

		done := make(chan error, 1)
		go func() { done <- Run(context.Background(), sync, stream) }()

		close(stream.events)
		close(stream.errors)

		select {
		case err := <-done:
			assert.Error(t, err)
		case <-time.After(time.Second):
			t.Fatal("watcher did not exit on stream close")
		}
	})
}
