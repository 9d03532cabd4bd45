package niri

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"

	"github.com/calbryant/niristick/internal/compositor"
)

// Subscription delivers workspace-activation events from Niri's event
// stream. Events not identifiable as a workspace activation with a numeric
// id are dropped at decode time. The stream is infinite and not
// restartable: when the transport is lost both channels close and the
// consumer is expected to let the process die so supervision restarts it.
type Subscription struct {
	events chan compositor.WorkspaceID
	errors chan error
	cancel context.CancelFunc
}

// Events returns the channel of activated workspace ids. Closed when the
// subscription ends.
func (s *Subscription) Events() <-chan compositor.WorkspaceID {
	return s.events
}

// Errors returns the channel of transport errors. Closed when the
// subscription ends.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close terminates the subscription and releases the socket.
func (s *Subscription) Close() {
	s.cancel()
}

// SubscribeWorkspaceEvents connects to the Niri socket, requests the event
// stream, and pumps workspace activations until the context is cancelled,
// Close is called, or the compositor goes away.
func (c *Client) SubscribeWorkspaceEvents(ctx context.Context) (*Subscription, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to niri socket: %w", err)
	}
	if _, err := conn.Write([]byte("\"EventStream\"\n")); err != nil {
		conn.Close()
		return nil, fmt.Errorf("request event stream: %w", err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	events := make(chan compositor.WorkspaceID, 10)
	errs := make(chan error, 1)

	// Unblock the scanner on cancellation.
	go func() {
		<-subCtx.Done()
		conn.Close()
	}()

	go func() {
		defer close(events)
		defer close(errs)

		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			ws, ok := decodeWorkspaceActivation(scanner.Bytes())
			if !ok {
				continue
			}
			select {
			case events <- ws:
			case <-subCtx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil && subCtx.Err() == nil {
			errs <- fmt.Errorf("read event stream: %w", err)
		}
	}()

	return &Subscription{events: events, errors: errs, cancel: cancel}, nil
}

// decodeWorkspaceActivation extracts the workspace id from a
// WorkspaceActivated event line. Reports false for every other line,
// including malformed JSON and the stream handshake reply.
func decodeWorkspaceActivation(line []byte) (compositor.WorkspaceID, bool) {
	var event struct {
		WorkspaceActivated *struct {
			ID *uint64 `json:"id"`
		} `json:"WorkspaceActivated"`
	}
	if err := json.Unmarshal(line, &event); err != nil {
		return 0, false
	}
	if event.WorkspaceActivated == nil || event.WorkspaceActivated.ID == nil {
		return 0, false
	}
	return compositor.WorkspaceID(*event.WorkspaceActivated.ID), true
}
