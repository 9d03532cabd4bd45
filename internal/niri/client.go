// Package niri implements the compositor boundary against a running Niri
// instance. Read queries shell out to `niri msg --json`; actions and the
// event stream go over the unix socket Niri advertises in $NIRI_SOCKET.
package niri

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/calbryant/niristick/internal/compositor"
)

// Client talks to one Niri instance. It implements compositor.Registry and
// compositor.Mover. Every call is bounded by the configured timeout; a
// compositor hang surfaces as a deadline error instead of stalling the
// calling request forever.
type Client struct {
	binary     string
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client. binary is the niri executable to shell out
// to, socketPath the value of $NIRI_SOCKET.
func NewClient(binary, socketPath string, timeout time.Duration) *Client {
	return &Client{binary: binary, socketPath: socketPath, timeout: timeout}
}

// Windows returns the ids of all windows Niri currently knows.
func (c *Client) Windows(ctx context.Context) (map[compositor.WindowID]struct{}, error) {
	out, err := c.msg(ctx, "windows")
	if err != nil {
		return nil, err
	}
	return parseWindowIDs(out)
}

// FocusedWindow returns the id of the focused window. Niri reports null
// when nothing has focus; that surfaces as an error.
func (c *Client) FocusedWindow(ctx context.Context) (compositor.WindowID, error) {
	out, err := c.msg(ctx, "focused-window")
	if err != nil {
		return 0, err
	}
	return parseFocusedWindow(out)
}

// ActiveWorkspace returns the id of the workspace Niri marks is_active.
func (c *Client) ActiveWorkspace(ctx context.Context) (compositor.WorkspaceID, error) {
	out, err := c.msg(ctx, "workspaces")
	if err != nil {
		return 0, err
	}
	return parseActiveWorkspace(out)
}

func (c *Client) msg(ctx context.Context, topic string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, c.binary, "msg", "--json", topic).Output()
	if err != nil {
		return nil, fmt.Errorf("niri msg %s: %w", topic, err)
	}
	return out, nil
}

func parseWindowIDs(data []byte) (map[compositor.WindowID]struct{}, error) {
	var windows []struct {
		ID uint64 `json:"id"`
	}
	if err := json.Unmarshal(data, &windows); err != nil {
		return nil, fmt.Errorf("decode windows: %w", err)
	}
	ids := make(map[compositor.WindowID]struct{}, len(windows))
	for _, w := range windows {
		ids[compositor.WindowID(w.ID)] = struct{}{}
	}
	return ids, nil
}

func parseFocusedWindow(data []byte) (compositor.WindowID, error) {
	var window *struct {
		ID uint64 `json:"id"`
	}
	if err := json.Unmarshal(data, &window); err != nil {
		return 0, fmt.Errorf("decode focused window: %w", err)
	}
	if window == nil {
		return 0, fmt.Errorf("no window is focused")
	}
	return compositor.WindowID(window.ID), nil
}

func parseActiveWorkspace(data []byte) (compositor.WorkspaceID, error) {
	var workspaces []struct {
		ID       uint64 `json:"id"`
		IsActive bool   `json:"is_active"`
	}
	if err := json.Unmarshal(data, &workspaces); err != nil {
		return 0, fmt.Errorf("decode workspaces: %w", err)
	}
	for _, ws := range workspaces {
		if ws.IsActive {
			return compositor.WorkspaceID(ws.ID), nil
		}
	}
	return 0, fmt.Errorf("no active workspace")
}
