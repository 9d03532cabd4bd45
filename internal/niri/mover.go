package niri

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/calbryant/niristick/internal/compositor"
)

// Wire shape of a Niri MoveWindowToWorkspace action. The reference is
// either {"Id": n} or {"Name": "stage"}.
type actionRequest struct {
	Action moveAction `json:"Action"`
}

type moveAction struct {
	MoveWindowToWorkspace moveWindowToWorkspace `json:"MoveWindowToWorkspace"`
}

type moveWindowToWorkspace struct {
	WindowID  uint64             `json:"window_id"`
	Focus     bool               `json:"focus"`
	Reference workspaceReference `json:"reference"`
}

type workspaceReference struct {
	ID   *uint64 `json:"Id,omitempty"`
	Name *string `json:"Name,omitempty"`
}

// MoveWindow asks Niri to relocate a window, without shifting focus to it.
// One socket connection per move: write the action line, read the one-line
// reply. A reply carrying an Err key is a failed move.
func (c *Client) MoveWindow(ctx context.Context, id compositor.WindowID, dest compositor.WorkspaceRef) error {
	req := actionRequest{
		Action: moveAction{
			MoveWindowToWorkspace: moveWindowToWorkspace{
				WindowID:  uint64(id),
				Reference: referenceFor(dest),
			},
		},
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode move action: %w", err)
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	var dialer net.Dialer
	conn, err := dialer.DialContext(dialCtx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("connect to niri socket: %w", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("send move action: %w", err)
	}
	reply, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return fmt.Errorf("read move reply: %w", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(reply, &decoded); err != nil {
		return fmt.Errorf("decode move reply: %w", err)
	}
	if msg, ok := decoded["Err"]; ok {
		return fmt.Errorf("niri rejected move: %s", msg)
	}
	return nil
}

func referenceFor(dest compositor.WorkspaceRef) workspaceReference {
	if name, ok := dest.ByName(); ok {
		return workspaceReference{Name: &name}
	}
	id := uint64(dest.ID())
	return workspaceReference{ID: &id}
}
