// Package compositor defines the boundary between niristick and the window
// compositor. The daemon never talks to the compositor directly; it goes
// through the Registry and Mover interfaces so the transition engine can be
// exercised against in-memory doubles in tests.
//
// Window and workspace identifiers are opaque handles minted by the
// compositor. niristick only ever compares them for equality.
package compositor

import (
	"context"
	"fmt"
)

// WindowID identifies a single window. Only the compositor can interpret it.
type WindowID uint64

// WorkspaceID identifies a single workspace.
type WorkspaceID uint64

// WorkspaceRef addresses a workspace either by numeric id or by symbolic
// name. The reserved stage workspace is always addressed by name.
type WorkspaceRef struct {
	id   WorkspaceID
	name string
}

// RefByID returns a reference to the workspace with the given id.
func RefByID(id WorkspaceID) WorkspaceRef {
	return WorkspaceRef{id: id}
}

// RefByName returns a reference to the named workspace.
func RefByName(name string) WorkspaceRef {
	return WorkspaceRef{name: name}
}

// ByName reports whether the reference is symbolic, returning the name.
func (r WorkspaceRef) ByName() (string, bool) {
	return r.name, r.name != ""
}

// ID returns the numeric workspace id. Only meaningful when ByName reports
// false.
func (r WorkspaceRef) ID() WorkspaceID {
	return r.id
}

func (r WorkspaceRef) String() string {
	if r.name != "" {
		return fmt.Sprintf("workspace %q", r.name)
	}
	return fmt.Sprintf("workspace %d", r.id)
}

// Registry is the read side of the compositor: the authoritative set of
// windows that currently exist, plus focus and workspace state. Every query
// is a full round trip to the compositor.
type Registry interface {
	// Windows returns the ids of all windows the compositor currently knows.
	Windows(ctx context.Context) (map[WindowID]struct{}, error)

	// FocusedWindow returns the id of the currently focused window.
	// Returns an error when no window has focus.
	FocusedWindow(ctx context.Context) (WindowID, error)

	// ActiveWorkspace returns the id of the currently active workspace.
	ActiveWorkspace(ctx context.Context) (WorkspaceID, error)
}

// Mover performs a single window-to-workspace relocation. The move either
// succeeds or fails as a whole from the caller's point of view.
type Mover interface {
	MoveWindow(ctx context.Context, id WindowID, dest WorkspaceRef) error
}
