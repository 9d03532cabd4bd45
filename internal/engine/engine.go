// Package engine implements every user-facing sticky/staged operation as a
// validate, optimistically mutate, move, commit-or-rollback sequence against
// the compositor.
//
// Single-window stage and unstage are all-or-nothing: the window is removed
// from its source set before the compositor move, and re-inserted if the
// move fails, so the sets always mirror the last known-successful placement.
// The bulk variants are deliberately best-effort instead: per-window move
// failures are logged and skipped, and the survivors are committed as one
// batch.
package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/calbryant/niristick/internal/compositor"
	"github.com/calbryant/niristick/internal/store"
)

// Engine serializes all access to the store and talks to the compositor
// through the Registry and Mover boundaries. Safe for concurrent use.
type Engine struct {
	store    *store.Store
	registry compositor.Registry
	mover    compositor.Mover
	stageRef compositor.WorkspaceRef
}

// New creates an engine that parks staged windows on the named workspace.
func New(st *store.Store, registry compositor.Registry, mover compositor.Mover, stageWorkspace string) *Engine {
	return &Engine{
		store:    st,
		registry: registry,
		mover:    mover,
		stageRef: compositor.RefByName(stageWorkspace),
	}
}

// Add marks a window as sticky. Reports whether the id was newly added.
// Fails before any mutation if the window does not exist, and refuses to
// touch staged windows.
func (e *Engine) Add(ctx context.Context, id compositor.WindowID) (bool, error) {
	if err := e.requireWindow(ctx, id); err != nil {
		return false, err
	}
	added, wasStaged := e.store.AddSticky(id)
	if wasStaged {
		return false, ErrWindowStaged
	}
	return added, nil
}

// Remove unmarks a sticky window. Reports whether the id was present.
func (e *Engine) Remove(ctx context.Context, id compositor.WindowID) (bool, error) {
	if err := e.requireWindow(ctx, id); err != nil {
		return false, err
	}
	return e.store.RemoveSticky(id), nil
}

// ToggleActive flips sticky membership for the focused window. Reports
// whether the window is sticky after the call.
func (e *Engine) ToggleActive(ctx context.Context) (bool, error) {
	id, err := e.focusedWindow(ctx)
	if err != nil {
		return false, err
	}
	if err := e.requireWindow(ctx, id); err != nil {
		return false, err
	}
	added, wasStaged := e.store.ToggleSticky(id)
	if wasStaged {
		return false, ErrWindowStaged
	}
	return added, nil
}

// ListSticky returns the sticky windows that still exist in the compositor.
// The stored set is filtered at read time, not pruned; pruning happens on
// workspace sync.
func (e *Engine) ListSticky(ctx context.Context) ([]compositor.WindowID, error) {
	snapshot := e.store.Sticky()
	live, err := e.liveWindows(ctx)
	if err != nil {
		return nil, err
	}
	valid := make([]compositor.WindowID, 0, len(snapshot))
	for _, id := range snapshot {
		if _, ok := live[id]; ok {
			valid = append(valid, id)
		}
	}
	return valid, nil
}

// ListStaged returns the staged set verbatim.
func (e *Engine) ListStaged() []compositor.WindowID {
	return e.store.Staged()
}

// Stage parks a sticky window on the stage workspace. All-or-nothing: if
// the compositor move fails the window is rolled back into the sticky set
// and the staged set is never touched.
func (e *Engine) Stage(ctx context.Context, id compositor.WindowID) error {
	if err := e.requireWindow(ctx, id); err != nil {
		return err
	}
	if !e.store.RemoveSticky(id) {
		return ErrNotSticky
	}
	if err := e.mover.MoveWindow(ctx, id, e.stageRef); err != nil {
		e.store.PutSticky(id)
		return fmt.Errorf("move window %d to %s: %w", id, e.stageRef, err)
	}
	e.store.PutStaged(id)
	return nil
}

// Unstage returns a staged window to the given workspace and back into the
// sticky set. Same rollback discipline as Stage.
func (e *Engine) Unstage(ctx context.Context, id compositor.WindowID, ws compositor.WorkspaceID) error {
	if err := e.requireWindow(ctx, id); err != nil {
		return err
	}
	if !e.store.RemoveStaged(id) {
		return ErrNotStaged
	}
	dest := compositor.RefByID(ws)
	if err := e.mover.MoveWindow(ctx, id, dest); err != nil {
		e.store.PutStaged(id)
		return fmt.Errorf("move window %d to %s: %w", id, dest, err)
	}
	e.store.PutSticky(id)
	return nil
}

// StageActive stages the focused window.
func (e *Engine) StageActive(ctx context.Context) error {
	id, err := e.focusedWindow(ctx)
	if err != nil {
		return err
	}
	return e.Stage(ctx, id)
}

// UnstageActive unstages the focused window to the given workspace.
func (e *Engine) UnstageActive(ctx context.Context, ws compositor.WorkspaceID) error {
	id, err := e.focusedWindow(ctx)
	if err != nil {
		return err
	}
	return e.Unstage(ctx, id, ws)
}

// ToggleStageActive stages the focused window, or unstages it to the
// currently active workspace if it is already staged. The staged-membership
// check is a single store read; the branch is then committed to, so a
// concurrent operation cannot flip the decision mid-flow. Reports whether
// the window is staged after the call.
func (e *Engine) ToggleStageActive(ctx context.Context) (bool, error) {
	id, err := e.focusedWindow(ctx)
	if err != nil {
		return false, err
	}
	if e.store.IsStaged(id) {
		ws, err := e.activeWorkspace(ctx)
		if err != nil {
			return false, err
		}
		if err := e.Unstage(ctx, id, ws); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := e.Stage(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// StageAll stages every sticky window that still exists, best-effort. Ids
// whose move fails are logged and left in the sticky set; the successes are
// committed from sticky to staged as one batch. Returns the number of
// windows staged.
func (e *Engine) StageAll(ctx context.Context) (int, error) {
	snapshot := e.store.Sticky()
	if len(snapshot) == 0 {
		return 0, nil
	}
	live, err := e.liveWindows(ctx)
	if err != nil {
		return 0, err
	}
	var staged []compositor.WindowID
	for _, id := range snapshot {
		if _, ok := live[id]; !ok {
			continue
		}
		if err := e.mover.MoveWindow(ctx, id, e.stageRef); err != nil {
			log.Printf("[Engine] stage all: window %d: %v", id, err)
			continue
		}
		staged = append(staged, id)
	}
	e.store.CommitStaged(staged)
	return len(staged), nil
}

// UnstageAll returns every staged window that still exists to the given
// workspace, best-effort, symmetric with StageAll.
func (e *Engine) UnstageAll(ctx context.Context, ws compositor.WorkspaceID) (int, error) {
	snapshot := e.store.Staged()
	if len(snapshot) == 0 {
		return 0, nil
	}
	live, err := e.liveWindows(ctx)
	if err != nil {
		return 0, err
	}
	dest := compositor.RefByID(ws)
	var unstaged []compositor.WindowID
	for _, id := range snapshot {
		if _, ok := live[id]; !ok {
			continue
		}
		if err := e.mover.MoveWindow(ctx, id, dest); err != nil {
			log.Printf("[Engine] unstage all: window %d: %v", id, err)
			continue
		}
		unstaged = append(unstaged, id)
	}
	e.store.CommitSticky(unstaged)
	return len(unstaged), nil
}

// SyncWorkspace relocates every sticky window to the newly activated
// workspace. The sticky set is first pruned to the windows the compositor
// still knows; a move failure is logged and does not block the rest, and
// the failing window stays sticky for the next sync.
func (e *Engine) SyncWorkspace(ctx context.Context, ws compositor.WorkspaceID) error {
	live, err := e.liveWindows(ctx)
	if err != nil {
		return err
	}
	survivors := e.store.PruneSticky(live)
	dest := compositor.RefByID(ws)
	for _, id := range survivors {
		if err := e.mover.MoveWindow(ctx, id, dest); err != nil {
			log.Printf("[Engine] sync: window %d: %v", id, err)
		}
	}
	return nil
}

// ActiveWorkspace resolves the currently active workspace for callers that
// need an unstage target.
func (e *Engine) ActiveWorkspace(ctx context.Context) (compositor.WorkspaceID, error) {
	return e.activeWorkspace(ctx)
}

func (e *Engine) liveWindows(ctx context.Context) (map[compositor.WindowID]struct{}, error) {
	live, err := e.registry.Windows(ctx)
	if err != nil {
		return nil, fmt.Errorf("query windows: %w", err)
	}
	return live, nil
}

// requireWindow fails with ErrWindowNotFound before any set mutation when
// the id is unknown to the compositor.
func (e *Engine) requireWindow(ctx context.Context, id compositor.WindowID) error {
	live, err := e.liveWindows(ctx)
	if err != nil {
		return err
	}
	if _, ok := live[id]; !ok {
		return ErrWindowNotFound
	}
	return nil
}

func (e *Engine) focusedWindow(ctx context.Context) (compositor.WindowID, error) {
	id, err := e.registry.FocusedWindow(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrActiveWindowUnavailable, err)
	}
	return id, nil
}

func (e *Engine) activeWorkspace(ctx context.Context) (compositor.WorkspaceID, error) {
	ws, err := e.registry.ActiveWorkspace(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrActiveWindowUnavailable, err)
	}
	return ws, nil
}
