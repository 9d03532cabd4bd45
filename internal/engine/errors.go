package engine

import "errors"

// Sentinel errors for the transition engine. Callers match them with
// errors.Is; the wire layer turns them into Error: response lines.
var (
	// ErrWindowNotFound means the referenced window id is absent from the
	// live compositor registry.
	ErrWindowNotFound = errors.New("window not found in niri")

	// ErrNotSticky means a stage was attempted on a window that is not in
	// the sticky set.
	ErrNotSticky = errors.New("window is not sticky, cannot stage")

	// ErrNotStaged means an unstage was attempted on a window that is not
	// in the staged set.
	ErrNotStaged = errors.New("window is not staged")

	// ErrWindowStaged means a sticky-set mutation was attempted on a staged
	// window. Staged windows must be unstaged first; anything else would let
	// a window be sticky and staged at the same time.
	ErrWindowStaged = errors.New("window is staged, unstage it first")

	// ErrActiveWindowUnavailable means the focused window or active
	// workspace could not be resolved.
	ErrActiveWindowUnavailable = errors.New("no active window or workspace")
)
