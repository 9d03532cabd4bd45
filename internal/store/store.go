// Package store holds the daemon's only mutable shared state: the set of
// sticky windows and the set of staged windows. A window is never in both
// sets at once.
package store

import (
	"sort"
	"sync"

	"github.com/calbryant/niristick/internal/compositor"
)

// Store owns the sticky and staged sets. One mutex guards both, so every
// cross-set transfer is a single critical section and no reader can observe
// a window in both sets, or a half-applied batch commit. The mutex is only
// held for in-memory set manipulation, never across compositor calls.
type Store struct {
	mu     sync.Mutex
	sticky map[compositor.WindowID]struct{}
	staged map[compositor.WindowID]struct{}
}

// New creates an empty store. The daemon creates exactly one at startup;
// all state is in-memory and lost at process exit.
func New() *Store {
	return &Store{
		sticky: make(map[compositor.WindowID]struct{}),
		staged: make(map[compositor.WindowID]struct{}),
	}
}

// AddSticky inserts id into the sticky set. added reports whether the id was
// newly inserted. Staged windows are left untouched and reported via
// wasStaged; the caller decides how to surface that.
func (s *Store) AddSticky(id compositor.WindowID) (added, wasStaged bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staged[id]; ok {
		return false, true
	}
	if _, ok := s.sticky[id]; ok {
		return false, false
	}
	s.sticky[id] = struct{}{}
	return true, false
}

// RemoveSticky erases id from the sticky set, reporting whether it was
// present.
func (s *Store) RemoveSticky(id compositor.WindowID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sticky[id]; !ok {
		return false
	}
	delete(s.sticky, id)
	return true
}

// ToggleSticky flips sticky membership for id. added reports whether the id
// is sticky after the call. Staged windows are not toggled.
func (s *Store) ToggleSticky(id compositor.WindowID) (added, wasStaged bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staged[id]; ok {
		return false, true
	}
	if _, ok := s.sticky[id]; ok {
		delete(s.sticky, id)
		return false, false
	}
	s.sticky[id] = struct{}{}
	return true, false
}

// RemoveStaged removes id from the staged set, reporting whether it was
// present. The optimistic first step of an unstage transition; on remote
// failure the caller rolls back with PutStaged.
func (s *Store) RemoveStaged(id compositor.WindowID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staged[id]; !ok {
		return false
	}
	delete(s.staged, id)
	return true
}

// PutSticky makes id sticky, withdrawing it from the staged set in the same
// critical section. A mutation that slipped in while the window's move was
// in flight is overridden by the committing transition, so the sets can
// never hold the same id.
func (s *Store) PutSticky(id compositor.WindowID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.staged, id)
	s.sticky[id] = struct{}{}
}

// PutStaged makes id staged, withdrawing it from the sticky set in the same
// critical section.
func (s *Store) PutStaged(id compositor.WindowID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sticky, id)
	s.staged[id] = struct{}{}
}

// IsSticky reports sticky membership.
func (s *Store) IsSticky(id compositor.WindowID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sticky[id]
	return ok
}

// IsStaged reports staged membership.
func (s *Store) IsStaged(id compositor.WindowID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.staged[id]
	return ok
}

// Sticky returns a sorted snapshot of the sticky set.
func (s *Store) Sticky() []compositor.WindowID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedIDs(s.sticky)
}

// Staged returns a sorted snapshot of the staged set.
func (s *Store) Staged() []compositor.WindowID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedIDs(s.staged)
}

// CommitStaged moves every id from sticky to staged in one critical
// section. Used by the bulk stage path to commit the ids whose moves
// succeeded.
func (s *Store) CommitStaged(ids []compositor.WindowID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.sticky, id)
		s.staged[id] = struct{}{}
	}
}

// CommitSticky moves every id from staged to sticky in one critical section.
func (s *Store) CommitSticky(ids []compositor.WindowID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.staged, id)
		s.sticky[id] = struct{}{}
	}
}

// PruneSticky intersects the stored sticky set with the live window set and
// returns a sorted snapshot of the survivors. This is the only place stored
// state is pruned; list operations filter at read time instead.
func (s *Store) PruneSticky(live map[compositor.WindowID]struct{}) []compositor.WindowID {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.sticky {
		if _, ok := live[id]; !ok {
			delete(s.sticky, id)
		}
	}
	return sortedIDs(s.sticky)
}

func sortedIDs(set map[compositor.WindowID]struct{}) []compositor.WindowID {
	ids := make([]compositor.WindowID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
