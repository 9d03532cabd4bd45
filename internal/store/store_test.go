package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calbryant/niristick/internal/compositor"
)

// assertDisjoint verifies the core invariant: no id in both sets.
func assertDisjoint(t *testing.T, s *Store) {
	t.Helper()
	staged := make(map[compositor.WindowID]struct{})
	for _, id := range s.Staged() {
		staged[id] = struct{}{}
	}
	for _, id := range s.Sticky() {
		_, both := staged[id]
		assert.False(t, both, "window %d is in both sets", id)
	}
}

func TestAddSticky(t *testing.T) {
	s := New()

	t.Run("first add is new", func(t *testing.T) {
		added, wasStaged := s.AddSticky(5)
		assert.True(t, added)
		assert.False(t, wasStaged)
	})

	t.Run("second add is not new", func(t *testing.T) {
		added, wasStaged := s.AddSticky(5)
		assert.False(t, added)
		assert.False(t, wasStaged)
		assert.Equal(t, []compositor.WindowID{5}, s.Sticky())
	})

	t.Run("staged window is refused", func(t *testing.T) {
		s.PutStaged(7)
		added, wasStaged := s.AddSticky(7)
		assert.False(t, added)
		assert.True(t, wasStaged)
		assert.False(t, s.IsSticky(7))
		assertDisjoint(t, s)
	})
}

func TestRemoveSticky(t *testing.T) {
	s := New()
	s.PutSticky(5)

	assert.True(t, s.RemoveSticky(5))
	assert.False(t, s.RemoveSticky(5))
	assert.Empty(t, s.Sticky())
}

func TestToggleSticky(t *testing.T) {
	s := New()

	added, wasStaged := s.ToggleSticky(9)
	assert.True(t, added)
	assert.False(t, wasStaged)
	assert.True(t, s.IsSticky(9))

	added, wasStaged = s.ToggleSticky(9)
	assert.False(t, added)
	assert.False(t, wasStaged)
	assert.False(t, s.IsSticky(9))

	s.PutStaged(9)
	added, wasStaged = s.ToggleSticky(9)
	assert.False(t, added)
	assert.True(t, wasStaged)
	assert.True(t, s.IsStaged(9))
	assert.False(t, s.IsSticky(9))
}

func TestRemovePut(t *testing.T) {
	s := New()
	s.PutSticky(3)

	t.Run("remove sticky then rollback", func(t *testing.T) {
		require.True(t, s.RemoveSticky(3))
		assert.False(t, s.IsSticky(3))
		s.PutSticky(3)
		assert.True(t, s.IsSticky(3))
	})

	t.Run("remove absent id", func(t *testing.T) {
		assert.False(t, s.RemoveSticky(42))
		assert.False(t, s.RemoveStaged(42))
	})

	t.Run("stage transition", func(t *testing.T) {
		require.True(t, s.RemoveSticky(3))
		s.PutStaged(3)
		assert.True(t, s.IsStaged(3))
		assert.False(t, s.IsSticky(3))
		assertDisjoint(t, s)
	})
}

// Put commits are cross-set transfers: whatever membership an id picked up
// while its move was in flight, committing the transition must leave it in
// exactly one set.
func TestPutWithdrawsFromTheOtherSet(t *testing.T) {
	t.Run("PutStaged clears sticky", func(t *testing.T) {
		s := New()
		s.PutSticky(5)
		s.PutStaged(5)
		assert.True(t, s.IsStaged(5))
		assert.False(t, s.IsSticky(5))
		assertDisjoint(t, s)
	})

	t.Run("PutSticky clears staged", func(t *testing.T) {
		s := New()
		s.PutStaged(5)
		s.PutSticky(5)
		assert.True(t, s.IsSticky(5))
		assert.False(t, s.IsStaged(5))
		assertDisjoint(t, s)
	})
}

func TestBatchCommits(t *testing.T) {
	s := New()
	for _, id := range []compositor.WindowID{1, 2, 3} {
		s.PutSticky(id)
	}

	s.CommitStaged([]compositor.WindowID{1, 3})
	assert.Equal(t, []compositor.WindowID{2}, s.Sticky())
	assert.Equal(t, []compositor.WindowID{1, 3}, s.Staged())
	assertDisjoint(t, s)

	s.CommitSticky([]compositor.WindowID{1, 3})
	assert.Equal(t, []compositor.WindowID{1, 2, 3}, s.Sticky())
	assert.Empty(t, s.Staged())
	assertDisjoint(t, s)
}

func TestPruneSticky(t *testing.T) {
	s := New()
	s.PutSticky(5)
	s.PutSticky(9)

	live := map[compositor.WindowID]struct{}{5: {}}
	survivors := s.PruneSticky(live)

	assert.Equal(t, []compositor.WindowID{5}, survivors)
	assert.Equal(t, []compositor.WindowID{5}, s.Sticky())
}

func TestSnapshotsAreSorted(t *testing.T) {
	s := New()
	for _, id := range []compositor.WindowID{9, 1, 5} {
		s.PutSticky(id)
	}
	assert.Equal(t, []compositor.WindowID{1, 5, 9}, s.Sticky())
}
