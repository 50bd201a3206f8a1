package store

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	s.Load()
	return s
}

func TestAddAppendsWithFreshID(t *testing.T) {
	s := newTestStore(t)
	due := time.Now().AddDate(0, 0, 1)

	first := s.Add("Buy milk", "2%", due, "")
	second := s.Add("Buy bread", "", due, "bakery")

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "Buy milk", snap[0].Title)
	assert.Equal(t, "Buy bread", snap[1].Title)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.Created.IsZero())
}

func TestIdenticalAddsGetDistinctIDs(t *testing.T) {
	s := newTestStore(t)
	due := time.Now()

	a := s.Add("Call mom", "", due, "")
	b := s.Add("Call mom", "", due, "")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, s.Len())
}

func TestInsertRegeneratesCollidingID(t *testing.T) {
	s := newTestStore(t)
	orig := s.Add("Buy milk", "", time.Now(), "")

	dup := orig
	dup.Title = "Buy milk (copy)"
	got := s.Insert(dup)

	require.Equal(t, 2, s.Len())
	assert.NotEqual(t, orig.ID, got.ID)
	seen := map[string]bool{}
	for _, it := range s.Snapshot() {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
}

func TestUpdateReplacesMutableFields(t *testing.T) {
	s := newTestStore(t)
	due := time.Now().AddDate(0, 0, 1)
	s.Add("first", "", due, "")
	item := s.Add("Buy milk", "2%", due, "")
	s.Add("last", "", due, "")

	edited := item
	edited.Title = "Buy oat milk"
	edited.Location = "48.85661, 2.35222"
	edited.Created = time.Time{} // must not win over the stored value

	require.True(t, s.Update(edited))

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	// Position preserved
	assert.Equal(t, item.ID, snap[1].ID)
	assert.Equal(t, "Buy oat milk", snap[1].Title)
	assert.Equal(t, "48.85661, 2.35222", snap[1].Location)
	// Immutable fields preserved
	assert.True(t, item.Created.Equal(snap[1].Created))
}

func TestUpdateUnknownIDLeavesCollectionUnchanged(t *testing.T) {
	s := newTestStore(t)
	s.Add("Buy milk", "2%", time.Now(), "")
	before := s.Snapshot()

	ghost := TodoItem{ID: "no-such-id", Title: "nothing"}
	assert.False(t, s.Update(ghost))

	after := s.Snapshot()
	require.Len(t, after, len(before))
	for i := range before {
		assert.True(t, before[i].Equal(after[i]))
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s := newTestStore(t)
	due := time.Now()
	s.Add("keep me", "", due, "")
	victim := s.Add("delete me", "", due, "")
	s.Add("keep me too", "", due, "")

	assert.True(t, s.Delete(victim.ID))
	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "keep me", snap[0].Title)
	assert.Equal(t, "keep me too", snap[1].Title)

	assert.False(t, s.Delete(victim.ID))
	assert.Equal(t, 2, s.Len())
}

func TestDeleteWhere(t *testing.T) {
	s := newTestStore(t)
	old := time.Now().AddDate(0, 0, -7)
	s.Add("stale", "", old, "")
	s.Add("stale too", "", old, "")
	fresh := s.Add("fresh", "", time.Now().AddDate(0, 0, 1), "")

	cutoff := time.Now()
	removed := s.DeleteWhere(func(it TodoItem) bool {
		return it.DueDate.Before(cutoff)
	})

	assert.Equal(t, 2, removed)
	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, fresh.ID, snap[0].ID)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestStore(t)
	s.Add("original", "", time.Now(), "")

	snap := s.Snapshot()
	snap[0].Title = "mutated"

	assert.Equal(t, "original", s.Snapshot()[0].Title)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig(dir)

	s, err := Open(cfg)
	require.NoError(t, err)
	s.Load()
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	s.Add("Buy milk", "2%", due, "48.85661, 2.35222")
	s.Add("Water plants", "balcony first", due.AddDate(0, 0, 3), "")
	want := s.Snapshot()
	require.NoError(t, s.Close())

	s2, err := Open(cfg)
	require.NoError(t, err)
	defer s2.Close()
	s2.Load()

	got := s2.Snapshot()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "item %d differs after round-trip", i)
	}
}

func TestLoadAbsentKeyYieldsEmpty(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.Snapshot())
}

func TestLoadCorruptPayloadQuarantines(t *testing.T) {
	s, err := Open(InMemoryConfig())
	require.NoError(t, err)
	defer s.Close()

	garbage := []byte("{not json")
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(itemsKey), garbage)
	})
	require.NoError(t, err)

	s.Load()
	assert.Empty(t, s.Snapshot())

	// The unreadable payload must survive under the quarantine key.
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(quarantineKey))
		require.NoError(t, err)
		return item.Value(func(val []byte) error {
			assert.Equal(t, garbage, val)
			return nil
		})
	})
	require.NoError(t, err)
}

func TestLoadReplacesInMemoryState(t *testing.T) {
	s := newTestStore(t)
	s.Add("persisted", "", time.Now(), "")

	// Load re-reads from storage, dropping nothing in this case but
	// replacing the slice wholesale.
	s.Load()
	require.Len(t, s.Snapshot(), 1)
	assert.Equal(t, "persisted", s.Snapshot()[0].Title)
}

func TestSubscribeFiresOnEveryMutation(t *testing.T) {
	s := newTestStore(t)
	var fired int
	s.Subscribe(func() { fired++ })

	item := s.Add("a", "", time.Now(), "")
	item.Title = "b"
	s.Update(item)
	s.Delete(item.ID)

	assert.Equal(t, 3, fired)

	// Misses do not notify.
	s.Update(TodoItem{ID: "missing"})
	s.Delete("missing")
	assert.Equal(t, 3, fired)
}

func TestScenarioAddUpdateDelete(t *testing.T) {
	s := newTestStore(t)
	require.Equal(t, 0, s.Len())

	tomorrow := time.Now().AddDate(0, 0, 1)
	item := s.Add("Buy milk", "2%", tomorrow, "")
	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "Buy milk", snap[0].Title)

	item.Title = "Buy oat milk"
	require.True(t, s.Update(item))
	snap = s.Snapshot()
	assert.Equal(t, "Buy oat milk", snap[0].Title)
	assert.Equal(t, item.ID, snap[0].ID)
	assert.True(t, item.Created.Equal(snap[0].Created))

	require.True(t, s.Delete(item.ID))
	assert.Empty(t, s.Snapshot())
}
