package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBoltStore_PutGet(t *testing.T) {
	store := openTestStore(t)

	_, ok := store.Get()
	assert.False(t, ok)

	require.NoError(t, store.Put(Session{SessionID: "s1", UserID: "u1"}))

	got, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, got.Valid())
}

func TestBoltStore_PutReplacesSession(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Put(Session{SessionID: "s1", UserID: "u1"}))
	require.NoError(t, store.PutFirstQuestion("Q1"))

	// A new upload replaces the session wholesale; the pending question
	// from the old session must not leak into the new one.
	require.NoError(t, store.Put(Session{SessionID: "s2", UserID: "u1"}))

	got, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "s2", got.SessionID)

	_, ok = store.TakeFirstQuestion()
	assert.False(t, ok)
}

func TestBoltStore_TakeFirstQuestionOnce(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.PutFirstQuestion("Q1"))

	q, ok := store.TakeFirstQuestion()
	require.True(t, ok)
	assert.Equal(t, "Q1", q)

	// Idempotent-to-empty: every later read reports absence.
	for i := 0; i < 3; i++ {
		_, ok = store.TakeFirstQuestion()
		assert.False(t, ok)
	}
}

func TestBoltStore_TakeFirstQuestionSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.PutFirstQuestion("Q1"))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	q, ok := store.TakeFirstQuestion()
	require.True(t, ok)
	assert.Equal(t, "Q1", q)
}

func TestBoltStore_EnsureUserIDStable(t *testing.T) {
	store := openTestStore(t)

	first, err := store.EnsureUserID()
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := store.EnsureUserID()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBoltStore_Clear(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Put(Session{SessionID: "s1", UserID: "u1"}))
	require.NoError(t, store.PutFirstQuestion("Q1"))
	require.NoError(t, store.PutLastJob("j1"))

	require.NoError(t, store.Clear())

	_, ok := store.Get()
	assert.False(t, ok)
	_, ok = store.TakeFirstQuestion()
	assert.False(t, ok)
	_, ok = store.LastJob()
	assert.False(t, ok)
}

func TestBoltStore_LastJob(t *testing.T) {
	store := openTestStore(t)

	_, ok := store.LastJob()
	assert.False(t, ok)

	require.NoError(t, store.PutLastJob("j1"))
	id, ok := store.LastJob()
	require.True(t, ok)
	assert.Equal(t, "j1", id)
}

func TestMemStore_Contract(t *testing.T) {
	store := NewMemStore()

	_, ok := store.Get()
	assert.False(t, ok)

	require.NoError(t, store.Put(Session{SessionID: "s1", UserID: "u1"}))
	got, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "s1", got.SessionID)

	require.NoError(t, store.PutFirstQuestion("Q1"))
	q, ok := store.TakeFirstQuestion()
	require.True(t, ok)
	assert.Equal(t, "Q1", q)
	_, ok = store.TakeFirstQuestion()
	assert.False(t, ok)

	require.NoError(t, store.Clear())
	_, ok = store.Get()
	assert.False(t, ok)
}
