package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jihoon/resume-pilot/internal/gateway"
)

type fakeUpdater struct {
	calls int
	last  gateway.KnowledgeUpdate
	err   error
}

func (f *fakeUpdater) UpdateKnowledge(_ context.Context, req gateway.KnowledgeUpdate) error {
	f.calls++
	f.last = req
	return f.err
}

func TestBeginEdit_SeedsBufferWithSerializedValue(t *testing.T) {
	editor := NewEditor("s1", &fakeUpdater{})

	data := map[string]any{"skills": []string{"Go"}}
	require.NoError(t, editor.BeginEdit(RootPath, data))

	path, editing := editor.EditingPath()
	assert.True(t, editing)
	assert.Equal(t, RootPath, path)
	assert.JSONEq(t, `{"skills":["Go"]}`, editor.Buffer())
}

func TestBeginEdit_SinglePathInvariant(t *testing.T) {
	editor := NewEditor("s1", &fakeUpdater{})
	require.NoError(t, editor.BeginEdit("skills", []string{"Go"}))

	err := editor.BeginEdit("education", nil)
	assert.ErrorIs(t, err, ErrEditInProgress)

	// The original edit is untouched.
	path, editing := editor.EditingPath()
	assert.True(t, editing)
	assert.Equal(t, "skills", path)
}

func TestCommitEdit_InvalidJSONKeepsEditOpen(t *testing.T) {
	updater := &fakeUpdater{}
	editor := NewEditor("s1", updater)

	data := map[string]any{"skills": []string{"Go"}}
	require.NoError(t, editor.BeginEdit(RootPath, data))
	editor.SetBuffer("{not valid json")

	err := editor.CommitEdit(context.Background())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, RootPath, ve.Path)

	// Nothing was sent; edit mode and buffer are unchanged.
	assert.Zero(t, updater.calls)
	path, editing := editor.EditingPath()
	assert.True(t, editing)
	assert.Equal(t, RootPath, path)
	assert.Equal(t, "{not valid json", editor.Buffer())
}

func TestCommitEdit_RootSchemaViolationKeepsEditOpen(t *testing.T) {
	updater := &fakeUpdater{}
	editor := NewEditor("s1", updater)

	require.NoError(t, editor.BeginEdit(RootPath, map[string]any{}))
	// Valid JSON, but skills must be an array of strings.
	editor.SetBuffer(`{"skills": {"Go": true}}`)

	err := editor.CommitEdit(context.Background())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, updater.calls)

	_, editing := editor.EditingPath()
	assert.True(t, editing)
}

func TestCommitEdit_NonRootSkipsSchemaCheck(t *testing.T) {
	updater := &fakeUpdater{}
	editor := NewEditor("s1", updater)

	require.NoError(t, editor.BeginEdit("personal_info.name", "Kim"))
	editor.SetBuffer(`"Lee"`)

	require.NoError(t, editor.CommitEdit(context.Background()))
	assert.Equal(t, 1, updater.calls)
	assert.Equal(t, "personal_info.name", updater.last.Path)
	assert.Equal(t, `"Lee"`, string(updater.last.Value))
}

func TestCommitEdit_SuccessExitsEditMode(t *testing.T) {
	updater := &fakeUpdater{}
	editor := NewEditor("s1", updater)

	require.NoError(t, editor.BeginEdit(RootPath, map[string]any{"skills": []string{"Go"}}))
	editor.SetBuffer(`{"skills": ["Go", "Rust"]}`)

	require.NoError(t, editor.CommitEdit(context.Background()))
	assert.Equal(t, 1, updater.calls)
	assert.Equal(t, "s1", updater.last.SessionID)
	assert.JSONEq(t, `{"skills":["Go","Rust"]}`, string(updater.last.Value))

	// No residual edit-mode state.
	_, editing := editor.EditingPath()
	assert.False(t, editing)
	assert.Empty(t, editor.Buffer())
}

func TestCommitEdit_NetworkFailureKeepsBuffer(t *testing.T) {
	updater := &fakeUpdater{err: fmt.Errorf("backend down")}
	editor := NewEditor("s1", updater)

	require.NoError(t, editor.BeginEdit(RootPath, map[string]any{}))
	editor.SetBuffer(`{"skills": ["Go"]}`)

	err := editor.CommitEdit(context.Background())
	require.Error(t, err)

	// The user's typed content is not lost; they can retry the commit.
	_, editing := editor.EditingPath()
	assert.True(t, editing)
	assert.Equal(t, `{"skills": ["Go"]}`, editor.Buffer())

	updater.err = nil
	require.NoError(t, editor.CommitEdit(context.Background()))
	assert.Equal(t, 2, updater.calls)
}

func TestCommitEdit_NoEdit(t *testing.T) {
	editor := NewEditor("s1", &fakeUpdater{})
	err := editor.CommitEdit(context.Background())
	assert.ErrorIs(t, err, ErrNoEdit)
}

func TestCancelEdit_DiscardsUnconditionally(t *testing.T) {
	editor := NewEditor("s1", &fakeUpdater{})
	require.NoError(t, editor.BeginEdit(RootPath, map[string]any{"skills": []string{"Go"}}))
	editor.SetBuffer("half-typed garbage")

	editor.CancelEdit()

	_, editing := editor.EditingPath()
	assert.False(t, editing)
	assert.Empty(t, editor.Buffer())

	// A new edit can start immediately.
	require.NoError(t, editor.BeginEdit("skills", []string{"Go"}))
}

func TestBeginEdit_RawMessageSeed(t *testing.T) {
	editor := NewEditor("s1", &fakeUpdater{})

	raw := json.RawMessage(`{"skills":["Go"]}`)
	require.NoError(t, editor.BeginEdit(RootPath, raw))
	assert.JSONEq(t, `{"skills":["Go"]}`, editor.Buffer())
}
