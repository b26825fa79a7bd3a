package knowledge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jihoon/resume-pilot/internal/gateway"
	"github.com/jihoon/resume-pilot/internal/schemas"
)

// RootPath is the reserved path denoting the whole knowledge base. A commit
// at this path replaces the entire record and is shape-checked against the
// knowledge schema before leaving the client.
const RootPath = "root"

// ErrEditInProgress is returned when BeginEdit is called while another path
// is already being edited.
var ErrEditInProgress = fmt.Errorf("another edit is already in progress")

// ErrNoEdit is returned when CommitEdit is called with no edit open.
var ErrNoEdit = fmt.Errorf("no edit in progress")

// ErrCommitInFlight is returned when a commit is attempted while a previous
// commit is still awaiting the backend.
var ErrCommitInFlight = fmt.Errorf("an update is already in flight")

// ValidationError reports malformed edit input. It never reaches the
// network; the editor stays open with the buffer intact.
type ValidationError struct {
	Path  string
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit input for path %q: %v", e.Path, e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Updater is the slice of the gateway the editor needs.
type Updater interface {
	UpdateKnowledge(ctx context.Context, req gateway.KnowledgeUpdate) error
}

// Editor drives a single-path editing session over the knowledge base. At
// most one path is editable at a time; a failed commit keeps the buffer so
// the user never loses typed content.
type Editor struct {
	sessionID string
	gw        Updater

	editingPath string
	editing     bool
	buffer      string
	busy        bool
}

// NewEditor creates an editor bound to one session.
func NewEditor(sessionID string, gw Updater) *Editor {
	return &Editor{sessionID: sessionID, gw: gw}
}

// BeginEdit opens an edit session for path, seeding the buffer with the
// current value serialized as indented JSON. It refuses to start while
// another edit is open; the caller must commit or cancel first.
func (e *Editor) BeginEdit(path string, current any) error {
	if e.editing {
		return ErrEditInProgress
	}
	serialized, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize current value: %w", err)
	}
	e.editingPath = path
	e.editing = true
	e.buffer = string(serialized)
	return nil
}

// EditingPath returns the path being edited, if any.
func (e *Editor) EditingPath() (string, bool) {
	return e.editingPath, e.editing
}

// Buffer returns the current edit buffer.
func (e *Editor) Buffer() string {
	return e.buffer
}

// SetBuffer replaces the edit buffer with user-typed content.
func (e *Editor) SetBuffer(content string) {
	e.buffer = content
}

// CommitEdit parses the buffer as JSON and sends the update. On a parse or
// schema failure it returns a *ValidationError and stays in edit mode with
// the buffer unchanged; on a network failure it likewise keeps the buffer.
// Only a successful update exits edit mode.
func (e *Editor) CommitEdit(ctx context.Context) error {
	if !e.editing {
		return ErrNoEdit
	}
	if e.busy {
		return ErrCommitInFlight
	}

	var value json.RawMessage
	if err := json.Unmarshal([]byte(e.buffer), &value); err != nil {
		return &ValidationError{Path: e.editingPath, Cause: err}
	}

	// Whole-record edits must still look like a knowledge base.
	if e.editingPath == RootPath {
		if err := schemas.ValidateKnowledgeBase(value); err != nil {
			return &ValidationError{Path: e.editingPath, Cause: err}
		}
	}

	e.busy = true
	err := e.gw.UpdateKnowledge(ctx, gateway.KnowledgeUpdate{
		SessionID: e.sessionID,
		Path:      e.editingPath,
		Value:     value,
	})
	e.busy = false
	if err != nil {
		return err
	}

	e.editing = false
	e.editingPath = ""
	e.buffer = ""
	return nil
}

// CancelEdit discards the buffer unconditionally and exits edit mode.
func (e *Editor) CancelEdit() {
	e.editing = false
	e.editingPath = ""
	e.buffer = ""
}
