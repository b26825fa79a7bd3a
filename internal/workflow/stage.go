// Package workflow enforces the stage ordering of the resume workflow:
// upload, interview chat, knowledge review, generation. Stages beyond
// upload require stored session identifiers and fall back to upload when
// they are missing.
package workflow

import "github.com/jihoon/resume-pilot/internal/session"

// Stage is one phase of the workflow.
type Stage string

// Workflow stages, in order.
const (
	StageUpload    Stage = "upload"
	StageChat      Stage = "chat"
	StageKnowledge Stage = "knowledge"
	StageGenerate  Stage = "generate"
)

// Guard checks the session preconditions for entering a stage and returns
// the stage the client should actually run: the requested stage when the
// preconditions hold, StageUpload otherwise. It is a pure read of the
// store; no network call is ever issued on a guard failure, and calling it
// any number of times has the same outcome.
func Guard(store session.Store, want Stage) Stage {
	if want == StageUpload {
		return StageUpload
	}
	sess, ok := store.Get()
	if !ok {
		return StageUpload
	}
	// The chat stage additionally needs the user identifier for its
	// request contract.
	if want == StageChat && sess.UserID == "" {
		return StageUpload
	}
	return want
}
