// Package session holds the client-side identifiers that tie the workflow
// stages to one backend session, and the one-shot handoff values passed
// between stages.
package session

// Session is the pair of identifiers scoping one user's workflow instance
// against the backend. It is created by a successful upload and read by
// every later stage; it is never mutated, only replaced by a new upload.
type Session struct {
	SessionID string
	UserID    string
}

// Valid reports whether the session carries both identifiers. Stages beyond
// upload treat anything else as "no active session".
func (s Session) Valid() bool {
	return s.SessionID != "" && s.UserID != ""
}

// Store is the contract stages depend on. All reads are synchronous and
// side-effect-free except TakeFirstQuestion, which is the single destructive
// read in the system.
type Store interface {
	// Put persists the session identifiers, overwriting any prior session.
	Put(s Session) error

	// Get returns the current session. ok is false when no session is
	// stored; Get never fails the caller on absence.
	Get() (s Session, ok bool)

	// PutFirstQuestion stages the interviewer's opening question for the
	// chat stage to consume.
	PutFirstQuestion(q string) error

	// TakeFirstQuestion returns the pending first question and atomically
	// clears it, so any later read reports absence.
	TakeFirstQuestion() (q string, ok bool)

	// EnsureUserID returns the stored user identifier, minting and
	// persisting one if none exists yet.
	EnsureUserID() (string, error)

	// Clear removes all stored identifiers and handoff values.
	Clear() error
}
