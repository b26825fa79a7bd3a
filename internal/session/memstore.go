package session

import "github.com/google/uuid"

// MemStore is an in-memory Store used by tests and throwaway runs. It
// honors the same replace-on-Put and take-once semantics as BoltStore.
type MemStore struct {
	session       Session
	hasSession    bool
	firstQuestion string
	hasQuestion   bool
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Put replaces the stored session and drops any pending first question.
func (m *MemStore) Put(s Session) error {
	m.session = s
	m.hasSession = true
	m.firstQuestion = ""
	m.hasQuestion = false
	return nil
}

// Get returns the stored session, if any.
func (m *MemStore) Get() (Session, bool) {
	if !m.hasSession || m.session.SessionID == "" {
		return Session{}, false
	}
	return m.session, true
}

// PutFirstQuestion stages the opening interview question.
func (m *MemStore) PutFirstQuestion(q string) error {
	m.firstQuestion = q
	m.hasQuestion = true
	return nil
}

// TakeFirstQuestion returns the pending question and clears it.
func (m *MemStore) TakeFirstQuestion() (string, bool) {
	if !m.hasQuestion {
		return "", false
	}
	q := m.firstQuestion
	m.firstQuestion = ""
	m.hasQuestion = false
	return q, true
}

// EnsureUserID mints a UUID on first use and returns it thereafter.
func (m *MemStore) EnsureUserID() (string, error) {
	if m.session.UserID == "" {
		m.session.UserID = uuid.NewString()
	}
	return m.session.UserID, nil
}

// Clear removes everything.
func (m *MemStore) Clear() error {
	*m = MemStore{}
	return nil
}
