package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const bucketName = "session"

// Keys within the session bucket.
const (
	keySessionID     = "session_id"
	keyUserID        = "user_id"
	keyFirstQuestion = "first_question"
	keyLastJob       = "last_job_id"
)

// BoltStore is a Store backed by a single-file bbolt database. State
// survives process restarts and is cleared only by explicit action.
type BoltStore struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the state file at path.
func Open(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open state file %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize state file: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close releases the underlying database file.
func (b *BoltStore) Close() error {
	return b.db.Close()
}

// Put persists the session identifiers, replacing any prior session
// wholesale. A pending first question from a previous session is dropped so
// it cannot leak into the new one.
func (b *BoltStore) Put(s Session) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucketName))
		if err := bkt.Put([]byte(keySessionID), []byte(s.SessionID)); err != nil {
			return err
		}
		if err := bkt.Put([]byte(keyUserID), []byte(s.UserID)); err != nil {
			return err
		}
		return bkt.Delete([]byte(keyFirstQuestion))
	})
}

// Get returns the stored session. Absence (or a read failure) reports
// ok=false rather than an error so guards can treat both as "no session".
func (b *BoltStore) Get() (Session, bool) {
	var s Session
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucketName))
		s.SessionID = string(bkt.Get([]byte(keySessionID)))
		s.UserID = string(bkt.Get([]byte(keyUserID)))
		return nil
	})
	if err != nil || s.SessionID == "" {
		return Session{}, false
	}
	return s, true
}

// PutFirstQuestion stages the opening interview question for the chat stage.
func (b *BoltStore) PutFirstQuestion(q string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(keyFirstQuestion), []byte(q))
	})
}

// TakeFirstQuestion reads and deletes the pending first question in one
// transaction. A second call always reports absence.
func (b *BoltStore) TakeFirstQuestion() (string, bool) {
	var q string
	var found bool
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucketName))
		v := bkt.Get([]byte(keyFirstQuestion))
		if v == nil {
			return nil
		}
		q = string(v)
		found = true
		return bkt.Delete([]byte(keyFirstQuestion))
	})
	if err != nil || !found {
		return "", false
	}
	return q, true
}

// EnsureUserID returns the persisted user identifier, minting a UUID on
// first use. The backend never issues one; the client owns this value.
func (b *BoltStore) EnsureUserID() (string, error) {
	var id string
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucketName))
		if v := bkt.Get([]byte(keyUserID)); len(v) > 0 {
			id = string(v)
			return nil
		}
		id = uuid.NewString()
		return bkt.Put([]byte(keyUserID), []byte(id))
	})
	if err != nil {
		return "", fmt.Errorf("failed to ensure user id: %w", err)
	}
	return id, nil
}

// PutLastJob records the handle of the most recent generation job so the
// preview command can address it without re-typing.
func (b *BoltStore) PutLastJob(jobID string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(keyLastJob), []byte(jobID))
	})
}

// LastJob returns the most recent generation job handle, if any.
func (b *BoltStore) LastJob() (string, bool) {
	var id string
	err := b.db.View(func(tx *bolt.Tx) error {
		id = string(tx.Bucket([]byte(bucketName)).Get([]byte(keyLastJob)))
		return nil
	})
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}

// Clear removes all stored identifiers and handoff values.
func (b *BoltStore) Clear() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
}
