// Package chat implements the interview turn sequencer: the transcript, the
// one-in-flight gating, and the completion-driven handoff to the knowledge
// review stage.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jihoon/resume-pilot/internal/gateway"
	"github.com/jihoon/resume-pilot/internal/session"
)

// Role identifies the author of a transcript message.
type Role string

// Transcript roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the interview transcript. The transcript is
// append-only; insertion order is the conversation order.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// State is the sequencer's position in its turn cycle.
type State string

// Sequencer states. StateError still accepts new turns; only
// StateAwaiting gates sends.
const (
	StateIdle     State = "idle"
	StateAwaiting State = "awaiting_response"
	StateError    State = "error"
)

// DefaultGreeting seeds the transcript when no pending first question was
// handed over from the upload stage.
const DefaultGreeting = "Hello! I've reviewed the resume you uploaded. " +
	"I'd like to ask a few questions to help make it even better."

// ErrNoSession is returned when a turn is attempted without stored session
// identifiers.
var ErrNoSession = fmt.Errorf("no active session")

// ErrTurnInFlight is returned when a turn is attempted while a previous one
// is still awaiting the backend. No network call is issued.
var ErrTurnInFlight = fmt.Errorf("a turn is already awaiting a response")

// ErrEmptyMessage is returned for a blank user message.
var ErrEmptyMessage = fmt.Errorf("message is empty")

// ErrStaleResponse is returned when a response arrives after the transcript
// was reseeded; the late response is dropped rather than applied.
var ErrStaleResponse = fmt.Errorf("response arrived after the transcript was reset")

// Sender is the slice of the gateway the sequencer needs.
type Sender interface {
	SendMessage(ctx context.Context, req gateway.ChatTurnRequest) (*gateway.ChatTurnResult, error)
}

// Options tunes sequencer behavior.
type Options struct {
	// AdvanceDelay is how long to wait after a completed interview before
	// firing OnComplete, giving the user time to read the final message.
	AdvanceDelay time.Duration

	// OnComplete is invoked once when a turn result reports completion,
	// after AdvanceDelay. May be nil.
	OnComplete func()
}

// Sequencer runs the interview turn cycle for one chat session. At most one
// turn is in flight at a time, so assistant messages always land directly
// after the user message that produced them.
type Sequencer struct {
	gw    Sender
	store session.Store
	opts  Options

	mu         sync.Mutex
	state      State
	transcript []Message
	generation int
}

// NewSequencer creates a sequencer over the given gateway and session store.
func NewSequencer(gw Sender, store session.Store, opts Options) *Sequencer {
	return &Sequencer{gw: gw, store: store, opts: opts, state: StateIdle}
}

// Seed initializes the transcript with the pending first question if one
// was handed over from upload, consuming it so a re-render cannot replay
// it, or with the default greeting otherwise. Seeding invalidates any
// response still in flight from a previous transcript.
func (s *Sequencer) Seed() {
	opening := DefaultGreeting
	if q, ok := s.store.TakeFirstQuestion(); ok {
		opening = q
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = StateIdle
	s.transcript = []Message{{Role: RoleAssistant, Content: opening}}
}

// State returns the current sequencer state.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a copy of the transcript so far.
func (s *Sequencer) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// SendTurn delivers one user message and appends the assistant's reply.
//
// The user message is appended optimistically before the request is issued
// and is never rolled back: on failure the user's own words stay in the
// transcript, the sequencer moves to StateError, and the caller may simply
// send again. When the result reports completion, OnComplete is scheduled
// after AdvanceDelay.
func (s *Sequencer) SendTurn(ctx context.Context, text string) (*gateway.ChatTurnResult, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}

	sess, ok := s.store.Get()
	if !ok || sess.UserID == "" {
		return nil, ErrNoSession
	}

	s.mu.Lock()
	if s.state == StateAwaiting {
		s.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	s.state = StateAwaiting
	s.transcript = append(s.transcript, Message{Role: RoleUser, Content: text})
	generation := s.generation
	s.mu.Unlock()

	result, err := s.gw.SendMessage(ctx, gateway.ChatTurnRequest{
		SessionID: sess.SessionID,
		UserID:    sess.UserID,
		Message:   text,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		// The transcript was reseeded while this turn was in flight; the
		// response must not be applied to the new transcript.
		return nil, ErrStaleResponse
	}

	if err != nil {
		s.state = StateError
		return nil, err
	}

	s.transcript = append(s.transcript, Message{Role: RoleAssistant, Content: result.Response})
	s.state = StateIdle

	if result.IsCompleted && s.opts.OnComplete != nil {
		onComplete := s.opts.OnComplete
		if s.opts.AdvanceDelay > 0 {
			time.AfterFunc(s.opts.AdvanceDelay, onComplete)
		} else {
			onComplete()
		}
	}

	return result, nil
}
