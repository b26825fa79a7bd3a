package gateway

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// UploadResult is the backend's answer to a resume upload: the new session
// identifier plus the interviewer's opening question.
type UploadResult struct {
	SessionID      string   `json:"session_id"`
	FirstQuestion  string   `json:"first_question"`
	FilesProcessed int      `json:"files_processed"`
	Filenames      []string `json:"filenames"`
}

// ChatTurnRequest carries one user message of the interview.
type ChatTurnRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	UserID    string `json:"user_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// ChatTurnResult is the interviewer's reply. IsCompleted signals that the
// interview has gathered enough and the workflow should move on.
type ChatTurnResult struct {
	Response    string `json:"response"`
	IsCompleted bool   `json:"is_completed"`
}

// ChatStatusResult reports interview progress for a session.
type ChatStatusResult struct {
	SessionID     string `json:"session_id"`
	IsComplete    bool   `json:"is_complete"`
	QuestionCount int    `json:"question_count"`
}

// KnowledgeUpdate writes an edited value at an addressable path of the
// knowledge base. Path "root" replaces the whole record.
type KnowledgeUpdate struct {
	SessionID string          `json:"session_id" validate:"required"`
	Path      string          `json:"path" validate:"required"`
	Value     json.RawMessage `json:"value" validate:"required"`
}

// GenerateRequest submits the folded job description for a session. The
// caller folds free text or URL-derived text into JDText before submitting.
type GenerateRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	JDText    string `json:"jd_text" validate:"required"`
}

// GenerationJob is the opaque handle addressing a generated artifact.
type GenerationJob struct {
	JobID string `json:"job_id"`
}

// Validate validates the ChatTurnRequest using the validator.
func (r *ChatTurnRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the KnowledgeUpdate using the validator.
func (r *KnowledgeUpdate) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
