package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/fakeyudi/fieldedit/internal/selection"
)

// EditSession is the state of one editing interaction. Only the editor
// controller mutates it.
type EditSession struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CurrentText string    `json:"current_text"`
	FieldIndex  int       `json:"field_index"`
	// AllFields is the caller's snapshot at startup. The entry at FieldIndex is
	// stale once CurrentText changes.
	AllFields []string        `json:"all_fields"`
	ModelID   int64           `json:"model_id"`
	Selection selection.State `json:"-"`
}

// New validates p and builds a session with a Regular selection.
func New(p Payload) (*EditSession, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	fields := make([]string, len(p.AllFields))
	copy(fields, p.AllFields)
	return &EditSession{
		ID:          uuid.New().String(),
		StartedAt:   now,
		UpdatedAt:   now,
		CurrentText: *p.FieldText,
		FieldIndex:  *p.FieldIndex,
		AllFields:   fields,
		ModelID:     *p.ModelID,
		Selection:   selection.Regular(),
	}, nil
}

// Payload rebuilds a startup payload from s, with the edit buffer as the field
// text. Used to resume from a draft.
func (s *EditSession) Payload() Payload {
	text := s.CurrentText
	idx := s.FieldIndex
	model := s.ModelID
	fields := make([]string, len(s.AllFields))
	copy(fields, s.AllFields)
	return Payload{FieldText: &text, FieldIndex: &idx, AllFields: fields, ModelID: &model}
}

// Result is the terminal output of a session. A cancelled result carries no
// text or index.
type Result struct {
	Saved      bool    `json:"saved" yaml:"saved"`
	Text       *string `json:"text,omitempty" yaml:"text,omitempty"`
	FieldIndex *int    `json:"fieldIndex,omitempty" yaml:"fieldIndex,omitempty"`
}

// Saved builds a successful result.
func Saved(text string, fieldIndex int) Result {
	return Result{Saved: true, Text: &text, FieldIndex: &fieldIndex}
}

// Cancelled builds a cancellation result.
func Cancelled() Result {
	return Result{}
}
