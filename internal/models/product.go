// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const AttributeReasoningSummary = "reasoningSummary"

type Product struct {
	BaseModel
	UserID   *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Name     string     `json:"name" gorm:"size:255;not null"`
	Category string     `json:"category" gorm:"size:100;not null;index"`

	// Attributes accumulates disclosed answers plus the scoring reasoning
	// summary. Keys are added or overwritten, never removed.
	Attributes AttributeMap `json:"attributes" gorm:"type:jsonb"`

	// Questions is replaced wholesale after each generation round.
	Questions pq.StringArray `json:"questions" gorm:"type:text[]"`

	// AskedQuestions and PreviousAnswers feed iterative follow-up question
	// generation; the current pipeline persists them but does not consume
	// them yet.
	AskedQuestions  pq.StringArray `json:"askedQuestions" gorm:"type:text[]"`
	PreviousAnswers AttributeMap   `json:"previousAnswers" gorm:"type:jsonb"`

	// TransparencyScore stays nil until scoring completes; once set it is in
	// [0,100].
	TransparencyScore *int `json:"transparencyScore"`
}

// Stage derives the lifecycle position. Transitions only move forward:
// draft -> assessed -> scored.
func (p *Product) Stage() ProductStage {
	switch {
	case p.TransparencyScore != nil:
		return StageScored
	case len(p.Questions) > 0:
		return StageAssessed
	default:
		return StageDraft
	}
}

// QuestionList returns the questions with a non-nil guarantee.
func (p *Product) QuestionList() []string {
	if p.Questions == nil {
		return []string{}
	}
	return p.Questions
}
