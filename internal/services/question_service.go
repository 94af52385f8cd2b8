// internal/services/question_service.go
package services

import (
	"fmt"

	"github.com/clearlabel/transparency-backend/internal/apperrors"
	"github.com/clearlabel/transparency-backend/internal/models"
)

// QuestionService produces deterministic, category-driven follow-up
// questions without involving the assistant. It only asks about facts the
// submitted answers have not covered yet.
type QuestionService struct{}

type FollowUp struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

func NewQuestionService() *QuestionService {
	return &QuestionService{}
}

func (s *QuestionService) GenerateFollowUps(category string, answers models.AttributeMap) ([]FollowUp, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category required", apperrors.ErrValidation)
	}

	var followUps []FollowUp
	add := func(id, question string) {
		if _, answered := answers.Get(id); !answered {
			followUps = append(followUps, FollowUp{ID: id, Question: question})
		}
	}

	switch category {
	case "cosmetics":
		add("ingredients", "List the full ingredient list")
		add("allergens", "Are there any known allergens?")
		add("crueltyFree", "Is the product cruelty-free? (yes/no)")
	case "food":
		add("ingredients", "List the ingredient list")
		add("nutrition", "Provide nutrition facts (calories, fats, sugars)")
		add("allergens", "Any allergens present?")
	default:
		add("materials", "What materials is the product made from?")
		add("origin", "Country of origin / manufacturer?")
	}

	if followUps == nil {
		followUps = []FollowUp{}
	}
	return followUps, nil
}
