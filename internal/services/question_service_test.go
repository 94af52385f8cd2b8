// internal/services/question_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlabel/transparency-backend/internal/apperrors"
	"github.com/clearlabel/transparency-backend/internal/models"
)

func TestGenerateFollowUpsByCategory(t *testing.T) {
	svc := NewQuestionService()

	cosmetics, err := svc.GenerateFollowUps("cosmetics", models.NewAttributeMap())
	require.NoError(t, err)
	assert.Equal(t, []FollowUp{
		{ID: "ingredients", Question: "List the full ingredient list"},
		{ID: "allergens", Question: "Are there any known allergens?"},
		{ID: "crueltyFree", Question: "Is the product cruelty-free? (yes/no)"},
	}, cosmetics)

	food, err := svc.GenerateFollowUps("food", models.NewAttributeMap())
	require.NoError(t, err)
	assert.Len(t, food, 3)
	assert.Equal(t, "nutrition", food[1].ID)

	other, err := svc.GenerateFollowUps("electronics", models.NewAttributeMap())
	require.NoError(t, err)
	assert.Equal(t, []FollowUp{
		{ID: "materials", Question: "What materials is the product made from?"},
		{ID: "origin", Question: "Country of origin / manufacturer?"},
	}, other)
}

func TestGenerateFollowUpsSkipsAnsweredQuestions(t *testing.T) {
	svc := NewQuestionService()

	answers := models.NewAttributeMap()
	answers.SetText("ingredients", "water, glycerin")

	followUps, err := svc.GenerateFollowUps("cosmetics", answers)
	require.NoError(t, err)

	var ids []string
	for _, f := range followUps {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"allergens", "crueltyFree"}, ids)
}

func TestGenerateFollowUpsAllAnsweredReturnsEmptySlice(t *testing.T) {
	svc := NewQuestionService()

	answers := models.NewAttributeMap()
	answers.SetText("materials", "bamboo")
	answers.SetText("origin", "Vietnam")

	followUps, err := svc.GenerateFollowUps("kitchenware", answers)
	require.NoError(t, err)
	assert.NotNil(t, followUps)
	assert.Empty(t, followUps)
}

func TestGenerateFollowUpsRequiresCategory(t *testing.T) {
	svc := NewQuestionService()

	_, err := svc.GenerateFollowUps("", models.NewAttributeMap())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
