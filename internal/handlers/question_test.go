// internal/handlers/question_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlabel/transparency-backend/internal/services"
)

func newQuestionRouter() *gin.Engine {
	handler := NewQuestionHandler(services.NewQuestionService())
	r := gin.New()
	r.POST("/api/generate-questions", handler.GenerateFollowUps)
	return r
}

func TestGenerateQuestionsEndpoint(t *testing.T) {
	r := newQuestionRouter()

	w := doJSON(r, http.MethodPost, "/api/generate-questions", gin.H{
		"category": "cosmetics",
		"answers":  gin.H{"ingredients": "water, glycerin"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		FollowUps []services.FollowUp `json:"followUps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	var ids []string
	for _, f := range resp.FollowUps {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"allergens", "crueltyFree"}, ids)
}

func TestGenerateQuestionsEndpointRequiresCategory(t *testing.T) {
	r := newQuestionRouter()

	w := doJSON(r, http.MethodPost, "/api/generate-questions", gin.H{
		"answers": gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
