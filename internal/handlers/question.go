// internal/handlers/question.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clearlabel/transparency-backend/internal/models"
	"github.com/clearlabel/transparency-backend/internal/services"
	"github.com/clearlabel/transparency-backend/internal/utils"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

type generateQuestionsRequest struct {
	Category string              `json:"category"`
	Answers  models.AttributeMap `json:"answers"`
}

// POST /generate-questions
func (h *QuestionHandler) GenerateFollowUps(c *gin.Context) {
	var req generateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	followUps, err := h.questionService.GenerateFollowUps(req.Category, req.Answers)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"followUps": followUps,
	})
}
