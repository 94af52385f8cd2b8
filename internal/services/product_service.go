// internal/services/product_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/clearlabel/transparency-backend/internal/apperrors"
	"github.com/clearlabel/transparency-backend/internal/assistant"
	"github.com/clearlabel/transparency-backend/internal/models"
	"github.com/clearlabel/transparency-backend/internal/report"
	"github.com/clearlabel/transparency-backend/internal/store"
	"github.com/clearlabel/transparency-backend/internal/utils"
)

// FallbackQuestions is substituted whenever assistant-driven question
// generation is unavailable or yields nothing usable. Fixed so every
// degraded product presents the identical set.
var FallbackQuestions = []string{
	"What are the main materials and their source/origin?",
	"What is the company's policy on labor ethics and fair wages?",
	"How is the product packaged to minimize environmental waste?",
}

// PlaceholderSummary stands in for a missing reasoning summary. The numeric
// score is never fabricated this way; only the explanatory text is.
const PlaceholderSummary = "No reasoning summary provided."

// DefaultScore applies when the assistant's scoring response omits the score
// field entirely.
const DefaultScore = 50

// AssistantClient is the remote capability the orchestrator depends on.
// Satisfied by assistant.Client; tests substitute stubs.
type AssistantClient interface {
	GenerateQuestions(ctx context.Context, req assistant.QuestionRequest) ([]string, error)
	ScoreAnswers(ctx context.Context, req assistant.ScoreRequest) (*assistant.ScoreResult, error)
	GenerateReportAnalysis(ctx context.Context, req assistant.AnalysisRequest) (*assistant.Analysis, error)
}

// ProductService drives a product through its assessment stages: draft on
// create, assessed once questions are attached, scored once answers are
// judged. Every mutation is persisted before the response goes out.
type ProductService struct {
	products  store.ProductStore
	assistant AssistantClient
}

type CreateProductRequest struct {
	Name       string              `json:"name" validate:"required,min=1,max=255"`
	Category   string              `json:"category" validate:"required,min=1,max=100"`
	Attributes models.AttributeMap `json:"attributes"`
}

func NewProductService(products store.ProductStore, assistantClient AssistantClient) *ProductService {
	return &ProductService{
		products:  products,
		assistant: assistantClient,
	}
}

// CreateProduct persists a draft record first so the product has an id even
// if question generation fails, then attaches either assistant-provided or
// fallback questions. Assistant unavailability never fails this operation.
func (s *ProductService) CreateProduct(ctx context.Context, userID *uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	product := &models.Product{
		UserID:          userID,
		Name:            req.Name,
		Category:        req.Category,
		Attributes:      req.Attributes.Clone(),
		Questions:       []string{},
		AskedQuestions:  []string{},
		PreviousAnswers: models.NewAttributeMap(),
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	questions, err := s.assistant.GenerateQuestions(ctx, assistant.QuestionRequest{
		ProductName:     product.Name,
		Category:        product.Category,
		Attributes:      product.Attributes,
		PreviousAnswers: models.NewAttributeMap(),
		AskedQuestions:  []string{},
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"operation":  "generate-questions",
			"product_id": product.ID,
			"error":      err.Error(),
		}).Warn("Question generation failed, using fallback set")
		questions = append([]string(nil), FallbackQuestions...)
	}

	product.Questions = questions
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ScoreProduct submits collected answers for judgment. Unlike question
// generation, an unavailable assistant propagates here: the score drives UI
// banding and must not be fabricated. Only the human-readable summary falls
// back to a placeholder.
func (s *ProductService) ScoreProduct(ctx context.Context, id uuid.UUID, answers models.AttributeMap) (int, *models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return 0, nil, err
	}

	result, err := s.assistant.ScoreAnswers(ctx, assistant.ScoreRequest{
		ProductName: product.Name,
		Category:    product.Category,
		Answers:     answers,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"operation":  "score-answers",
			"product_id": product.ID,
			"error":      err.Error(),
		}).Error("Scoring failed")
		return 0, nil, err
	}

	finalScore := DefaultScore
	if result.Score != nil {
		// The assistant's number is trusted verbatim; only absence defaults.
		finalScore = int(math.Round(*result.Score))
	}

	summary := PlaceholderSummary
	if result.Summary != nil {
		summary = *result.Summary
	}

	// Submitted answers win over existing keys; the summary is always added.
	product.Attributes.Merge(answers)
	product.Attributes.SetText(models.AttributeReasoningSummary, summary)
	product.TransparencyScore = &finalScore

	if err := s.products.Update(ctx, product); err != nil {
		return 0, nil, err
	}

	return finalScore, product, nil
}

// GenerateReport assembles and renders the transparency report. A failed
// analysis call degrades to a clearly-labeled fallback payload rather than
// failing the request: a partial report has more value than none.
func (s *ProductService) GenerateReport(ctx context.Context, id uuid.UUID) (*models.Product, []byte, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	analysis, err := s.assistant.GenerateReportAnalysis(ctx, assistant.AnalysisRequest{
		ProductName:       product.Name,
		Category:          product.Category,
		Answers:           product.Attributes,
		TransparencyScore: product.TransparencyScore,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"operation":  "generate-report-analysis",
			"product_id": product.ID,
			"error":      err.Error(),
		}).Warn("Report analysis failed, rendering degraded report")
		analysis = report.FallbackAnalysis()
	}

	blocks := report.Assemble(product, analysis, time.Now())
	pdf, err := report.RenderPDF(blocks)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render report for product %s: %w", product.ID, err)
	}

	return product, pdf, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context, userID uuid.UUID, params utils.PaginationParams) ([]models.Product, int64, error) {
	return s.products.ListByUser(ctx, userID, params)
}
