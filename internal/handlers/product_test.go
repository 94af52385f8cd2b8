// internal/handlers/product_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlabel/transparency-backend/internal/apperrors"
	"github.com/clearlabel/transparency-backend/internal/assistant"
	"github.com/clearlabel/transparency-backend/internal/models"
	"github.com/clearlabel/transparency-backend/internal/services"
	"github.com/clearlabel/transparency-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAssistant struct {
	questions    []string
	questionsErr error
	score        *assistant.ScoreResult
	scoreErr     error
	analysis     *assistant.Analysis
	analysisErr  error
}

func (s *stubAssistant) GenerateQuestions(ctx context.Context, req assistant.QuestionRequest) ([]string, error) {
	return s.questions, s.questionsErr
}

func (s *stubAssistant) ScoreAnswers(ctx context.Context, req assistant.ScoreRequest) (*assistant.ScoreResult, error) {
	if s.scoreErr != nil {
		return nil, s.scoreErr
	}
	return s.score, nil
}

func (s *stubAssistant) GenerateReportAnalysis(ctx context.Context, req assistant.AnalysisRequest) (*assistant.Analysis, error) {
	if s.analysisErr != nil {
		return nil, s.analysisErr
	}
	return s.analysis, nil
}

func newProductRouter(stub *stubAssistant) *gin.Engine {
	svc := services.NewProductService(store.NewMemoryProductStore(), stub)
	handler := NewProductHandler(svc)

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/products", handler.CreateProduct)
		api.GET("/products/:id", handler.GetProduct)
		api.POST("/products/:id/score", handler.ScoreProduct)
		api.GET("/products/:id/report", handler.GetProductReport)
		api.DELETE("/products/:id", handler.DeleteProduct)
	}
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createViaAPI(t *testing.T, r *gin.Engine) models.Product {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/products", gin.H{
		"name":       "Eco Mug",
		"category":   "kitchenware",
		"attributes": gin.H{"material": "bamboo"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	return product
}

func TestCreateProductEndpoint(t *testing.T) {
	r := newProductRouter(&stubAssistant{questions: []string{"Where is the bamboo sourced?"}})

	product := createViaAPI(t, r)
	assert.Equal(t, "Eco Mug", product.Name)
	assert.Equal(t, []string{"Where is the bamboo sourced?"}, []string(product.Questions))
	assert.Nil(t, product.TransparencyScore)
}

func TestCreateProductEndpointFallsBack(t *testing.T) {
	r := newProductRouter(&stubAssistant{
		questionsErr: fmt.Errorf("%w: down", apperrors.ErrAssistantUnavailable),
	})

	// Assistant unavailability is absorbed, never a 5xx here.
	product := createViaAPI(t, r)
	assert.Equal(t, services.FallbackQuestions, []string(product.Questions))
}

func TestCreateProductEndpointValidation(t *testing.T) {
	r := newProductRouter(&stubAssistant{})

	w := doJSON(r, http.MethodPost, "/api/products", gin.H{"category": "kitchenware"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestGetProductEndpoint(t *testing.T) {
	r := newProductRouter(&stubAssistant{questions: []string{"q"}})
	created := createViaAPI(t, r)

	w := doJSON(r, http.MethodGet, "/api/products/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
}

func TestGetProductEndpointNotFound(t *testing.T) {
	r := newProductRouter(&stubAssistant{})

	w := doJSON(r, http.MethodGet, "/api/products/7a0c6f3e-73ac-4b9e-9f52-cf2c0f7ab001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestGetProductEndpointInvalidID(t *testing.T) {
	r := newProductRouter(&stubAssistant{})

	w := doJSON(r, http.MethodGet, "/api/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScoreProductEndpoint(t *testing.T) {
	score := 82.0
	summary := "Strong material disclosure"
	r := newProductRouter(&stubAssistant{
		questions: []string{"q"},
		score:     &assistant.ScoreResult{Score: &score, Summary: &summary},
	})
	created := createViaAPI(t, r)

	w := doJSON(r, http.MethodPost, "/api/products/"+created.ID.String()+"/score", gin.H{
		"origin": "Vietnam",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Score   int            `json:"score"`
		Product models.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 82, resp.Score)
	require.NotNil(t, resp.Product.TransparencyScore)
	assert.Equal(t, 82, *resp.Product.TransparencyScore)
}

func TestScoreProductEndpointAssistantDown(t *testing.T) {
	r := newProductRouter(&stubAssistant{
		questions: []string{"q"},
		scoreErr:  fmt.Errorf("%w: down", apperrors.ErrAssistantUnavailable),
	})
	created := createViaAPI(t, r)

	w := doJSON(r, http.MethodPost, "/api/products/"+created.ID.String()+"/score", gin.H{})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Assistant service unavailable")
}

func TestProductReportEndpoint(t *testing.T) {
	categories := models.NewAttributeMap()
	categories.SetText("sourcing", "solid")
	r := newProductRouter(&stubAssistant{
		questions: []string{"q"},
		analysis:  &assistant.Analysis{ExecutiveSummary: "Fine.", CategoryAnalysis: categories},
	})
	created := createViaAPI(t, r)

	w := doJSON(r, http.MethodGet, "/api/products/"+created.ID.String()+"/report", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Eco_Mug_Transparency_Report.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}

func TestProductReportEndpointDegradesOnAnalysisFailure(t *testing.T) {
	r := newProductRouter(&stubAssistant{
		questions:   []string{"q"},
		analysisErr: fmt.Errorf("%w: down", apperrors.ErrAssistantUnavailable),
	})
	created := createViaAPI(t, r)

	w := doJSON(r, http.MethodGet, "/api/products/"+created.ID.String()+"/report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}

func TestDeleteProductEndpoint(t *testing.T) {
	r := newProductRouter(&stubAssistant{questions: []string{"q"}})
	created := createViaAPI(t, r)

	w := doJSON(r, http.MethodDelete, "/api/products/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/api/products/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/products/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
