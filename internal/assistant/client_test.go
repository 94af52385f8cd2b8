// internal/assistant/client_test.go
package assistant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlabel/transparency-backend/internal/apperrors"
	"github.com/clearlabel/transparency-backend/internal/config"
	"github.com/clearlabel/transparency-backend/internal/models"
)

func newTestClient(url string) *Client {
	return NewClient(config.AssistantConfig{BaseURL: url, Timeout: 2})
}

func questionReq() QuestionRequest {
	return QuestionRequest{
		ProductName:     "EcoMug",
		Category:        "kitchenware",
		Attributes:      models.NewAttributeMap(),
		PreviousAnswers: models.NewAttributeMap(),
		AskedQuestions:  []string{},
	}
}

func TestGenerateQuestionsFiltersAndTrims(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-questions", r.URL.Path)
		w.Write([]byte(`{"questions":["  What materials?  ","", 42, "Where is it made?", "   "]}`))
	}))
	defer srv.Close()

	questions, err := newTestClient(srv.URL).GenerateQuestions(context.Background(), questionReq())
	require.NoError(t, err)
	assert.Equal(t, []string{"What materials?", "Where is it made?"}, questions)
}

func TestGenerateQuestionsEmptyFilteredListIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"questions":["", "   "]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateQuestions(context.Background(), questionReq())
	assert.ErrorIs(t, err, apperrors.ErrAssistantUnavailable)
}

func TestGenerateQuestionsMalformedPayload(t *testing.T) {
	cases := map[string]string{
		"missing field":  `{"other":true}`,
		"wrong type":     `{"questions":"not a list"}`,
		"not json":       `question one, question two`,
		"null questions": `{"questions":null}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).GenerateQuestions(context.Background(), questionReq())
			assert.ErrorIs(t, err, apperrors.ErrAssistantUnavailable)
		})
	}
}

func TestGenerateQuestionsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateQuestions(context.Background(), questionReq())
	assert.ErrorIs(t, err, apperrors.ErrAssistantUnavailable)
}

func TestGenerateQuestionsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	_, err := newTestClient(srv.URL).GenerateQuestions(context.Background(), questionReq())
	assert.ErrorIs(t, err, apperrors.ErrAssistantUnavailable)
}

func TestTimeoutSurfacesAsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	client := NewClient(config.AssistantConfig{BaseURL: srv.URL, Timeout: 1})
	start := time.Now()
	_, err := client.GenerateQuestions(context.Background(), questionReq())

	assert.ErrorIs(t, err, apperrors.ErrAssistantUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestScoreAnswersFullResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transparency-score", r.URL.Path)
		w.Write([]byte(`{"score":82,"summary":"Strong material disclosure"}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).ScoreAnswers(context.Background(), ScoreRequest{
		ProductName: "EcoMug",
		Category:    "kitchenware",
		Answers:     models.NewAttributeMap(),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Score)
	assert.Equal(t, float64(82), *result.Score)
	require.NotNil(t, result.Summary)
	assert.Equal(t, "Strong material disclosure", *result.Summary)
}

func TestScoreAnswersAbsentFieldsStayNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).ScoreAnswers(context.Background(), ScoreRequest{})
	require.NoError(t, err)
	// The client never fabricates a judgment; defaulting is the caller's call.
	assert.Nil(t, result.Score)
	assert.Nil(t, result.Summary)
}

func TestScoreAnswersMalformedScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"score":"eighty-two"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ScoreAnswers(context.Background(), ScoreRequest{})
	assert.ErrorIs(t, err, apperrors.ErrAssistantUnavailable)
}

func TestGenerateReportAnalysisKeepsCategoryOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-report-analysis", r.URL.Path)
		w.Write([]byte(`{
			"executiveSummary":"Good overall.",
			"strengths":["s1"],
			"concerns":["c1","c2"],
			"recommendations":["r1"],
			"categoryAnalysis":{"sourcing":"solid","labor":"unclear","packaging":"wasteful"}
		}`))
	}))
	defer srv.Close()

	analysis, err := newTestClient(srv.URL).GenerateReportAnalysis(context.Background(), AnalysisRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Good overall.", analysis.ExecutiveSummary)
	assert.Equal(t, []string{"c1", "c2"}, analysis.Concerns)
	assert.Equal(t, []string{"sourcing", "labor", "packaging"}, analysis.CategoryAnalysis.Keys())
}
