// internal/assistant/client.go
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clearlabel/transparency-backend/internal/apperrors"
	"github.com/clearlabel/transparency-backend/internal/config"
	"github.com/clearlabel/transparency-backend/internal/models"
)

// Client wraps the three remote assistant capabilities behind a fixed
// request/response contract. Every call is a single attempt with a bounded
// wait; any transport failure, non-2xx status, or payload that does not
// match the contract surfaces as apperrors.ErrAssistantUnavailable. The two
// failure families are logged distinctly so an unreachable service can be
// told apart from a misbehaving one.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.AssistantConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

type QuestionRequest struct {
	ProductName     string              `json:"productName"`
	Category        string              `json:"category"`
	Attributes      models.AttributeMap `json:"attributes"`
	PreviousAnswers models.AttributeMap `json:"previousAnswers"`
	AskedQuestions  []string            `json:"askedQuestions"`
}

type ScoreRequest struct {
	ProductName string              `json:"productName"`
	Category    string              `json:"category"`
	Answers     models.AttributeMap `json:"answers"`
}

// ScoreResult carries the assistant's judgment. Score and Summary stay nil
// when the field was absent; the caller decides what absence means, this
// client never synthesizes a value.
type ScoreResult struct {
	Score   *float64 `json:"score"`
	Summary *string  `json:"summary"`
}

type AnalysisRequest struct {
	ProductName       string              `json:"productName"`
	Category          string              `json:"category"`
	Answers           models.AttributeMap `json:"answers"`
	TransparencyScore *int                `json:"transparencyScore"`
}

// Analysis is the narrative payload the report assembler consumes.
// CategoryAnalysis keeps the assistant's ordering so assembled reports are
// deterministic for a given payload.
type Analysis struct {
	ExecutiveSummary string              `json:"executiveSummary"`
	Strengths        []string            `json:"strengths"`
	Concerns         []string            `json:"concerns"`
	Recommendations  []string            `json:"recommendations"`
	CategoryAnalysis models.AttributeMap `json:"categoryAnalysis"`
}

// GenerateQuestions asks the assistant for transparency questions and
// filters the reply to trimmed, non-empty strings. An empty filtered list is
// indistinguishable from an unreachable assistant for the caller.
func (c *Client) GenerateQuestions(ctx context.Context, req QuestionRequest) ([]string, error) {
	body, err := c.post(ctx, "/generate-questions", req)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Questions == nil {
		c.logMalformed("generate-questions", err)
		return nil, fmt.Errorf("%w: malformed generate-questions response", apperrors.ErrAssistantUnavailable)
	}

	questions := make([]string, 0, len(payload.Questions))
	for _, raw := range payload.Questions {
		var q string
		if err := json.Unmarshal(raw, &q); err != nil {
			continue // non-string entries are dropped, not fatal
		}
		if trimmed := strings.TrimSpace(q); trimmed != "" {
			questions = append(questions, trimmed)
		}
	}

	if len(questions) == 0 {
		c.logMalformed("generate-questions", fmt.Errorf("no usable questions in response"))
		return nil, fmt.Errorf("%w: assistant returned no usable questions", apperrors.ErrAssistantUnavailable)
	}

	return questions, nil
}

func (c *Client) ScoreAnswers(ctx context.Context, req ScoreRequest) (*ScoreResult, error) {
	body, err := c.post(ctx, "/transparency-score", req)
	if err != nil {
		return nil, err
	}

	var result ScoreResult
	if err := json.Unmarshal(body, &result); err != nil {
		c.logMalformed("score-answers", err)
		return nil, fmt.Errorf("%w: malformed score response", apperrors.ErrAssistantUnavailable)
	}

	return &result, nil
}

func (c *Client) GenerateReportAnalysis(ctx context.Context, req AnalysisRequest) (*Analysis, error) {
	body, err := c.post(ctx, "/generate-report-analysis", req)
	if err != nil {
		return nil, err
	}

	var analysis Analysis
	if err := json.Unmarshal(body, &analysis); err != nil {
		c.logMalformed("generate-report-analysis", err)
		return nil, fmt.Errorf("%w: malformed analysis response", apperrors.ErrAssistantUnavailable)
	}

	return &analysis, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode assistant request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build assistant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"operation": path,
			"error":     err.Error(),
		}).Warn("Assistant request failed")
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrAssistantUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithFields(logrus.Fields{
			"operation": path,
			"status":    resp.StatusCode,
		}).Warn("Assistant returned non-success status")
		return nil, fmt.Errorf("%w: %s returned status %d", apperrors.ErrAssistantUnavailable, path, resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("%w: reading %s response: %v", apperrors.ErrAssistantUnavailable, path, err)
	}

	return buf.Bytes(), nil
}

func (c *Client) logMalformed(operation string, err error) {
	fields := logrus.Fields{"operation": operation}
	if err != nil {
		fields["error"] = err.Error()
	}
	logrus.WithFields(fields).Warn("Assistant returned malformed payload")
}
