package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// maxContextBytes caps how much serialized chart data is forwarded to
// the model in one request
const maxContextBytes = 12000

// ErrMissingGeminiKey means the generative-AI key is not configured;
// surfaced to callers as a configuration error, never retried
var ErrMissingGeminiKey = errors.New("Gemini API key not configured")

// geminiRequest is the generateContent request body
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the subset of the generateContent response we read
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AIService forwards natural-language questions about chart data to
// the Gemini API: insights, chat, semantic filters, anomaly
// explanations, recommendations, predictions, layout suggestions and
// Markdown reports. It is a pass-through with prompt templating, not
// an analysis engine.
type AIService struct {
	apiKey     string
	baseURL    string
	model      string
	reportsDir string
	apiClient  *http.Client
	logger     *logrus.Logger
}

// NewAIService creates the Gemini client. baseURL and model are
// overridable for tests; empty values select the real endpoint.
func NewAIService(apiKey, baseURL, model, reportsDir string, logger *logrus.Logger) *AIService {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if model == "" {
		model = "gemini-pro"
	}
	return &AIService{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		reportsDir: reportsDir,
		apiClient:  &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Insights summarizes trends and standout performances for a dataset
func (s *AIService) Insights(ctx context.Context, sport string, data any) (string, error) {
	prompt := fmt.Sprintf("Summarize the top trends and standout performances for this %s dataset.", sport)
	text, err := s.generate(ctx, prompt, truncateJSON(data))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "No summary available.", nil
	}
	return text, nil
}

// Chat answers a free-form question, optionally grounded on chart
// context supplied by the UI
func (s *AIService) Chat(ctx context.Context, question string, chartContext any) (string, error) {
	parts := []string{
		"You are a sports data analyst. Answer the user's question. If relevant, include a link to the appropriate graph or chart section.",
		fmt.Sprintf("Question: %s", question),
	}
	if chartContext != nil {
		parts = append(parts, fmt.Sprintf("Context: %s", truncateJSON(chartContext)))
	}

	text, err := s.generate(ctx, parts...)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "No answer available.", nil
	}
	return text, nil
}

// Sentiment asks for the public sentiment around a team
func (s *AIService) Sentiment(ctx context.Context, team string) (string, error) {
	prompt := fmt.Sprintf("What is the public sentiment around %s in recent sports news and tweets?", team)
	text, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "No sentiment found.", nil
	}
	return text, nil
}

// Semantic parses a natural-language query into metric filters for
// chart rendering. The raw completion text is returned alongside, so
// the UI can fall back when the model does not emit valid JSON.
func (s *AIService) Semantic(ctx context.Context, query string, data any) (filters any, raw string, err error) {
	prompt := fmt.Sprintf("Given this dataset, parse the following user query and return a JSON object with metric filters for chart rendering.\nQuery: %s", query)
	text, err := s.generate(ctx, prompt, truncateJSON(data))
	if err != nil {
		return nil, "", err
	}

	var parsed map[string]any
	if jsonErr := json.Unmarshal([]byte(extractJSON(text)), &parsed); jsonErr == nil {
		return parsed, text, nil
	}
	return text, text, nil
}

// Explain asks the model why a charted anomaly occurred
func (s *AIService) Explain(ctx context.Context, sport string, anomaly any) (string, error) {
	prompt := fmt.Sprintf("Explain why this anomaly occurred: %s", truncateJSON(anomaly))
	text, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "No explanation available.", nil
	}
	return text, nil
}

// Recommendations suggests teams to follow from the user's past chart
// selections
func (s *AIService) Recommendations(ctx context.Context, selections any) (recommendations any, raw string, err error) {
	prompt := "Given this user's past selections, recommend 3 teams to follow."
	text, err := s.generate(ctx, prompt, truncateJSON(selections))
	if err != nil {
		return nil, "", err
	}

	var parsed []any
	if jsonErr := json.Unmarshal([]byte(extractJSON(text)), &parsed); jsonErr == nil {
		return parsed, text, nil
	}
	return text, text, nil
}

// Predict forecasts next game outcomes from historical stats. A
// completion that is not valid JSON yields an empty prediction list,
// never an error.
func (s *AIService) Predict(ctx context.Context, sport string, data any) (predictions []any, raw string, err error) {
	prompt := "Predict the next game outcomes based on these historical stats."
	text, err := s.generate(ctx, prompt, truncateJSON(data))
	if err != nil {
		return nil, "", err
	}

	predictions = []any{}
	if jsonErr := json.Unmarshal([]byte(extractJSON(text)), &predictions); jsonErr != nil {
		predictions = []any{}
	}
	return predictions, text, nil
}

// DashboardLayout suggests a personalized dashboard layout
func (s *AIService) DashboardLayout(ctx context.Context) (any, error) {
	prompt := "Suggest a dashboard layout for a user who views mostly ERA and OPS charts. Include layout sections, recommended widgets, and a brief rationale. Format as JSON."
	text, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var layout map[string]any
	if jsonErr := json.Unmarshal([]byte(extractJSON(text)), &layout); jsonErr == nil {
		return layout, nil
	}
	return text, nil
}

// Report generates a per-team performance summary in Markdown and
// saves it under the reports directory for download
func (s *AIService) Report(ctx context.Context, sport string, data any) (markdown, filename string, err error) {
	prompt := fmt.Sprintf("Write a performance summary for each %s team over the last 3 games. Use the provided data. Format the output as Markdown with a section for each team.", sport)
	text, err := s.generate(ctx, prompt, truncateJSON(data))
	if err != nil {
		return "", "", err
	}
	if text == "" {
		text = "# No report generated."
	}

	filename = fmt.Sprintf("report_%s_%d.md", sport, time.Now().UnixMilli())
	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.reportsDir, filename), []byte(text), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to save report: %w", err)
	}

	return text, filename, nil
}

// generate sends one generateContent call with each prompt string as
// its own content part
func (s *AIService) generate(ctx context.Context, parts ...string) (string, error) {
	if s.apiKey == "" {
		return "", ErrMissingGeminiKey
	}

	contents := make([]geminiContent, 0, len(parts))
	for _, p := range parts {
		contents = append(contents, geminiContent{Parts: []geminiPart{{Text: p}}})
	}

	jsonData, err := json.Marshal(geminiRequest{Contents: contents})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.apiClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Gemini request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// truncateJSON serializes a value and caps it at maxContextBytes
func truncateJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	if len(data) > maxContextBytes {
		data = data[:maxContextBytes]
	}
	return string(data)
}

// extractJSON trims completion text down to the outermost JSON value,
// tolerating models that wrap JSON in prose or code fences
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(text, pair[0])
		end := strings.LastIndex(text, pair[1])
		if start != -1 && end > start {
			return text[start : end+1]
		}
	}
	return text
}
