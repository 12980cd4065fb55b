package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient communicates with Google's Gemini AI API.
type GeminiClient struct {
	APIKey     string
	HTTPClient *http.Client
	Model      string
}

// Gemini API request/response structures
type GeminiRequest struct {
	Contents          []GeminiContent        `json:"contents"`
	SystemInstruction *GeminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text string `json:"text"`
}

type GeminiGenerationConfig struct {
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
	Error      *GeminiError      `json:"error,omitempty"`
}

type GeminiCandidate struct {
	Content GeminiResponseContent `json:"content"`
}

type GeminiResponseContent struct {
	Parts []GeminiPart `json:"parts"`
	Role  string       `json:"role"`
}

type GeminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Classification mirrors the JSON object the model is instructed to return.
type Classification struct {
	Classification string   `json:"classification"`
	Confidence     float64  `json:"confidence"`
	Reasons        []string `json:"reasons"`
	Details        string   `json:"details"`
}

// Global client instance
var geminiClient *GeminiClient

// GetGeminiClient returns singleton Gemini client
func GetGeminiClient() (*GeminiClient, error) {
	if geminiClient != nil {
		return geminiClient, nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiClient = &GeminiClient{
		APIKey: apiKey,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		Model: "gemini-2.0-flash",
	}

	return geminiClient, nil
}

// ClassifyContent sends a serialized content payload to Gemini and decodes the
// structured safe/unsafe verdict. A nil result always comes with a non-nil
// error; callers treat it as a signal to fall back to feature-based
// classification.
func (c *GeminiClient) ClassifyContent(ctx context.Context, payload string) (*Classification, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty payload")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		geminiBaseURL, c.Model, c.APIKey)

	reqBody := GeminiRequest{
		Contents: []GeminiContent{
			{Role: "user", Parts: []GeminiPart{{Text: payload}}},
		},
		SystemInstruction: &GeminiContent{
			Parts: []GeminiPart{{Text: classifierInstruction}},
		},
		GenerationConfig: GeminiGenerationConfig{
			Temperature:      0.1,
			MaxOutputTokens:  1024,
			ResponseMimeType: "application/json",
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response GeminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("Gemini API error: %s", response.Error.Message)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini API")
	}

	return ParseClassification(response.Candidates[0].Content.Parts[0].Text)
}

// ParseClassification decodes and validates the model's JSON verdict.
func ParseClassification(text string) (*Classification, error) {
	var result Classification
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}
	if result.Classification != "safe" && result.Classification != "unsafe" {
		return nil, fmt.Errorf("unexpected classification %q", result.Classification)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return nil, fmt.Errorf("confidence %v out of range", result.Confidence)
	}
	if result.Reasons == nil {
		result.Reasons = []string{}
	}
	return &result, nil
}
