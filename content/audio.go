package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// HTTPTranscriber calls an external speech-to-text service: audio URL and a
// duration cap in, transcribed text out. The endpoint comes from
// TRANSCRIBE_API_URL; without it the collaborator reports failure and the
// caller falls back to feature-only classification.
type HTTPTranscriber struct {
	baseURL string
	client  *http.Client
}

func NewHTTPTranscriber() *HTTPTranscriber {
	return &HTTPTranscriber{
		baseURL: os.Getenv("TRANSCRIBE_API_URL"),
		client:  &http.Client{Timeout: 90 * time.Second},
	}
}

func (t *HTTPTranscriber) Transcribe(ctx context.Context, url string, maxSeconds int) (*Payload, error) {
	if t.baseURL == "" {
		return nil, fmt.Errorf("TRANSCRIBE_API_URL not set")
	}

	body, err := json.Marshal(map[string]any{
		"url":          url,
		"max_duration": maxSeconds,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcribe status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, err
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode transcription: %w", err)
	}
	if out.Text == "" {
		return nil, fmt.Errorf("empty transcription")
	}

	return &Payload{
		Type:    TypeAudio,
		Content: out.Text,
		Metadata: map[string]string{
			"duration": strconv.Itoa(maxSeconds),
			"url":      url,
		},
	}, nil
}
