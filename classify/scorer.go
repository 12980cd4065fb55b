package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"urlvet/features"
)

// Scorer is the opaque trained model: a feature vector in, a predicted class
// index and per-class probabilities out. This is the one collaborator whose
// failure fails the request, because there is no further fallback behind it.
type Scorer interface {
	Predict(ctx context.Context, v features.Vector) (class int, probs []float64, err error)
}

// HTTPScorer calls a model-serving endpoint (MODEL_API_URL). The request
// carries both the name->value mapping and the fixed field order so the server
// can assemble the row exactly as the model was trained.
type HTTPScorer struct {
	URL    string
	Client *http.Client
}

func NewHTTPScorer() *HTTPScorer {
	url := os.Getenv("MODEL_API_URL")
	if url == "" {
		url = "http://localhost:8000/predict"
	}
	return &HTTPScorer{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type scoreRequest struct {
	Features features.Vector `json:"features"`
	Order    []string        `json:"order"`
}

type scoreResponse struct {
	Class         int       `json:"class"`
	Probabilities []float64 `json:"probabilities"`
}

func (s *HTTPScorer) Predict(ctx context.Context, v features.Vector) (int, []float64, error) {
	body, err := json.Marshal(scoreRequest{Features: v, Order: features.Names})
	if err != nil {
		return 0, nil, fmt.Errorf("marshal features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("model request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return 0, nil, fmt.Errorf("read model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, nil, fmt.Errorf("model status %d: %s", resp.StatusCode, raw)
	}

	var out scoreResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, nil, fmt.Errorf("decode model response: %w", err)
	}
	return out.Class, out.Probabilities, nil
}
