package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"urlvet/ai"
	"urlvet/content"
	"urlvet/features"
	"urlvet/urlinfo"
)

// ErrNoURL rejects a request before any processing happens.
var ErrNoURL = errors.New("url required")

// Result is the API-visible classification outcome. Exactly one is returned
// per request.
type Result struct {
	Classification string   `json:"classification"` // safe | unsafe
	Confidence     float64  `json:"confidence"`
	Reasons        []string `json:"reasons"`
	Details        string   `json:"details"`
}

// ContentClassifier is the opaque text-in/JSON-out LLM collaborator; nil
// result or any error triggers the feature-based fallback.
type ContentClassifier interface {
	ClassifyContent(ctx context.Context, payload string) (*ai.Classification, error)
}

// Class-index to label mapping for the opaque scorer. Anything outside the
// table is treated as phishing, the conservative default.
var classLabels = map[int]string{
	0: "benign",
	1: "phishing",
	2: "defacement",
	3: "malware",
}

// Orchestrator sequences content acquisition, content classification and the
// feature-based fallback into exactly one Result per URL.
type Orchestrator struct {
	Features   *features.Builder
	Dispatcher *content.Dispatcher
	Content    ContentClassifier // optional
	Scorer     Scorer

	// ProbeHTTPS is swappable for tests; defaults to the live probe.
	ProbeHTTPS func(url string) bool
}

func NewOrchestrator(builder *features.Builder, dispatcher *content.Dispatcher, contentClassifier ContentClassifier, scorer Scorer) *Orchestrator {
	return &Orchestrator{
		Features:   builder,
		Dispatcher: dispatcher,
		Content:    contentClassifier,
		Scorer:     scorer,
		ProbeHTTPS: urlinfo.ProbeHTTPS,
	}
}

// Classify runs the full pipeline for one raw URL.
func (o *Orchestrator) Classify(ctx context.Context, rawURL string) (*Result, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, ErrNoURL
	}

	https := o.ProbeHTTPS(rawURL)
	protocol := "http"
	if https {
		protocol = "https"
	}
	normURL := urlinfo.Normalize(rawURL, protocol)
	comps := urlinfo.Extract(normURL, &https)

	payload := o.Dispatcher.Acquire(ctx, normURL, comps.Ext, comps.ExtCategory)
	if payload != nil && payload.Type == content.TypeExecutable {
		return &Result{
			Classification: "unsafe",
			Confidence:     1.0,
			Reasons:        []string{"executable"},
			Details:        fmt.Sprintf("URL points at an executable file (.%s)", comps.Ext),
		}, nil
	}

	if payload != nil && o.Content != nil {
		if res := o.classifyContent(ctx, payload); res != nil {
			return res, nil
		}
	}

	return o.classifyByFeatures(ctx, normURL, comps)
}

// classifyContent serializes the payload for the LLM collaborator. Any
// failure is absorbed here and reported as nil so the caller falls back.
func (o *Orchestrator) classifyContent(ctx context.Context, payload *content.Payload) *Result {
	payload.Content = content.PreprocessText(payload.Content)

	serialized, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[CLASSIFY] payload serialization failed: %v", err)
		return nil
	}

	verdict, err := o.Content.ClassifyContent(ctx, string(serialized))
	if err != nil || verdict == nil {
		log.Printf("[CLASSIFY] content classifier unavailable, falling back to features: %v", err)
		return nil
	}

	return &Result{
		Classification: verdict.Classification,
		Confidence:     verdict.Confidence,
		Reasons:        verdict.Reasons,
		Details:        verdict.Details,
	}
}

func (o *Orchestrator) classifyByFeatures(ctx context.Context, normURL string, comps urlinfo.Components) (*Result, error) {
	vector := o.Features.Build(normURL, comps)

	class, probs, err := o.Scorer.Predict(ctx, vector)
	if err != nil {
		return nil, fmt.Errorf("scorer: %w", err)
	}

	label, ok := classLabels[class]
	if !ok {
		label = "phishing"
	}

	classification := "unsafe"
	if label == "benign" {
		classification = "safe"
	}

	confidence := 0.0
	if class >= 0 && class < len(probs) {
		confidence = probs[class]
	}

	return &Result{
		Classification: classification,
		Confidence:     confidence,
		Reasons:        []string{label},
		Details:        "",
	}, nil
}
