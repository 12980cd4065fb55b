package content

import (
	"context"
	"log"

	"urlvet/urlinfo"
)

// MaxAudioSeconds bounds how much audio the transcriber is asked to process.
const MaxAudioSeconds = 120

var audioExts = map[string]bool{
	"mp3": true, "wav": true, "aac": true, "ogg": true, "m4a": true,
	"flac": true, "wma": true,
}

// WebScraper renders a page and extracts its visible text and meta tags.
type WebScraper interface {
	Scrape(ctx context.Context, url string, budget int) (*Payload, error)
}

// PDFReader extracts text from a remote PDF up to a char budget.
type PDFReader interface {
	Extract(ctx context.Context, url string, maxChars int) (*Payload, error)
}

// Transcriber turns a remote audio file into text, bounded by duration.
type Transcriber interface {
	Transcribe(ctx context.Context, url string, maxSeconds int) (*Payload, error)
}

// Dispatcher picks an acquisition strategy per URL based on its file
// extension. Every branch absorbs its own failures: a failed acquisition is
// "no payload", never an error for the caller.
type Dispatcher struct {
	Scraper WebScraper
	PDF     PDFReader
	Audio   Transcriber
	Budget  int
}

// NewDispatcher wires the default collaborators.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		Scraper: NewChromeScraper(),
		PDF:     NewPDFExtractor(),
		Audio:   NewHTTPTranscriber(),
		Budget:  MaxContentChars,
	}
}

// Acquire returns the payload for url, or nil when nothing could be acquired.
// A payload with Type "executable" is the short-circuit signal: the URL points
// at an executable and no collaborator was (or will be) invoked for it.
func (d *Dispatcher) Acquire(ctx context.Context, url, ext string, category int) *Payload {
	budget := d.Budget
	if budget <= 0 {
		budget = MaxContentChars
	}

	switch {
	case category == urlinfo.ExtExecutable:
		return &Payload{
			Type:     TypeExecutable,
			Metadata: map[string]string{"url": url, "extension": ext},
		}

	case audioExts[ext]:
		if d.Audio == nil {
			return nil
		}
		payload, err := d.Audio.Transcribe(ctx, url, MaxAudioSeconds)
		if err != nil {
			log.Printf("[CONTENT] audio transcription failed for %s: %v", url, err)
			return nil
		}
		return clamp(payload, budget)

	case ext == "pdf":
		if d.PDF == nil {
			return nil
		}
		payload, err := d.PDF.Extract(ctx, url, budget)
		if err != nil {
			log.Printf("[CONTENT] pdf extraction failed for %s: %v", url, err)
			return nil
		}
		return clamp(payload, budget)

	default:
		if d.Scraper == nil {
			return nil
		}
		payload, err := d.Scraper.Scrape(ctx, url, budget)
		if err != nil {
			log.Printf("[CONTENT] scrape failed for %s: %v", url, err)
			return nil
		}
		return clamp(payload, budget)
	}
}

func clamp(p *Payload, budget int) *Payload {
	if p == nil {
		return nil
	}
	p.Content = Truncate(p.Content, budget)
	return p
}
