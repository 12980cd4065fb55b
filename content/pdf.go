package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

const maxPDFBytes = 20 * 1024 * 1024

// PDFExtractor downloads a remote PDF and extracts its text page by page,
// stopping as soon as the accumulated text exceeds the char budget so large
// documents are never fully decoded.
type PDFExtractor struct {
	client *http.Client
}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *PDFExtractor) Extract(ctx context.Context, url string, maxChars int) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes))
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text.WriteString(pageText)
		if text.Len() > maxChars {
			break
		}
	}

	return &Payload{
		Type:     TypePDF,
		Content:  Truncate(strings.TrimSpace(text.String()), maxChars),
		Metadata: pdfMetadata(reader, url),
	}, nil
}

func pdfMetadata(reader *pdf.Reader, url string) map[string]string {
	meta := map[string]string{"url": url}
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return meta
	}
	for _, key := range []string{"Title", "Author", "Subject", "Creator", "Producer"} {
		v := info.Key(key)
		if v.Kind() == pdf.String && v.RawString() != "" {
			meta[strings.ToLower(key)] = v.RawString()
		}
	}
	return meta
}
