package content

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const scrapeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0"

// ChromeScraper renders pages in headless Chrome and falls back to a plain
// HTTP fetch parsed with goquery when Chrome is unavailable
// (SKIP_CHROMEDP=true) or the render fails.
type ChromeScraper struct {
	client *http.Client
}

func NewChromeScraper() *ChromeScraper {
	return &ChromeScraper{
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

func (s *ChromeScraper) Scrape(ctx context.Context, url string, budget int) (*Payload, error) {
	if os.Getenv("SKIP_CHROMEDP") != "true" {
		payload, err := s.scrapeWithChromedp(ctx, url, budget)
		if err == nil {
			return payload, nil
		}
		log.Printf("[SCRAPE] chromedp failed for %s, trying plain HTTP: %v", url, err)
	}
	return s.scrapeWithHTTP(ctx, url, budget)
}

func (s *ChromeScraper) scrapeWithChromedp(ctx context.Context, url string, budget int) (*Payload, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.UserAgent(scrapeUserAgent),
	)
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var bodyText, title, description, keywords string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Text("body", &bodyText, chromedp.ByQuery),
		chromedp.Title(&title),
		// Meta tags are each independently optional; missing ones yield "".
		chromedp.Evaluate(`(document.querySelector('meta[name="description"]')||{}).content || ''`, &description),
		chromedp.Evaluate(`(document.querySelector('meta[name="keywords"]')||{}).content || ''`, &keywords),
	)
	if err != nil {
		return nil, err
	}

	return buildWebPayload(url, bodyText, title, description, keywords, budget), nil
}

func (s *ChromeScraper) scrapeWithHTTP(ctx context.Context, url string, budget int) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", scrapeUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, err
	}

	bodyText := doc.Find("body").Text()
	title := strings.TrimSpace(doc.Find("title").First().Text())
	description := doc.Find(`meta[name="description"]`).AttrOr("content", "")
	keywords := doc.Find(`meta[name="keywords"]`).AttrOr("content", "")

	return buildWebPayload(url, bodyText, title, description, keywords, budget), nil
}

func buildWebPayload(url, bodyText, title, description, keywords string, budget int) *Payload {
	text := strings.Join(strings.Fields(bodyText), " ")
	return &Payload{
		Type:    TypeWebpage,
		Content: Truncate(text, budget),
		Metadata: map[string]string{
			"title":       title,
			"url":         url,
			"description": Truncate(description, budget/2),
			"keywords":    keywords,
		},
	}
}
