package content

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"urlvet/urlinfo"
)

type fakeScraper struct {
	calls int
	fail  bool
}

func (f *fakeScraper) Scrape(ctx context.Context, url string, budget int) (*Payload, error) {
	f.calls++
	if f.fail {
		return nil, fmt.Errorf("render timeout")
	}
	return &Payload{
		Type:     TypeWebpage,
		Content:  strings.Repeat("x", 5000),
		Metadata: map[string]string{"title": "t", "url": url},
	}, nil
}

type fakePDF struct{ calls int }

func (f *fakePDF) Extract(ctx context.Context, url string, maxChars int) (*Payload, error) {
	f.calls++
	return &Payload{Type: TypePDF, Content: "pdf text", Metadata: map[string]string{"url": url}}, nil
}

type fakeAudio struct{ calls int }

func (f *fakeAudio) Transcribe(ctx context.Context, url string, maxSeconds int) (*Payload, error) {
	f.calls++
	return &Payload{Type: TypeAudio, Content: "spoken words", Metadata: map[string]string{"url": url}}, nil
}

func newTestDispatcher() (*Dispatcher, *fakeScraper, *fakePDF, *fakeAudio) {
	scraper := &fakeScraper{}
	pdfReader := &fakePDF{}
	audio := &fakeAudio{}
	return &Dispatcher{Scraper: scraper, PDF: pdfReader, Audio: audio, Budget: MaxContentChars}, scraper, pdfReader, audio
}

func TestAcquireExecutableShortCircuits(t *testing.T) {
	d, scraper, pdfReader, audio := newTestDispatcher()

	p := d.Acquire(context.Background(), "http://evil.com/setup.exe", "exe", urlinfo.ExtExecutable)
	if p == nil || p.Type != TypeExecutable {
		t.Fatalf("expected executable payload, got %+v", p)
	}
	if scraper.calls+pdfReader.calls+audio.calls != 0 {
		t.Error("executable shortcut must not invoke any collaborator")
	}
}

func TestAcquireRouting(t *testing.T) {
	d, scraper, pdfReader, audio := newTestDispatcher()
	ctx := context.Background()

	if p := d.Acquire(ctx, "http://a.com/song.mp3", "mp3", urlinfo.ExtMedia); p == nil || p.Type != TypeAudio {
		t.Errorf("mp3 should route to transcription, got %+v", p)
	}
	if p := d.Acquire(ctx, "http://a.com/doc.pdf", "pdf", urlinfo.ExtDocument); p == nil || p.Type != TypePDF {
		t.Errorf("pdf should route to pdf extraction, got %+v", p)
	}
	if p := d.Acquire(ctx, "http://a.com/index.html", "html", urlinfo.ExtWeb); p == nil || p.Type != TypeWebpage {
		t.Errorf("html should route to scrape, got %+v", p)
	}
	if p := d.Acquire(ctx, "http://a.com/", "", urlinfo.ExtNone); p == nil || p.Type != TypeWebpage {
		t.Errorf("no extension should route to scrape, got %+v", p)
	}
	if audio.calls != 1 || pdfReader.calls != 1 || scraper.calls != 2 {
		t.Errorf("unexpected call counts: audio %d pdf %d scrape %d", audio.calls, pdfReader.calls, scraper.calls)
	}
}

func TestAcquireTruncatesToBudget(t *testing.T) {
	d, _, _, _ := newTestDispatcher()
	p := d.Acquire(context.Background(), "http://a.com/", "", urlinfo.ExtNone)
	if p == nil {
		t.Fatal("expected payload")
	}
	if len(p.Content) != MaxContentChars {
		t.Errorf("content length %d, want %d", len(p.Content), MaxContentChars)
	}
}

func TestAcquireFailureMeansNoPayload(t *testing.T) {
	d, scraper, _, _ := newTestDispatcher()
	scraper.fail = true
	if p := d.Acquire(context.Background(), "http://a.com/", "", urlinfo.ExtNone); p != nil {
		t.Errorf("failed acquisition should yield nil payload, got %+v", p)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("hello", 2); got != "he" {
		t.Errorf("Truncate = %q, want %q", got, "he")
	}
	if got := Truncate("héllo", 2); got != "hé" {
		t.Errorf("Truncate must not split runes: %q", got)
	}
	if got := Truncate("x", 0); got != "" {
		t.Errorf("Truncate zero budget = %q", got)
	}
}

func TestPreprocessText(t *testing.T) {
	in := "Hello, how are YOU? This is   a sample\ttext!"
	want := "hello, you? sample text!"
	if got := PreprocessText(in); got != want {
		t.Errorf("PreprocessText = %q, want %q", got, want)
	}
	if got := PreprocessText(""); got != "" {
		t.Errorf("empty input = %q", got)
	}
}
