package enrich

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCacheSingleLookupPerDomain(t *testing.T) {
	cache := NewCache()
	var calls int64

	fetch := func(d string) DomainInfo {
		atomic.AddInt64(&calls, 1)
		time.Sleep(10 * time.Millisecond) // widen the race window
		return DomainInfo{Age: 42, Status: 2}
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			info := cache.Get("example.com", fetch)
			if info.Age != 42 || info.Status != 2 {
				t.Errorf("got %+v", info)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("fetch called %d times for one domain, want 1", calls)
	}
	if cache.Len() != 1 {
		t.Errorf("cache has %d entries, want 1", cache.Len())
	}
}

func TestPipelineOneWhoisCallPerDomain(t *testing.T) {
	var calls int64
	p := NewPipeline(func(domain string) DomainInfo {
		atomic.AddInt64(&calls, 1)
		return DomainInfo{Age: 100, Status: 1}
	})
	p.ChunkSize = 4
	p.Workers = 4

	rows := make([]Row, 12)
	for i := range rows {
		rows[i] = Row{URL: "http://sub.example.com/page", Label: "benign"}
	}

	var out []EnrichedRow
	err := p.Run(context.Background(), rows, func(chunk []EnrichedRow) error {
		out = append(out, chunk...)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Errorf("whois called %d times for one distinct domain, want 1", calls)
	}
	if len(out) != len(rows) {
		t.Fatalf("got %d rows, want %d", len(out), len(rows))
	}
	for i, row := range out {
		if row.DomainAge != 100 || row.DomainStatus != 1 {
			t.Errorf("row %d not enriched: %+v", i, row)
		}
	}
}

func TestPipelinePreservesRowOrder(t *testing.T) {
	p := NewPipeline(func(domain string) DomainInfo {
		return DomainInfo{Age: len(domain), Status: 2}
	})
	p.ChunkSize = 3
	p.Workers = 3

	rows := []Row{
		{URL: "http://aaa.com/1", Label: "benign"},
		{URL: "http://bbbb.com/2", Label: "phishing"},
		{URL: "not a url at all", Label: "malware"},
		{URL: "http://ccccc.com/3", Label: "benign"},
	}

	var out []EnrichedRow
	if err := p.Run(context.Background(), rows, func(chunk []EnrichedRow) error {
		out = append(out, chunk...)
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, row := range out {
		if row.URL != rows[i].URL || row.Label != rows[i].Label {
			t.Errorf("row %d out of order: %+v", i, row)
		}
	}
	// unparseable domain skips enrichment, keeps zero values
	if out[2].DomainAge != 0 || out[2].DomainStatus != 0 {
		t.Errorf("row without domain should not be enriched: %+v", out[2])
	}
	if out[3].DomainAge == 0 {
		t.Errorf("row after a skipped one should still be enriched: %+v", out[3])
	}
}

func TestAgeDays(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	if got := AgeDays(nil, now); got != 0 {
		t.Errorf("no dates: %d, want 0", got)
	}

	dates := []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), // earliest wins
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	want := int(now.Sub(dates[1]).Hours() / 24)
	if got := AgeDays(dates, now); got != want {
		t.Errorf("AgeDays = %d, want %d", got, want)
	}

	future := []time.Time{now.AddDate(1, 0, 0)}
	if got := AgeDays(future, now); got != 0 {
		t.Errorf("future date: %d, want 0", got)
	}
}

func TestCreationDates(t *testing.T) {
	parsed := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)

	dates := CreationDates("2020-03-04", &parsed)
	if len(dates) != 2 {
		t.Fatalf("got %d dates, want 2", len(dates))
	}
	if !dates[0].Equal(parsed) {
		t.Errorf("dates[0] = %v", dates[0])
	}

	if got := CreationDates("gibberish", nil); len(got) != 0 {
		t.Errorf("unparseable date should yield none, got %v", got)
	}
	if got := CreationDates("04-Mar-2020", nil); len(got) != 1 {
		t.Errorf("legacy layout should parse, got %v", got)
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		statuses []string
		want     int
	}{
		{nil, 0},
		{[]string{}, 0},
		{[]string{"ok"}, 1},
		{[]string{"clientTransferProhibited", "serverHold"}, 1},
		{[]string{"clientTransferProhibited https://icann.org/epp#clientTransferProhibited"}, 2},
		{[]string{"PENDINGDELETE"}, 1},
		{[]string{"active"}, 2},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.statuses); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.statuses, got, tt.want)
		}
	}
}

func TestCSVWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.csv")
	outPath := filepath.Join(dir, "out.csv")

	if err := os.WriteFile(inPath, []byte("url,type\nhttp://a.com/x,benign\nhttp://b.com/y,phishing\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadRows(inPath)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 2 || rows[0].URL != "http://a.com/x" || rows[1].Label != "phishing" {
		t.Fatalf("rows = %+v", rows)
	}

	w, err := NewWriter(outPath, true)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	httpsYes := true
	err = w.WriteChunk([]EnrichedRow{
		{URL: "http://a.com/x", Label: "benign", DomainAge: 9000, DomainStatus: 2, IsHTTPS: &httpsYes},
		{URL: "http://b.com/y", Label: "phishing", DomainAge: 3, DomainStatus: 1},
	})
	if err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 (header + 2)", len(records))
	}
	if records[0][4] != "is_https" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][2] != "9000" || records[1][4] != "1" {
		t.Errorf("row 1 = %v", records[1])
	}
	if records[2][3] != "1" || records[2][4] != "0" {
		t.Errorf("row 2 = %v", records[2])
	}
}
