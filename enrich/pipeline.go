package enrich

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"urlvet/urlinfo"
)

// Row is one input record of a batch run.
type Row struct {
	URL   string
	Label string
}

// EnrichedRow is a Row augmented with WHOIS-derived fields. IsHTTPS is set
// only when the pipeline runs with HTTPS probing enabled.
type EnrichedRow struct {
	URL          string
	Label        string
	DomainAge    int
	DomainStatus int
	IsHTTPS      *bool
}

// LookupFunc fetches WHOIS info for one registrable domain.
type LookupFunc func(domain string) DomainInfo

// Pipeline enriches batches of (url, label) rows with domain age and status.
// Each Pipeline owns its run-scoped cache; build a fresh one per run.
type Pipeline struct {
	Workers    int
	ChunkSize  int
	ProbeHTTPS bool

	cache   *Cache
	lookup  LookupFunc
	limiter *rate.Limiter
	probe   func(url string) bool
}

func NewPipeline(lookup LookupFunc) *Pipeline {
	if lookup == nil {
		lookup = WhoisLookup
	}
	return &Pipeline{
		Workers:   6,
		ChunkSize: 100,
		cache:     NewCache(),
		lookup:    lookup,
		// WHOIS servers throttle aggressively; keep lookups to a trickle.
		limiter: rate.NewLimiter(rate.Limit(10), 10),
		probe:   urlinfo.ProbeHTTPS,
	}
}

// Run processes rows chunk by chunk, handing each finished chunk to sink in
// the original row order so memory stays bounded on large batches.
func (p *Pipeline) Run(ctx context.Context, rows []Row, sink func([]EnrichedRow) error) error {
	for start := 0; start < len(rows); start += p.ChunkSize {
		end := start + p.ChunkSize
		if end > len(rows) {
			end = len(rows)
		}

		chunk, err := p.processChunk(ctx, rows[start:end])
		if err != nil {
			return err
		}
		if err := sink(chunk); err != nil {
			return err
		}
		log.Printf("[ENRICH] processed rows %d-%d of %d (%d distinct domains so far)",
			start+1, end, len(rows), p.cache.Len())
	}
	return nil
}

func (p *Pipeline) processChunk(ctx context.Context, rows []Row) ([]EnrichedRow, error) {
	out := make([]EnrichedRow, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = p.processRow(gctx, row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// processRow never fails: rows whose domain cannot be determined simply skip
// enrichment and keep the zero values.
func (p *Pipeline) processRow(ctx context.Context, row Row) EnrichedRow {
	enriched := EnrichedRow{URL: row.URL, Label: row.Label}

	noProbe := false
	comps := urlinfo.Extract(row.URL, &noProbe)
	domain := comps.RegistrableDomain()
	if domain != "" {
		info := p.cache.Get(domain, func(d string) DomainInfo {
			if err := p.limiter.Wait(ctx); err != nil {
				return DomainInfo{}
			}
			return p.lookup(d)
		})
		enriched.DomainAge = info.Age
		enriched.DomainStatus = info.Status
	} else {
		log.Printf("[ENRICH] no registrable domain for %q, skipping", row.URL)
	}

	if p.ProbeHTTPS {
		v := p.probe(row.URL)
		enriched.IsHTTPS = &v
	}
	return enriched
}
