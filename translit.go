// Package translit cleans annotated Sumerian cuneiform transliterations
// into a small token alphabet and resolves them onto Oracc sign names and
// Unicode cuneiform glyphs, using lookup tables built from the Oracc Sign
// List.
package translit

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Options tunes a Pipeline.
type Options struct {
	// CacheSize is the number of resolved wordforms kept in memory; zero
	// disables the cache.
	CacheSize int
}

// Pipeline runs normalization and resolution over records. It holds only
// immutable state and is safe for concurrent use.
type Pipeline struct {
	normalizer *Normalizer
	resolver   *Resolver

	// issues are the data-quality problems found while building the
	// tables, such as sign names with several glyphs.
	issues []Issue
}

// New loads the lookup tables and corrections from dataDir and returns a
// ready-to-use Pipeline. Prebuilt tables (morpheme_to_glyph_names.json and
// friends) are used when present; otherwise the tables are built from
// sl.json and epsd2-sl.json.
func New(dataDir string, opts Options) (*Pipeline, error) {
	t, issues, err := loadTablesAny(dataDir)
	if err != nil {
		return nil, err
	}
	c, err := LoadCorrections(dataDir)
	if err != nil {
		return nil, err
	}
	p, err := NewPipeline(t, c, opts)
	if err != nil {
		return nil, err
	}
	p.issues = issues
	return p, nil
}

// NewPipeline returns a Pipeline over already loaded tables. A nil c uses
// the embedded corrections.
func NewPipeline(t *Tables, c *Corrections, opts Options) (*Pipeline, error) {
	r, err := NewResolver(t, c, opts.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Pipeline{normalizer: NewNormalizer(), resolver: r}, nil
}

// Normalizer returns the text normalizer.
func (p *Pipeline) Normalizer() *Normalizer { return p.normalizer }

// Resolver returns the sign resolver.
func (p *Pipeline) Resolver() *Resolver { return p.resolver }

// Tables returns the lookup tables.
func (p *Pipeline) Tables() *Tables { return p.resolver.Tables() }

// BuildIssues returns the problems found while building the tables.
func (p *Pipeline) BuildIssues() []Issue { return p.issues }

// Process normalizes and resolves one record.
func (p *Pipeline) Process(rec Record) (Record, *Stats) {
	clean, issues := p.normalizer.Normalize(rec.ID, rec.Transliteration)
	res := p.resolver.Resolve(clean)
	rec.Clean = clean
	rec.Final = res.Text
	rec.SignNames = res.SignNames
	rec.Glyphs = res.Glyphs
	rec.Counts = res.Counts
	rec.Issues = issues
	return rec, res.Stats
}

// ProcessAll processes records with up to workers goroutines. The output
// keeps the input order and matches what sequential processing yields;
// the per-record statistics are merged once all workers are done.
// Cancelling ctx stops scheduling new records and returns ctx's error.
func (p *Pipeline) ProcessAll(ctx context.Context, records []Record, workers int) ([]Record, *Stats, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]Record, len(records))
	stats := make([]*Stats, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i], stats[i] = p.Process(records[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	total := NewStats()
	for _, s := range stats {
		total.Merge(s)
	}
	return out, total, nil
}
