// Command translit cleans a CSV corpus of tablet transliterations and adds
// the resolved sign names and glyphs.
//
//	translit -in tablets.csv -out with_glyphs.csv -data data -workers 8
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/sumerian-ml/translit"
	"github.com/sumerian-ml/translit/internal/config"
)

const reportTop = 20

func main() {
	in := flag.String("in", "tablets.csv", "input CSV with id and transliteration columns")
	out := flag.String("out", "with_glyphs.csv", "output CSV")
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, cfg, *in, *out); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, in, out string) error {
	log.Printf("loading data from %s …", cfg.DataDir)
	p, err := translit.New(cfg.DataDir, translit.Options{CacheSize: cfg.CacheSize})
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	for _, is := range p.BuildIssues() {
		log.Printf("%s: %s", is.Kind, is.Line)
	}

	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	records, err := translit.ReadRecords(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	records, crep := translit.Collate(records, translit.DefaultCollateOptions())
	log.Printf("collated %d of %d records (language %d, excluded %d, no transliteration %d, duplicate id %d)",
		len(records), crep.Input, crep.Language, crep.Excluded, crep.NoTransliteration, crep.DuplicateID)

	records, stats, err := p.ProcessAll(ctx, records, cfg.Workers)
	if err != nil {
		return err
	}
	for _, rec := range records {
		for _, is := range rec.Issues {
			log.Printf("%s [%s] %s: %q", is.RecordID, is.Stage, is.Kind, is.Line)
		}
	}
	report(stats)

	n := len(records)
	records, frep := translit.Filter(records)
	log.Printf("kept %d of %d records (empty %d, duplicate text %d, duplicate glyphs %d)",
		len(records), n, frep.Empty, frep.DuplicateText, frep.DuplicateGlyphs)

	w, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := translit.WriteRecords(w, records); err != nil {
		w.Close()
		return fmt.Errorf("%s: %w", out, err)
	}
	if err := w.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s", out)
	return nil
}

func report(s *translit.Stats) {
	total := s.Resolved + s.Unresolved
	if total > 0 {
		log.Printf("morphemes: %d resolved, %d unknown (%.2f%%)",
			s.Resolved, s.Unresolved, 100*float64(s.Unresolved)/float64(total))
	}
	if names := s.GlyphsFound + s.GlyphsLost; names > 0 {
		log.Printf("sign names: %d with glyph, %d without (%.2f%%)",
			s.GlyphsFound, s.GlyphsLost, 100*float64(s.GlyphsLost)/float64(names))
	}
	for _, r := range s.Reasons() {
		log.Printf("----- %s: %d -----", r, s.Count(r))
		for _, ic := range s.Top(r, reportTop) {
			log.Printf(" > %s – %d", ic.Item, ic.Count)
		}
	}
}
