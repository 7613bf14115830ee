package translit

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func readTablets(t *testing.T) []Record {
	t.Helper()
	f, err := os.Open("testdata/tablets.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := ReadRecords(f)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	return records
}

func TestNew(t *testing.T) {
	p, err := New("testdata", Options{CacheSize: 16})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	issues := p.BuildIssues()
	if len(issues) != 1 || issues[0].Kind != IssueGlyphConflict {
		t.Errorf("BuildIssues() = %+v, want one glyph conflict", issues)
	}

	rec, stats := p.Process(Record{ID: "P1", Transliteration: "{d}en-lil₂-ra [x]"})
	if rec.Final != "{d}en-lil₂-ra..." {
		t.Errorf("Final = %q", rec.Final)
	}
	if rec.SignNames != "AN-EN-KID-RA ..." {
		t.Errorf("SignNames = %q", rec.SignNames)
	}
	if stats.Resolved != 4 || stats.Unresolved != 0 {
		t.Errorf("stats = %d/%d, want 4/0", stats.Resolved, stats.Unresolved)
	}
}

func TestNewPrebuilt(t *testing.T) {
	built, _, err := BuildTablesFromDir("testdata")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := SaveTables(dir, built); err != nil {
		t.Fatalf("SaveTables: %v", err)
	}
	p, err := New(dir, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.BuildIssues() != nil {
		t.Errorf("prebuilt tables reported issues: %+v", p.BuildIssues())
	}
	if !reflect.DeepEqual(p.Tables(), built) {
		t.Error("prebuilt tables differ from the built ones")
	}
}

func TestNewMissingData(t *testing.T) {
	if _, err := New(t.TempDir(), Options{}); err == nil {
		t.Error("New on an empty directory: want error")
	}
}

func TestProcessAllMatchesSequential(t *testing.T) {
	p, err := New("testdata", Options{CacheSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	records, _ := Collate(readTablets(t), DefaultCollateOptions())

	want := make([]Record, len(records))
	wantStats := NewStats()
	for i, rec := range records {
		var s *Stats
		want[i], s = p.Process(rec)
		wantStats.Merge(s)
	}

	got, stats, err := p.ProcessAll(context.Background(), records, 4)
	if err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ProcessAll differs from sequential processing:\ngot  %+v\nwant %+v", got, want)
	}
	if !reflect.DeepEqual(stats, wantStats) {
		t.Errorf("stats = %+v, want %+v", stats, wantStats)
	}

	var p2 Record
	for _, rec := range got {
		if rec.ID == "P2" {
			p2 = rec
		}
	}
	if !strings.HasSuffix(p2.Final, "\n...") {
		t.Errorf("P2 final = %q, want a trailing missing line", p2.Final)
	}
}

func TestProcessAllCanceled(t *testing.T) {
	p, err := New("testdata", Options{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := p.ProcessAll(ctx, readTablets(t), 2); !errors.Is(err, context.Canceled) {
		t.Errorf("ProcessAll(canceled) error = %v, want context.Canceled", err)
	}
}
