package translit

import (
	"slices"
	"testing"
)

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestCollate(t *testing.T) {
	in := []Record{
		{ID: "P1", Language: "Sumerian", Period: "Ur III", Genre: "Administrative", Transliteration: "a"},
		{ID: "P2", Language: "", Period: "", Genre: "uncertain", Transliteration: "b"},
		{ID: "P1", Language: "Sumerian", Transliteration: "again"},
		{ID: "P3", Language: "Akkadian", Transliteration: "a-na"},
		{ID: "P4", Language: "Sumerian", Period: "Ebla", Transliteration: "an"},
		{ID: "P5", Language: "Sumerian", Genre: "fake (modern)", Transliteration: "an"},
		{ID: "P6", Language: "Sumerian", Period: "Uncertain"},
	}
	got, rep := Collate(in, DefaultCollateOptions())
	if !slices.Equal(ids(got), []string{"P1", "P2"}) {
		t.Fatalf("Collate kept %v, want [P1 P2]", ids(got))
	}
	if got[0].Transliteration != "a" {
		t.Errorf("first P1 should win, got %q", got[0].Transliteration)
	}
	if got[1].Period != "Unknown" || got[1].Genre != "Unknown" {
		t.Errorf("P2 period/genre = %q/%q, want Unknown/Unknown", got[1].Period, got[1].Genre)
	}
	want := CollateReport{Input: 7, Language: 1, Excluded: 2, NoTransliteration: 1, DuplicateID: 1}
	if rep != want {
		t.Errorf("report = %+v, want %+v", rep, want)
	}
}

func TestFilter(t *testing.T) {
	in := []Record{
		{ID: "empty", Clean: "<SURFACE>\n...\n"},
		{ID: "empty2", Final: "==SURFACE==\n...\n==RULING==", Glyphs: "==SURFACE==\n...\n==RULING=="},
		{ID: "a", Final: "lugal-e", Glyphs: "𒈗𒂊"},
		{ID: "b", Final: "lugal-e", Glyphs: "𒈗𒂊"},
		{ID: "c", Final: "lugal-a", Glyphs: "𒈗𒂊"},
		{ID: "d", Final: "e₂-a", Glyphs: "𒂍𒀀"},
		{ID: "e", Clean: "e₂-gal"},
	}
	got, rep := Filter(in)
	if !slices.Equal(ids(got), []string{"a", "d", "e"}) {
		t.Errorf("Filter kept %v, want [a d e]", ids(got))
	}
	want := FilterReport{Empty: 2, DuplicateText: 1, DuplicateGlyphs: 1}
	if rep != want {
		t.Errorf("report = %+v, want %+v", rep, want)
	}
}
