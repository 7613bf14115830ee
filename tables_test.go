package translit

import (
	"path/filepath"
	"slices"
	"testing"
)

func loadTestTables(t *testing.T) (*Tables, []Issue) {
	t.Helper()
	tables, issues, err := BuildTablesFromDir("testdata")
	if err != nil {
		t.Fatalf("BuildTablesFromDir: %v", err)
	}
	return tables, issues
}

func TestBuildTablesFromSignList(t *testing.T) {
	tables, _ := loadTestTables(t)

	readings := []struct {
		reading string
		want    []string
	}{
		{"an", []string{"AN"}},
		{"d", []string{"AN"}},
		{"du", []string{"DU", "GUB"}},
		{"3(diš)", []string{"3(DIŠ)"}},
		{"lil₂", []string{"KID"}},       // override replaces [E₂ KID]
		{"lil₂(E₂)", []string{"E₂"}},    // override adds a key
		{"dabₓ", []string{"|GUD&GUD|"}}, // &amp; unescaped
	}
	for _, tt := range readings {
		got, ok := tables.Readings(tt.reading)
		if !ok || !slices.Equal(got, tt.want) {
			t.Errorf("Readings(%q) = %v, %v, want %v", tt.reading, got, ok, tt.want)
		}
	}
	if _, ok := tables.Readings("du@g"); ok {
		t.Error(`Readings("du@g") found a value entry without sl:v`)
	}

	glyphs := []struct {
		name, want string
	}{
		{"AN", "𒀭"},
		{"3(DIŠ)", "𒐈"},
		{"GUB", ""},
		{"|GUD&GUD|", "𒄞𒄞"},
		{"ŠE₃", "𒂠"},
		{"EŠ₂", "𒁁"},
	}
	for _, tt := range glyphs {
		got, ok := tables.Glyph(tt.name)
		if !ok || got != tt.want {
			t.Errorf("Glyph(%q) = %q, %v, want %q", tt.name, got, ok, tt.want)
		}
	}
	if tables.IsSignName("ZU") {
		t.Error(`IsSignName("ZU") = true`)
	}

	if got, _ := tables.Wordform("{d}en-lil₂"); !slices.Equal(got, []string{"AN"}) {
		t.Errorf(`Wordform("{d}en-lil₂") = %v, want [AN]`, got)
	}
	if got, _ := tables.Wordform("en"); !slices.Equal(got, []string{"EN"}) {
		t.Errorf(`Wordform("en") = %v, want [EN]`, got)
	}
	if got := tables.SignReadings("AN"); !slices.Equal(got, []string{"an", "d", "diŋir"}) {
		t.Errorf(`SignReadings("AN") = %v`, got)
	}
}

func TestBuildReportsGlyphConflicts(t *testing.T) {
	_, issues := loadTestTables(t)
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1: %v", len(issues), issues)
	}
	is := issues[0]
	if is.Kind != IssueGlyphConflict || is.Line != "ŠE₃ 𒂠 𒁁" {
		t.Errorf("issue = %+v, want glyph conflict on ŠE₃", is)
	}
}

func TestBuilderComposesKeys(t *testing.T) {
	b := NewBuilder()
	b.AddGlyph("ŠU", "𒋗")
	b.AddReading("ŠU", "s\u030Cu") // decomposed
	b.AddReading("ŠU", "")         // ignored
	tables, issues := b.Build()
	if len(issues) != 0 {
		t.Errorf("issues = %v", issues)
	}
	got, ok := tables.Readings("šu")
	if !ok || !slices.Equal(got, []string{"ŠU"}) {
		t.Errorf(`Readings("šu") = %v, %v, want [ŠU]`, got, ok)
	}
	if _, readings, signs := tables.Len(); readings != 1 || signs != 1 {
		t.Errorf("Len() readings=%d signs=%d, want 1 1", readings, signs)
	}
}

func TestTablesAreCopies(t *testing.T) {
	tables, _ := loadTestTables(t)
	got, _ := tables.Readings("du")
	got[0] = "ZU"
	if again, _ := tables.Readings("du"); again[0] != "DU" {
		t.Errorf("Readings result aliases the table: %v", again)
	}
}

func TestSaveLoadTables(t *testing.T) {
	tables, _ := loadTestTables(t)
	dir := filepath.Join(t.TempDir(), "tables")
	if err := SaveTables(dir, tables); err != nil {
		t.Fatalf("SaveTables: %v", err)
	}
	loaded, err := LoadTables(dir)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}

	w1, r1, s1 := tables.Len()
	w2, r2, s2 := loaded.Len()
	if w1 != w2 || r1 != r2 || s1 != s2 {
		t.Errorf("Len() = %d %d %d after reload, want %d %d %d", w2, r2, s2, w1, r1, s1)
	}
	if got, _ := loaded.Readings("du"); !slices.Equal(got, []string{"DU", "GUB"}) {
		t.Errorf(`reloaded Readings("du") = %v`, got)
	}
	if g, ok := loaded.Glyph("GUB"); !ok || g != "" {
		t.Errorf(`reloaded Glyph("GUB") = %q, %v`, g, ok)
	}
}

func TestLoadTablesMissing(t *testing.T) {
	if _, err := LoadTables(t.TempDir()); err == nil {
		t.Error("LoadTables on an empty directory: want error")
	}
}
