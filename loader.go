package translit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File names inside a data directory.
const (
	SignListFile    = "sl.json"
	OverridesFile   = "epsd2-sl.json"
	CorrectionsFile = "corrections.yaml"

	WordformTableFile = "wordform_to_glyph_names.json"
	ReadingTableFile  = "morpheme_to_glyph_names.json"
	GlyphTableFile    = "glyph_name_to_glyph.json"
)

// LoadSignList reads an Oracc Sign List JSON export.
func LoadSignList(path string) (*SignList, error) {
	var sl SignList
	if err := readJSON(path, &sl); err != nil {
		return nil, err
	}
	return &sl, nil
}

// LoadOverrides reads the curated reading → sign name index. The file is
// an object with a single "index" member.
func LoadOverrides(path string) (map[string]string, error) {
	var doc struct {
		Index map[string]string `json:"index"`
	}
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	return doc.Index, nil
}

// LoadCorrections reads dataDir/corrections.yaml, falling back to the
// embedded defaults when the directory has none.
func LoadCorrections(dataDir string) (*Corrections, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, CorrectionsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultCorrections(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", CorrectionsFile, err)
	}
	return ParseCorrections(data)
}

// BuildTablesFromDir builds Tables from dataDir/sl.json and, when present,
// the override index in dataDir/epsd2-sl.json.
func BuildTablesFromDir(dataDir string) (*Tables, []Issue, error) {
	sl, err := LoadSignList(filepath.Join(dataDir, SignListFile))
	if err != nil {
		return nil, nil, err
	}
	overrides, err := LoadOverrides(filepath.Join(dataDir, OverridesFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, err
	}
	t, issues := BuildTables(sl, overrides)
	return t, issues, nil
}

// SaveTables writes the three lookup tables of t into dir as JSON.
func SaveTables(dir string, t *Tables) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := writeJSON(filepath.Join(dir, WordformTableFile), t.wordforms); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, ReadingTableFile), t.readings); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, GlyphTableFile), t.glyphs)
}

// LoadTables reads the three lookup tables written by SaveTables.
func LoadTables(dir string) (*Tables, error) {
	var (
		wordforms map[string][]string
		readings  map[string][]string
		glyphs    map[string]string
	)
	if err := readJSON(filepath.Join(dir, WordformTableFile), &wordforms); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, ReadingTableFile), &readings); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, GlyphTableFile), &glyphs); err != nil {
		return nil, err
	}
	return NewTables(wordforms, readings, glyphs), nil
}

// loadTablesAny prefers prebuilt tables in dataDir and builds them from the
// sign list otherwise.
func loadTablesAny(dataDir string) (*Tables, []Issue, error) {
	_, err := os.Stat(filepath.Join(dataDir, ReadingTableFile))
	if err == nil {
		t, err := LoadTables(dataDir)
		return t, nil, err
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("stat %s: %w", ReadingTableFile, err)
	}
	return BuildTablesFromDir(dataDir)
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON writes v with sorted keys and cuneiform, ampersands and angle
// brackets left unescaped.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
