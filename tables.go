package translit

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tables holds the three lookup mappings built from a sign list. A Tables
// value never changes after Build; every accessor returns a copy.
type Tables struct {
	// wordforms maps a lemma/wordform base → candidate sign names.
	wordforms map[string][]string

	// readings maps a reading (morpheme) → candidate sign names.
	// Ambiguity is the norm: lil₂ → [AN E₂].
	readings map[string][]string

	// glyphs maps sign name → Unicode glyph, or "" when the sign list
	// records no visual form.
	glyphs map[string]string

	// signReadings is the inverse of readings: sign name → readings.
	signReadings map[string][]string
}

// NewTables builds Tables directly from the three serialized mappings.
// Keys are composed to NFC and candidate lists are deduplicated in order.
func NewTables(wordforms, readings map[string][]string, glyphs map[string]string) *Tables {
	t := &Tables{
		wordforms: make(map[string][]string, len(wordforms)),
		readings:  make(map[string][]string, len(readings)),
		glyphs:    make(map[string]string, len(glyphs)),
	}
	copyCandidates(t.wordforms, wordforms)
	copyCandidates(t.readings, readings)
	for name, g := range glyphs {
		t.glyphs[nfc(name)] = g
	}
	t.index()
	return t
}

func copyCandidates(dst, src map[string][]string) {
	for k, names := range src {
		set := newOrderedSet()
		for _, n := range names {
			set.add(nfc(n))
		}
		dst[nfc(k)] = set.items
	}
}

// index derives signReadings from readings. Readings are visited in sorted
// order so the inverse lists are deterministic.
func (t *Tables) index() {
	t.signReadings = make(map[string][]string)
	keys := make([]string, 0, len(t.readings))
	for k := range t.readings {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, reading := range keys {
		for _, name := range t.readings[reading] {
			t.signReadings[name] = append(t.signReadings[name], reading)
		}
	}
}

// Readings returns the candidate sign names for a reading.
func (t *Tables) Readings(reading string) ([]string, bool) {
	names, ok := t.readings[reading]
	return slices.Clone(names), ok
}

// Wordform returns the candidate sign names for a lemma/wordform base.
func (t *Tables) Wordform(form string) ([]string, bool) {
	names, ok := t.wordforms[form]
	return slices.Clone(names), ok
}

// Glyph returns the Unicode glyph of a sign name. The boolean reports
// whether the name is known at all; a known name may still have no glyph.
func (t *Tables) Glyph(name string) (string, bool) {
	g, ok := t.glyphs[name]
	return g, ok
}

// IsSignName reports whether name is a known sign name.
func (t *Tables) IsSignName(name string) bool {
	_, ok := t.glyphs[name]
	return ok
}

// SignReadings returns every reading that can be written with name.
func (t *Tables) SignReadings(name string) []string {
	return slices.Clone(t.signReadings[name])
}

// Len returns the number of wordform, reading and sign-name keys.
func (t *Tables) Len() (wordforms, readings, signNames int) {
	return len(t.wordforms), len(t.readings), len(t.glyphs)
}

// orderedSet is a string set that remembers insertion order.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

// Builder accumulates sign-list registrations and produces Tables.
type Builder struct {
	wordforms map[string]*orderedSet
	readings  map[string]*orderedSet
	glyphs    map[string]*orderedSet
	// glyphOrder keeps the registration order of sign names so conflict
	// reports come out in a stable order.
	glyphOrder []string
	overrides  map[string]string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		wordforms: make(map[string]*orderedSet),
		readings:  make(map[string]*orderedSet),
		glyphs:    make(map[string]*orderedSet),
		overrides: make(map[string]string),
	}
}

// AddGlyph registers the glyph of a sign name. An empty glyph still makes
// the name known.
func (b *Builder) AddGlyph(name, glyph string) {
	name = signName(name)
	set, ok := b.glyphs[name]
	if !ok {
		set = newOrderedSet()
		b.glyphs[name] = set
		b.glyphOrder = append(b.glyphOrder, name)
	}
	set.add(nfc(glyph))
}

// AddReading registers that reading can be written with the sign name.
func (b *Builder) AddReading(name, reading string) {
	add(b.readings, nfc(reading), signName(name))
}

// AddWordform registers that the wordform base contains the sign name.
func (b *Builder) AddWordform(name, form string) {
	add(b.wordforms, nfc(form), signName(name))
}

// Override pins the reading key to a single sign name. Overrides replace
// the harvested candidate set when the Tables are built.
func (b *Builder) Override(key, name string) {
	b.overrides[nfc(key)] = signName(name)
}

func add(m map[string]*orderedSet, key, name string) {
	if key == "" {
		return
	}
	set, ok := m[key]
	if !ok {
		set = newOrderedSet()
		m[key] = set
	}
	set.add(name)
}

// Build finalizes the Tables. A sign name with more than one distinct glyph
// is reported as an IssueGlyphConflict and keeps its first-seen glyph.
func (b *Builder) Build() (*Tables, []Issue) {
	t := &Tables{
		wordforms: make(map[string][]string, len(b.wordforms)),
		readings:  make(map[string][]string, len(b.readings)+len(b.overrides)),
		glyphs:    make(map[string]string, len(b.glyphs)),
	}
	for k, set := range b.wordforms {
		t.wordforms[k] = slices.Clone(set.items)
	}
	for k, set := range b.readings {
		t.readings[k] = slices.Clone(set.items)
	}
	for k, name := range b.overrides {
		t.readings[k] = []string{name}
	}

	var issues []Issue
	for _, name := range b.glyphOrder {
		forms := b.glyphs[name].items
		switch len(forms) {
		case 0:
			t.glyphs[name] = ""
		case 1:
			t.glyphs[name] = forms[0]
		default:
			issues = append(issues, Issue{
				Kind: IssueGlyphConflict,
				Line: fmt.Sprintf("%s %s", name, strings.Join(forms, " ")),
			})
			t.glyphs[name] = forms[0]
		}
	}
	t.index()
	return t, issues
}

// signName canonicalizes a sign name as found in the sign list.
func signName(s string) string {
	return nfc(strings.ReplaceAll(s, "&amp;", "&"))
}

func nfc(s string) string {
	return norm.NFC.String(s)
}
