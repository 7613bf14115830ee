package translit

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Morpheme is the resolution of one minimal reading unit.
type Morpheme struct {
	// Source is the morpheme as segmented from the wordform.
	Source string
	// Reading is the canonical reading used for the lookup, or Unknown for
	// a bare sign-name citation.
	Reading string
	// SignName is the single resolved sign name, or Unknown.
	SignName string
	// Glyph is the Unicode glyph of SignName, or Unknown.
	Glyph string
	// Candidates lists every sign name the lookup produced.
	Candidates []string
	// Reason says why SignName is Unknown.
	Reason Reason
	// GlyphReason says why Glyph is Unknown for a resolved sign name.
	GlyphReason Reason
}

// Resolved reports whether the morpheme has exactly one sign name.
func (m Morpheme) Resolved() bool { return m.SignName != Unknown }

// Word is a resolved wordform.
type Word struct {
	// Source is the wordform as it appears in the final transliteration.
	Source string
	// Special is set for structural tokens, line breaks and ellipses,
	// which resolve to themselves.
	Special   bool
	Morphemes []Morpheme
}

// SignNames joins the sign names of w with hyphens.
func (w Word) SignNames() string {
	names := make([]string, len(w.Morphemes))
	for i, mo := range w.Morphemes {
		names[i] = mo.SignName
	}
	return strings.Join(names, "-")
}

// Glyphs concatenates the glyphs of w.
func (w Word) Glyphs() string {
	var sb strings.Builder
	for _, mo := range w.Morphemes {
		sb.WriteString(mo.Glyph)
	}
	return sb.String()
}

// Counts are the per-record counters used for corpus-level filtering.
type Counts struct {
	Resolved int `json:"resolved"`
	Unknown  int `json:"unknown"`
	Special  int `json:"special"`
}

// Resolution is the result of resolving one cleaned text.
type Resolution struct {
	// Text is the final transliteration.
	Text string
	// SignNames holds one hyphen-joined group per wordform, separated by
	// spaces; line breaks stand on their own.
	SignNames string
	// Glyphs is the glyph sequence, with structural tokens kept in place.
	Glyphs string
	Words  []Word
	Counts Counts
	Stats  *Stats
}

// Tokens flattens the resolution into the closed token alphabet: one token
// per structural word and one per morpheme.
func (res Resolution) Tokens() []Token {
	var out []Token
	for _, w := range res.Words {
		if w.Special {
			out = append(out, Token{Kind: ClassifyToken(w.Source)})
			continue
		}
		for _, mo := range w.Morphemes {
			if !mo.Resolved() {
				out = append(out, Token{Kind: KindUnknown, Reading: mo.Reading})
				continue
			}
			out = append(out, Token{Kind: KindSign, Reading: mo.Reading, SignName: mo.SignName, Glyph: mo.Glyph})
		}
	}
	return out
}

// Resolver maps cleaned transliteration onto sign names and glyphs. It
// holds only immutable state and is safe for concurrent use.
type Resolver struct {
	tables *Tables
	corr   *Corrections

	// cache memoizes Word by wordform. Resolution depends on nothing but
	// the wordform and the two tables above.
	cache *lru.Cache[string, Word]
}

// NewResolver returns a Resolver over t and c. A positive cacheSize keeps
// that many resolved wordforms in an LRU cache.
func NewResolver(t *Tables, c *Corrections, cacheSize int) (*Resolver, error) {
	if c == nil {
		c = DefaultCorrections()
	}
	r := &Resolver{tables: t, corr: c}
	if cacheSize > 0 {
		cache, err := lru.New[string, Word](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("resolver cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

// Tables returns the lookup tables r resolves against.
func (r *Resolver) Tables() *Tables { return r.tables }

// Corrections returns the correction tables r applies.
func (r *Resolver) Corrections() *Corrections { return r.corr }

// Resolve turns cleaned text into the final transliteration, the sign-name
// sequence and the glyph sequence. It never fails: anything it cannot
// resolve becomes Unknown and is tallied in the returned Stats.
func (r *Resolver) Resolve(cleaned string) Resolution {
	text := r.corr.ApplyText(nfc(cleaned))
	res := Resolution{Stats: NewStats()}
	for _, wf := range r.corr.Wordforms(text) {
		wf = strings.Trim(wf, "+")
		if wf == "" {
			continue
		}
		w := r.Word(wf)
		if !w.Special && len(w.Morphemes) == 0 {
			// A lone separator such as "-".
			continue
		}
		res.Words = append(res.Words, w)
		if w.Special {
			res.Counts.Special++
			continue
		}
		for _, mo := range w.Morphemes {
			if mo.Resolved() {
				res.Counts.Resolved++
			} else {
				res.Counts.Unknown++
			}
			res.Stats.addMorpheme(mo)
		}
	}
	res.Text, res.SignNames, res.Glyphs = render(res.Words)
	return res
}

// Word resolves a single wordform.
func (r *Resolver) Word(wf string) Word {
	if r.cache != nil {
		if w, ok := r.cache.Get(wf); ok {
			w.Morphemes = slices.Clone(w.Morphemes)
			return w
		}
	}
	w := r.word(wf)
	if r.cache != nil {
		r.cache.Add(wf, Word{Source: w.Source, Special: w.Special, Morphemes: slices.Clone(w.Morphemes)})
	}
	return w
}

func (r *Resolver) word(wf string) Word {
	if IsSpecial(wf) {
		return Word{
			Source:    wf,
			Special:   true,
			Morphemes: []Morpheme{{Source: wf, Reading: wf, SignName: wf, Glyph: wf}},
		}
	}
	w := Word{Source: wf}
	for _, src := range SplitMorphemes(r.corr.Number(wf)) {
		mo := r.Morpheme(src)
		if mo.Resolved() {
			mo.SignName = r.corr.SignName(mo.SignName)
		}
		mo.Glyph, mo.GlyphReason = r.glyph(mo.SignName)
		w.Morphemes = append(w.Morphemes, mo)
	}
	return w
}

// Morpheme looks a single morpheme up. Only a candidate set of exactly one
// resolves; an ambiguous morpheme is as Unknown as an absent one.
func (r *Resolver) Morpheme(src string) Morpheme {
	reading, cands, reason := r.lookup(r.corr.Morpheme(src))
	mo := Morpheme{Source: src, Reading: reading, Candidates: cands, SignName: Unknown}
	switch {
	case len(cands) == 1:
		mo.SignName = cands[0]
	case len(cands) > 1:
		mo.Reason = ReasonAmbiguous
	case reason == ReasonNone:
		mo.Reason = ReasonOther
	default:
		mo.Reason = reason
	}
	return mo
}

var (
	reNumeral      = regexp.MustCompile(`^\d+(/\d+)?(\.\d+)?(\s*\([^)]+\))?$`)
	reUnitModifier = regexp.MustCompile(`@[a-z0-9]+`)
	braceReplacer  = strings.NewReplacer("{", "", "}", "")
)

// lookup runs the disambiguation cascade and returns the reading it
// settled on with the candidate sign names.
func (r *Resolver) lookup(m string) (string, []string, Reason) {
	if reNumeral.MatchString(m) {
		return r.number(m)
	}

	// A bare sign name cited because its reading is uncertain.
	if r.tables.IsSignName(m) {
		return Unknown, []string{m}, ReasonNone
	}

	m = braceReplacer.Replace(m)
	if cands, ok := r.tables.Readings(m); ok {
		return m, cands, ReasonNone
	}

	// A sign name missing from the sign list is usually named after its
	// most common reading.
	if isUpper(m) {
		lower := strings.ToLower(m)
		if cands, ok := r.tables.Readings(lower); ok {
			return lower, cands, ReasonNone
		}
		return Unknown, nil, ReasonSignName
	}

	if base, hint, ok := splitHint(m); ok {
		if cands, ok := r.tables.Readings(base); ok {
			if len(cands) == 1 {
				return base, cands, ReasonNone
			}
			if slices.Contains(cands, hint) {
				return base, []string{hint}, ReasonNone
			}
		}
		if readings := r.tables.SignReadings(hint); len(readings) == 1 {
			return readings[0], []string{hint}, ReasonNone
		}
	}
	return m, nil, ReasonOther
}

func (r *Resolver) number(m string) (string, []string, Reason) {
	for _, key := range []string{m, strings.ToLower(m), reUnitModifier.ReplaceAllString(m, "")} {
		if cands, ok := r.tables.Readings(key); ok {
			return key, cands, ReasonNone
		}
	}
	if r.tables.IsSignName(m) {
		return strings.ToLower(m), []string{m}, ReasonNone
	}
	return m, nil, ReasonNumber
}

// splitHint splits reading(SIGN) into its reading and sign-name hint. The
// hint runs to the last closing parenthesis so nested compounds survive.
func splitHint(m string) (base, hint string, ok bool) {
	open := strings.IndexByte(m, '(')
	end := strings.LastIndexByte(m, ')')
	if open < 0 || end < open {
		return "", "", false
	}
	return m[:open], m[open+1 : end], true
}

func (r *Resolver) glyph(name string) (string, Reason) {
	if IsSpecial(name) {
		return name, ReasonNone
	}
	g, ok := r.tables.Glyph(name)
	switch {
	case !ok:
		return Unknown, ReasonGlyphNotInTable
	case g == "":
		return Unknown, ReasonNoGlyph
	}
	return g, ReasonNone
}

// render assembles the three output strings. Wordforms are separated by a
// single space, except next to a line break; the transliteration also
// keeps ellipses tight against their neighbours.
func render(words []Word) (text, names, glyphs string) {
	var tb, nb, gb strings.Builder
	for i, w := range words {
		if i > 0 {
			prev := words[i-1].Source
			if !tight(prev, Newline, Ellipsis) && !tight(w.Source, Newline, Ellipsis) {
				tb.WriteByte(' ')
			}
			if prev != Newline && w.Source != Newline {
				nb.WriteByte(' ')
			}
		}
		tb.WriteString(w.Source)
		nb.WriteString(w.SignNames())
		gb.WriteString(w.Glyphs())
	}
	return tb.String(), nb.String(), gb.String()
}

func tight(s string, tokens ...string) bool {
	return slices.Contains(tokens, s)
}
