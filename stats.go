package translit

import (
	"maps"
	"slices"
	"strings"
)

// Reason says why a morpheme or a sign name did not resolve.
type Reason string

const (
	ReasonNone Reason = ""
	// ReasonAmbiguous: more than one candidate sign name.
	ReasonAmbiguous Reason = "ambiguous"
	// ReasonSignName: an upper-case sign name unknown to the sign list,
	// also as a lower-cased reading.
	ReasonSignName Reason = "sign-name"
	// ReasonNumber: a numeral with no table entry.
	ReasonNumber Reason = "number"
	// ReasonOther: any other reading with no candidate.
	ReasonOther Reason = "other"
	// ReasonGlyphNotInTable: the sign name is not in the glyph table.
	ReasonGlyphNotInTable Reason = "glyph-not-in-table"
	// ReasonNoGlyph: the sign name is known but has no glyph.
	ReasonNoGlyph Reason = "no-glyph"
)

// Stats accumulates resolution outcomes. A Stats value is not safe for
// concurrent use; give each worker its own and Merge them.
type Stats struct {
	Resolved    int
	Unresolved  int
	GlyphsFound int
	GlyphsLost  int
	misses      map[Reason]map[string]int
}

// NewStats returns an empty Stats.
func NewStats() *Stats {
	return &Stats{misses: make(map[Reason]map[string]int)}
}

func (s *Stats) miss(r Reason, item string) {
	byItem, ok := s.misses[r]
	if !ok {
		byItem = make(map[string]int)
		s.misses[r] = byItem
	}
	byItem[item]++
}

func (s *Stats) addMorpheme(mo Morpheme) {
	if mo.Reason == ReasonNone {
		s.Resolved++
	} else {
		s.Unresolved++
		s.miss(mo.Reason, mo.Source)
	}
	switch {
	case mo.SignName == Unknown:
	case mo.GlyphReason != ReasonNone:
		s.GlyphsLost++
		s.miss(mo.GlyphReason, mo.SignName)
	default:
		s.GlyphsFound++
	}
}

// Merge adds the counts of o to s.
func (s *Stats) Merge(o *Stats) {
	if o == nil {
		return
	}
	s.Resolved += o.Resolved
	s.Unresolved += o.Unresolved
	s.GlyphsFound += o.GlyphsFound
	s.GlyphsLost += o.GlyphsLost
	for r, byItem := range o.misses {
		for item, n := range byItem {
			if s.misses[r] == nil {
				s.misses[r] = make(map[string]int)
			}
			s.misses[r][item] += n
		}
	}
}

// Count returns the number of misses recorded for r.
func (s *Stats) Count(r Reason) int {
	n := 0
	for _, c := range s.misses[r] {
		n += c
	}
	return n
}

// Reasons returns every reason with at least one miss, sorted.
func (s *Stats) Reasons() []Reason {
	return slices.Sorted(maps.Keys(s.misses))
}

// ItemCount is an item with its number of occurrences.
type ItemCount struct {
	Item  string
	Count int
}

// Top returns the n most frequent items missed for r. Ties are broken
// by item.
func (s *Stats) Top(r Reason, n int) []ItemCount {
	out := make([]ItemCount, 0, len(s.misses[r]))
	for item, c := range s.misses[r] {
		out = append(out, ItemCount{item, c})
	}
	slices.SortFunc(out, func(a, b ItemCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Item, b.Item)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
