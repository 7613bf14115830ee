package translit

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// IssueKind names a category of data-quality problem.
type IssueKind string

const (
	// IssueUnmatchedBracket: a line has an unbalanced [ ]; the line is
	// replaced by Missing.
	IssueUnmatchedBracket IssueKind = "unmatched-bracket"
	// IssueUnmatchedAngle: a < or > has no counterpart on its line; the
	// rest of the line (or its start) is replaced by Missing.
	IssueUnmatchedAngle IssueKind = "unmatched-angle"
	// IssueReordered: overlapping enclosures were rewritten into nested form.
	IssueReordered IssueKind = "reordered-enclosure"
	// IssueDisallowed: a line still held raw markup after cleanup and was
	// replaced by Missing.
	IssueDisallowed IssueKind = "disallowed-character"
	// IssueGlyphConflict: the sign list gives one sign name several glyphs.
	IssueGlyphConflict IssueKind = "glyph-conflict"
)

// Issue is a single diagnostic. Issues never stop processing.
type Issue struct {
	RecordID string
	Stage    string
	Kind     IssueKind
	// Line is the offending source line, or a short description.
	Line string
}

// Stage is one named rewrite of the normalization pipeline. Stages are
// total: they accept any string and never fail.
type Stage struct {
	Name string
	// Kind is set for stages that report what they rewrite.
	Kind IssueKind
	run  func(string) (string, []string)
}

// Apply runs the stage on s and returns the rewritten text together with
// the lines it reported.
func (s Stage) Apply(text string) (string, []string) {
	return s.run(text)
}

func rewrite(name string, fn func(string) string) Stage {
	return Stage{Name: name, run: func(s string) (string, []string) { return fn(s), nil }}
}

func check(name string, kind IssueKind, fn func(string) (string, []string)) Stage {
	return Stage{Name: name, Kind: kind, run: fn}
}

// Normalizer turns raw annotated transliteration into the cleaned token
// stream by applying its stages in order. Later stages rely on the
// postconditions of earlier ones, so the order is part of the contract.
type Normalizer struct {
	stages []Stage
}

// NewNormalizer returns a Normalizer with the standard stage order.
func NewNormalizer() *Normalizer {
	return &Normalizer{stages: standardStages()}
}

// Stages returns the pipeline in application order.
func (n *Normalizer) Stages() []Stage {
	out := make([]Stage, len(n.stages))
	copy(out, n.stages)
	return out
}

// Normalize cleans raw and returns the cleaned text with the issues found
// along the way, each tagged with id.
func (n *Normalizer) Normalize(id, raw string) (string, []Issue) {
	text := raw
	var issues []Issue
	for _, st := range n.stages {
		var lines []string
		text, lines = st.run(text)
		for _, l := range lines {
			issues = append(issues, Issue{RecordID: id, Stage: st.Name, Kind: st.Kind, Line: l})
		}
	}
	return text, issues
}

var defaultNormalizer = NewNormalizer()

// Normalize cleans raw with the standard pipeline.
func Normalize(raw string) (string, []Issue) {
	return defaultNormalizer.Normalize("", raw)
}

// Compose returns s in Unicode NFC, folding decomposed diacritics
// (s + U+030C) into their precomposed form (š) so they match sign-list
// keys. norm.Form keeps no state, so Compose is safe for concurrent use.
func Compose(s string) string {
	return norm.NFC.String(s)
}

// IsEmpty reports whether text holds nothing but structural tokens,
// ellipses, unknown markers and whitespace. Both the ==NAME== tokens and
// the older <NAME> spelling are recognized.
func IsEmpty(text string) bool {
	text = reSpecialToken.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, Ellipsis, "")
	return strings.TrimSpace(text) == ""
}
