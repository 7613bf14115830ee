package translit

import "slices"

// Record is one tablet or document. Transliteration is the raw annotated
// text; the remaining text fields are filled in by a Pipeline.
type Record struct {
	ID       string
	Period   string
	Genre    string
	Subgenre string
	Language string

	Transliteration string
	Clean           string
	Final           string
	SignNames       string
	Glyphs          string

	Counts Counts
	Issues []Issue
}

// CollateOptions selects the records worth processing.
type CollateOptions struct {
	// Languages lists the accepted language values; "" accepts records
	// whose language is not recorded.
	Languages      []string
	ExcludePeriods []string
	ExcludeGenres  []string
}

// DefaultCollateOptions keeps Sumerian and unlabelled texts and drops the
// Ebla archive, forgeries and proto-cuneiform.
func DefaultCollateOptions() CollateOptions {
	return CollateOptions{
		Languages:      []string{"Sumerian", ""},
		ExcludePeriods: []string{"Ebla", "fake", "Pre-Uruk V"},
		ExcludeGenres:  []string{"fake (modern)"},
	}
}

// CollateReport counts what Collate dropped.
type CollateReport struct {
	Input             int
	Language          int
	Excluded          int
	NoTransliteration int
	DuplicateID       int
}

// Unknown period or genre label after collation.
const unknownLabel = "Unknown"

// Collate filters raw corpus records and standardizes their labels. The
// first record with a given id wins.
func Collate(records []Record, opts CollateOptions) ([]Record, CollateReport) {
	rep := CollateReport{Input: len(records)}
	seen := make(map[string]bool, len(records))
	var out []Record
	for _, rec := range records {
		switch {
		case !slices.Contains(opts.Languages, rec.Language):
			rep.Language++
			continue
		case slices.Contains(opts.ExcludePeriods, rec.Period),
			slices.Contains(opts.ExcludeGenres, rec.Genre):
			rep.Excluded++
			continue
		case rec.Transliteration == "":
			rep.NoTransliteration++
			continue
		case seen[rec.ID]:
			rep.DuplicateID++
			continue
		}
		seen[rec.ID] = true

		if rec.Period == "" || rec.Period == "Uncertain" {
			rec.Period = unknownLabel
		}
		if rec.Genre == "" || rec.Genre == "uncertain" {
			rec.Genre = unknownLabel
		}
		out = append(out, rec)
	}
	return out, rep
}

// FilterReport counts what Filter dropped.
type FilterReport struct {
	Empty           int
	DuplicateText   int
	DuplicateGlyphs int
}

// Filter drops records whose final transliteration is empty once special
// tokens are stripped, then records repeating an earlier final
// transliteration, then records repeating an earlier glyph sequence. The
// first occurrence always survives.
func Filter(records []Record) ([]Record, FilterReport) {
	var rep FilterReport
	var kept []Record
	for _, rec := range records {
		if IsEmpty(finalText(rec)) {
			rep.Empty++
			continue
		}
		kept = append(kept, rec)
	}

	seenText := make(map[string]bool, len(kept))
	var unique []Record
	for _, rec := range kept {
		t := finalText(rec)
		if seenText[t] {
			rep.DuplicateText++
			continue
		}
		seenText[t] = true
		unique = append(unique, rec)
	}

	seenGlyphs := make(map[string]bool, len(unique))
	var out []Record
	for _, rec := range unique {
		if rec.Glyphs != "" {
			if seenGlyphs[rec.Glyphs] {
				rep.DuplicateGlyphs++
				continue
			}
			seenGlyphs[rec.Glyphs] = true
		}
		out = append(out, rec)
	}
	return out, rep
}

// finalText is the text a record is judged by: the final transliteration,
// or the cleaned one for records that were normalized but not resolved.
func finalText(rec Record) string {
	if rec.Final != "" {
		return rec.Final
	}
	return rec.Clean
}
