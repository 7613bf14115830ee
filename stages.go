package translit

import (
	"regexp"
	"strings"
)

// m is the Missing sentinel quoted for use in patterns.
var m = regexp.QuoteMeta(missing)

var reSpecialToken = regexp.MustCompile(`==[^=\n]*==|<[A-Za-z_]+>`)

// standardStages lists the pipeline in order. Each entry documents what it
// expects from the stages before it.
func standardStages() []Stage {
	return []Stage{
		rewrite("compose", Compose),
		rewrite("excision", excision),
		rewrite("partial-damage", partialDamage),
		rewrite("glosses", glosses),
		check("unmatched-brackets", IssueUnmatchedBracket, unmatchedBrackets),
		check("enclosure-order", IssueReordered, enclosureOrder),
		check("supplied-signs", IssueUnmatchedAngle, suppliedSigns),
		rewrite("broken-away", brokenAway),
		rewrite("illegible", illegible),
		rewrite("uncertain", uncertain),
		rewrite("ellipsis", ellipsis),
		rewrite("missing-alone", missingAlone),
		rewrite("missing-before-brace", missingBeforeBrace),
		rewrite("stray-hyphens", strayHyphens),
		rewrite("standalone-parens", standaloneParens),
		check("disallowed", IssueDisallowed, disallowed),
		rewrite("spacing", spacing),
		rewrite("determinatives", determinatives),
		rewrite("compounds", compounds),
		rewrite("final", final),
	}
}

// <<abc>>: present but to be excised. Keep the text.
var excisionReplacer = strings.NewReplacer("<<", "", ">>", "")

func excision(s string) string { return excisionReplacer.Replace(s) }

// ⸢abc⸣: partially broken. Keep the text.
var partialReplacer = strings.NewReplacer("⸢", "", "⸣", "")

func partialDamage(s string) string { return partialReplacer.Replace(s) }

// {{abc}}: linguistic gloss. Drop span and markers; stray doubled braces
// go too.
var (
	reGloss       = regexp.MustCompile(`\{\{[^\n]*?\}\}`)
	glossReplacer = strings.NewReplacer("{{", "", "}}", "")
)

func glosses(s string) string {
	return glossReplacer.Replace(reGloss.ReplaceAllString(s, ""))
}

// unmatchedBrackets replaces every line whose square brackets do not
// balance with Missing. Extraction sometimes drops a bracket that sat next
// to an "n", a parenthesis or a vertical bar.
func unmatchedBrackets(s string) (string, []string) {
	return replaceLines(s, func(line string) bool {
		depth := 0
		for _, r := range line {
			switch r {
			case '[':
				depth++
			case ']':
				if depth == 0 {
					return true
				}
				depth--
			}
		}
		return depth != 0
	})
}

// replaceLines swaps every line for which bad returns true with Missing
// and returns the original lines it dropped.
func replaceLines(s string, bad func(string) bool) (string, []string) {
	lines := strings.Split(s, "\n")
	var dropped []string
	for i, line := range lines {
		if bad(line) {
			dropped = append(dropped, line)
			lines[i] = missing
		}
	}
	if dropped == nil {
		return s, nil
	}
	return strings.Join(lines, "\n"), dropped
}

// reorderings rewrite overlapping enclosures into nested ones. Afterwards
// the [ ] and < > stages see well-formed spans.
var reorderings = []struct {
	re       *regexp.Regexp
	from, to string
}{
	// ([...)...] -> [(...)...]
	{regexp.MustCompile(`\(\[[^\n)\]]*?\)[^\n\]]*?\]`), "([", "[("},
	// [...(...]) -> [...(...)]
	{regexp.MustCompile(`\[[^\n(\]]*?\([^\n)\]]*?\]\)`), "])", ")]"},
	// {[...}...] -> [{...}...]
	{regexp.MustCompile(`\{\[[^\n}\]]*?\}[^\n\]]*?\]`), "{[", "[{"},
	// [...{...]} -> [...{...}]
	{regexp.MustCompile(`\[[^\n{\]]*?\{[^\n\]]*?\]\}`), "]}", "}]"},
	// <...{...>} -> <...{...}>
	{regexp.MustCompile(`<[^\n{>]*?\{[^\n}>]*?>\}`), ">}", "}>"},
	// {<...}...> -> <{...}...>
	{regexp.MustCompile(`\{<[^\n}>]*?\}`), "{<", "<{"},
}

func enclosureOrder(s string) (string, []string) {
	var changed []string
	for _, ro := range reorderings {
		s = ro.re.ReplaceAllStringFunc(s, func(match string) string {
			after := strings.ReplaceAll(match, ro.from, ro.to)
			changed = append(changed, match+" -> "+after)
			return after
		})
	}
	return s, changed
}

// <abc>: must be supplied for sense but is not on the tablet. Drop it. An
// unmatched < drops the rest of its line, an unmatched > the start of its
// line; both leave Missing behind.
var (
	reSupplied      = regexp.MustCompile(`<[^\n]*?>`)
	reSuppliedOpen  = regexp.MustCompile(`<[^\n>]*?(\n|$)`)
	reSuppliedClose = regexp.MustCompile(`(^|\n)[^\n<]*?>`)
)

func suppliedSigns(s string) (string, []string) {
	s = reSupplied.ReplaceAllString(s, "")
	var unmatched []string
	for _, x := range reSuppliedOpen.FindAllString(s, -1) {
		unmatched = append(unmatched, strings.TrimSuffix(x, "\n"))
	}
	s = reSuppliedOpen.ReplaceAllString(s, missing+"${1}")
	for _, x := range reSuppliedClose.FindAllString(s, -1) {
		unmatched = append(unmatched, strings.TrimPrefix(x, "\n"))
	}
	s = reSuppliedClose.ReplaceAllString(s, "${1}"+missing)
	return s, unmatched
}

// [abc def]: broken away, conjectured. The whole span, including one level
// of nested brackets, becomes Missing.
var reBrokenAway = regexp.MustCompile(`\[(?:[^\[\]\n]|\[[^\[\]\n]*\])*\]`)

func brokenAway(s string) string { return reBrokenAway.ReplaceAllString(s, missing) }

// x, o and X mark illegible signs. A run of them, with the spaces and
// hyphens around it, is one Missing.
var reIllegible = regexp.MustCompile(`(?:[ \-]*[oxX]+[ \-]*)+`)

func illegible(s string) string { return reIllegible.ReplaceAllString(s, missing) }

// $erasure$ and $ traces $ are Missing. Any other $ precedes a sign name
// whose reading is uncertain; a bare sign name already says that, so the
// marker goes.
var uncertainReplacer = strings.NewReplacer(
	"($erasure$)", missing,
	"$erasure$", missing,
	"$ traces $", missing,
	"$", "",
)

func uncertain(s string) string { return uncertainReplacer.Replace(s) }

var ellipsisReplacer = strings.NewReplacer("...", missing, "…", missing)

func ellipsis(s string) string { return ellipsisReplacer.Replace(s) }

// (Missing), {Missing} and |Missing| are just Missing.
var reMissingAlone = []*regexp.Regexp{
	regexp.MustCompile(`\([ \-]*` + m + `[ \-]*\)`),
	regexp.MustCompile(`\{[ \-]*` + m + `[ \-]*\}`),
	regexp.MustCompile(`\|[ \-]*` + m + `[ \-]*\|`),
}

func missingAlone(s string) string {
	for _, re := range reMissingAlone {
		s = re.ReplaceAllString(s, missing)
	}
	return s
}

// Missing never sits inside an open determinative.
func missingBeforeBrace(s string) string {
	return strings.ReplaceAll(s, missing+"}", "}"+missing)
}

// A hyphen next to a space or a line edge connects nothing, so "(lugal)-"
// at a line end is still an aside.
var reStrayHyphen = regexp.MustCompile(`(?m)(^| )-+|-+( |$)`)

func strayHyphens(s string) string { return reStrayHyphen.ReplaceAllString(s, "${1}${2}") }

// A parenthesised span standing on its own between whitespace or line
// edges is an editorial aside, not a sign. The surrounding separators are
// kept, so adjacent asides need another pass.
var reStandalone = regexp.MustCompile(`(^|\n| )\([^\n()]+\)($|\n| )`)

func standaloneParens(s string) string {
	for {
		next := reStandalone.ReplaceAllString(s, "${1}"+missing+"${2}")
		if next == s {
			return s
		}
		s = next
	}
}

// disallowed is the structural check: no enclosure marker of the removed
// kinds and no raw ellipsis may survive. Offending lines become Missing.
func disallowed(s string) (string, []string) {
	return replaceLines(s, func(line string) bool {
		return strings.ContainsAny(line, "<>[]$") || strings.Contains(line, "...")
	})
}

var (
	reSpaces        = regexp.MustCompile(` +`)
	reParenMissing  = regexp.MustCompile(`\([^\n)]*` + m + `[^\n)]*\)`)
	reBarMissing    = regexp.MustCompile(`\|[^\n| ]*` + m + `[^\n| ]*\|`)
	reLineSpace     = regexp.MustCompile(`(?m)^ +| +$`)
	reHyphenMissing = regexp.MustCompile(`[ \-]*` + m + `[ \-]*`)
	reMissingRun    = regexp.MustCompile(m + `(?:[ \-]*` + m + `)+`)
)

// spacing canonicalizes whitespace and Missing runs: single spaces,
// semicolons as line breaks, no space or hyphen next to Missing, one
// Missing per run, no parentheses or bars around content that is partly
// Missing, and no space at either end of a line.
func spacing(s string) string {
	s = reSpaces.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, ";", " \n ")
	s = reParenMissing.ReplaceAllString(s, missing)
	s = reBarMissing.ReplaceAllString(s, missing)
	s = reHyphenMissing.ReplaceAllString(s, missing)
	s = reMissingRun.ReplaceAllString(s, missing)
	s = reLineSpace.ReplaceAllString(s, "")
	return collapseMissingLines(s)
}

// collapseMissingLines keeps one line out of a run of lines that hold only
// Missing.
func collapseMissingLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if line == missing && i > 0 && lines[i-1] == missing {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

var determinativeReplacer = strings.NewReplacer("{-", "{", "-}", "}")

func determinatives(s string) string { return determinativeReplacer.Replace(s) }

var (
	reBarCompound     = regexp.MustCompile(`\|(.*?)\|`)
	reBarTrailingDash = regexp.MustCompile(`\|(.+)-\|`)
	reParenLetter     = regexp.MustCompile(`\)(\pL)`)
	parenDashReplacer = strings.NewReplacer("(-", "(", "-)", ")", "-&", "&", "-|)", "|)")
)

// compounds separates |A.B| compounds and reading(SIGN) pairs from the
// text that follows them with a hyphen, then removes the hyphens that end
// up just inside a bracket. In (|(A)&(B)|) the hyphens before & and |)
// are spurious.
func compounds(s string) string {
	s = reBarCompound.ReplaceAllString(s, "|${1}|-")
	s = reBarTrailingDash.ReplaceAllString(s, "|${1}|")
	s = reParenLetter.ReplaceAllString(s, ")-${1}")
	return parenDashReplacer.Replace(s)
}

var (
	reHyphens     = regexp.MustCompile(`-+`)
	finalReplacer = strings.NewReplacer("- ", " ", " -", " ", "-\n", "\n", "\n-", "\n")
)

// final drops stray hyphens, empty determinatives and repeated separators,
// then swaps the Missing sentinel for the public ellipsis.
func final(s string) string {
	s = reSpaces.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, missing+" ", missing)
	s = strings.ReplaceAll(s, " "+missing, missing)
	s = strings.ReplaceAll(s, missing, Ellipsis)
	s = finalReplacer.Replace(s)
	s = strings.ReplaceAll(s, "{}", "")
	s = reHyphens.ReplaceAllString(s, "-")
	s = reSpaces.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Trim(line, " -")
	}
	return strings.Join(lines, "\n")
}
