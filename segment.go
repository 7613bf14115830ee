package translit

import (
	"regexp"
	"strings"
)

var (
	reEllipsisAside     = regexp.MustCompile(`\.\.\.\([^\n]*\)\.\.\.`)
	reEllipsisAsideTail = regexp.MustCompile(`\.\.\.\([^\n]*\)(\n|$)`)
	reEllipsisLines     = regexp.MustCompile(`(?:\n\.\.\.)+`)
	reDeterminative     = regexp.MustCompile(`\{.*?\}`)
)

// Wordforms splits cleaned text into wordforms. Line breaks and ellipses
// become tokens of their own, asides next to an ellipsis fold into it, and
// configured aside lines read as a single ellipsis.
func (c *Corrections) Wordforms(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if c.isAsideLine(line) {
			lines[i] = Ellipsis
		}
	}
	text = strings.Join(lines, "\n")
	text = reEllipsisAside.ReplaceAllString(text, Ellipsis)
	text = reEllipsisAsideTail.ReplaceAllString(text, Ellipsis+"${1}")
	text = reEllipsisLines.ReplaceAllString(text, "\n"+Ellipsis)

	text = strings.ReplaceAll(text, "\n", " \n ")
	text = strings.ReplaceAll(text, Ellipsis, " "+Ellipsis+" ")

	var out []string
	for _, wf := range strings.Split(text, " ") {
		if wf != "" {
			out = append(out, wf)
		}
	}
	return out
}

// SplitMorphemes segments a wordform into morphemes: determinatives are
// cut out as their own units, then the rest splits on spaces (left by
// numeral expansion) and on hyphens outside parentheses. A colon-joined
// group is split and reversed, since the signs were written in a different
// order than they are read: mu-lu:gal-e → mu gal lu e.
func SplitMorphemes(wf string) []string {
	var out []string
	for _, piece := range splitKeep(wf, reDeterminative) {
		for _, part := range strings.Split(piece, " ") {
			for _, h := range splitHyphens(part) {
				if !strings.Contains(h, ":") {
					if h != "" {
						out = append(out, h)
					}
					continue
				}
				segs := strings.Split(h, ":")
				for i := len(segs) - 1; i >= 0; i-- {
					if segs[i] != "" {
						out = append(out, segs[i])
					}
				}
			}
		}
	}
	return out
}

// splitKeep splits s around every match of re, keeping the matches.
func splitKeep(s string, re *regexp.Regexp) []string {
	var out []string
	last := 0
	for _, loc := range re.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			out = append(out, s[last:loc[0]])
		}
		out = append(out, s[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, s[last:])
	}
	return out
}

// splitHyphens splits on hyphens that are not inside parentheses, so
// 1(u)-bi splits but |A-B| inside (…) does not.
func splitHyphens(s string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '-':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}
