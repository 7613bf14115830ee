package translit

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed corrections.yaml
var defaultCorrections []byte

// Replacement rewrites From to To.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// ReplacementGroup is a named, ordered list of substring rewrites.
type ReplacementGroup struct {
	Name         string        `yaml:"name"`
	Replacements []Replacement `yaml:"replacements"`
}

// Corrections holds the empirically maintained correction tables used by
// the resolver. They change whenever the corpus or the sign list drift, so
// they live in configuration rather than code.
type Corrections struct {
	Version    int                `yaml:"version"`
	Numbers    []Replacement      `yaml:"numbers"`
	Text       []ReplacementGroup `yaml:"text"`
	Morphemes  []Replacement      `yaml:"morphemes"`
	SignNames  []Replacement      `yaml:"sign_names"`
	AsideLines []string           `yaml:"aside_lines"`

	numbers   map[string]string
	morphemes map[string]string
	signNames map[string]string
}

// DefaultCorrections returns the correction tables embedded in the package.
func DefaultCorrections() *Corrections {
	c, err := ParseCorrections(defaultCorrections)
	if err != nil {
		panic(fmt.Sprintf("translit: embedded corrections: %v", err))
	}
	return c
}

// ParseCorrections decodes YAML correction tables.
func ParseCorrections(data []byte) (*Corrections, error) {
	var c Corrections
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse corrections: %w", err)
	}
	for _, g := range c.Text {
		for _, r := range g.Replacements {
			if r.From == "" {
				return nil, fmt.Errorf("parse corrections: group %q: empty replacement source", g.Name)
			}
		}
	}
	c.compile()
	return &c, nil
}

func (c *Corrections) compile() {
	c.numbers = toMap(c.Numbers)
	c.morphemes = toMap(c.Morphemes)
	c.signNames = toMap(c.SignNames)
}

func toMap(rs []Replacement) map[string]string {
	m := make(map[string]string, len(rs))
	for _, r := range rs {
		m[nfc(r.From)] = nfc(r.To)
	}
	return m
}

// ApplyText runs every text group over s in order. Each replacement is a
// plain substring rewrite of all occurrences.
func (c *Corrections) ApplyText(s string) string {
	for _, g := range c.Text {
		for _, r := range g.Replacements {
			s = strings.ReplaceAll(s, nfc(r.From), nfc(r.To))
		}
	}
	return s
}

// Number returns the canonical counted form of a bare numeral wordform.
// A wordform whose first hyphen-separated part is a numeral ("7-bi") is
// rewritten through that part.
func (c *Corrections) Number(wf string) string {
	if v, ok := c.numbers[wf]; ok {
		return v
	}
	head, rest, found := strings.Cut(wf, "-")
	if !found {
		return wf
	}
	if v, ok := c.numbers[head]; ok {
		return v + "-" + rest
	}
	return wf
}

// Morpheme returns the alias of a standalone morpheme, or m itself.
func (c *Corrections) Morpheme(m string) string {
	if v, ok := c.morphemes[m]; ok {
		return v
	}
	return m
}

// SignName returns the post-resolution substitute for a sign name.
func (c *Corrections) SignName(name string) string {
	if v, ok := c.signNames[name]; ok {
		return v
	}
	return name
}

// isAsideLine reports whether line is a parenthesised aside starting with
// one of the configured words.
func (c *Corrections) isAsideLine(line string) bool {
	if !strings.HasPrefix(line, "(") || !strings.HasSuffix(line, ")") {
		return false
	}
	for _, w := range c.AsideLines {
		if strings.HasPrefix(line[1:], w) {
			return true
		}
	}
	return false
}
