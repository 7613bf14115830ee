package translit

import "unicode"

// Surface forms of the closed token alphabet.
const (
	// Ellipsis is the public representation of missing content.
	Ellipsis = "..."
	// missing is the sentinel used while normalizing; it is replaced by
	// Ellipsis in the final pass because "..." is awkward in patterns.
	missing = "==MISSING=="

	Surface    = "==SURFACE=="
	Column     = "==COLUMN=="
	BlankSpace = "==BLANK_SPACE=="
	Ruling     = "==RULING=="
	Newline    = "\n"
	Unknown    = "<unk>"
)

// TokenKind classifies a token of the cleaned or resolved stream.
type TokenKind int

const (
	KindSign TokenKind = iota
	KindMissing
	KindSurface
	KindColumn
	KindBlankSpace
	KindRuling
	KindNewline
	KindUnknown
)

var kindNames = map[TokenKind]string{
	KindSign:       "sign",
	KindMissing:    "missing",
	KindSurface:    "surface",
	KindColumn:     "column",
	KindBlankSpace: "blank_space",
	KindRuling:     "ruling",
	KindNewline:    "newline",
	KindUnknown:    "unknown",
}

func (k TokenKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// structural maps the surface form of every pass-through token to its kind.
var structural = map[string]TokenKind{
	Ellipsis:   KindMissing,
	Surface:    KindSurface,
	Column:     KindColumn,
	BlankSpace: KindBlankSpace,
	Ruling:     KindRuling,
	Newline:    KindNewline,
	Unknown:    KindUnknown,
}

// ClassifyToken returns the kind of s. Anything that is not one of the
// fixed structural tokens is a sign.
func ClassifyToken(s string) TokenKind {
	if k, ok := structural[s]; ok {
		return k
	}
	return KindSign
}

// IsSpecial reports whether s is a structural token, the ellipsis, a line
// break or the unknown marker.
func IsSpecial(s string) bool {
	return ClassifyToken(s) != KindSign
}

// Token is one resolved unit: a structural token, an unknown, or a sign
// carrying its reading, sign name and glyph.
type Token struct {
	Kind     TokenKind
	Reading  string
	SignName string
	Glyph    string
}

// Text returns the surface string of a structural token, or the reading of
// a sign.
func (t Token) Text() string {
	switch t.Kind {
	case KindSign:
		return t.Reading
	case KindUnknown:
		return Unknown
	}
	for s, k := range structural {
		if k == t.Kind {
			return s
		}
	}
	return ""
}

// isUpper reports whether s has at least one cased letter and no lower
// case ones, so |A.B| and KWU147 both count as upper case.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			return false
		case unicode.IsUpper(r), unicode.IsTitle(r):
			cased = true
		}
	}
	return cased
}
