package translit

import (
	"slices"
	"testing"
)

func TestSplitMorphemes(t *testing.T) {
	tests := []struct {
		wf   string
		want []string
	}{
		{"{d}en-lil₂-ra", []string{"{d}", "en", "lil₂", "ra"}},
		{"uri₅{ki}-ma", []string{"uri₅", "{ki}", "ma"}},
		{"1(u) 1(diš)", []string{"1(u)", "1(diš)"}},
		{"1(u)-bi", []string{"1(u)", "bi"}},
		{"mu-lu:gal-e", []string{"mu", "gal", "lu", "e"}},
		{"gurₓ(|ŠE.KIN|)-še₃", []string{"gurₓ(|ŠE.KIN|)", "še₃"}},
		{"ku(|A-B|)", []string{"ku(|A-B|)"}},
		{"lugal", []string{"lugal"}},
	}
	for _, tt := range tests {
		if got := SplitMorphemes(tt.wf); !slices.Equal(got, tt.want) {
			t.Errorf("SplitMorphemes(%q) = %q, want %q", tt.wf, got, tt.want)
		}
	}
}

func TestWordforms(t *testing.T) {
	c := DefaultCorrections()
	tests := []struct {
		text string
		want []string
	}{
		{"a b\nc...d", []string{"a", "b", "\n", "c", "...", "d"}},
		{"a\n(lugal uri₅{ki}-ma)\nb", []string{"a", "\n", "...", "\n", "b"}},
		{"...(broken)...a", []string{"...", "a"}},
		{"a...(broken)\nb", []string{"a", "...", "\n", "b"}},
		{"a\n...\n...\nb", []string{"a", "\n", "...", "\n", "b"}},
		{"(e₂ lugal)\nb", []string{"(e₂", "lugal)", "\n", "b"}},
	}
	for _, tt := range tests {
		if got := c.Wordforms(tt.text); !slices.Equal(got, tt.want) {
			t.Errorf("Wordforms(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
