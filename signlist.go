package translit

// SignList is the subset of the Oracc Sign List JSON export (sl.json)
// needed to build the lookup tables.
type SignList struct {
	SignList struct {
		Letters []struct {
			Letter struct {
				Signs []struct {
					Sign SignEntry `json:"sl:sign"`
				} `json:"j:signs"`
			} `json:"sl:letter"`
		} `json:"j:letters"`
	} `json:"sl:signlist"`
}

// SignEntry is one sign, or one variant form of a sign.
type SignEntry struct {
	Name    string       `json:"n"`
	Unicode string       `json:"sl:ucun"`
	Lemmas  []LemmaEntry `json:"sl:lemmas"`
	Aka     []struct {
		Aka struct {
			Name string `json:"n"`
		} `json:"sl:aka"`
	} `json:"j:aka"`
	Values []struct {
		// Value is nil for value entries without an sl:v object.
		Value *struct {
			Name   string       `json:"n"`
			Lemmas []LemmaEntry `json:"sl:lemmas"`
		} `json:"sl:v"`
	} `json:"j:values"`
	Forms []struct {
		Form SignEntry `json:"sl:form"`
	} `json:"j:forms"`
}

// LemmaEntry is a wordform attested for a sign or one of its values.
type LemmaEntry struct {
	Lemma struct {
		Base string `json:"base"`
	} `json:"sl:lemma"`
}

// Signs returns every top-level sign entry in document order.
func (sl *SignList) Signs() []*SignEntry {
	var out []*SignEntry
	for i := range sl.SignList.Letters {
		signs := sl.SignList.Letters[i].Letter.Signs
		for j := range signs {
			out = append(out, &signs[j].Sign)
		}
	}
	return out
}

// AddSignList registers every sign of sl, including its variant forms.
func (b *Builder) AddSignList(sl *SignList) {
	for _, s := range sl.Signs() {
		b.addSign(s)
	}
}

// addSign registers the glyph, readings and wordforms of s under its own
// name, its aliases, and recursively under each variant form's name.
func (b *Builder) addSign(s *SignEntry) {
	b.AddGlyph(s.Name, s.Unicode)
	for _, a := range s.Aka {
		b.AddGlyph(a.Aka.Name, s.Unicode)
	}
	for _, l := range s.Lemmas {
		b.AddWordform(s.Name, l.Lemma.Base)
	}
	for _, v := range s.Values {
		if v.Value == nil {
			continue
		}
		b.AddReading(s.Name, v.Value.Name)
		for _, l := range v.Value.Lemmas {
			b.AddWordform(s.Name, l.Lemma.Base)
		}
	}
	for i := range s.Forms {
		b.addSign(&s.Forms[i].Form)
	}
}

// BuildTables builds Tables from a sign list and an override index
// (reading → sign name) such as the ePSD2 sign-list index.
func BuildTables(sl *SignList, overrides map[string]string) (*Tables, []Issue) {
	b := NewBuilder()
	if sl != nil {
		b.AddSignList(sl)
	}
	for k, v := range overrides {
		b.Override(k, v)
	}
	return b.Build()
}
