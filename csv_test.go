package translit

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestReadRecords(t *testing.T) {
	f, err := os.Open("testdata/tablets.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := ReadRecords(f)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 7 {
		t.Fatalf("got %d records, want 7", len(records))
	}
	p2 := records[1]
	if p2.ID != "P2" || p2.Genre != "uncertain" || p2.Transliteration != "3 du\n[x x]" {
		t.Errorf("records[1] = %+v", p2)
	}
}

func TestReadRecordsErrors(t *testing.T) {
	bad := []string{
		"",
		"transliteration\nlugal\n",
		"id,resolved\nP1,many\n",
	}
	for _, in := range bad {
		if _, err := ReadRecords(strings.NewReader(in)); err == nil {
			t.Errorf("ReadRecords(%q): want error", in)
		}
	}
}

func TestReadRecordsErrorLine(t *testing.T) {
	in := "id,transliteration,resolved\nP1,\"a\nb\",1\nP2,c,many\n"
	_, err := ReadRecords(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "line 4: resolved") {
		t.Errorf("ReadRecords error = %v, want it to point at line 4", err)
	}
}

func TestWriteRecords(t *testing.T) {
	in := []Record{{
		ID:              "P1",
		Period:          "Ur III",
		Transliteration: "a, b\nc",
		Final:           "a b\nc",
		SignNames:       "A B\nC",
		Glyphs:          "𒀀𒁀\n𒁍",
		Counts:          Counts{Resolved: 3, Special: 1},
	}}
	var buf bytes.Buffer
	if err := WriteRecords(&buf, in); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	header, _, _ := strings.Cut(buf.String(), "\n")
	want := "id,period,genre,subgenre,language,transliteration,transliteration_clean,transliteration_final,glyph_names,glyphs,resolved,unknown,special"
	if header != want {
		t.Errorf("header = %q\nwant %q", header, want)
	}

	out, err := ReadRecords(&buf)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(out) != 1 || out[0].ID != in[0].ID || out[0].Transliteration != in[0].Transliteration ||
		out[0].Glyphs != in[0].Glyphs || out[0].Counts != in[0].Counts {
		t.Errorf("read back %+v, want %+v", out, in)
	}
}
