// Command server exposes the transliteration pipeline as a JSON REST API.
//
// Endpoints:
//
//	POST /api/normalize   body: {"id":"...","text":"..."}
//	POST /api/resolve     body: {"text":"..."}
//	POST /api/process     body: {"id":"...","text":"..."}
//	GET  /api/reading?value=<reading>
//	GET  /api/sign?name=<sign name>
//	GET  /api/wordform?form=<wordform>
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/rs/cors"

	"github.com/sumerian-ml/translit"
	"github.com/sumerian-ml/translit/internal/config"
)

// ---- JSON request/response types ----------------------------------------

type textRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type issueJSON struct {
	Stage string `json:"stage"`
	Kind  string `json:"kind,omitempty"`
	Line  string `json:"line"`
}

type normalizeResponse struct {
	Clean  string      `json:"clean"`
	Empty  bool        `json:"empty"`
	Issues []issueJSON `json:"issues"`
}

type morphemeJSON struct {
	Source     string   `json:"source"`
	Reading    string   `json:"reading"`
	SignName   string   `json:"sign_name"`
	Glyph      string   `json:"glyph"`
	Candidates []string `json:"candidates"`
	Reason     string   `json:"reason,omitempty"`
}

type wordJSON struct {
	Source    string         `json:"source"`
	Special   bool           `json:"special,omitempty"`
	Morphemes []morphemeJSON `json:"morphemes"`
}

type resolveResponse struct {
	Text      string          `json:"text"`
	SignNames string          `json:"sign_names"`
	Glyphs    string          `json:"glyphs"`
	Counts    translit.Counts `json:"counts"`
	Words     []wordJSON      `json:"words"`
}

type processResponse struct {
	ID        string          `json:"id"`
	Clean     string          `json:"clean"`
	Final     string          `json:"final"`
	SignNames string          `json:"sign_names"`
	Glyphs    string          `json:"glyphs"`
	Counts    translit.Counts `json:"counts"`
	Empty     bool            `json:"empty"`
	Issues    []issueJSON     `json:"issues"`
}

type readingResponse struct {
	Reading   string   `json:"reading"`
	SignNames []string `json:"sign_names"`
}

type signResponse struct {
	Name     string   `json:"name"`
	Glyph    string   `json:"glyph"`
	Readings []string `json:"readings"`
}

type wordformResponse struct {
	Form      string   `json:"form"`
	SignNames []string `json:"sign_names"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func toIssuesJSON(issues []translit.Issue) []issueJSON {
	out := make([]issueJSON, 0, len(issues))
	for _, is := range issues {
		out = append(out, issueJSON{Stage: is.Stage, Kind: string(is.Kind), Line: is.Line})
	}
	return out
}

func toWordsJSON(words []translit.Word) []wordJSON {
	out := make([]wordJSON, 0, len(words))
	for _, w := range words {
		mj := make([]morphemeJSON, 0, len(w.Morphemes))
		for _, mo := range w.Morphemes {
			cands := mo.Candidates
			if cands == nil {
				cands = []string{}
			}
			mj = append(mj, morphemeJSON{
				Source:     mo.Source,
				Reading:    mo.Reading,
				SignName:   mo.SignName,
				Glyph:      mo.Glyph,
				Candidates: cands,
				Reason:     string(mo.Reason),
			})
		}
		out = append(out, wordJSON{Source: w.Source, Special: w.Special, Morphemes: mj})
	}
	return out
}

// writeJSON leaves <unk> and & unescaped so responses read like the data.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeText reads a textRequest body and reports a 400 when it is unusable.
func decodeText(w http.ResponseWriter, r *http.Request) (textRequest, bool) {
	var body textRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
		writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
		return body, false
	}
	return body, true
}

// ---- handlers -----------------------------------------------------------

func handleNormalize(p *translit.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		body, ok := decodeText(w, r)
		if !ok {
			return
		}
		clean, issues := p.Normalizer().Normalize(body.ID, body.Text)
		writeJSON(w, http.StatusOK, normalizeResponse{
			Clean:  clean,
			Empty:  translit.IsEmpty(clean),
			Issues: toIssuesJSON(issues),
		})
	}
}

func handleResolve(p *translit.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		body, ok := decodeText(w, r)
		if !ok {
			return
		}
		res := p.Resolver().Resolve(body.Text)
		writeJSON(w, http.StatusOK, resolveResponse{
			Text:      res.Text,
			SignNames: res.SignNames,
			Glyphs:    res.Glyphs,
			Counts:    res.Counts,
			Words:     toWordsJSON(res.Words),
		})
	}
}

func handleProcess(p *translit.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		body, ok := decodeText(w, r)
		if !ok {
			return
		}
		rec, _ := p.Process(translit.Record{ID: body.ID, Transliteration: body.Text})
		writeJSON(w, http.StatusOK, processResponse{
			ID:        rec.ID,
			Clean:     rec.Clean,
			Final:     rec.Final,
			SignNames: rec.SignNames,
			Glyphs:    rec.Glyphs,
			Counts:    rec.Counts,
			Empty:     translit.IsEmpty(rec.Final),
			Issues:    toIssuesJSON(rec.Issues),
		})
	}
}

func handleReading(p *translit.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		value := r.URL.Query().Get("value")
		if value == "" {
			writeError(w, http.StatusBadRequest, "missing 'value' query parameter")
			return
		}
		names, ok := p.Tables().Readings(translit.Compose(value))
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("reading %q not found", value))
			return
		}
		writeJSON(w, http.StatusOK, readingResponse{Reading: value, SignNames: names})
	}
}

func handleSign(p *translit.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		name := translit.Compose(r.URL.Query().Get("name"))
		if name == "" {
			writeError(w, http.StatusBadRequest, "missing 'name' query parameter")
			return
		}
		glyph, ok := p.Tables().Glyph(name)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("sign %q not found", name))
			return
		}
		readings := p.Tables().SignReadings(name)
		if readings == nil {
			readings = []string{}
		}
		writeJSON(w, http.StatusOK, signResponse{Name: name, Glyph: glyph, Readings: readings})
	}
}

func handleWordform(p *translit.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		form := r.URL.Query().Get("form")
		if form == "" {
			writeError(w, http.StatusBadRequest, "missing 'form' query parameter")
			return
		}
		names, ok := p.Tables().Wordform(translit.Compose(form))
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("wordform %q not found", form))
			return
		}
		writeJSON(w, http.StatusOK, wordformResponse{Form: form, SignNames: names})
	}
}

// newHandler routes the API and wraps it in CORS handling.
func newHandler(p *translit.Pipeline, origins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/normalize", handleNormalize(p))
	mux.HandleFunc("/api/resolve", handleResolve(p))
	mux.HandleFunc("/api/process", handleProcess(p))
	mux.HandleFunc("/api/reading", handleReading(p))
	mux.HandleFunc("/api/sign", handleSign(p))
	mux.HandleFunc("/api/wordform", handleWordform(p))

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

// ---- main ---------------------------------------------------------------

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	log.Printf("loading data from %s …", cfg.DataDir)
	p, err := translit.New(cfg.DataDir, translit.Options{CacheSize: cfg.CacheSize})
	if err != nil {
		log.Fatalf("failed to load data: %v", err)
	}
	for _, is := range p.BuildIssues() {
		log.Printf("%s: %s", is.Kind, is.Line)
	}
	wordforms, readings, signs := p.Tables().Len()
	log.Printf("data loaded: %d readings, %d sign names, %d wordforms", readings, signs, wordforms)

	log.Printf("listening on %s", cfg.Port)
	if err := http.ListenAndServe(cfg.Port, newHandler(p, cfg.AllowedOrigins)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
