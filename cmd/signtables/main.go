// Command signtables builds the reading, wordform and glyph lookup tables
// from an Oracc Sign List export and writes them as JSON.
//
//	signtables -data data [-out data]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/sumerian-ml/translit"
	"github.com/sumerian-ml/translit/internal/config"
)

func main() {
	out := flag.String("out", "", "output directory (defaults to the data directory)")
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *out == "" {
		*out = cfg.DataDir
	}

	log.Printf("reading %s from %s …", translit.SignListFile, cfg.DataDir)
	tables, issues, err := translit.BuildTablesFromDir(cfg.DataDir)
	if err != nil {
		log.Fatalf("build tables: %v", err)
	}
	for _, is := range issues {
		log.Printf("%s: %s", is.Kind, is.Line)
	}

	if err := translit.SaveTables(*out, tables); err != nil {
		log.Fatalf("save tables: %v", err)
	}
	wordforms, readings, signs := tables.Len()
	log.Printf("wrote %d readings, %d sign names, %d wordforms to %s", readings, signs, wordforms, *out)
}
