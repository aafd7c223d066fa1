// Package main serves recorded snake matches for replay.
//
// Matches are parquet files written by the autosnake binary's -record-dir
// flag. DuckDB queries them in place; no database server or import step.
//
//	GET /api/matches            list recorded matches
//	GET /api/matches/{id}       all frames of one match
//	GET /ws/matches/{id}?fps=N  websocket replay at N frames per second
package main

import (
	"flag"
	"log"
	"net/http"
)

func main() {
	addr := flag.String("addr", ":8090", "HTTP listen address")
	dataDir := flag.String("data-dir", "recordings", "Directory containing match parquet files")
	flag.Parse()

	db, err := openDB(*dataDir)
	if err != nil {
		log.Fatalf("Failed to open match data: %v", err)
	}
	defer db.Close()

	s := &server{db: db}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/matches", s.handleMatches)
	mux.HandleFunc("GET /api/matches/{id}", s.handleMatchFrames)
	mux.HandleFunc("GET /ws/matches/{id}", s.handleReplay)

	log.Printf("Serving matches from %s on %s", *dataDir, *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
