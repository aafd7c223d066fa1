package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

type server struct {
	db *matchDB
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *server) handleMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.db.Matches(r.Context())
	if err != nil {
		log.Printf("list matches failed: %v", err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, matches)
}

func (s *server) handleMatchFrames(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	frames, err := s.db.Frames(r.Context(), matchID)
	if err != nil {
		log.Printf("frames for %s failed: %v", matchID, err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	if len(frames) == 0 {
		http.Error(w, "unknown match", http.StatusNotFound)
		return
	}
	writeJSON(w, frames)
}

var upgrader = websocket.Upgrader{
	// Replays are read-only public data; accept any origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleReplay streams one frame per tick over a websocket at the requested
// rate, then closes. The wire format matches /api/matches/{id} but delivers
// frames with match timing, so a client can animate without buffering the
// whole game.
func (s *server) handleReplay(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	fps := 15
	if v := r.URL.Query().Get("fps"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 240 {
			fps = n
		}
	}

	frames, err := s.db.Frames(r.Context(), matchID)
	if err != nil {
		log.Printf("replay query for %s failed: %v", matchID, err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	if len(frames) == 0 {
		http.Error(w, "unknown match", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for i, frame := range frames {
		if err := conn.WriteJSON(frame); err != nil {
			log.Printf("replay %s stopped at frame %d: %v", matchID, i, err)
			return
		}
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replay complete"),
		time.Now().Add(time.Second))
}
