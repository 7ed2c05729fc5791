package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/fourline-io/server/db"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HandleHistory returns the most recently finished games. Only
// available when a database is configured.
func HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		if parsed > maxHistoryLimit {
			parsed = maxHistoryLimit
		}
		limit = parsed
	}

	matches, err := db.GetRecentMatches(limit)
	if err != nil {
		log.Printf("[HISTORY] failed to fetch matches: %v", err)
		http.Error(w, "Failed to fetch history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matches)
}
