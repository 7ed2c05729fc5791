package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fourline-io/server/server"
)

// MakeHandleRooms returns the live-rooms listing handler, for clients
// looking for a game to watch.
func MakeHandleRooms(registry *server.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(registry.ListRooms())
	}
}
