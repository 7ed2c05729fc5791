package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fourline-io/server/db"
	"github.com/fourline-io/server/utils"
)

const maxNameLength = 20

type guestRequest struct {
	Name string `json:"name"`
}

type guestResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// HandleGuest issues a signed guest identity token. There is no signup;
// a client posts an optional display name and gets a token it can
// present on the WebSocket handshake to keep a stable identity.
func HandleGuest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req guestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) > maxNameLength {
		http.Error(w, "Name too long", http.StatusBadRequest)
		return
	}

	token, claims, err := utils.GenerateGuestToken(name)
	if err != nil {
		log.Printf("[AUTH] failed to generate guest token: %v", err)
		http.Error(w, "Failed to create guest identity", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := db.CacheGuestSession(ctx, claims.ID, claims.PlayerID, claims.Name, 24*time.Hour); err != nil {
		log.Printf("[AUTH] failed to cache guest session: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(guestResponse{
		Token:    token,
		PlayerID: claims.PlayerID,
		Name:     claims.Name,
	})
}
