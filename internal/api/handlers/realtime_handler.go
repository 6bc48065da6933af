package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/avenk/careerpath-be/internal/auth"
	"github.com/avenk/careerpath-be/internal/realtime"
)

// RealtimeHandler upgrades HTTP connections to websocket sessions subscribed
// to the authenticated user's event channel.
type RealtimeHandler struct {
	hub    *realtime.Hub
	tokens *auth.Manager
}

// NewRealtimeHandler creates a new RealtimeHandler.
func NewRealtimeHandler(hub *realtime.Hub, tokens *auth.Manager) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, tokens: tokens}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the websocket connection request. Browsers cannot set headers
// on the websocket handshake, so the token travels as a query parameter.
func (h *RealtimeHandler) Serve(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		respondError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	claims, err := h.tokens.ValidateToken(tokenStr)
	if err != nil {
		respondError(w, http.StatusForbidden, "Invalid auth token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := realtime.NewClient(h.hub, conn, claims.UserID)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
