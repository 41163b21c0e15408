package handlers

import (
	"net/http"

	"github.com/varunk-2005/chat-app/pkg"
	"github.com/varunk-2005/chat-app/ws"
)

// HealthHandler, liveness endpoint'i. Load balancer / uptime monitör
// bu endpoint'i poll'lar.
type HealthHandler struct {
	presence ws.Presence
}

// NewHealthHandler, constructor.
func NewHealthHandler(presence ws.Presence) *HealthHandler {
	return &HealthHandler{presence: presence}
}

// Health godoc
// GET /health
// Auth gerektirmez — servis ayakta mı kontrolü.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"onlineUsers": len(h.presence.GetOnlineUserIDs()),
	})
}
