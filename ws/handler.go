package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler, yeni bir WebSocket handler oluşturur.
//
// allowedOrigins, upgrade isteğinin Origin header'ının kontrol edildiği
// liste — CORS'un WebSocket karşılığı. Origin header'ı olmayan istekler
// (curl, native client) kabul edilir; browser istekleri listede olmalı.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return allowed[origin]
			},
		},
	}
}

// HandleConnection, HTTP bağlantısını WebSocket'e yükseltir ve client'ı Hub'a kaydeder.
//
// Kimlik, handshake'te URL query parameter'ı olarak taşınır:
//
//	ws://server/ws?userId=USER_ID
//
// userId göndermeyen bağlantı da upgrade edilir ama presence listesine
// GİRMEZ — socket açık kalır, online kullanıcı event'lerini almaz.
//
// Flow:
// 1. Query'den userId al
// 2. HTTP → WebSocket upgrade
// 3. Client oluştur; userId varsa Hub'a kaydet (Hub broadcast'i tetikler)
// 4. ReadPump ve WritePump goroutine'lerini başlat
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade başarısızsa gorilla yanıtı zaten yazdı.
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}

	if userID != "" {
		h.hub.register <- client
	}

	// WritePump ayrı goroutine'de, ReadPump mevcut goroutine'de çalışır.
	// ReadPump bağlantı kapanana kadar bloklar — bu handler'ın ömrü
	// bağlantının ömrüdür.
	go client.WritePump()
	client.ReadPump()
}
