package handlers

import (
	"log"
	"net/http"

	"github.com/Dosada05/manager-directory/live"
	"github.com/Dosada05/manager-directory/middleware"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The HTTP API is served with wide-open CORS; the feed matches it.
		return true
	},
}

type WebSocketHandler struct {
	hub       *live.Hub
	jwtSecret []byte
}

func NewWebSocketHandler(hub *live.Hub, jwtSecret []byte) *WebSocketHandler {
	return &WebSocketHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

// ServeWs attaches an admin dashboard client to the review feed. Browsers
// cannot set headers on websocket upgrades, so the token rides in a query
// parameter.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := middleware.ParseToken(h.jwtSecret, tokenString)
	if err != nil || claims["role"] != middleware.RoleAdmin {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("failed to upgrade review feed connection: %v", err)
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
