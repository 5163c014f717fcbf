package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/tcriess/lightspeed-frontdesk/config"
	"github.com/tcriess/lightspeed-frontdesk/globals"
	"github.com/tcriess/lightspeed-frontdesk/lifecycle"
	"github.com/tcriess/lightspeed-frontdesk/store"
	"github.com/tcriess/lightspeed-frontdesk/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handle incoming websockets
func websocketHandler(hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			globals.AppLogger.Error("websocket upgrade error", "error", err)
			return
		}

		doneChan := make(chan struct{})
		client := ws.NewClient(hub, conn, doneChan)
		hub.RegisterClient(client)
		go client.WriteLoop()
		client.ReadLoop()
	}
}

// healthHandler reports configuration presence, it makes no external calls.
func healthHandler(cfg *config.Config, st *store.Store, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":                "ok",
			"translateConfigured":   cfg.TranslateConfig.ProjectId != "",
			"credentialsConfigured": cfg.GoogleConfig.CredentialsFile != "",
			"rooms":                 len(st.Rooms()),
			"connections":           hub.NoClients(),
			"ttsAvailable":          false,
		})
	}
}

// generateRoomHandler creates a room up front and hands back the guest link.
func generateRoomHandler(cfg *config.Config, manager *lifecycle.Manager) http.HandlerFunc {
	type request struct {
		HotelName string `json:"hotelName"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if r.Body != nil {
			// an empty or malformed body just means no hotel name
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		room := manager.CreateRoom(req.HotelName)

		base := cfg.BaseUrl
		if base == "" {
			scheme := "http"
			if r.TLS != nil {
				scheme = "https"
			}
			base = fmt.Sprintf("%s://%s", scheme, r.Host)
		}
		guestUrl := fmt.Sprintf("%s/?room=%s&role=guest", base, room.Id)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"roomId":   room.Id,
			"guestUrl": guestUrl,
			"qrData":   guestUrl,
		})
	}
}

// ttsHandler: speech synthesis is explicitly disabled.
func ttsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotImplemented, map[string]interface{}{
		"error":        "text-to-speech is disabled",
		"ttsAvailable": false,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		globals.AppLogger.Error("could not write response", "error", err)
	}
}
