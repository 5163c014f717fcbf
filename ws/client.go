package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
	"github.com/tcriess/lightspeed-frontdesk/globals"
	"github.com/tcriess/lightspeed-frontdesk/types"
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	// Id is the opaque connection identity, assigned at connect time.
	Id string

	hub *Hub

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan []byte

	doneChan chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, doneChan chan struct{}) *Client {
	return &Client{
		Id:       uuid.New().String(),
		hub:      hub,
		conn:     conn,
		Send:     make(chan []byte, sendChannelSize),
		doneChan: doneChan,
	}
}

// sendError delivers a private error notice directly to this connection,
// bypassing the broadcast path.
func (c *Client) sendError(message string) {
	event := types.NewEvent("", types.EventNameError, "", types.ErrorMessage{Message: message})
	data, err := json.Marshal(types.WireEvent{Event: event})
	if err != nil {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// ReadLoop pumps messages from the websocket connection to the hub.
//
// The application runs ReadLoop in a per-connection goroutine. The application
// ensures that there is at most one reader on a connection by executing all
// reads from this goroutine.
func (c *Client) ReadLoop() {
	defer func() {
		close(c.doneChan)
		c.hub.UnregisterClient(c)
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				globals.AppLogger.Debug("ws closed unexpected", "connection", c.Id, "error", err)
			}
			return
		}

		message := types.WebsocketMessage{}
		if err := json.Unmarshal(raw, &message); err != nil {
			globals.AppLogger.Error("could not unmarshal ws message", "error", err, "connection", c.Id)
			c.sendError("Malformed message")
			continue
		}
		payload := make(map[string]interface{})
		if len(message.Data) > 0 {
			if err := json.Unmarshal(message.Data, &payload); err != nil {
				globals.AppLogger.Error("could not unmarshal payload", "error", err, "event", message.Event)
				c.sendError("Malformed message payload")
				continue
			}
		}

		switch message.Event {
		case types.EventNameJoinRoom:
			req := types.JoinRoomRequest{}
			if err := mapstructure.WeakDecode(payload, &req); err != nil {
				c.sendError("Invalid join_room payload")
				continue
			}
			c.hub.Lifecycle.Join(c.Id, req)

		case types.EventNameTextMessage:
			req := types.TextMessageRequest{}
			if err := mapstructure.WeakDecode(payload, &req); err != nil {
				c.sendError("Invalid text_message payload")
				continue
			}
			// messages run concurrently so a slow collaborator call does not
			// block this read loop
			go c.hub.Pipeline.HandleText(context.Background(), c.Id, req.Room, req.Role, req.Language, req.Text)

		case types.EventNameAudioMessage:
			req := types.AudioMessageRequest{}
			if err := mapstructure.WeakDecode(payload, &req); err != nil {
				c.sendError("Invalid audio_message payload")
				continue
			}
			go c.hub.Pipeline.HandleAudio(context.Background(), c.Id, req.Room, req.Role, req.Language, req.AudioData)

		case types.EventNameGetRoomInfo:
			req := types.GetRoomInfoRequest{}
			if err := mapstructure.WeakDecode(payload, &req); err != nil {
				c.sendError("Invalid get_room_info payload")
				continue
			}
			c.hub.Lifecycle.RoomInfo(c.Id, req.Room)

		default:
			globals.AppLogger.Debug("unknown event", "event", message.Event, "connection", c.Id)
			c.sendError("Unknown event: " + message.Event)
		}
	}
}

// WriteLoop pumps messages from the hub to the websocket connection.
//
// A goroutine running WriteLoop is started for each connection. The
// application ensures that there is at most one writer to a connection by
// executing all writes from this goroutine.
func (c *Client) WriteLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(message)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.doneChan:
			return
		}
	}
}
