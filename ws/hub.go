// Package ws is the event gateway: it multiplexes all live websocket
// connections onto the lifecycle manager and the message pipeline, and fans
// server events out to their room and target-filter recipients.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"github.com/tcriess/lightspeed-frontdesk/filter"
	"github.com/tcriess/lightspeed-frontdesk/globals"
	"github.com/tcriess/lightspeed-frontdesk/store"
	"github.com/tcriess/lightspeed-frontdesk/types"
)

const (
	// base64 PCM chunks are large, allow a generous read limit
	maxMessageSize       = 1 << 20
	pongWait             = 2 * time.Minute
	pingPeriod           = time.Minute
	writeWait            = 10 * time.Second
	broadcastChannelSize = 1000
	sendChannelSize      = 256
)

// MessageHandler is the pipeline side of the gateway.
type MessageHandler interface {
	HandleText(ctx context.Context, connectionId, room string, role types.Role, language, text string)
	HandleAudio(ctx context.Context, connectionId, room string, role types.Role, language, audioData string)
}

// LifecycleHandler is the join/leave side of the gateway.
type LifecycleHandler interface {
	Join(connectionId string, req types.JoinRoomRequest)
	Disconnect(connectionId string)
	RoomInfo(connectionId, roomId string)
}

// Hub tracks all connected clients across all rooms. Room membership itself
// lives in the store, the hub only maps connection ids to live connections.
type Hub struct {
	store *store.Store

	// Registered clients by connection id.
	clients map[string]*Client

	broadcast chan []*types.Event

	// Handlers are assigned at startup, before Run.
	Pipeline  MessageHandler
	Lifecycle LifecycleHandler

	// mutex for manipulating the clients
	sync.RWMutex
}

func NewHub(st *store.Store) *Hub {
	return &Hub{
		store:     st,
		clients:   make(map[string]*Client),
		broadcast: make(chan []*types.Event, broadcastChannelSize),
	}
}

// RegisterClient adds a client to the hub. It runs synchronously so the
// connection is guaranteed to receive events emitted by anything it sends
// afterwards, the very first join_room included.
func (h *Hub) RegisterClient(client *Client) {
	globals.AppLogger.Debug("register new client", "connection", client.Id)
	h.Lock()
	h.clients[client.Id] = client
	h.Unlock()
}

// UnregisterClient removes a client and runs the disconnect transition.
func (h *Hub) UnregisterClient(client *Client) {
	h.Lock()
	if _, ok := h.clients[client.Id]; ok {
		delete(h.clients, client.Id)
		client.conn.Close()
		close(client.Send)
	}
	h.Unlock()
	h.Lifecycle.Disconnect(client.Id)
}

// BroadcastEvents queues events for delivery. The run loop delivers batches in
// order, so one pipeline's status/result sequence reaches every room member in
// the order it was emitted.
func (h *Hub) BroadcastEvents(events []*types.Event) {
	h.broadcast <- events
}

// NoClients returns the number of clients registered.
func (h *Hub) NoClients() int {
	h.RLock()
	defer h.RUnlock()
	return len(h.clients)
}

// Run is the main hub event loop. It drains broadcast batches in order, which
// gives every room member one pipeline's status/result sequence in emission
// order.
func (h *Hub) Run() {
	for events := range h.broadcast {
		for _, event := range events {
			h.deliver(event)
		}
	}
}

// deliver sends one event to every recipient: the members of the event's room
// (or every connection for room-less events), narrowed by the target filter.
func (h *Hub) deliver(event *types.Event) {
	var prog *vm.Program
	if event.TargetFilter != "" {
		var err error
		prog, err = expr.Compile(event.TargetFilter, expr.Env(filter.Env{}))
		if err != nil {
			globals.AppLogger.Error("could not compile target filter", "error", err, "filter", event.TargetFilter)
			return
		}
	}
	data, err := json.Marshal(types.WireEvent{Event: event})
	if err != nil {
		globals.AppLogger.Error("could not marshal event", "error", err, "event", event.Name)
		return
	}

	var recipients []string
	if event.Room != "" {
		room, ok := h.store.GetRoom(event.Room)
		if !ok {
			return
		}
		recipients = make([]string, 0, len(room.Members))
		for id := range room.Members {
			recipients = append(recipients, id)
		}
	}

	h.RLock()
	defer h.RUnlock()
	if event.Room == "" {
		recipients = make([]string, 0, len(h.clients))
		for id := range h.clients {
			recipients = append(recipients, id)
		}
	}
	for _, id := range recipients {
		client, ok := h.clients[id]
		if !ok {
			continue
		}
		if !h.runFilterEvent(client, event, prog) {
			continue
		}
		select {
		case client.Send <- data:
		default:
			// a client that cannot keep up loses events rather than
			// stalling the whole room
			globals.AppLogger.Warn("send buffer full, dropping event", "connection", id, "event", event.Name)
		}
	}
}
