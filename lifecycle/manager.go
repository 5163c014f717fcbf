// Package lifecycle owns the join/disconnect transitions and the deferred
// reclamation of abandoned rooms.
package lifecycle

import (
	"sync"
	"time"

	"github.com/folkengine/goname"
	"github.com/tcriess/lightspeed-frontdesk/filter"
	"github.com/tcriess/lightspeed-frontdesk/globals"
	"github.com/tcriess/lightspeed-frontdesk/language"
	"github.com/tcriess/lightspeed-frontdesk/store"
	"github.com/tcriess/lightspeed-frontdesk/types"
)

// Broadcaster delivers events to their room / target filter recipients.
type Broadcaster interface {
	BroadcastEvents(events []*types.Event)
}

type Manager struct {
	store        *store.Store
	resolver     language.Resolver
	caster       Broadcaster
	cleanupDelay time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer // scheduled cleanups keyed by room id
}

func NewManager(st *store.Store, resolver language.Resolver, caster Broadcaster, cleanupDelay time.Duration) *Manager {
	return &Manager{
		store:        st,
		resolver:     resolver,
		caster:       caster,
		cleanupDelay: cleanupDelay,
		pending:      make(map[string]*time.Timer),
	}
}

// placeholderHotelName is used when a room is created without a display name.
func placeholderHotelName() string {
	return goname.New(goname.FantasyMap).FirstLast() + " Hotel"
}

// Join moves a connection into a room, detaching it from its previous room
// first. Unknown rooms are created on the fly with a placeholder display name.
func (m *Manager) Join(connectionId string, req types.JoinRoomRequest) {
	if err := req.Validate(); err != nil {
		m.caster.BroadcastEvents([]*types.Event{
			types.NewEvent("", types.EventNameError, filter.OnlyConnection(connectionId), types.ErrorMessage{Message: err.Error()}),
		})
		return
	}
	effective := m.resolver.Effective(req.Role, req.Language)
	res := m.store.Join(connectionId, req.Room, req.Role, effective, store.RoomDefaults{
		DisplayName: placeholderHotelName(),
	})
	m.cancelCleanup(req.Room)
	globals.AppLogger.Info("connection joined room",
		"connection", connectionId, "room", req.Room, "role", req.Role, "language", effective, "created", res.Created)

	events := make([]*types.Event, 0, 5)
	if res.PreviousRoom != nil {
		events = append(events,
			types.NewEvent(res.PreviousRoom.Id, types.EventNameUserLeft, "", types.UserLeft{
				Role:   res.PreviousRole,
				UserId: connectionId,
			}),
			statsEvent(res.PreviousRoom),
		)
		if res.PreviousRoom.MemberCount() == 0 {
			m.ScheduleCleanup(res.PreviousRoom.Id)
		}
	}
	events = append(events,
		types.NewEvent(req.Room, types.EventNameRoomJoined, filter.OnlyConnection(connectionId), types.RoomJoined{
			Room:     req.Room,
			Role:     req.Role,
			Language: language.DisplayName(effective),
		}),
		types.NewEvent(req.Room, types.EventNameUserJoined, filter.ExceptConnection(connectionId), types.UserJoined{
			Role:     req.Role,
			Language: effective,
			UserId:   connectionId,
		}),
		statsEvent(res.Room),
	)
	m.caster.BroadcastEvents(events)
}

// Disconnect handles a transport-level link loss. The room is never deleted
// synchronously, an empty room only gets a cleanup scheduled.
func (m *Manager) Disconnect(connectionId string) {
	sess, room, ok := m.store.Drop(connectionId)
	if !ok {
		return
	}
	globals.AppLogger.Info("connection left", "connection", connectionId, "room", sess.Room, "role", sess.Role)
	if room == nil {
		return
	}
	m.caster.BroadcastEvents([]*types.Event{
		types.NewEvent(room.Id, types.EventNameUserLeft, "", types.UserLeft{
			Role:   sess.Role,
			UserId: connectionId,
		}),
		statsEvent(room),
	})
	if room.MemberCount() == 0 {
		m.ScheduleCleanup(room.Id)
	}
}

// RoomInfo answers a get_room_info request, to the requester only.
func (m *Manager) RoomInfo(connectionId, roomId string) {
	room, ok := m.store.GetRoom(roomId)
	if !ok {
		m.caster.BroadcastEvents([]*types.Event{
			types.NewEvent("", types.EventNameError, filter.OnlyConnection(connectionId), types.ErrorMessage{Message: "Room not found"}),
		})
		return
	}
	m.caster.BroadcastEvents([]*types.Event{
		types.NewEvent("", types.EventNameRoomInfo, filter.OnlyConnection(connectionId), types.RoomInfo{
			HotelName:     room.DisplayName,
			UserCount:     room.MemberCount(),
			CreatedAt:     room.CreatedAt,
			GuestLanguage: room.GuestLanguage,
		}),
	})
}

// CreateRoom backs the room-creation endpoint. It shares the getOrCreate path
// with implicit creation on join, and the new empty room immediately gets a
// cleanup scheduled so it cannot leak if nobody ever connects.
func (m *Manager) CreateRoom(hotelName string) *types.Room {
	if hotelName == "" {
		hotelName = placeholderHotelName()
	}
	room, _ := m.store.GetOrCreateRoom(types.NewRoomId(), store.RoomDefaults{DisplayName: hotelName})
	m.ScheduleCleanup(room.Id)
	return room
}

func statsEvent(room *types.Room) *types.Event {
	return types.NewEvent(room.Id, types.EventNameRoomStats, "", types.RoomStats{
		UserCount:     room.MemberCount(),
		HotelName:     room.DisplayName,
		GuestLanguage: room.GuestLanguage,
	})
}
