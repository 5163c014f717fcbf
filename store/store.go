// Package store holds the process-wide session and room state. It is the only
// place where sessions and room member sets are mutated, and every transition
// touching both happens under a single lock, so no reader ever observes a
// session pointing at a room it is not a member of.
package store

import (
	"sync"
	"time"

	"github.com/tcriess/lightspeed-frontdesk/types"
)

// RoomDefaults is used when a room is created implicitly on first join or
// explicitly via the room-creation endpoint. Both paths go through
// GetOrCreateRoom so initialization cannot diverge.
type RoomDefaults struct {
	DisplayName string
}

// Store is an in-memory state container. It is handed into the lifecycle
// manager, the pipeline and the hub, there are no package-level singletons.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*types.Session
	rooms    map[string]*types.Room
}

func New() *Store {
	return &Store{
		sessions: make(map[string]*types.Session),
		rooms:    make(map[string]*types.Room),
	}
}

// snapshotRoom copies a room so callers can read it without holding the lock.
func snapshotRoom(room *types.Room) *types.Room {
	if room == nil {
		return nil
	}
	cp := *room
	cp.Members = make(map[string]struct{}, len(room.Members))
	for id := range room.Members {
		cp.Members[id] = struct{}{}
	}
	return &cp
}

// GetSession returns a copy of the session of the given connection.
func (s *Store) GetSession(connectionId string) (*types.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[connectionId]
	if !ok {
		return nil, false
	}
	cp := *sess
	return &cp, true
}

// UpsertSession creates or replaces the session of the given connection.
func (s *Store) UpsertSession(connectionId, room string, role types.Role, lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[connectionId] = &types.Session{
		ConnectionId: connectionId,
		Room:         room,
		Role:         role,
		Language:     lang,
	}
}

// RemoveSession deletes the session of the given connection, if any.
func (s *Store) RemoveSession(connectionId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, connectionId)
}

// GetRoom returns a copy of the room with the given id.
func (s *Store) GetRoom(roomId string) (*types.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[roomId]
	if !ok {
		return nil, false
	}
	return snapshotRoom(room), true
}

// GetOrCreateRoom returns the room with the given id, creating it with the
// given defaults if it does not exist. The second return value reports whether
// the room was created.
func (s *Store) GetOrCreateRoom(roomId string, defaults RoomDefaults) (*types.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, created := s.getOrCreateRoomLocked(roomId, defaults)
	return snapshotRoom(room), created
}

func (s *Store) getOrCreateRoomLocked(roomId string, defaults RoomDefaults) (*types.Room, bool) {
	if room, ok := s.rooms[roomId]; ok {
		return room, false
	}
	room := &types.Room{
		Id:          roomId,
		DisplayName: defaults.DisplayName,
		CreatedAt:   time.Now(),
		Members:     make(map[string]struct{}),
	}
	s.rooms[roomId] = room
	return room, true
}

// DeleteRoom removes a room unconditionally.
func (s *Store) DeleteRoom(roomId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomId)
}

// DeleteRoomIfEmpty removes a room only if it still exists and still has no
// members, and reports whether it was deleted. This is the re-validation step
// of the deferred cleanup.
func (s *Store) DeleteRoomIfEmpty(roomId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomId]
	if !ok || len(room.Members) > 0 {
		return false
	}
	delete(s.rooms, roomId)
	return true
}

// AddMember adds a connection to a room's member set.
func (s *Store) AddMember(roomId, connectionId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[roomId]; ok {
		room.Members[connectionId] = struct{}{}
	}
}

// RemoveMember removes a connection from a room's member set.
func (s *Store) RemoveMember(roomId, connectionId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[roomId]; ok {
		delete(room.Members, connectionId)
	}
}

// Rooms returns a snapshot of all rooms.
func (s *Store) Rooms() []*types.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*types.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, snapshotRoom(room))
	}
	return rooms
}

// JoinResult describes the state after an atomic join transition.
type JoinResult struct {
	Room    *types.Room
	Created bool

	// PreviousRoom is a snapshot of the room the connection was detached from,
	// nil if the connection had no prior session or rejoined the same room.
	PreviousRoom *types.Room
	PreviousRole types.Role
}

// Join applies a complete join transition in one atomic step: detach the
// connection from its previous room (idempotent leave), get or create the
// target room, upsert the session, add the member and, for guests, overwrite
// the room's resolved guest language.
func (s *Store) Join(connectionId, roomId string, role types.Role, lang string, defaults RoomDefaults) JoinResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := JoinResult{}
	if prev, ok := s.sessions[connectionId]; ok && prev.Room != "" && prev.Room != roomId {
		if prevRoom, ok := s.rooms[prev.Room]; ok {
			delete(prevRoom.Members, connectionId)
			if prev.Role == types.RoleGuest {
				prevRoom.GuestLanguage = ""
			}
			res.PreviousRoom = snapshotRoom(prevRoom)
			res.PreviousRole = prev.Role
		}
	}

	room, created := s.getOrCreateRoomLocked(roomId, defaults)
	s.sessions[connectionId] = &types.Session{
		ConnectionId: connectionId,
		Room:         roomId,
		Role:         role,
		Language:     lang,
	}
	room.Members[connectionId] = struct{}{}
	if role == types.RoleGuest {
		// last-joined guest wins, only one live guest language per room
		room.GuestLanguage = lang
	}
	res.Room = snapshotRoom(room)
	res.Created = created
	return res
}

// Drop applies a complete disconnect transition in one atomic step: remove the
// member, clear the guest language if the leaving connection was the guest and
// remove the session. It returns the removed session and a snapshot of the
// room after the removal, ok is false if the connection had no session.
func (s *Store) Drop(connectionId string) (*types.Session, *types.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[connectionId]
	if !ok {
		return nil, nil, false
	}
	delete(s.sessions, connectionId)
	sessCopy := *sess

	var roomCopy *types.Room
	if room, ok := s.rooms[sess.Room]; ok {
		delete(room.Members, connectionId)
		if sess.Role == types.RoleGuest {
			room.GuestLanguage = ""
		}
		roomCopy = snapshotRoom(room)
	}
	return &sessCopy, roomCopy, true
}
