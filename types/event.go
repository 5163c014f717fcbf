package types

import "time"

// Wire event names, client to server.
const (
	EventNameJoinRoom     = "join_room"
	EventNameAudioMessage = "audio_message"
	EventNameTextMessage  = "text_message"
	EventNameGetRoomInfo  = "get_room_info"
)

// Wire event names, server to client(s).
const (
	EventNameRoomJoined       = "room_joined"
	EventNameUserJoined       = "user_joined"
	EventNameUserLeft         = "user_left"
	EventNameRoomStats        = "room_stats"
	EventNameProcessingStatus = "processing_status"
	EventNameTranslation      = "translation"
	EventNameRoomInfo         = "room_info"
	EventNameError            = "error"
)

// processing_status values. Every message attempt terminates in either
// StatusComplete or StatusError, so clients can clear their processing UI.
const (
	StatusTranscribing = "transcribing"
	StatusTranslating  = "translating"
	StatusComplete     = "complete"
	StatusError        = "error"
)

// Event is one outgoing notification. Room scopes delivery to the members of
// that room, an empty Room addresses all connections. TargetFilter optionally
// narrows the recipients further (see the filter package), an empty filter
// passes every candidate.
type Event struct {
	Room         string
	Name         string
	TargetFilter string
	Created      time.Time
	Payload      interface{}
}

func NewEvent(room, name, targetFilter string, payload interface{}) *Event {
	return &Event{
		Room:         room,
		Name:         name,
		TargetFilter: targetFilter,
		Created:      time.Now(),
		Payload:      payload,
	}
}
