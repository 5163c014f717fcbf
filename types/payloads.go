package types

import (
	"errors"
	"time"
)

// The different event payloads transferred from the client to here. They are
// decoded from the wire envelope via mapstructure, so malformed input fails
// before it reaches any business logic.

type JoinRoomRequest struct {
	Room     string `mapstructure:"room"`
	Role     Role   `mapstructure:"role"`
	Language string `mapstructure:"language"`
}

func (r JoinRoomRequest) Validate() error {
	if r.Room == "" {
		return errors.New("join_room: missing room")
	}
	if !r.Role.Valid() {
		return errors.New("join_room: invalid role")
	}
	return nil
}

type TextMessageRequest struct {
	Room     string `mapstructure:"room"`
	Role     Role   `mapstructure:"role"`
	Language string `mapstructure:"language"`
	Text     string `mapstructure:"text"`
}

type AudioMessageRequest struct {
	Room     string `mapstructure:"room"`
	Role     Role   `mapstructure:"role"`
	Language string `mapstructure:"language"`
	// AudioData is base64-encoded raw PCM.
	AudioData string `mapstructure:"audioData"`
}

type GetRoomInfoRequest struct {
	Room string `mapstructure:"room"`
}

// The different event payloads transferred from here to the client(s).

// RoomJoined goes to the joining connection only. Language carries the display
// name of the resolved language, not the tag.
type RoomJoined struct {
	Room     string `json:"room"`
	Role     Role   `json:"role"`
	Language string `json:"language"`
}

// UserJoined / UserLeft go to the other members of the room.
type UserJoined struct {
	Role     Role   `json:"role"`
	Language string `json:"language"`
	UserId   string `json:"userId"`
}

type UserLeft struct {
	Role   Role   `json:"role"`
	UserId string `json:"userId"`
}

// RoomStats goes to the whole room after every membership change.
type RoomStats struct {
	UserCount     int    `json:"userCount"`
	HotelName     string `json:"hotelName"`
	GuestLanguage string `json:"guestLanguage"`
}

// ProcessingStatus tracks one message through the pipeline, room-wide.
type ProcessingStatus struct {
	Status  string `json:"status"`
	Speaker Role   `json:"speaker,omitempty"`
	Message string `json:"message,omitempty"`
}

// RoomInfo answers get_room_info, requester only.
type RoomInfo struct {
	HotelName     string    `json:"hotelName"`
	UserCount     int       `json:"userCount"`
	CreatedAt     time.Time `json:"createdAt"`
	GuestLanguage string    `json:"guestLanguage"`
}

// ErrorMessage is a private notice to a single connection.
type ErrorMessage struct {
	Message string `json:"message"`
}
