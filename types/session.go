package types

// Session is the live binding of one connection to a room, a role and a language.
// It exists from the first join_room until the connection goes away, a connection
// holds at most one session at a time.
type Session struct {
	ConnectionId string `json:"connection_id"`
	Room         string `json:"room"`
	Role         Role   `json:"role"`
	Language     string `json:"language"`
}
