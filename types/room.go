package types

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Room is a logical front-desk session grouping the staff side and one or more
// guest-side connections sharing a translation context. All state is in-memory.
type Room struct {
	Id          string              `json:"id"`
	DisplayName string              `json:"display_name"` // hotel name
	CreatedAt   time.Time           `json:"created_at"`
	Members     map[string]struct{} `json:"-"` // connection ids currently joined

	// GuestLanguage is the language tag of the most recently joined-and-present
	// guest, empty if no guest is present.
	GuestLanguage string `json:"guest_language"`
}

// MemberCount returns the cardinality of the member set.
func (r *Room) MemberCount() int {
	return len(r.Members)
}

// NewRoomId generates a room identity from a millisecond timestamp plus a random
// suffix, so ids sort roughly by creation time and collisions are negligible.
func NewRoomId() string {
	ts := strconv.FormatInt(time.Now().UnixNano()/int64(time.Millisecond), 36)
	suffix := strings.SplitN(uuid.New().String(), "-", 2)[0]
	return "fd-" + ts + "-" + suffix
}
