package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tcriess/lightspeed-frontdesk/types"
)

var testResolver = Resolver{Staff: "en-US", DefaultGuest: "hi-IN"}

func TestDirectionStaffAlwaysSourcesStaffLanguage(t *testing.T) {
	room := &types.Room{Id: "room-a", GuestLanguage: "bn-IN"}

	// the requested language of a receptionist is irrelevant
	src, tgt := testResolver.Direction(room, types.RoleReceptionist, "fr-FR", "de-DE")
	assert.Equal(t, "en-US", src)
	assert.Equal(t, "bn-IN", tgt)

	src, tgt = testResolver.Direction(room, types.RoleAdmin, "", "")
	assert.Equal(t, "en-US", src)
	assert.Equal(t, "bn-IN", tgt)
}

func TestDirectionStaffFallsBackToDefaultGuest(t *testing.T) {
	// no guest ever joined
	src, tgt := testResolver.Direction(&types.Room{Id: "room-a"}, types.RoleReceptionist, "", "")
	assert.Equal(t, "en-US", src)
	assert.Equal(t, "hi-IN", tgt)

	// nil room behaves the same
	src, tgt = testResolver.Direction(nil, types.RoleReceptionist, "", "")
	assert.Equal(t, "en-US", src)
	assert.Equal(t, "hi-IN", tgt)
}

func TestDirectionGuestPrecedence(t *testing.T) {
	room := &types.Room{Id: "room-a", GuestLanguage: "bn-IN"}

	// explicit per-message language first
	src, tgt := testResolver.Direction(room, types.RoleGuest, "ta-IN", "bn-IN")
	assert.Equal(t, "ta-IN", src)
	assert.Equal(t, "en-US", tgt)

	// then the session language
	src, tgt = testResolver.Direction(room, types.RoleGuest, "", "bn-IN")
	assert.Equal(t, "bn-IN", src)
	assert.Equal(t, "en-US", tgt)

	// then the default
	src, tgt = testResolver.Direction(room, types.RoleGuest, "", "")
	assert.Equal(t, "hi-IN", src)
	assert.Equal(t, "en-US", tgt)
}

func TestEffective(t *testing.T) {
	assert.Equal(t, "en-US", testResolver.Effective(types.RoleReceptionist, "bn-IN"))
	assert.Equal(t, "en-US", testResolver.Effective(types.RoleAdmin, ""))
	assert.Equal(t, "bn-IN", testResolver.Effective(types.RoleGuest, "bn-IN"))
	assert.Equal(t, "hi-IN", testResolver.Effective(types.RoleGuest, ""))
}

func TestTranscriptionLanguage(t *testing.T) {
	assert.Equal(t, "en-US", testResolver.TranscriptionLanguage(types.RoleReceptionist, "bn-IN", "bn-IN"))
	assert.Equal(t, "bn-IN", testResolver.TranscriptionLanguage(types.RoleGuest, "bn-IN", "ta-IN"))
	assert.Equal(t, "ta-IN", testResolver.TranscriptionLanguage(types.RoleGuest, "", "ta-IN"))
	assert.Equal(t, "hi-IN", testResolver.TranscriptionLanguage(types.RoleGuest, "", ""))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Bengali", DisplayName("bn-IN"))
	assert.Equal(t, "English", DisplayName("en-US"))
	// unknown tags fall through unchanged
	assert.Equal(t, "xx-XX", DisplayName("xx-XX"))
}
