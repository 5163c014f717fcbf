package lifecycle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tcriess/lightspeed-frontdesk/filter"
	"github.com/tcriess/lightspeed-frontdesk/language"
	"github.com/tcriess/lightspeed-frontdesk/store"
	"github.com/tcriess/lightspeed-frontdesk/types"
)

type fakeCaster struct {
	mu     sync.Mutex
	events []*types.Event
}

func (f *fakeCaster) BroadcastEvents(events []*types.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, events...)
}

func (f *fakeCaster) find(name string) *types.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (f *fakeCaster) findAll(name string) []*types.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	found := make([]*types.Event, 0)
	for _, e := range f.events {
		if e.Name == name {
			found = append(found, e)
		}
	}
	return found
}

func (f *fakeCaster) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = nil
}

var testResolver = language.Resolver{Staff: "en-US", DefaultGuest: "hi-IN"}

func testManager(delay time.Duration) (*store.Store, *fakeCaster, *Manager) {
	st := store.New()
	caster := &fakeCaster{}
	m := NewManager(st, testResolver, caster, delay)
	return st, caster, m
}

func TestJoinGuest(t *testing.T) {
	st, caster, m := testManager(time.Minute)
	m.Join("guest-1", types.JoinRoomRequest{Room: "room-a", Role: types.RoleGuest, Language: "bn-IN"})

	joined := caster.find(types.EventNameRoomJoined)
	assert.NotNil(t, joined)
	assert.Equal(t, "room-a", joined.Room)
	assert.Equal(t, filter.OnlyConnection("guest-1"), joined.TargetFilter)
	payload := joined.Payload.(types.RoomJoined)
	assert.Equal(t, types.RoleGuest, payload.Role)
	// the display name of the language, not the tag
	assert.Equal(t, "Bengali", payload.Language)

	userJoined := caster.find(types.EventNameUserJoined)
	assert.NotNil(t, userJoined)
	assert.Equal(t, filter.ExceptConnection("guest-1"), userJoined.TargetFilter)
	assert.Equal(t, "bn-IN", userJoined.Payload.(types.UserJoined).Language)

	stats := caster.find(types.EventNameRoomStats)
	assert.NotNil(t, stats)
	assert.Equal(t, "", stats.TargetFilter)
	statsPayload := stats.Payload.(types.RoomStats)
	assert.Equal(t, 1, statsPayload.UserCount)
	assert.Equal(t, "bn-IN", statsPayload.GuestLanguage)
	assert.NotEmpty(t, statsPayload.HotelName)

	room, ok := st.GetRoom("room-a")
	assert.True(t, ok)
	assert.Equal(t, "bn-IN", room.GuestLanguage)
}

func TestJoinStaffNormalizesLanguage(t *testing.T) {
	st, caster, m := testManager(time.Minute)
	m.Join("staff-1", types.JoinRoomRequest{Room: "room-a", Role: types.RoleReceptionist, Language: "bn-IN"})

	payload := caster.find(types.EventNameRoomJoined).Payload.(types.RoomJoined)
	assert.Equal(t, "English", payload.Language)

	sess, _ := st.GetSession("staff-1")
	assert.Equal(t, "en-US", sess.Language)
	room, _ := st.GetRoom("room-a")
	assert.Equal(t, "", room.GuestLanguage)
}

func TestJoinValidation(t *testing.T) {
	_, caster, m := testManager(time.Minute)

	m.Join("conn-1", types.JoinRoomRequest{Role: types.RoleGuest})
	errEvent := caster.find(types.EventNameError)
	assert.NotNil(t, errEvent)
	assert.Equal(t, filter.OnlyConnection("conn-1"), errEvent.TargetFilter)

	caster.reset()
	m.Join("conn-1", types.JoinRoomRequest{Room: "room-a", Role: "spectator"})
	assert.NotNil(t, caster.find(types.EventNameError))
	assert.Nil(t, caster.find(types.EventNameRoomJoined))
}

func TestJoinSwitchingRoomsNotifiesPreviousRoom(t *testing.T) {
	st, caster, m := testManager(time.Minute)
	m.Join("guest-1", types.JoinRoomRequest{Room: "room-a", Role: types.RoleGuest, Language: "bn-IN"})
	caster.reset()

	m.Join("guest-1", types.JoinRoomRequest{Room: "room-b", Role: types.RoleGuest, Language: "bn-IN"})

	left := caster.find(types.EventNameUserLeft)
	assert.NotNil(t, left)
	assert.Equal(t, "room-a", left.Room)

	// stats go to both rooms
	stats := caster.findAll(types.EventNameRoomStats)
	assert.Len(t, stats, 2)
	assert.Equal(t, "room-a", stats[0].Room)
	assert.Equal(t, 0, stats[0].Payload.(types.RoomStats).UserCount)
	assert.Equal(t, "room-b", stats[1].Room)
	assert.Equal(t, 1, stats[1].Payload.(types.RoomStats).UserCount)

	roomA, _ := st.GetRoom("room-a")
	assert.Equal(t, 0, roomA.MemberCount())
}

func TestDisconnectGuestClearsGuestLanguage(t *testing.T) {
	st, caster, m := testManager(time.Minute)
	m.Join("staff-1", types.JoinRoomRequest{Room: "room-a", Role: types.RoleReceptionist})
	m.Join("guest-1", types.JoinRoomRequest{Room: "room-a", Role: types.RoleGuest, Language: "bn-IN"})
	caster.reset()

	m.Disconnect("guest-1")

	left := caster.find(types.EventNameUserLeft)
	assert.NotNil(t, left)
	assert.Equal(t, types.RoleGuest, left.Payload.(types.UserLeft).Role)

	stats := caster.find(types.EventNameRoomStats).Payload.(types.RoomStats)
	assert.Equal(t, 1, stats.UserCount)
	assert.Equal(t, "", stats.GuestLanguage)

	room, _ := st.GetRoom("room-a")
	assert.Equal(t, "", room.GuestLanguage)
}

func TestDisconnectWithoutSessionIsNoop(t *testing.T) {
	_, caster, m := testManager(time.Minute)
	m.Disconnect("unknown")
	assert.Empty(t, caster.events)
}

func TestDeferredCleanup(t *testing.T) {
	st, _, m := testManager(20 * time.Millisecond)
	m.Join("guest-1", types.JoinRoomRequest{Room: "room-a", Role: types.RoleGuest, Language: "bn-IN"})
	m.Disconnect("guest-1")

	// the room survives the last member leaving
	_, ok := st.GetRoom("room-a")
	assert.True(t, ok)

	// and is reclaimed once the debounce delay passes without a rejoin
	assert.Eventually(t, func() bool {
		_, ok := st.GetRoom("room-a")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestCleanupSparesRejoinedRoom(t *testing.T) {
	st, _, m := testManager(20 * time.Millisecond)
	m.Join("guest-1", types.JoinRoomRequest{Room: "room-a", Role: types.RoleGuest, Language: "bn-IN"})
	m.Disconnect("guest-1")
	m.Join("guest-1", types.JoinRoomRequest{Room: "room-a", Role: types.RoleGuest, Language: "bn-IN"})

	time.Sleep(100 * time.Millisecond)
	_, ok := st.GetRoom("room-a")
	assert.True(t, ok)
}

func TestRoomInfo(t *testing.T) {
	_, caster, m := testManager(time.Minute)
	m.Join("guest-1", types.JoinRoomRequest{Room: "room-a", Role: types.RoleGuest, Language: "bn-IN"})
	caster.reset()

	m.RoomInfo("guest-1", "room-a")
	m.RoomInfo("guest-1", "room-a")

	infos := caster.findAll(types.EventNameRoomInfo)
	assert.Len(t, infos, 2)
	// get_room_info is idempotent
	assert.Equal(t, infos[0].Payload, infos[1].Payload)
	info := infos[0].Payload.(types.RoomInfo)
	assert.Equal(t, 1, info.UserCount)
	assert.Equal(t, "bn-IN", info.GuestLanguage)
	assert.Equal(t, filter.OnlyConnection("guest-1"), infos[0].TargetFilter)
}

func TestRoomInfoUnknownRoom(t *testing.T) {
	_, caster, m := testManager(time.Minute)
	m.RoomInfo("guest-1", "missing")
	assert.NotNil(t, caster.find(types.EventNameError))
}

func TestCreateRoom(t *testing.T) {
	st, _, m := testManager(20 * time.Millisecond)
	room := m.CreateRoom("Hotel Aurora")
	assert.Equal(t, "Hotel Aurora", room.DisplayName)
	assert.NotEmpty(t, room.Id)

	// an explicitly created room nobody joins is reclaimed as well
	assert.Eventually(t, func() bool {
		_, ok := st.GetRoom(room.Id)
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestCreateRoomPlaceholderName(t *testing.T) {
	_, _, m := testManager(time.Minute)
	room := m.CreateRoom("")
	assert.NotEmpty(t, room.DisplayName)
}

func TestSweepDeletesAbandonedRooms(t *testing.T) {
	st, _, m := testManager(10 * time.Millisecond)
	st.GetOrCreateRoom("orphan", store.RoomDefaults{})

	time.Sleep(30 * time.Millisecond)
	m.Sweep()

	_, ok := st.GetRoom("orphan")
	assert.False(t, ok)
}

func TestSweepSparesOccupiedAndPendingRooms(t *testing.T) {
	st, _, m := testManager(10 * time.Millisecond)
	m.Join("guest-1", types.JoinRoomRequest{Room: "occupied", Role: types.RoleGuest, Language: "bn-IN"})

	time.Sleep(30 * time.Millisecond)
	m.Sweep()

	_, ok := st.GetRoom("occupied")
	assert.True(t, ok)
}
