package lifecycle

import (
	"time"

	"github.com/tcriess/lightspeed-frontdesk/globals"
)

// ScheduleCleanup arms (or re-arms) the deferred deletion of a room. The delay
// debounces page reloads: a member rejoining within the window keeps the room
// alive because the cleanup re-validates emptiness when it fires.
func (m *Manager) ScheduleCleanup(roomId string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.pending[roomId]; ok {
		t.Stop()
	}
	m.pending[roomId] = time.AfterFunc(m.cleanupDelay, func() {
		m.cleanup(roomId)
	})
	globals.AppLogger.Debug("scheduled room cleanup", "room", roomId, "delay", m.cleanupDelay)
}

func (m *Manager) cancelCleanup(roomId string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.pending[roomId]; ok {
		t.Stop()
		delete(m.pending, roomId)
	}
}

func (m *Manager) cleanup(roomId string) {
	m.mu.Lock()
	delete(m.pending, roomId)
	m.mu.Unlock()
	if m.store.DeleteRoomIfEmpty(roomId) {
		globals.AppLogger.Info("deleted abandoned room", "room", roomId)
	}
}

// Sweep deletes empty rooms older than the cleanup delay that have no pending
// cleanup. It runs periodically via cron as a second line behind the per-room
// timers.
func (m *Manager) Sweep() {
	cutoff := time.Now().Add(-m.cleanupDelay)
	for _, room := range m.store.Rooms() {
		if room.MemberCount() > 0 || room.CreatedAt.After(cutoff) {
			continue
		}
		m.mu.Lock()
		_, scheduled := m.pending[room.Id]
		m.mu.Unlock()
		if scheduled {
			continue
		}
		if m.store.DeleteRoomIfEmpty(room.Id) {
			globals.AppLogger.Info("janitor deleted abandoned room", "room", room.Id)
		}
	}
}
