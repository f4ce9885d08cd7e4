package transport

import (
	"fmt"
	"sync"

	"github.com/xuliu-cyber/texas-poker/holdem"
	"github.com/xuliu-cyber/texas-poker/room"
)

// Manager owns the set of live rooms, creating them lazily on first join
// (spec.md §1 excludes lobby/matchmaking UX, so there is no seating
// algorithm here beyond "the room named by the client exists or is
// created fresh").
type Manager struct {
	mu    sync.RWMutex
	cfg   holdem.Config
	rooms map[string]*room.Room
}

// NewManager builds a Manager that seeds every new room with cfg.
func NewManager(cfg holdem.Config) *Manager {
	return &Manager{cfg: cfg, rooms: make(map[string]*room.Room)}
}

// GetOrCreate returns the named room, creating it if this is the first
// reference to that id.
func (m *Manager) GetOrCreate(id string) (*room.Room, error) {
	m.mu.RLock()
	r, ok := m.rooms[id]
	m.mu.RUnlock()
	if ok {
		return r, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	r, err := room.New(id, m.cfg)
	if err != nil {
		return nil, fmt.Errorf("create room %s: %w", id, err)
	}
	m.rooms[id] = r
	return r, nil
}

// SweepIdle drops every room with no seated session, returning how many
// were removed. Intended to run on a ticker from cmd/server so abandoned
// rooms don't accumulate for the lifetime of the process.
func (m *Manager) SweepIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, r := range m.rooms {
		if r.MemberCount() == 0 {
			delete(m.rooms, id)
			removed++
		}
	}
	return removed
}

// StartingBuyIn is the chip stack a freshly joining session receives.
func (m *Manager) StartingBuyIn() int64 { return m.cfg.StartingBuyIn }

// RoomCount reports how many rooms currently exist, for health/metrics.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}
