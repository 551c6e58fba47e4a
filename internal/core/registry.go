package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/connectly/connectly/internal/domain"
)

// Registry maps room identifiers to live rooms. Rooms are created
// lazily on first join and pruned once empty. Rooms are fully
// independent units of concurrency; the registry lock only guards the
// map itself.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomID]*Room)}
}

func (g *Registry) GetOrCreate(id domain.RoomID) *Room {
	g.mu.RLock()
	room, ok := g.rooms[id]
	g.mu.RUnlock()
	if ok {
		return room
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if room, ok = g.rooms[id]; ok {
		return room
	}
	room = NewRoom(id)
	g.rooms[id] = room
	log.Info().Str("module", "core.registry").Str("room", string(id)).Msg("room created")
	return room
}

// Join resolves the room and inserts the member in one step under the
// registry lock. Resolving and joining separately would race the prune
// path: the last member's teardown could drop the room between the two
// steps and strand the joiner in an orphaned room object.
func (g *Registry) Join(id domain.RoomID, cid ConnID, conn SignalConnection) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[id]
	if !ok {
		room = NewRoom(id)
		g.rooms[id] = room
		log.Info().Str("module", "core.registry").Str("room", string(id)).Msg("room created")
	}
	room.Join(cid, conn)
	return room
}

func (g *Registry) Get(id domain.RoomID) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[id]
	return room, ok
}

// PruneIfEmpty drops the room if it has no members left. Re-checked
// under the registry lock since a join may have raced the last leave.
func (g *Registry) PruneIfEmpty(id domain.RoomID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[id]
	if !ok || room.MemberCount() > 0 {
		return
	}
	delete(g.rooms, id)
	log.Info().Str("module", "core.registry").Str("room", string(id)).Msg("room pruned")
}

// RoomInfo is a diagnostics snapshot entry.
type RoomInfo struct {
	ID          domain.RoomID `json:"room"`
	MemberCount int           `json:"member_count"`
}

func (g *Registry) List() []RoomInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]RoomInfo, 0, len(g.rooms))
	for id, r := range g.rooms {
		out = append(out, RoomInfo{ID: id, MemberCount: r.MemberCount()})
	}
	return out
}
