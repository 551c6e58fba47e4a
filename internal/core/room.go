package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/connectly/connectly/internal/domain"
)

// member pairs a transport connection with its declared presence.
// presence stays nil between the transport join and the first presence
// message.
type member struct {
	conn     SignalConnection
	presence *domain.Presence
}

// Room is a threadsafe in-memory membership set for one meeting.
// Every mutation and every fan-out iteration happens under the room's
// own lock, so a concurrent join and leave can never interleave into a
// corrupted view. It never closes adapter-owned connections.
type Room struct {
	id      domain.RoomID
	mu      sync.RWMutex
	members map[ConnID]*member
}

func NewRoom(id domain.RoomID) *Room {
	return &Room{
		id:      id,
		members: make(map[ConnID]*member),
	}
}

func (r *Room) ID() domain.RoomID { return r.id }

// Join registers a transport-level membership with no presence yet.
func (r *Room) Join(cid ConnID, conn SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[cid] = &member{conn: conn}
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("cid", string(cid)).Msg("member joined")
}

// DeclarePresence upserts the connection's presence entry and returns
// the full list of present members, including the caller. The snapshot
// is taken in the same critical section as the upsert so it can never
// omit the entry being added. A handle that is not a member (already
// torn down) is refused: fabricating an entry here would create a
// member with no connection behind it.
func (r *Room) DeclarePresence(cid ConnID, p domain.Presence) ([]domain.Presence, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[cid]
	if !ok {
		return nil, false
	}
	m.presence = &p
	out := make([]domain.Presence, 0, len(r.members))
	for _, mm := range r.members {
		if mm.presence != nil {
			out = append(out, *mm.presence)
		}
	}
	return out, true
}

// ClearPresence removes the presence entry but keeps the transport
// membership (an explicit leave message does not tear the socket down).
// Returns the presence that was set, or nil if none was.
func (r *Room) ClearPresence(cid ConnID) *domain.Presence {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[cid]
	if !ok || m.presence == nil {
		return nil
	}
	p := m.presence
	m.presence = nil
	return p
}

// Remove drops the handle entirely. Returns the presence that was
// declared (nil if the connection never sent one) and whether the room
// is now empty.
func (r *Room) Remove(cid ConnID) (*domain.Presence, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var p *domain.Presence
	if m, ok := r.members[cid]; ok {
		p = m.presence
	}
	delete(r.members, cid)
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("cid", string(cid)).Msg("member removed")
	return p, len(r.members) == 0
}

// SendTo delivers a frame to a single member. Unknown handles are a
// no-op: the member may have torn down concurrently.
func (r *Room) SendTo(cid ConnID, data Frame) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[cid]
	if !ok || m.conn == nil {
		return
	}
	if err := m.conn.TrySend(data); err != nil {
		log.Warn().Err(err).Str("module", "core.room").Str("room", string(r.id)).Str("cid", string(cid)).Msg("send failed")
	}
}

// PublishResult reports a broadcast outcome.
type PublishResult struct {
	SentTo  int
	Dropped []ConnID
}

// Broadcast fans a frame out to every member except `except` (pass ""
// to include everyone). A recipient failing never aborts delivery to
// the rest; failures are reported back for the caller to log.
func (r *Room) Broadcast(data Frame, except ConnID) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for cid, m := range r.members {
		if cid == except || m.conn == nil {
			continue
		}
		if err := m.conn.TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, cid)
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

// Snapshot returns the present members.
func (r *Room) Snapshot() []domain.Presence {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Presence, 0, len(r.members))
	for _, m := range r.members {
		if m.presence != nil {
			out = append(out, *m.presence)
		}
	}
	return out
}

func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}
