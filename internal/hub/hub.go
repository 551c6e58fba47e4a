// Package hub is the signaling protocol engine: it decodes inbound
// frames, keeps the per-room membership consistent, and fans events out
// to the right set of connections.
package hub

import (
	"github.com/rs/zerolog/log"

	"github.com/connectly/connectly/internal/core"
	"github.com/connectly/connectly/internal/domain"
)

type Hub struct {
	registry *core.Registry
	bridge   MeetingStateBridge
}

func New(registry *core.Registry, bridge MeetingStateBridge) *Hub {
	return &Hub{registry: registry, bridge: bridge}
}

// HandleOpen registers a fresh transport-level join. The connection has
// no presence yet; peers learn about it only once it declares one.
func (h *Hub) HandleOpen(roomID domain.RoomID, cid core.ConnID, conn core.SignalConnection) {
	h.registry.Join(roomID, cid, conn)
	log.Info().Str("module", "hub").Str("room", string(roomID)).Str("cid", string(cid)).Msg("transport join")
}

// HandleClose is the single teardown pass for a handle. The transport
// guarantees it runs exactly once per connection, whatever killed the
// socket. A handle that never declared presence leaves silently.
func (h *Hub) HandleClose(roomID domain.RoomID, cid core.ConnID) {
	room, ok := h.registry.Get(roomID)
	if !ok {
		return
	}
	p, empty := room.Remove(cid)
	if p != nil {
		room.Broadcast(encodeLeaveNotice(*p), cid)
	}
	if empty {
		h.registry.PruneIfEmpty(roomID)
	}
	log.Info().Str("module", "hub").Str("room", string(roomID)).Str("cid", string(cid)).Bool("had_presence", p != nil).Msg("teardown")
}

// HandleFrame dispatches one inbound frame. Malformed payloads and
// unknown types are dropped without closing the connection; a bad
// sequence degrades to partial functionality, never a crash.
func (h *Hub) HandleFrame(roomID domain.RoomID, cid core.ConnID, data core.Frame) {
	// A live sender's own membership keeps its room registered; a miss
	// means the frame raced the sender's teardown.
	room, ok := h.registry.Get(roomID)
	if !ok {
		return
	}

	switch msg := DecodeInbound(data).(type) {
	case PresenceMsg:
		h.handlePresence(room, cid, msg)
	case LeaveMsg:
		if p := room.ClearPresence(cid); p != nil {
			room.Broadcast(encodeLeaveNotice(*p), cid)
		}
	case RelayMsg:
		if frame := retagPayload(msg.Kind, msg.Payload); frame != nil {
			room.Broadcast(frame, "")
		}
	case RTCSignalMsg:
		// Verbatim to everyone; recipients filter by the embedded
		// target identity themselves.
		room.Broadcast(core.Frame(msg.Payload), "")
	case EndMeetingMsg:
		h.handleEndMeeting(room, roomID)
	case Ignored:
		log.Debug().Str("module", "hub").Str("room", string(roomID)).Str("cid", string(cid)).Str("reason", msg.Reason).Msg("frame ignored")
	}
}

func (h *Hub) handlePresence(room *core.Room, cid core.ConnID, msg PresenceMsg) {
	p := domain.NewPresence(msg.ClientID, msg.Name)
	participants, ok := room.DeclarePresence(cid, p)
	if !ok {
		// The handle already tore down; there is no one to answer.
		log.Debug().Str("module", "hub").Str("room", string(room.ID())).Str("cid", string(cid)).Msg("presence from gone handle")
		return
	}

	if msg.IsHost {
		code := domain.MeetingCode(room.ID())
		res, err := h.bridge.RecordHostJoin(code)
		if err != nil {
			log.Error().Err(err).Str("module", "hub").Str("code", string(code)).Msg("record host join")
		} else if res == StoreNotFound {
			log.Warn().Str("module", "hub").Str("code", string(code)).Msg("host join: no meeting record")
		}
	}

	room.SendTo(cid, encodeParticipantList(participants))
	room.Broadcast(encodeJoinNotice(p), cid)
	log.Info().Str("module", "hub").Str("room", string(room.ID())).Str("client", string(p.ClientID)).Str("name", p.Name).Bool("is_host", msg.IsHost).Msg("presence declared")
}

func (h *Hub) handleEndMeeting(room *core.Room, roomID domain.RoomID) {
	code := domain.MeetingCode(roomID)
	res, err := h.bridge.RecordMeetingEnd(code)
	if err != nil {
		log.Error().Err(err).Str("module", "hub").Str("code", string(code)).Msg("record meeting end")
	} else if res == StoreNotFound {
		log.Warn().Str("module", "hub").Str("code", string(code)).Msg("end meeting: no meeting record")
	}
	// The notice goes out regardless of what the store said.
	room.Broadcast(encodeEndNotice(), "")
	log.Info().Str("module", "hub").Str("room", string(roomID)).Msg("meeting ended")
}
