package hub

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/connectly/connectly/internal/core"
	"github.com/connectly/connectly/internal/domain"
)

// Outbound shapes. Each has exactly the fields the clients consume;
// encode* helpers return a ready-to-send frame.

type participantListMsg struct {
	Type         string            `json:"type"`
	Participants []domain.Presence `json:"participants"`
}

type presenceNoticeMsg struct {
	Type     string          `json:"type"`
	ClientID domain.ClientID `json:"clientId"`
	Name     string          `json:"name"`
}

type endMeetingNoticeMsg struct {
	Type string `json:"type"`
}

func encodeParticipantList(participants []domain.Presence) core.Frame {
	return marshalFrame(participantListMsg{
		Type:         TypeParticipantList,
		Participants: participants,
	})
}

func encodeJoinNotice(p domain.Presence) core.Frame {
	return marshalFrame(presenceNoticeMsg{Type: TypePresence, ClientID: p.ClientID, Name: p.Name})
}

func encodeLeaveNotice(p domain.Presence) core.Frame {
	return marshalFrame(presenceNoticeMsg{Type: TypeLeave, ClientID: p.ClientID, Name: p.Name})
}

func encodeEndNotice() core.Frame {
	return marshalFrame(endMeetingNoticeMsg{Type: TypeEndMeeting})
}

// retagPayload rewrites the type tag on an opaque relay payload and
// leaves every other field as the sender wrote it.
func retagPayload(kind string, payload json.RawMessage) core.Frame {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil
	}
	fields["type"] = kind
	return marshalFrame(fields)
}

func marshalFrame(v any) core.Frame {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "hub").Msg("marshal outbound")
		return nil
	}
	return core.Frame(b)
}
