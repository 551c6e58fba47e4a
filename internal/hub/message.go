package hub

import "encoding/json"

// Wire message type tags. Inbound and outbound share most tags: relay
// kinds go back out with the same tag they came in with, and the join
// and leave notices reuse the presence/leave tags the original clients
// listen for.
const (
	TypePresence        = "presence"
	TypeLeave           = "leave"
	TypeChat            = "chat"
	TypeHand            = "hand"
	TypeScreenshare     = "screenshare"
	TypeOffer           = "offer"
	TypeAnswer          = "answer"
	TypeCandidate       = "candidate"
	TypeEndMeeting      = "end_meeting"
	TypeParticipantList = "participant_list"
)

// Inbound is the closed set of decoded client messages. Malformed or
// unknown input decodes to Ignored rather than an error: the hub drops
// it and the connection stays open.
type Inbound interface{ isInbound() }

type PresenceMsg struct {
	ClientID string `json:"clientId"`
	Name     string `json:"name"`
	IsHost   bool   `json:"is_host"`
}

type LeaveMsg struct{}

type EndMeetingMsg struct{}

// RelayMsg carries an opaque payload that is re-tagged with Kind and
// fanned out to the whole room, sender included.
type RelayMsg struct {
	Kind    string
	Payload json.RawMessage
}

// RTCSignalMsg is an offer/answer/candidate payload, broadcast verbatim.
// The embedded target identity is consumed client-side; the hub never
// addresses a single recipient.
type RTCSignalMsg struct {
	Kind    string
	Payload json.RawMessage
}

type Ignored struct {
	Reason string
}

func (PresenceMsg) isInbound()   {}
func (LeaveMsg) isInbound()      {}
func (EndMeetingMsg) isInbound() {}
func (RelayMsg) isInbound()      {}
func (RTCSignalMsg) isInbound()  {}
func (Ignored) isInbound()       {}

// DecodeInbound maps raw wire bytes to exactly one Inbound variant.
func DecodeInbound(data []byte) Inbound {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return Ignored{Reason: "bad_json"}
	}
	switch env.Type {
	case TypePresence:
		var p PresenceMsg
		if err := json.Unmarshal(data, &p); err != nil {
			return Ignored{Reason: "bad_payload"}
		}
		return p
	case TypeLeave:
		return LeaveMsg{}
	case TypeEndMeeting:
		return EndMeetingMsg{}
	case TypeChat, TypeHand, TypeScreenshare:
		return RelayMsg{Kind: env.Type, Payload: json.RawMessage(data)}
	case TypeOffer, TypeAnswer, TypeCandidate:
		return RTCSignalMsg{Kind: env.Type, Payload: json.RawMessage(data)}
	}
	return Ignored{Reason: "unknown_type"}
}
