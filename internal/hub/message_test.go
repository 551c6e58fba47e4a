package hub

import "testing"

func TestDecodeInboundVariants(t *testing.T) {
	tests := []struct {
		name string
		data string
		want any
	}{
		{"presence", `{"type":"presence","clientId":"a1","name":"Alice","is_host":true}`, PresenceMsg{ClientID: "a1", Name: "Alice", IsHost: true}},
		{"leave", `{"type":"leave"}`, LeaveMsg{}},
		{"end", `{"type":"end_meeting"}`, EndMeetingMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeInbound([]byte(tt.data))
			switch want := tt.want.(type) {
			case PresenceMsg:
				p, ok := got.(PresenceMsg)
				if !ok || p != want {
					t.Fatalf("got %#v, want %#v", got, want)
				}
			case LeaveMsg:
				if _, ok := got.(LeaveMsg); !ok {
					t.Fatalf("got %#v, want LeaveMsg", got)
				}
			case EndMeetingMsg:
				if _, ok := got.(EndMeetingMsg); !ok {
					t.Fatalf("got %#v, want EndMeetingMsg", got)
				}
			}
		})
	}
}

func TestDecodeInboundRelayKinds(t *testing.T) {
	for _, kind := range []string{TypeChat, TypeHand, TypeScreenshare} {
		msg := DecodeInbound([]byte(`{"type":"` + kind + `","text":"hi"}`))
		r, ok := msg.(RelayMsg)
		if !ok {
			t.Fatalf("%s: got %#v, want RelayMsg", kind, msg)
		}
		if r.Kind != kind {
			t.Fatalf("%s: kind %q", kind, r.Kind)
		}
	}
	for _, kind := range []string{TypeOffer, TypeAnswer, TypeCandidate} {
		msg := DecodeInbound([]byte(`{"type":"` + kind + `","to":"b1","sdp":"x"}`))
		s, ok := msg.(RTCSignalMsg)
		if !ok {
			t.Fatalf("%s: got %#v, want RTCSignalMsg", kind, msg)
		}
		if s.Kind != kind {
			t.Fatalf("%s: kind %q", kind, s.Kind)
		}
	}
}

func TestDecodeInboundIgnoredOutcomes(t *testing.T) {
	if m, ok := DecodeInbound([]byte(`not json`)).(Ignored); !ok || m.Reason != "bad_json" {
		t.Fatalf("malformed input must decode to Ignored{bad_json}, got %#v", m)
	}
	if m, ok := DecodeInbound([]byte(`{"type":"reactions"}`)).(Ignored); !ok || m.Reason != "unknown_type" {
		t.Fatalf("unknown type must decode to Ignored{unknown_type}, got %#v", m)
	}
	if m, ok := DecodeInbound([]byte(`{"type":"presence","is_host":"yes"}`)).(Ignored); !ok || m.Reason != "bad_payload" {
		t.Fatalf("mistyped presence fields must decode to Ignored{bad_payload}, got %#v", m)
	}
}
