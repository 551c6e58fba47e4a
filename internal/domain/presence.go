package domain

import "strings"

type (
	RoomID   string
	ClientID string
)

// DefaultDisplayName is used when a client declares presence with a
// blank or whitespace-only name.
const DefaultDisplayName = "Peer"

// Presence is a connection's declared identity within a room. ClientID
// is supplied by the client and not guaranteed unique across reconnects.
type Presence struct {
	ClientID ClientID `json:"clientId"`
	Name     string   `json:"name"`
}

// NewPresence normalizes the display name on the way in so every
// fan-out sees the same identity.
func NewPresence(clientID, name string) Presence {
	return Presence{
		ClientID: ClientID(clientID),
		Name:     NormalizeName(name),
	}
}

func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultDisplayName
	}
	return name
}
