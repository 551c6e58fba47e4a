// Package domain contains entities without logic, just meta-data.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MeetingCodeLen = 12
	MeetingPwdLen  = 12
)

var (
	ErrHostNameEmpty   = errors.New("host name empty")
	ErrMeetingNotFound = errors.New("meeting not found")
)

type MeetingCode string

// HostStatus tracks the meeting lifecycle. It only ever moves forward:
// NotJoined -> Joined -> Ended.
type HostStatus int

const (
	HostNotJoined HostStatus = iota
	HostJoined
	HostEnded
)

func (s HostStatus) String() string {
	switch s {
	case HostNotJoined:
		return "not_joined"
	case HostJoined:
		return "joined"
	case HostEnded:
		return "ended"
	}
	return "unknown"
}

// Meeting is the persisted meeting record. The hub only ever touches
// HostStatus and StartedOn; everything else belongs to the HTTP layer.
type Meeting struct {
	ID              uint        `gorm:"primaryKey" json:"-"`
	HostName        string      `gorm:"size:128" json:"host_name"`
	HostDesignation string      `gorm:"size:128" json:"host_designation"`
	MeetingCode     MeetingCode `gorm:"size:12;uniqueIndex" json:"meeting_code"`
	MeetingPwd      string      `gorm:"size:12" json:"-"`
	HostStatus      HostStatus  `gorm:"default:0" json:"host_status"`
	StartedOn       time.Time   `json:"started_on"`
	CreatedAt       time.Time   `json:"-"`
}

// NewMeeting issues a fresh record with a random code and password.
func NewMeeting(hostName, designation string) (*Meeting, error) {
	if strings.TrimSpace(hostName) == "" {
		return nil, ErrHostNameEmpty
	}
	return &Meeting{
		HostName:        hostName,
		HostDesignation: designation,
		MeetingCode:     MeetingCode(randomToken(MeetingCodeLen)),
		MeetingPwd:      randomToken(MeetingPwdLen),
	}, nil
}

// Participant records an HTTP-layer join. Live hub membership is kept
// in memory only and never written here.
type Participant struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	MeetingID   uint      `gorm:"index" json:"-"`
	Name        string    `gorm:"size:128" json:"name"`
	Designation string    `gorm:"size:128" json:"designation"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func randomToken(n int) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(raw) {
		n = len(raw)
	}
	return raw[:n]
}
