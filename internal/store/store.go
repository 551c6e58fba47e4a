// Package store persists meeting records in sqlite via gorm. It backs
// both the HTTP layer's CRUD and the hub's meeting-state bridge.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/connectly/connectly/internal/domain"
	"github.com/connectly/connectly/internal/hub"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&domain.Meeting{}, &domain.Participant{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// CreateMeeting issues a new record with a fresh code and password and
// host status NotJoined.
func (s *Store) CreateMeeting(hostName, designation string) (*domain.Meeting, error) {
	m, err := domain.NewMeeting(hostName, designation)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(m).Error; err != nil {
		return nil, fmt.Errorf("create meeting: %w", err)
	}
	log.Info().Str("module", "store").Str("code", string(m.MeetingCode)).Msg("meeting created")
	return m, nil
}

func (s *Store) FindByCode(code domain.MeetingCode) (*domain.Meeting, error) {
	var m domain.Meeting
	err := s.db.Where("meeting_code = ?", code).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMeetingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find meeting: %w", err)
	}
	return &m, nil
}

// VerifyCredentials checks a code/password pair presented by a client
// trying to enter a room.
func (s *Store) VerifyCredentials(code domain.MeetingCode, password string) (*domain.Meeting, error) {
	m, err := s.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if m.MeetingPwd != password {
		return nil, ErrInvalidCredentials
	}
	return m, nil
}

// AddParticipant records an HTTP-layer join against the meeting.
func (s *Store) AddParticipant(code domain.MeetingCode, name, designation string) error {
	m, err := s.FindByCode(code)
	if err != nil {
		return err
	}
	p := domain.Participant{MeetingID: m.ID, Name: name, Designation: designation}
	if err := s.db.Create(&p).Error; err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

// RecordHostJoin applies the NotJoined -> Joined transition and stamps
// the start time. The guard lives in the WHERE clause so a repeat host
// presence can never re-stamp StartedOn.
func (s *Store) RecordHostJoin(code domain.MeetingCode) (hub.StoreResult, error) {
	res := s.db.Model(&domain.Meeting{}).
		Where("meeting_code = ? AND host_status = ?", code, domain.HostNotJoined).
		Updates(map[string]any{
			"host_status": domain.HostJoined,
			"started_on":  s.now(),
		})
	if res.Error != nil {
		return hub.StoreNotFound, fmt.Errorf("record host join: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return hub.StoreUpdated, nil
	}
	// No row moved: either the record is missing or the host already
	// joined. The latter is the idempotent success case.
	if _, err := s.FindByCode(code); err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) {
			return hub.StoreNotFound, nil
		}
		return hub.StoreNotFound, err
	}
	return hub.StoreUpdated, nil
}

// RecordMeetingEnd forces the record to Ended from any prior state,
// last writer wins.
func (s *Store) RecordMeetingEnd(code domain.MeetingCode) (hub.StoreResult, error) {
	res := s.db.Model(&domain.Meeting{}).
		Where("meeting_code = ?", code).
		Update("host_status", domain.HostEnded)
	if res.Error != nil {
		return hub.StoreNotFound, fmt.Errorf("record meeting end: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return hub.StoreNotFound, nil
	}
	return hub.StoreUpdated, nil
}

var _ hub.MeetingStateBridge = (*Store)(nil)
