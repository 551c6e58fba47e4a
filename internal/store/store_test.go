package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/connectly/connectly/internal/domain"
	"github.com/connectly/connectly/internal/hub"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestCreateAndFindMeeting(t *testing.T) {
	s := openTestStore(t)
	m, err := s.CreateMeeting("Alice", "Engineer")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(m.MeetingCode) != domain.MeetingCodeLen || len(m.MeetingPwd) != domain.MeetingPwdLen {
		t.Fatalf("bad code/pwd lengths: %q %q", m.MeetingCode, m.MeetingPwd)
	}
	if m.HostStatus != domain.HostNotJoined {
		t.Fatalf("new meeting must start NotJoined, got %v", m.HostStatus)
	}

	got, err := s.FindByCode(m.MeetingCode)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.HostName != "Alice" {
		t.Fatalf("unexpected record %+v", got)
	}

	if _, err := s.FindByCode("nope"); !errors.Is(err, domain.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}

	if _, err := s.CreateMeeting("  ", "x"); !errors.Is(err, domain.ErrHostNameEmpty) {
		t.Fatalf("expected ErrHostNameEmpty, got %v", err)
	}
}

func TestVerifyCredentials(t *testing.T) {
	s := openTestStore(t)
	m, _ := s.CreateMeeting("Alice", "Engineer")

	if _, err := s.VerifyCredentials(m.MeetingCode, m.MeetingPwd); err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}
	if _, err := s.VerifyCredentials(m.MeetingCode, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.VerifyCredentials("nope", "x"); !errors.Is(err, domain.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestRecordHostJoinIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	m, _ := s.CreateMeeting("Alice", "Engineer")

	stamp := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return stamp }

	res, err := s.RecordHostJoin(m.MeetingCode)
	if err != nil || res != hub.StoreUpdated {
		t.Fatalf("first join: res=%v err=%v", res, err)
	}
	first, _ := s.FindByCode(m.MeetingCode)
	if first.HostStatus != domain.HostJoined || !first.StartedOn.Equal(stamp) {
		t.Fatalf("unexpected record after join: %+v", first)
	}

	// Second host presence: no re-stamp, still a success.
	s.now = func() time.Time { return stamp.Add(time.Hour) }
	res, err = s.RecordHostJoin(m.MeetingCode)
	if err != nil || res != hub.StoreUpdated {
		t.Fatalf("repeat join: res=%v err=%v", res, err)
	}
	second, _ := s.FindByCode(m.MeetingCode)
	if !second.StartedOn.Equal(first.StartedOn) {
		t.Fatalf("StartedOn re-stamped: %v -> %v", first.StartedOn, second.StartedOn)
	}
	if second.HostStatus != domain.HostJoined {
		t.Fatalf("status moved unexpectedly: %v", second.HostStatus)
	}
}

func TestRecordHostJoinMissingRecord(t *testing.T) {
	s := openTestStore(t)
	res, err := s.RecordHostJoin("missing")
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if res != hub.StoreNotFound {
		t.Fatalf("expected StoreNotFound, got %v", res)
	}
}

func TestRecordMeetingEndFromAnyState(t *testing.T) {
	s := openTestStore(t)

	// Straight from NotJoined: no ordering guard.
	m, _ := s.CreateMeeting("Alice", "Engineer")
	res, err := s.RecordMeetingEnd(m.MeetingCode)
	if err != nil || res != hub.StoreUpdated {
		t.Fatalf("end from NotJoined: res=%v err=%v", res, err)
	}
	got, _ := s.FindByCode(m.MeetingCode)
	if got.HostStatus != domain.HostEnded {
		t.Fatalf("expected Ended, got %v", got.HostStatus)
	}

	// From Joined.
	m2, _ := s.CreateMeeting("Bob", "Manager")
	if _, err := s.RecordHostJoin(m2.MeetingCode); err != nil {
		t.Fatal(err)
	}
	if res, _ := s.RecordMeetingEnd(m2.MeetingCode); res != hub.StoreUpdated {
		t.Fatalf("end from Joined: %v", res)
	}

	// Host join after end must not regress the status.
	if _, err := s.RecordHostJoin(m2.MeetingCode); err != nil {
		t.Fatal(err)
	}
	got, _ = s.FindByCode(m2.MeetingCode)
	if got.HostStatus != domain.HostEnded {
		t.Fatalf("status regressed after end: %v", got.HostStatus)
	}

	if res, _ := s.RecordMeetingEnd("missing"); res != hub.StoreNotFound {
		t.Fatalf("expected StoreNotFound, got %v", res)
	}
}

func TestAddParticipant(t *testing.T) {
	s := openTestStore(t)
	m, _ := s.CreateMeeting("Alice", "Engineer")

	if err := s.AddParticipant(m.MeetingCode, "Bob", "Analyst"); err != nil {
		t.Fatalf("add participant: %v", err)
	}
	if err := s.AddParticipant("missing", "Bob", "Analyst"); !errors.Is(err, domain.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}
