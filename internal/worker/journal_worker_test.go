package worker

import (
	"context"
	"errors"
	"testing"

	"ritmo/internal/amqp"
	"ritmo/internal/core"
	"ritmo/internal/sheets"
	"ritmo/internal/storage"
)

type stubSource struct {
	meditations map[string]core.MeditationSession
	readings    map[string]core.ReadingSession
	err         error
}

func (s *stubSource) GetMeditation(ctx context.Context, id string) (core.MeditationSession, error) {
	if s.err != nil {
		return core.MeditationSession{}, s.err
	}
	m, ok := s.meditations[id]
	if !ok {
		return core.MeditationSession{}, storage.ErrNotFound
	}
	return m, nil
}

func (s *stubSource) GetReading(ctx context.Context, id string) (core.ReadingSession, error) {
	if s.err != nil {
		return core.ReadingSession{}, s.err
	}
	r, ok := s.readings[id]
	if !ok {
		return core.ReadingSession{}, storage.ErrNotFound
	}
	return r, nil
}

type captureJournal struct {
	rows []sheets.JournalRow
	err  error
}

func (j *captureJournal) AppendJournalRow(ctx context.Context, row sheets.JournalRow) (string, error) {
	if j.err != nil {
		return "", j.err
	}
	j.rows = append(j.rows, row)
	return "Journal!A2:F2", nil
}

func TestHandleRecordEventMeditation(t *testing.T) {
	source := &stubSource{meditations: map[string]core.MeditationSession{
		"7": {ID: "7", OwnerID: "u1", Date: "2025-03-10", DurationSeconds: 135},
	}}
	journal := &captureJournal{}
	w := NewJournalWorker(source, journal)

	msg := amqp.NewRecordEventMessage("meditation", "7", "u1", "2025-03-10")
	if err := w.HandleRecordEvent(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(journal.rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(journal.rows))
	}
	row := journal.rows[0]
	if row.Kind != "meditation" || row.OwnerID != "u1" || row.Date != "2025-03-10" {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.Minutes != 2.25 {
		t.Errorf("minutes = %v, want 2.25", row.Minutes)
	}
}

func TestHandleRecordEventReadingCarriesNotes(t *testing.T) {
	source := &stubSource{readings: map[string]core.ReadingSession{
		"3": {ID: "3", OwnerID: "u1", Date: "2025-03-09", DurationSeconds: 600, Notes: "chapter 4"},
	}}
	journal := &captureJournal{}
	w := NewJournalWorker(source, journal)

	msg := amqp.NewRecordEventMessage("reading", "3", "u1", "2025-03-09")
	if err := w.HandleRecordEvent(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(journal.rows) != 1 || journal.rows[0].Notes != "chapter 4" {
		t.Errorf("unexpected rows: %+v", journal.rows)
	}
}

func TestHandleRecordEventSkipsUntimedKinds(t *testing.T) {
	journal := &captureJournal{}
	w := NewJournalWorker(&stubSource{}, journal)

	for _, kind := range []string{"reflection", "plan", "banana"} {
		msg := amqp.NewRecordEventMessage(kind, "1", "u1", "2025-03-10")
		if err := w.HandleRecordEvent(context.Background(), msg); err != nil {
			t.Errorf("kind %s: unexpected error %v", kind, err)
		}
	}
	if len(journal.rows) != 0 {
		t.Errorf("expected no journal rows, got %+v", journal.rows)
	}
}

func TestHandleRecordEventMissingRecordNotRetried(t *testing.T) {
	journal := &captureJournal{}
	w := NewJournalWorker(&stubSource{}, journal)

	msg := amqp.NewRecordEventMessage("meditation", "999", "u1", "2025-03-10")
	if err := w.HandleRecordEvent(context.Background(), msg); err != nil {
		t.Errorf("missing record should be acked, got %v", err)
	}
}

func TestHandleRecordEventSourceFailureRetried(t *testing.T) {
	source := &stubSource{err: errors.New("disk on fire")}
	w := NewJournalWorker(source, &captureJournal{})

	msg := amqp.NewRecordEventMessage("meditation", "7", "u1", "2025-03-10")
	if err := w.HandleRecordEvent(context.Background(), msg); err == nil {
		t.Error("expected error so the message is requeued")
	}
}

func TestHandleRecordEventAppendFailureRetried(t *testing.T) {
	source := &stubSource{meditations: map[string]core.MeditationSession{
		"7": {ID: "7", OwnerID: "u1", Date: "2025-03-10", DurationSeconds: 60},
	}}
	journal := &captureJournal{err: errors.New("quota exceeded")}
	w := NewJournalWorker(source, journal)

	msg := amqp.NewRecordEventMessage("meditation", "7", "u1", "2025-03-10")
	if err := w.HandleRecordEvent(context.Background(), msg); err == nil {
		t.Error("expected error so the message is requeued")
	}
}
