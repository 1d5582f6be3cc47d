package services

import (
	"context"
	"errors"
	"testing"

	"ritmo/internal/amqp"
	"ritmo/internal/core"
	"ritmo/internal/store/memory"
)

type capturePublisher struct {
	events []*amqp.RecordEventMessage
	err    error
}

func (p *capturePublisher) PublishRecordEvent(_ context.Context, msg *amqp.RecordEventMessage) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, msg)
	return nil
}

func TestCreateMeditationPublishesEvent(t *testing.T) {
	pub := &capturePublisher{}
	svc := NewRecordService(memory.New(), pub)

	m, err := svc.CreateMeditation(context.Background(), core.MeditationSession{
		OwnerID: "alice", Date: "2025-03-10", DurationSeconds: 600,
	})
	if err != nil {
		t.Fatalf("create meditation: %v", err)
	}
	if m.ID == "" {
		t.Fatal("expected generated id")
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Kind != "meditation" || ev.RecordID != m.ID || ev.OwnerID != "alice" || ev.Date != "2025-03-10" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}
	store := memory.New()
	svc := NewRecordService(store, pub)

	r, err := svc.CreateReading(context.Background(), core.ReadingSession{
		OwnerID: "alice", Date: "2025-03-10", DurationSeconds: 300, Notes: "ch 1",
	})
	if err != nil {
		t.Fatalf("a publish failure must not fail the request: %v", err)
	}

	saved, err := store.FindReadings(context.Background(), "alice")
	if err != nil {
		t.Fatalf("find readings: %v", err)
	}
	if len(saved) != 1 || saved[0].ID != r.ID {
		t.Errorf("record not saved locally: %+v", saved)
	}
}

func TestCreateWithoutPublisher(t *testing.T) {
	svc := NewRecordService(memory.New(), nil)

	if _, err := svc.CreateReflection(context.Background(), core.Reflection{
		OwnerID: "alice", Date: "2025-03-10",
		BestThing: "b", WorstThing: "w", Improvement: "i",
	}); err != nil {
		t.Fatalf("nil publisher must be fine: %v", err)
	}
}

func TestCreateRejectsInvalidRecord(t *testing.T) {
	pub := &capturePublisher{}
	svc := NewRecordService(memory.New(), pub)

	_, err := svc.CreatePlan(context.Background(), core.Plan{OwnerID: "alice", Date: "tomorrow"})
	if !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Error("invalid record must not publish an event")
	}
}

func TestListSortsByDateDescending(t *testing.T) {
	svc := NewRecordService(memory.New(), nil)
	ctx := context.Background()

	for _, date := range []string{"2025-03-08", "2025-03-10", "2025-03-09"} {
		if _, err := svc.CreateMeditation(ctx, core.MeditationSession{OwnerID: "alice", Date: date, DurationSeconds: 60}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	items, err := svc.ListMeditations(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2025-03-10", "2025-03-09", "2025-03-08"}
	for i, item := range items {
		if item.Date != want[i] {
			t.Errorf("item %d: date %s, want %s", i, item.Date, want[i])
		}
	}
}
