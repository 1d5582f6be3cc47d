// Package services orchestrates record writes across the store and the
// journal event queue.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"ritmo/internal/amqp"
	"ritmo/internal/core"
	applog "ritmo/internal/log"
	"ritmo/internal/store"
)

// EventPublisher is the slice of the AMQP client the service needs.
type EventPublisher interface {
	PublishRecordEvent(ctx context.Context, msg *amqp.RecordEventMessage) error
}

// RecordStore is the read/write contract the service needs from a backend.
type RecordStore interface {
	store.RecordReader
	store.RecordWriter
}

// RecordService saves records and emits journal events. The event queue is
// optional: a nil publisher degrades to local-only operation.
type RecordService struct {
	records   RecordStore
	publisher EventPublisher
}

func NewRecordService(records RecordStore, publisher EventPublisher) *RecordService {
	return &RecordService{records: records, publisher: publisher}
}

// CreateMeditation validates and saves a meditation session, then publishes
// a journal event. A failed publish never fails the request; the record is
// already saved.
func (s *RecordService) CreateMeditation(ctx context.Context, m core.MeditationSession) (core.MeditationSession, error) {
	if err := m.Validate(); err != nil {
		return core.MeditationSession{}, err
	}
	id, err := s.records.AddMeditation(ctx, m)
	if err != nil {
		return core.MeditationSession{}, fmt.Errorf("save meditation: %w", err)
	}
	m.ID = id
	s.publish(ctx, applog.KindMeditation, id, m.OwnerID, m.Date)
	return m, nil
}

func (s *RecordService) CreateReading(ctx context.Context, r core.ReadingSession) (core.ReadingSession, error) {
	if err := r.Validate(); err != nil {
		return core.ReadingSession{}, err
	}
	id, err := s.records.AddReading(ctx, r)
	if err != nil {
		return core.ReadingSession{}, fmt.Errorf("save reading: %w", err)
	}
	r.ID = id
	s.publish(ctx, applog.KindReading, id, r.OwnerID, r.Date)
	return r, nil
}

func (s *RecordService) CreateReflection(ctx context.Context, r core.Reflection) (core.Reflection, error) {
	if err := r.Validate(); err != nil {
		return core.Reflection{}, err
	}
	id, err := s.records.AddReflection(ctx, r)
	if err != nil {
		return core.Reflection{}, fmt.Errorf("save reflection: %w", err)
	}
	r.ID = id
	s.publish(ctx, applog.KindReflection, id, r.OwnerID, r.Date)
	return r, nil
}

func (s *RecordService) CreatePlan(ctx context.Context, p core.Plan) (core.Plan, error) {
	if err := p.Validate(); err != nil {
		return core.Plan{}, err
	}
	id, err := s.records.AddPlan(ctx, p)
	if err != nil {
		return core.Plan{}, fmt.Errorf("save plan: %w", err)
	}
	p.ID = id
	s.publish(ctx, applog.KindPlan, id, p.OwnerID, p.Date)
	return p, nil
}

// ListMeditations returns the owner's sessions sorted newest date first,
// which is how the record screens render them.
func (s *RecordService) ListMeditations(ctx context.Context, ownerID string) ([]core.MeditationSession, error) {
	items, err := s.records.FindMeditations(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list meditations: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	return items, nil
}

func (s *RecordService) ListReadings(ctx context.Context, ownerID string) ([]core.ReadingSession, error) {
	items, err := s.records.FindReadings(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	return items, nil
}

func (s *RecordService) ListReflections(ctx context.Context, ownerID string) ([]core.Reflection, error) {
	items, err := s.records.FindReflections(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list reflections: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	return items, nil
}

func (s *RecordService) ListPlans(ctx context.Context, ownerID string) ([]core.Plan, error) {
	items, err := s.records.FindPlans(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	return items, nil
}

func (s *RecordService) publish(ctx context.Context, kind, id, ownerID, date string) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewRecordEventMessage(kind, id, ownerID, date)
	if err := s.publisher.PublishRecordEvent(ctx, msg); err != nil {
		// The record is saved; the journal mirror catches up later.
		slog.ErrorContext(ctx, "Failed to publish record event",
			applog.FieldRecordKind, kind,
			applog.FieldRecordID, id,
			applog.FieldError, err)
	}
}
