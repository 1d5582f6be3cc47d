// Package worker mirrors newly created session records into the Google
// Sheets journal. It consumes record events from the queue, loads the full
// record from the database, and appends one journal row per session.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ritmo/internal/amqp"
	"ritmo/internal/core"
	applog "ritmo/internal/log"
	"ritmo/internal/sheets"
	"ritmo/internal/storage"
)

// RecordSource loads full records by id. *storage.SQLiteRepository satisfies it.
type RecordSource interface {
	GetMeditation(ctx context.Context, id string) (core.MeditationSession, error)
	GetReading(ctx context.Context, id string) (core.ReadingSession, error)
}

var _ RecordSource = (*storage.SQLiteRepository)(nil)

type JournalWorker struct {
	source  RecordSource
	journal sheets.JournalWriter
}

func NewJournalWorker(source RecordSource, journal sheets.JournalWriter) *JournalWorker {
	return &JournalWorker{source: source, journal: journal}
}

// HandleRecordEvent processes a single record event from the queue. Only
// timed sessions are journaled; reflection and plan events are acknowledged
// without a row. A missing record is treated as permanent and not retried.
func (w *JournalWorker) HandleRecordEvent(ctx context.Context, msg *amqp.RecordEventMessage) error {
	slog.InfoContext(ctx, "Processing record event",
		applog.FieldRecordKind, msg.Kind,
		applog.FieldRecordID, msg.RecordID)

	row, ok, err := w.buildRow(ctx, msg)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "Record gone before journaling, skipping",
				applog.FieldRecordKind, msg.Kind,
				applog.FieldRecordID, msg.RecordID)
			return nil
		}
		return fmt.Errorf("load %s %s: %w", msg.Kind, msg.RecordID, err)
	}
	if !ok {
		return nil
	}

	ref, err := w.journal.AppendJournalRow(ctx, row)
	if err != nil {
		return fmt.Errorf("append journal row: %w", err)
	}

	slog.InfoContext(ctx, "Record journaled",
		applog.FieldRecordKind, msg.Kind,
		applog.FieldRecordID, msg.RecordID,
		"ref", ref)
	return nil
}

func (w *JournalWorker) buildRow(ctx context.Context, msg *amqp.RecordEventMessage) (sheets.JournalRow, bool, error) {
	switch msg.Kind {
	case applog.KindMeditation:
		m, err := w.source.GetMeditation(ctx, msg.RecordID)
		if err != nil {
			return sheets.JournalRow{}, false, err
		}
		return sheets.JournalRow{
			Date:     m.Date,
			Kind:     msg.Kind,
			OwnerID:  m.OwnerID,
			RecordID: m.ID,
			Minutes:  core.Minutes(m.DurationSeconds),
		}, true, nil
	case applog.KindReading:
		r, err := w.source.GetReading(ctx, msg.RecordID)
		if err != nil {
			return sheets.JournalRow{}, false, err
		}
		return sheets.JournalRow{
			Date:     r.Date,
			Kind:     msg.Kind,
			OwnerID:  r.OwnerID,
			RecordID: r.ID,
			Minutes:  core.Minutes(r.DurationSeconds),
			Notes:    r.Notes,
		}, true, nil
	case applog.KindReflection, applog.KindPlan:
		// No duration to journal.
		return sheets.JournalRow{}, false, nil
	default:
		slog.WarnContext(ctx, "Unknown record kind, skipping",
			applog.FieldRecordKind, msg.Kind,
			applog.FieldRecordID, msg.RecordID)
		return sheets.JournalRow{}, false, nil
	}
}
