// Package store defines the ports the record store backends implement.
package store

import (
	"context"
	"errors"

	"ritmo/internal/core"
)

// Sentinel errors shared by all backends.
var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

type (
	// RecordReader returns every record a single owner has, with no
	// server-side date filtering. Slices come back in insertion order so
	// first-match lookups stay deterministic.
	RecordReader interface {
		FindMeditations(ctx context.Context, ownerID string) ([]core.MeditationSession, error)
		FindReadings(ctx context.Context, ownerID string) ([]core.ReadingSession, error)
		FindReflections(ctx context.Context, ownerID string) ([]core.Reflection, error)
		FindPlans(ctx context.Context, ownerID string) ([]core.Plan, error)
	}

	// RecordWriter persists new records and returns the generated id.
	RecordWriter interface {
		AddMeditation(ctx context.Context, m core.MeditationSession) (string, error)
		AddReading(ctx context.Context, r core.ReadingSession) (string, error)
		AddReflection(ctx context.Context, r core.Reflection) (string, error)
		AddPlan(ctx context.Context, p core.Plan) (string, error)
	}

	// UserStore persists and looks up accounts for the identity service.
	UserStore interface {
		CreateUser(ctx context.Context, username, passwordHash string) (core.User, error)
		FindUserByUsername(ctx context.Context, username string) (core.User, error)
	}
)
