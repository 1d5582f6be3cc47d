// Package storage is the SQLite record store. Dates are stored as plain
// YYYY-MM-DD text; owner-scoped finds come back in insertion order.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ritmo/internal/core"
	"ritmo/internal/store"

	_ "modernc.org/sqlite"
)

var (
	ErrUserExists = store.ErrUserExists
	ErrNotFound   = errors.New("record not found")
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser implements store.UserStore
func (r *SQLiteRepository) CreateUser(ctx context.Context, username, passwordHash string) (core.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		username, passwordHash)
	if err != nil {
		// UNIQUE violation on username
		var existing int
		checkErr := r.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM users WHERE username = ?`, username).Scan(&existing)
		if checkErr == nil && existing > 0 {
			return core.User{}, ErrUserExists
		}
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("user id: %w", err)
	}

	slog.InfoContext(ctx, "User created", "username", username, "id", id)
	return core.User{
		ID:           strconv.FormatInt(id, 10),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}

// FindUserByUsername implements store.UserStore
func (r *SQLiteRepository) FindUserByUsername(ctx context.Context, username string) (core.User, error) {
	var (
		id        int64
		hash      string
		createdAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, password_hash, created_at FROM users WHERE username = ?`,
		username).Scan(&id, &hash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("select user: %w", err)
	}
	return core.User{
		ID:           strconv.FormatInt(id, 10),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    createdAt,
	}, nil
}

// AddMeditation implements store.RecordWriter
func (r *SQLiteRepository) AddMeditation(ctx context.Context, m core.MeditationSession) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO meditations (owner_id, date, duration_seconds) VALUES (?, ?, ?)`,
		m.OwnerID, m.Date, m.DurationSeconds)
	if err != nil {
		return "", fmt.Errorf("insert meditation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("meditation id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// AddReading implements store.RecordWriter
func (r *SQLiteRepository) AddReading(ctx context.Context, s core.ReadingSession) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO readings (owner_id, date, duration_seconds, notes) VALUES (?, ?, ?, ?)`,
		s.OwnerID, s.Date, s.DurationSeconds, s.Notes)
	if err != nil {
		return "", fmt.Errorf("insert reading: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("reading id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// AddReflection implements store.RecordWriter
func (r *SQLiteRepository) AddReflection(ctx context.Context, ref core.Reflection) (string, error) {
	if err := ref.Validate(); err != nil {
		return "", err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reflections (owner_id, date, best_thing, worst_thing, improvement) VALUES (?, ?, ?, ?, ?)`,
		ref.OwnerID, ref.Date, ref.BestThing, ref.WorstThing, ref.Improvement)
	if err != nil {
		return "", fmt.Errorf("insert reflection: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("reflection id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// AddPlan implements store.RecordWriter. The plan row and its tasks go in
// one transaction so a plan is never visible half-written.
func (r *SQLiteRepository) AddPlan(ctx context.Context, p core.Plan) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO plans (owner_id, date) VALUES (?, ?)`,
		p.OwnerID, p.Date)
	if err != nil {
		return "", fmt.Errorf("insert plan: %w", err)
	}
	planID, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("plan id: %w", err)
	}

	for i, t := range p.Tasks {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO plan_tasks (plan_id, position, name, output, location, time, steps)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			planID, i, t.Name, t.Output, t.Location, t.Time, t.Steps)
		if err != nil {
			return "", fmt.Errorf("insert plan task %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit plan: %w", err)
	}
	return strconv.FormatInt(planID, 10), nil
}

// FindMeditations implements store.RecordReader
func (r *SQLiteRepository) FindMeditations(ctx context.Context, ownerID string) ([]core.MeditationSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, duration_seconds, created_at FROM meditations WHERE owner_id = ? ORDER BY id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("select meditations: %w", err)
	}
	defer rows.Close()

	var out []core.MeditationSession
	for rows.Next() {
		var (
			id        int64
			m         core.MeditationSession
			createdAt time.Time
		)
		if err := rows.Scan(&id, &m.Date, &m.DurationSeconds, &createdAt); err != nil {
			return nil, fmt.Errorf("scan meditation: %w", err)
		}
		m.ID = strconv.FormatInt(id, 10)
		m.OwnerID = ownerID
		m.CreatedAt = createdAt
		out = append(out, m)
	}
	return out, rows.Err()
}

// FindReadings implements store.RecordReader
func (r *SQLiteRepository) FindReadings(ctx context.Context, ownerID string) ([]core.ReadingSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, duration_seconds, notes, created_at FROM readings WHERE owner_id = ? ORDER BY id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("select readings: %w", err)
	}
	defer rows.Close()

	var out []core.ReadingSession
	for rows.Next() {
		var (
			id        int64
			s         core.ReadingSession
			createdAt time.Time
		)
		if err := rows.Scan(&id, &s.Date, &s.DurationSeconds, &s.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		s.ID = strconv.FormatInt(id, 10)
		s.OwnerID = ownerID
		s.CreatedAt = createdAt
		out = append(out, s)
	}
	return out, rows.Err()
}

// FindReflections implements store.RecordReader
func (r *SQLiteRepository) FindReflections(ctx context.Context, ownerID string) ([]core.Reflection, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, best_thing, worst_thing, improvement, created_at FROM reflections WHERE owner_id = ? ORDER BY id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("select reflections: %w", err)
	}
	defer rows.Close()

	var out []core.Reflection
	for rows.Next() {
		var (
			id        int64
			ref       core.Reflection
			createdAt time.Time
		)
		if err := rows.Scan(&id, &ref.Date, &ref.BestThing, &ref.WorstThing, &ref.Improvement, &createdAt); err != nil {
			return nil, fmt.Errorf("scan reflection: %w", err)
		}
		ref.ID = strconv.FormatInt(id, 10)
		ref.OwnerID = ownerID
		ref.CreatedAt = createdAt
		out = append(out, ref)
	}
	return out, rows.Err()
}

// FindPlans implements store.RecordReader. Tasks come back in the position
// they were planned in.
func (r *SQLiteRepository) FindPlans(ctx context.Context, ownerID string) ([]core.Plan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, created_at FROM plans WHERE owner_id = ? ORDER BY id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("select plans: %w", err)
	}
	defer rows.Close()

	var out []core.Plan
	for rows.Next() {
		var (
			id        int64
			p         core.Plan
			createdAt time.Time
		)
		if err := rows.Scan(&id, &p.Date, &createdAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		p.ID = strconv.FormatInt(id, 10)
		p.OwnerID = ownerID
		p.CreatedAt = createdAt
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		tasks, err := r.planTasks(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Tasks = tasks
	}
	return out, nil
}

func (r *SQLiteRepository) planTasks(ctx context.Context, planID string) ([]core.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, output, location, time, steps FROM plan_tasks WHERE plan_id = ? ORDER BY position`,
		planID)
	if err != nil {
		return nil, fmt.Errorf("select plan tasks: %w", err)
	}
	defer rows.Close()

	var tasks []core.Task
	for rows.Next() {
		var t core.Task
		if err := rows.Scan(&t.Name, &t.Output, &t.Location, &t.Time, &t.Steps); err != nil {
			return nil, fmt.Errorf("scan plan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetMeditation returns a single session by id, for the journal worker.
func (r *SQLiteRepository) GetMeditation(ctx context.Context, id string) (core.MeditationSession, error) {
	var (
		m         core.MeditationSession
		createdAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id, date, duration_seconds, created_at FROM meditations WHERE id = ?`,
		id).Scan(&m.OwnerID, &m.Date, &m.DurationSeconds, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.MeditationSession{}, ErrNotFound
	}
	if err != nil {
		return core.MeditationSession{}, fmt.Errorf("select meditation: %w", err)
	}
	m.ID = id
	m.CreatedAt = createdAt
	return m, nil
}

// GetReading returns a single session by id, for the journal worker.
func (r *SQLiteRepository) GetReading(ctx context.Context, id string) (core.ReadingSession, error) {
	var (
		s         core.ReadingSession
		createdAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id, date, duration_seconds, notes, created_at FROM readings WHERE id = ?`,
		id).Scan(&s.OwnerID, &s.Date, &s.DurationSeconds, &s.Notes, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ReadingSession{}, ErrNotFound
	}
	if err != nil {
		return core.ReadingSession{}, fmt.Errorf("select reading: %w", err)
	}
	s.ID = id
	s.CreatedAt = createdAt
	return s, nil
}
