// Package memory is the in-memory record store used as the default dev
// backend and in tests.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"ritmo/internal/core"
	"ritmo/internal/store"
)

type Store struct {
	mu          sync.Mutex
	nextID      int64
	users       []core.User
	meditations []core.MeditationSession
	readings    []core.ReadingSession
	reflections []core.Reflection
	plans       []core.Plan
}

func New() *Store {
	return &Store{}
}

func (s *Store) id() string {
	s.nextID++
	return "mem:" + strconv.FormatInt(s.nextID, 10)
}

func (s *Store) CreateUser(_ context.Context, username, passwordHash string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return core.User{}, store.ErrUserExists
		}
	}
	u := core.User{
		ID:           s.id(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *Store) FindUserByUsername(_ context.Context, username string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return core.User{}, store.ErrUserNotFound
}

func (s *Store) AddMeditation(_ context.Context, m core.MeditationSession) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.id()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	s.meditations = append(s.meditations, m)
	return m.ID, nil
}

func (s *Store) AddReading(_ context.Context, r core.ReadingSession) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.readings = append(s.readings, r)
	return r.ID, nil
}

func (s *Store) AddReflection(_ context.Context, r core.Reflection) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.reflections = append(s.reflections, r)
	return r.ID, nil
}

func (s *Store) AddPlan(_ context.Context, p core.Plan) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.Tasks = append([]core.Task(nil), p.Tasks...)
	s.plans = append(s.plans, p)
	return p.ID, nil
}

func (s *Store) FindMeditations(_ context.Context, ownerID string) ([]core.MeditationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.MeditationSession
	for _, m := range s.meditations {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) FindReadings(_ context.Context, ownerID string) ([]core.ReadingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.ReadingSession
	for _, r := range s.readings {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) FindReflections(_ context.Context, ownerID string) ([]core.Reflection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Reflection
	for _, r := range s.reflections {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) FindPlans(_ context.Context, ownerID string) ([]core.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Plan
	for _, p := range s.plans {
		if p.OwnerID == ownerID {
			cp := p
			cp.Tasks = append([]core.Task(nil), p.Tasks...)
			out = append(out, cp)
		}
	}
	return out, nil
}
