package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// User is an account holder. The ID is the opaque owner identifier
	// every record is scoped by.
	User struct {
		ID           string
		Username     string
		PasswordHash string
		CreatedAt    time.Time
	}

	// MeditationSession is a single timed meditation on one calendar day.
	MeditationSession struct {
		ID              string
		OwnerID         string
		Date            string // YYYY-MM-DD, the session's local calendar day
		DurationSeconds int64
		CreatedAt       time.Time
	}

	// ReadingSession is a single timed reading session with free-text notes.
	ReadingSession struct {
		ID              string
		OwnerID         string
		Date            string
		DurationSeconds int64
		Notes           string
		CreatedAt       time.Time
	}

	// Reflection is a daily journal entry with three free-text prompts.
	// One entry per date is the expectation, but not enforced.
	Reflection struct {
		ID          string
		OwnerID     string
		Date        string
		BestThing   string
		WorstThing  string
		Improvement string
		CreatedAt   time.Time
	}

	// Task is one planned item inside a Plan. Tasks carry no identity of
	// their own outside the parent plan.
	Task struct {
		Name     string
		Output   string
		Location string
		Time     string
		Steps    string
	}

	// Plan is an ordered task list targeting one calendar day, typically
	// tomorrow relative to when it was written.
	Plan struct {
		ID        string
		OwnerID   string
		Date      string // target day, not the creation day
		Tasks     []Task
		CreatedAt time.Time
	}
)

var (
	ErrEmptyOwner       = errors.New("empty owner id")
	ErrNegativeDuration = errors.New("negative duration")
	ErrEmptyField       = errors.New("empty required field")
	ErrEmptyUsername    = errors.New("empty username")
	ErrShortPassword    = errors.New("password too short (min 8 characters)")
)

func (m MeditationSession) Validate() error {
	if strings.TrimSpace(m.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if !ValidDay(m.Date) {
		return ErrInvalidDate
	}
	if m.DurationSeconds < 0 {
		return ErrNegativeDuration
	}
	return nil
}

func (r ReadingSession) Validate() error {
	if strings.TrimSpace(r.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if !ValidDay(r.Date) {
		return ErrInvalidDate
	}
	if r.DurationSeconds < 0 {
		return ErrNegativeDuration
	}
	if strings.TrimSpace(r.Notes) == "" {
		return ErrEmptyField
	}
	return nil
}

func (r Reflection) Validate() error {
	if strings.TrimSpace(r.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if !ValidDay(r.Date) {
		return ErrInvalidDate
	}
	if strings.TrimSpace(r.BestThing) == "" ||
		strings.TrimSpace(r.WorstThing) == "" ||
		strings.TrimSpace(r.Improvement) == "" {
		return ErrEmptyField
	}
	return nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" ||
		strings.TrimSpace(t.Output) == "" ||
		strings.TrimSpace(t.Location) == "" ||
		strings.TrimSpace(t.Time) == "" ||
		strings.TrimSpace(t.Steps) == "" {
		return ErrEmptyField
	}
	return nil
}

func (p Plan) Validate() error {
	if strings.TrimSpace(p.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if !ValidDay(p.Date) {
		return ErrInvalidDate
	}
	for _, t := range p.Tasks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Minutes converts a duration in seconds to fractional minutes. Dashboard
// views keep the fraction, they never round.
func Minutes(seconds int64) float64 {
	return float64(seconds) / 60.0
}
