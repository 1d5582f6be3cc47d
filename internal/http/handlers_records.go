package http

import (
	"errors"
	"log/slog"
	"net/http"

	"ritmo/internal/core"
	applog "ritmo/internal/log"
)

// Wire shapes for the record endpoints. Durations travel as seconds; the
// dashboard converts to minutes on its side.
type (
	meditationPayload struct {
		ID              string `json:"id,omitempty"`
		Date            string `json:"date"`
		DurationSeconds int64  `json:"durationSeconds"`
	}

	readingPayload struct {
		ID              string `json:"id,omitempty"`
		Date            string `json:"date"`
		DurationSeconds int64  `json:"durationSeconds"`
		Notes           string `json:"notes"`
	}

	reflectionPayload struct {
		ID          string `json:"id,omitempty"`
		Date        string `json:"date"`
		BestThing   string `json:"bestThing"`
		WorstThing  string `json:"worstThing"`
		Improvement string `json:"improvement"`
	}

	taskPayload struct {
		Name     string `json:"name"`
		Output   string `json:"output"`
		Location string `json:"location"`
		Time     string `json:"time"`
		Steps    string `json:"steps"`
	}

	planPayload struct {
		ID    string        `json:"id,omitempty"`
		Date  string        `json:"date"`
		Tasks []taskPayload `json:"tasks"`
	}
)

func (s *Server) handleMeditation(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req meditationPayload
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		created, err := s.records.CreateMeditation(r.Context(), core.MeditationSession{
			OwnerID:         ownerFromContext(r.Context()),
			Date:            req.Date,
			DurationSeconds: req.DurationSeconds,
		})
		if err != nil {
			s.writeRecordError(w, r, applog.KindMeditation, err)
			return
		}
		writeJSON(w, http.StatusCreated, meditationPayload{
			ID:              created.ID,
			Date:            created.Date,
			DurationSeconds: created.DurationSeconds,
		})
	case http.MethodGet:
		sessions, err := s.records.ListMeditations(r.Context(), ownerFromContext(r.Context()))
		if err != nil {
			s.writeRecordError(w, r, applog.KindMeditation, err)
			return
		}
		out := make([]meditationPayload, 0, len(sessions))
		for _, m := range sessions {
			out = append(out, meditationPayload{ID: m.ID, Date: m.Date, DurationSeconds: m.DurationSeconds})
		}
		writeJSON(w, http.StatusOK, out)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleReading(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req readingPayload
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		created, err := s.records.CreateReading(r.Context(), core.ReadingSession{
			OwnerID:         ownerFromContext(r.Context()),
			Date:            req.Date,
			DurationSeconds: req.DurationSeconds,
			Notes:           req.Notes,
		})
		if err != nil {
			s.writeRecordError(w, r, applog.KindReading, err)
			return
		}
		writeJSON(w, http.StatusCreated, readingPayload{
			ID:              created.ID,
			Date:            created.Date,
			DurationSeconds: created.DurationSeconds,
			Notes:           created.Notes,
		})
	case http.MethodGet:
		sessions, err := s.records.ListReadings(r.Context(), ownerFromContext(r.Context()))
		if err != nil {
			s.writeRecordError(w, r, applog.KindReading, err)
			return
		}
		out := make([]readingPayload, 0, len(sessions))
		for _, rs := range sessions {
			out = append(out, readingPayload{ID: rs.ID, Date: rs.Date, DurationSeconds: rs.DurationSeconds, Notes: rs.Notes})
		}
		writeJSON(w, http.StatusOK, out)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleReflection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req reflectionPayload
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		created, err := s.records.CreateReflection(r.Context(), core.Reflection{
			OwnerID:     ownerFromContext(r.Context()),
			Date:        req.Date,
			BestThing:   req.BestThing,
			WorstThing:  req.WorstThing,
			Improvement: req.Improvement,
		})
		if err != nil {
			s.writeRecordError(w, r, applog.KindReflection, err)
			return
		}
		writeJSON(w, http.StatusCreated, reflectionPayload{
			ID:          created.ID,
			Date:        created.Date,
			BestThing:   created.BestThing,
			WorstThing:  created.WorstThing,
			Improvement: created.Improvement,
		})
	case http.MethodGet:
		reflections, err := s.records.ListReflections(r.Context(), ownerFromContext(r.Context()))
		if err != nil {
			s.writeRecordError(w, r, applog.KindReflection, err)
			return
		}
		out := make([]reflectionPayload, 0, len(reflections))
		for _, ref := range reflections {
			out = append(out, reflectionPayload{
				ID:          ref.ID,
				Date:        ref.Date,
				BestThing:   ref.BestThing,
				WorstThing:  ref.WorstThing,
				Improvement: ref.Improvement,
			})
		}
		writeJSON(w, http.StatusOK, out)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req planPayload
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		tasks := make([]core.Task, 0, len(req.Tasks))
		for _, t := range req.Tasks {
			tasks = append(tasks, core.Task{
				Name:     t.Name,
				Output:   t.Output,
				Location: t.Location,
				Time:     t.Time,
				Steps:    t.Steps,
			})
		}
		created, err := s.records.CreatePlan(r.Context(), core.Plan{
			OwnerID: ownerFromContext(r.Context()),
			Date:    req.Date,
			Tasks:   tasks,
		})
		if err != nil {
			s.writeRecordError(w, r, applog.KindPlan, err)
			return
		}
		writeJSON(w, http.StatusCreated, planToPayload(created))
	case http.MethodGet:
		plans, err := s.records.ListPlans(r.Context(), ownerFromContext(r.Context()))
		if err != nil {
			s.writeRecordError(w, r, applog.KindPlan, err)
			return
		}
		out := make([]planPayload, 0, len(plans))
		for _, p := range plans {
			out = append(out, planToPayload(p))
		}
		writeJSON(w, http.StatusOK, out)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func planToPayload(p core.Plan) planPayload {
	tasks := make([]taskPayload, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		tasks = append(tasks, taskPayload{
			Name:     t.Name,
			Output:   t.Output,
			Location: t.Location,
			Time:     t.Time,
			Steps:    t.Steps,
		})
	}
	return planPayload{ID: p.ID, Date: p.Date, Tasks: tasks}
}

// writeRecordError maps record errors to wire responses: validation
// failures are the client's fault, everything else is ours.
func (s *Server) writeRecordError(w http.ResponseWriter, r *http.Request, kind string, err error) {
	if isValidationError(err) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	slog.ErrorContext(r.Context(), "Record operation failed",
		applog.FieldRecordKind, kind,
		applog.FieldOwnerID, ownerFromContext(r.Context()),
		applog.FieldError, err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrNegativeDuration) ||
		errors.Is(err, core.ErrEmptyField) ||
		errors.Is(err, core.ErrEmptyOwner)
}
