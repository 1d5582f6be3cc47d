package http

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestCreateAndListMeditations(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodPost, "/api/meditation", token, map[string]any{
		"date": "2025-03-10", "durationSeconds": 600,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body.String())
	}
	var created meditationPayload
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.DurationSeconds != 600 {
		t.Errorf("unexpected payload: %+v", created)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/meditation", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var list []meditationPayload
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestListSortedDateDescending(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice")

	for _, date := range []string{"2025-03-08", "2025-03-10", "2025-03-09"} {
		rec := doJSON(t, s, http.MethodPost, "/api/reading", token, map[string]any{
			"date": date, "durationSeconds": 300, "notes": "n",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: status %d", date, rec.Code)
		}
	}

	rec := doJSON(t, s, http.MethodGet, "/api/reading", token, nil)
	var list []readingPayload
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	want := []string{"2025-03-10", "2025-03-09", "2025-03-08"}
	if len(list) != len(want) {
		t.Fatalf("got %d entries, want %d", len(list), len(want))
	}
	for i, date := range want {
		if list[i].Date != date {
			t.Errorf("list[%d].Date = %s, want %s", i, list[i].Date, date)
		}
	}
}

func TestCreateRejectsInvalidRecords(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice")

	tests := []struct {
		name string
		path string
		body map[string]any
	}{
		{"bad date", "/api/meditation", map[string]any{"date": "10-03-2025", "durationSeconds": 60}},
		{"negative duration", "/api/meditation", map[string]any{"date": "2025-03-10", "durationSeconds": -1}},
		{"empty notes", "/api/reading", map[string]any{"date": "2025-03-10", "durationSeconds": 60, "notes": " "}},
		{"empty prompt", "/api/reflection", map[string]any{"date": "2025-03-10", "bestThing": "b", "worstThing": "", "improvement": "i"}},
		{"empty task field", "/api/plan", map[string]any{
			"date":  "2025-03-10",
			"tasks": []map[string]string{{"name": "n", "output": "", "location": "l", "time": "t", "steps": "s"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, tt.path, token, tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status %d, want 422 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPlanRoundtripKeepsTaskOrder(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodPost, "/api/plan", token, map[string]any{
		"date": "2025-03-11",
		"tasks": []map[string]string{
			{"name": "write", "output": "draft", "location": "desk", "time": "09:00", "steps": "outline"},
			{"name": "review", "output": "notes", "location": "desk", "time": "11:00", "steps": "read"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/api/plan", token, nil)
	var list []planPayload
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || len(list[0].Tasks) != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].Tasks[0].Name != "write" || list[0].Tasks[1].Name != "review" {
		t.Errorf("task order lost: %+v", list[0].Tasks)
	}
}

func TestRecordsScopedToAuthenticatedUser(t *testing.T) {
	s := newTestServer(t)
	alice := registerAndLogin(t, s, "alice")
	bob := registerAndLogin(t, s, "bob")

	rec := doJSON(t, s, http.MethodPost, "/api/meditation", alice, map[string]any{
		"date": "2025-03-10", "durationSeconds": 600,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/meditation", bob, nil)
	var list []meditationPayload
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("bob sees alice's records: %+v", list)
	}
}
