package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/manager-directory/repositories"
	"github.com/Dosada05/manager-directory/services"
	"github.com/Dosada05/manager-directory/store"
)

func newSubmissionHandler(t *testing.T) (*SubmissionHandler, *store.MemoryTable, *store.MemoryTable) {
	t.Helper()
	subTable := store.NewMemoryTable()
	mgrTable := store.NewMemoryTable()
	subRepo := repositories.NewSheetSubmissionRepository(subTable)
	mgrRepo := repositories.NewSheetManagerRepository(mgrTable)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ss := services.NewSubmissionService(subRepo, nil)
	rs := services.NewReviewService(subRepo, mgrRepo, nil, logger)
	return NewSubmissionHandler(ss, rs), subTable, mgrTable
}

func TestSubmissionHandler_Create(t *testing.T) {
	h, subTable, _ := newSubmissionHandler(t)

	body := `{"Manager Name": "Jürgen Klopp", "club": "Liverpool", "story": "YNWA"}`
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"requestId"`) {
		t.Fatalf("body lacks requestId: %s", rec.Body.String())
	}
	if len(subTable.Rows()) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(subTable.Rows()))
	}
}

func TestSubmissionHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
	}{
		{"missing name", `{"club": "Liverpool"}`, http.StatusUnprocessableEntity, "managerName"},
		{"missing club", `{"name": "Jürgen"}`, http.StatusUnprocessableEntity, "clubName"},
		{"malformed json", `{`, http.StatusBadRequest, ""},
		{"empty body", ``, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, subTable, _ := newSubmissionHandler(t)
			req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantField != "" && !strings.Contains(rec.Body.String(), tt.wantField) {
				t.Fatalf("error must name field %q: %s", tt.wantField, rec.Body.String())
			}
			if len(subTable.Rows()) != 0 {
				t.Fatal("no row may be appended on failure")
			}
		})
	}
}

func TestSubmissionHandler_Review(t *testing.T) {
	h, _, mgrTable := newSubmissionHandler(t)

	// Seed one pending submission through the handler.
	createReq := httptest.NewRequest(http.MethodPost, "/api/submissions",
		strings.NewReader(`{"name": "Pep Guardiola", "club": "City"}`))
	createRec := httptest.NewRecorder()
	h.Create(createRec, createReq)
	if createRec.Code != http.StatusCreated {
		t.Fatalf("seed create failed: %d", createRec.Code)
	}
	var created struct {
		RequestID string `json:"requestId"`
	}
	if err := readJSONBody(createRec.Body.String(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/submissions",
		strings.NewReader(`{"id": "`+created.RequestID+`", "action": "approve"}`))
	rec := httptest.NewRecorder()
	h.Review(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"pep-guardiola"`) {
		t.Fatalf("body lacks manager id: %s", rec.Body.String())
	}
	if len(mgrTable.Rows()) != 2 {
		t.Fatalf("expected manager header + 1 row, got %d", len(mgrTable.Rows()))
	}
}

func TestSubmissionHandler_ReviewErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"bad action", `{"id": "sub_1_a", "action": "publish"}`, http.StatusBadRequest},
		{"missing id", `{"action": "approve"}`, http.StatusBadRequest},
		{"unknown id", `{"id": "sub_missing", "action": "reject"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := newSubmissionHandler(t)
			req := httptest.NewRequest(http.MethodPut, "/api/submissions", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Review(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestSubmissionHandler_List(t *testing.T) {
	h, _, _ := newSubmissionHandler(t)

	seed := httptest.NewRequest(http.MethodPost, "/api/submissions",
		strings.NewReader(`{"name": "Pep", "club": "City"}`))
	h.Create(httptest.NewRecorder(), seed)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status": "pending"`) {
		t.Fatalf("listing lacks pending submission: %s", rec.Body.String())
	}
}

func readJSONBody(body string, dst any) error {
	return json.Unmarshal([]byte(body), dst)
}
