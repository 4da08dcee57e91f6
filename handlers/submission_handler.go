package handlers

import (
	"net/http"

	"github.com/Dosada05/manager-directory/services"
)

type SubmissionHandler struct {
	submissionService services.SubmissionService
	reviewService     services.ReviewService
}

func NewSubmissionHandler(ss services.SubmissionService, rs services.ReviewService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: ss,
		reviewService:     rs,
	}
}

// Create accepts a raw profile payload. Keys are alias-tolerant, so the body
// is decoded as a free-form object rather than a fixed struct.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := readJSON(w, r, &payload); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	requestID, err := h.submissionService.Create(r.Context(), payload)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"requestId": requestID}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissionService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"submissions": subs}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Review handles the approve/reject transition.
func (h *SubmissionHandler) Review(w http.ResponseWriter, r *http.Request) {
	var input services.ReviewInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.reviewService.Review(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"result": result}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
