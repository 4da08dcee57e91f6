package handlers

import (
	"net/http"

	"github.com/Dosada05/manager-directory/services"
)

type ManagerHandler struct {
	directoryService services.DirectoryService
}

func NewManagerHandler(ds services.DirectoryService) *ManagerHandler {
	return &ManagerHandler{directoryService: ds}
}

// List serves the public directory. The service layer degrades to an empty
// list on store failures, so this endpoint never errors.
func (h *ManagerHandler) List(w http.ResponseWriter, r *http.Request) {
	managers := h.directoryService.ListManagers(r.Context())

	response := jsonResponse{"managers": managers}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByID looks a single manager up by the id query parameter,
// case-insensitively.
func (h *ManagerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := queryParam(r, "id")

	manager, err := h.directoryService.GetManagerByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"manager": manager}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
