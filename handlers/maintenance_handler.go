package handlers

import (
	"net/http"

	"github.com/Dosada05/manager-directory/services"
)

// MaintenanceHandler exposes the rebuild and repair jobs. Both rewrite whole
// sheets, so they are POST-only and mounted behind the admin middleware.
type MaintenanceHandler struct {
	maintenanceService services.MaintenanceService
}

func NewMaintenanceHandler(ms services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: ms}
}

func (h *MaintenanceHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	result, err := h.maintenanceService.Rebuild(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"result": result}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MaintenanceHandler) Repair(w http.ResponseWriter, r *http.Request) {
	result, err := h.maintenanceService.Repair(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"result": result}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
