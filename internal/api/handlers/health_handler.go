package handlers

import (
	"net/http"

	"github.com/TimCalavera/calavera-web/internal/utils"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "ok",
		"message": "Calavera web server is running",
		"service": "calavera-web",
		"version": "1.0.0",
	}

	utils.WriteJSONResponse(w, http.StatusOK, response)
}
