package handler

import (
	"net/http"
)

type TriggerSyncResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TriggerSync godoc
// @Summary      Run the historical rate sync
// @Description  Fetches and stores daily snapshots from the last synced date up to today. Reports "already in progress" instead of queuing.
// @Tags         sync
// @Produce      json
// @Success      200  {object}  TriggerSyncResponse
// @Router       /sync [get]
func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	result := h.sync.Run(r.Context())

	// Always HTTP 200: a rejected concurrent run is a normal outcome the
	// caller retries later, not an error.
	writeJSON(w, http.StatusOK, TriggerSyncResponse{
		Success: result.Success,
		Message: result.Message,
	})
}
