package handler

import (
	"net/http"
)

type GetSupportedCodesResponse struct {
	Codes []string `json:"codes"`
}

// GetSupportedCodes godoc
// @Summary      Supported currency codes
// @Tags         rates
// @Produce      json
// @Success      200  {object}  GetSupportedCodesResponse
// @Router       /rates/supported-currencies [get]
func (h *Handler) GetSupportedCodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, GetSupportedCodesResponse{
		Codes: h.validator.SupportedCodes(),
	})
}
