package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"

	"github.com/sirupsen/logrus"
)

type TrendPointView struct {
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
	IsReal bool    `json:"is_real"`
}

type GetTrendResponse struct {
	Currency string           `json:"currency"`
	Points   []TrendPointView `json:"points"`
}

// GetTrend godoc
// @Summary      Densified daily series
// @Description  One value per calendar day in the range. Days without a recorded snapshot are interpolated or extrapolated and flagged is_real=false.
// @Tags         rates
// @Produce      json
// @Param        currency  query  string  true  "currency code"
// @Param        start     query  string  true  "range start (YYYY-MM-DD)"
// @Param        end       query  string  true  "range end (YYYY-MM-DD)"
// @Success      200  {object}  GetTrendResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /rates/trend [get]
func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("currency")))
	if err := h.validator.ValidateCode(code); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, err := parseDateParam(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseDateParam(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "range end is before range start")
		return
	}

	points, err := h.history.Trend(r.Context(), code, start, end)
	if err != nil {
		if errors.Is(err, domain.ErrNoHistory) {
			writeError(w, http.StatusNotFound, "no snapshots recorded for currency")
			return
		}
		msg := "ups, couldn't build the trend this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetTrend", "currency": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := GetTrendResponse{Currency: code, Points: make([]TrendPointView, 0, len(points))}
	for _, p := range points {
		res.Points = append(res.Points, TrendPointView{
			Date:   p.Date.Format(dateLayout),
			Value:  p.Value,
			IsReal: p.IsReal,
		})
	}
	writeJSON(w, http.StatusOK, res)
}
