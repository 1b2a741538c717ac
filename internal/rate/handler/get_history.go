package handler

import (
	"net/http"
	"strings"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"

	"github.com/sirupsen/logrus"
)

type SnapshotView struct {
	Date     string `json:"date"`
	Currency string `json:"currency"`
	Value    int64  `json:"value"`
}

type GetHistoryResponse struct {
	Snapshots []SnapshotView `json:"snapshots"`
}

const dateLayout = "2006-01-02"

// GetHistory godoc
// @Summary      Stored rate history
// @Description  All recorded snapshots, newest first, optionally filtered by currency code.
// @Tags         rates
// @Produce      json
// @Param        currency  query  string  false  "currency code filter"
// @Success      200  {object}  GetHistoryResponse
// @Failure      400  {object}  errorResponse
// @Router       /rates/history [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("currency")))

	if code != "" {
		if err := h.validator.ValidateCode(code); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	snapshots, err := h.history.History(r.Context(), code)
	if err != nil {
		msg := "ups, couldn't get rate history this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetHistory", "currency": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetHistoryResponse{Snapshots: toSnapshotViews(snapshots)})
}

func toSnapshotViews(snapshots []domain.RateSnapshot) []SnapshotView {
	views := make([]SnapshotView, 0, len(snapshots))
	for _, s := range snapshots {
		views = append(views, SnapshotView{
			Date:     s.Date.Format(dateLayout),
			Currency: s.Code,
			Value:    s.Value,
		})
	}
	return views
}
