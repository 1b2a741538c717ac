package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type CompareDatesResponse struct {
	First  []SnapshotView `json:"first"`
	Second []SnapshotView `json:"second"`
}

// CompareDates godoc
// @Summary      Snapshots for two dates
// @Description  Full snapshot set for each of two dates, for "today vs yesterday" style comparisons.
// @Tags         rates
// @Produce      json
// @Param        first   query  string  true  "first date (YYYY-MM-DD)"
// @Param        second  query  string  true  "second date (YYYY-MM-DD)"
// @Success      200  {object}  CompareDatesResponse
// @Failure      400  {object}  errorResponse
// @Router       /rates/compare [get]
func (h *Handler) CompareDates(w http.ResponseWriter, r *http.Request) {
	first, err := parseDateParam(r, "first")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	second, err := parseDateParam(r, "second")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	firstSet, secondSet, err := h.history.Compare(r.Context(), first, second)
	if err != nil {
		msg := "ups, couldn't compare dates this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "CompareDates", "first": first, "second": second}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := CompareDatesResponse{
		First:  toSnapshotViews(firstSet),
		Second: toSnapshotViews(secondSet),
	}
	writeJSON(w, http.StatusOK, res)
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	d, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, &paramError{name: name}
	}
	return d, nil
}

type paramError struct{ name string }

func (e *paramError) Error() string {
	return "query param '" + e.name + "' must be a date formatted as " + dateLayout
}
