package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"
)

type Validator interface {
	ValidateCode(code string) error
	SupportedCodes() []string
}

type SyncService interface {
	Run(ctx context.Context) domain.SyncResult
}

type HistoryService interface {
	History(ctx context.Context, code string) ([]domain.RateSnapshot, error)
	Compare(ctx context.Context, first, second time.Time) ([]domain.RateSnapshot, []domain.RateSnapshot, error)
	Trend(ctx context.Context, code string, start, end time.Time) ([]domain.DensifiedPoint, error)
}

type Handler struct {
	validator Validator
	sync      SyncService
	history   HistoryService
}

func NewRateHandler(validator Validator, syncService SyncService, historyService HistoryService) *Handler {
	return &Handler{validator: validator, sync: syncService, history: historyService}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
