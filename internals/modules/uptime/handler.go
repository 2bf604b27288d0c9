package uptime

import (
	"net/http"
	"strconv"

	"statuspage/pkg/apperror"
	"statuspage/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service, validator *validator.Validate) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
	}
}

// GET /uptime/{monitorID}?days=90&tz=Europe/Berlin
func (h *Handler) GetMonitorUptime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	mIDStr := chi.URLParam(r, "monitorID")
	monitorID, err := uuid.Parse(mIDStr)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid monitor id")
		return
	}

	req, ok := h.historyRequest(w, r, reqID)
	if !ok {
		return
	}

	history, err := h.service.MonitorHistory(ctx, monitorID, req.Days, req.Timezone)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", toHistoryResponse(history, req.Timezone))
}

// GET /pages/{slug}/uptime?days=90&tz=Europe/Berlin
func (h *Handler) GetPageUptime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "page slug is required")
		return
	}

	req, ok := h.historyRequest(w, r, reqID)
	if !ok {
		return
	}

	history, err := h.service.PageHistory(ctx, slug, req.Days, req.Timezone)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", toHistoryResponse(history, req.Timezone))
}

func (h *Handler) historyRequest(w http.ResponseWriter, r *http.Request, reqID string) (HistoryRequest, bool) {
	req := HistoryRequest{
		Timezone: r.URL.Query().Get("tz"),
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "days must be a number")
			return HistoryRequest{}, false
		}
		req.Days = days
	}

	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "")
		return HistoryRequest{}, false
	}

	return req, true
}
