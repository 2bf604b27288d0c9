package status

import (
	"net/http"

	"statuspage/pkg/apperror"
	"statuspage/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Handler struct {
	service *Service
	log     *zerolog.Logger
}

func NewHandler(service *Service, log *zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// GET /status/{slug}
//
// X-Cache: HIT means the value came from the resolved-status cache.
// Informative only, absence means a miss.
func (h *Handler) GetCurrentStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "page slug is required")
		return
	}

	st, hit, err := h.service.CurrentStatus(ctx, slug)
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}

	if err != nil {
		// public surface never leaks internal detail, it degrades to
		// unknown with a generic message, the real cause stays in logs
		if !IsPageMiss(err) {
			h.log.Error().Err(err).Str("slug", slug).Msg("status resolution failed")
		}
		utils.WriteErrorData(w, apperror.HTTPStatus(err), reqID, apperror.KindOf(err),
			"status could not be determined",
			CurrentStatusResponse{Page: slug, Status: StatusUnknown})
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", CurrentStatusResponse{
		Page:   slug,
		Status: st,
	})
}
