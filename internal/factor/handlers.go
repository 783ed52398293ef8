package factor

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/common"
)

// Handler exposes factor table endpoints.
type Handler struct {
	service *Service
	logger  zerolog.Logger
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
	Logger  zerolog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service, logger: cfg.Logger}
}

// Routes mounts the factor endpoints. admin wraps the write routes.
func (h *Handler) Routes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Get("/factors", h.List)
	r.Get("/factors/resolve", h.Resolve)
	r.Get("/factors/{id}", h.Get)
	r.Group(func(r chi.Router) {
		if admin != nil {
			r.Use(admin)
		}
		r.Post("/factors", h.Create)
		r.Put("/factors/{id}", h.Update)
		r.Delete("/factors/{id}", h.Deactivate)
	})
}

// List handles GET /api/v1/factors.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "factor service not configured", nil)
		return
	}
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("include_inactive"))
	rows, err := h.service.List(r.Context(), includeInactive)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// Get handles GET /api/v1/factors/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "factor service not configured", nil)
		return
	}
	id, err := common.ParseID(chi.URLParam(r, "id"), "factor")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// Resolve handles GET /api/v1/factors/resolve?markup=.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "factor service not configured", nil)
		return
	}
	raw := strings.TrimSpace(r.URL.Query().Get("markup"))
	markup, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "markup must be a number", nil)
		return
	}
	res, err := h.service.Resolve(r.Context(), markup)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": res})
}

// Create handles POST /api/v1/factors.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "factor service not configured", nil)
		return
	}
	var in Input
	if err := common.DecodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": view})
}

// Update handles PUT /api/v1/factors/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "factor service not configured", nil)
		return
	}
	id, err := common.ParseID(chi.URLParam(r, "id"), "factor")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in Input
	if err := common.DecodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// Deactivate handles DELETE /api/v1/factors/{id}. Entries are never removed.
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "factor service not configured", nil)
		return
	}
	id, err := common.ParseID(chi.URLParam(r, "id"), "factor")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.service.Deactivate(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if !common.IsAppError(err) {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("factor request failed")
	}
	common.WriteError(w, err)
}
