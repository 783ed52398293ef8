package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/common"
)

// Handler exposes order and line endpoints.
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

// Routes mounts order endpoints. admin wraps the commission payment routes.
func (h *Handler) Routes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Post("/orders", h.Create)
	r.Get("/orders/{id}", h.Get)
	r.Patch("/orders/{id}", h.Update)
	r.Post("/orders/{id}/lines", h.AddLine)
	r.Post("/orders/{id}/recompute", h.Recompute)
	r.Patch("/lines/{id}", h.UpdateLine)
	r.Put("/lines/{id}/vendor", h.SetVendor)
	r.Group(func(r chi.Router) {
		if admin != nil {
			r.Use(admin)
		}
		r.Post("/lines/{id}/commission-status/toggle", h.TogglePaymentStatus)
		r.Put("/lines/{id}/commission-status", h.SetPaymentStatus)
	})
}

// Create handles POST /api/v1/orders.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	var in CreateOrderInput
	if err := common.DecodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	out, err := h.service.CreateOrder(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": out})
}

// Get handles GET /api/v1/orders/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	id, err := common.ParseID(chi.URLParam(r, "id"), "order")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Update handles PATCH /api/v1/orders/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	id, err := common.ParseID(chi.URLParam(r, "id"), "order")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in UpdateOrderInput
	if err := common.DecodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	out, err := h.service.UpdateOrder(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// AddLine handles POST /api/v1/orders/{id}/lines.
func (h *Handler) AddLine(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	id, err := common.ParseID(chi.URLParam(r, "id"), "order")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in LineInput
	if err := common.DecodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	out, err := h.service.AddLine(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": out})
}

// Recompute handles POST /api/v1/orders/{id}/recompute.
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	id, err := common.ParseID(chi.URLParam(r, "id"), "order")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out, err := h.service.RecomputeOrder(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// UpdateLine handles PATCH /api/v1/lines/{id}.
func (h *Handler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	id, err := common.ParseID(chi.URLParam(r, "id"), "line")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in UpdateLineInput
	if err := common.DecodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	out, err := h.service.UpdateLine(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

type vendorRequest struct {
	VendorReference *string `json:"vendor_reference"`
}

// SetVendor handles PUT /api/v1/lines/{id}/vendor.
func (h *Handler) SetVendor(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	id, err := common.ParseID(chi.URLParam(r, "id"), "line")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req vendorRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	line, err := h.service.SetLineVendor(r.Context(), id, req.VendorReference)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": line})
}

// TogglePaymentStatus handles POST /api/v1/lines/{id}/commission-status/toggle.
func (h *Handler) TogglePaymentStatus(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	id, err := common.ParseID(chi.URLParam(r, "id"), "line")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	line, err := h.service.TogglePaymentStatus(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": line})
}

type paymentStatusRequest struct {
	Status string `json:"status"`
}

// SetPaymentStatus handles PUT /api/v1/lines/{id}/commission-status.
func (h *Handler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	id, err := common.ParseID(chi.URLParam(r, "id"), "line")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req paymentStatusRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	line, err := h.service.SetPaymentStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": line})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if !common.IsAppError(err) {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("order request failed")
	}
	common.WriteError(w, err)
}
