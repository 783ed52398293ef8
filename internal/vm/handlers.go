package vm

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/common"
)

// Handler exposes the VM configurator.
type Handler struct {
	service *Service
	logger  zerolog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *Service, logger zerolog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes mounts the VM endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/vm/flavor", h.Flavor)
	r.Post("/orders/{id}/vm", h.Apply)
}

// Flavor handles GET /api/v1/vm/flavor?vcpus=&ram_gb=.
func (h *Handler) Flavor(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vcpus, err1 := strconv.Atoi(q.Get("vcpus"))
	ram, err2 := strconv.Atoi(q.Get("ram_gb"))
	if err1 != nil || err2 != nil || vcpus < 0 || ram < 0 {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "vcpus and ram_gb must be non-negative integers", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{
		"flavor":     SuggestFlavor(vcpus, ram),
		"size_label": SizeLabel(vcpus, ram),
	}})
}

// Apply handles POST /api/v1/orders/{id}/vm.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "vm service not configured", nil)
		return
	}
	id, err := common.ParseID(chi.URLParam(r, "id"), "order")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var cfg Config
	if err := common.DecodeJSON(r, &cfg); err != nil {
		common.WriteError(w, err)
		return
	}
	res, err := h.service.Apply(r.Context(), id, cfg)
	if err != nil {
		if !common.IsAppError(err) {
			h.logger.Error().Err(err).Str("order_id", id.String()).Msg("apply vm configuration failed")
		}
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": res})
}
