package report

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/common"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler exposes the commission report.
type Handler struct {
	service      *Service
	logger       zerolog.Logger
	defaultLimit int
	maxLimit     int
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service      *Service
	Logger       zerolog.Logger
	DefaultLimit int
	MaxLimit     int
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service, logger: cfg.Logger, defaultLimit: cfg.DefaultLimit, maxLimit: cfg.MaxLimit}
}

// Routes mounts the report endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/reports/commissions", h.List)
	r.Get("/reports/commissions.xlsx", h.Export)
}

// List handles GET /api/v1/reports/commissions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "report service not configured", nil)
		return
	}
	page, perPage := common.ParsePagination(r, h.defaultLimit, h.maxLimit)
	filter := filterFromQuery(r)
	filter.Limit = perPage
	filter.Offset = common.Offset(page, perPage)

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":   result.Rows,
		"totals": result.Totals,
		"pagination": common.NewPagination(page, result.Limit, result.Total),
	})
}

// Export handles GET /api/v1/reports/commissions.xlsx.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "report service not configured", nil)
		return
	}
	var buf bytes.Buffer
	if err := h.service.ExportXLSX(r.Context(), filterFromQuery(r), &buf); err != nil {
		h.writeError(w, r, err)
		return
	}
	filename := fmt.Sprintf("commissions-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func filterFromQuery(r *http.Request) Filter {
	q := r.URL.Query()
	return Filter{
		PaymentStatus: q.Get("payment_status"),
		VendorID:      q.Get("vendor_id"),
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if !common.IsAppError(err) {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("report request failed")
	}
	common.WriteError(w, err)
}
