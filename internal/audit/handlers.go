package audit

import (
	"net/http"
	"strings"

	"github.com/noah-isme/sales-commission/internal/common"
)

// Handler exposes the audit trail to administrators.
type Handler struct {
	Service Service
}

// List handles GET /api/v1/admin/audit-logs.
func (h Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Service.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "audit store not configured", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 50, 200)
	resource := strings.TrimSpace(r.URL.Query().Get("resource_type"))
	logs, total, err := h.Service.List(r.Context(), resource, perPage, common.Offset(page, perPage))
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "unable to fetch audit logs", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":       logs,
		"pagination": common.NewPagination(page, perPage, total),
	})
}
