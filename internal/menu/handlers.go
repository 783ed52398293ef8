package menu

import (
	"net/http"
	"strings"

	"github.com/noah-isme/sales-commission/internal/common"
)

// Handler exposes the menu filter.
type Handler struct {
	Filter Filter
}

type filterRequest struct {
	Company string `json:"company"`
	Menus   any    `json:"menus"`
}

// FilterMenus handles POST /api/v1/menus/filter.
func (h *Handler) FilterMenus(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if strings.TrimSpace(req.Company) == "" || req.Menus == nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "company and menus are required", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Filter.Apply(req.Company, req.Menus)})
}
