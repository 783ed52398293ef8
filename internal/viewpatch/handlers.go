package viewpatch

import (
	"net/http"

	"github.com/noah-isme/sales-commission/internal/common"
)

type patchRequest struct {
	Arch string `json:"arch"`
}

// Handle serves POST /api/v1/views/user-groups/patch.
func Handle(w http.ResponseWriter, r *http.Request) {
	var req patchRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	out, err := Patch(req.Arch)
	if err != nil {
		common.WriteError(w, common.BadRequest(err.Error(), err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{"arch": out}})
}
