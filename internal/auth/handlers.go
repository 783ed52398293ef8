package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/noah-isme/sales-commission/internal/common"
)

// LoginService issues tokens for configured accounts.
type LoginService interface {
	Login(ctx context.Context, username, password string) (TokenResult, error)
}

// Handler exposes HTTP handlers for token issuance.
type Handler struct {
	Service LoginService
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token handles POST /api/v1/auth/token.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "auth service not configured", nil)
		return
	}
	var req tokenRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "username and password are required", nil)
		return
	}
	result, err := h.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": result})
}
