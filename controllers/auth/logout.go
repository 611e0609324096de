package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/joaovbraz/mmn-invest-backend/logging"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

// Logout revokes the current access token so it stops working before its
// natural expiry. Revocation needs Redis; without it the token stays valid
// until exp and the client just discards it.
func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	_, claims, err := utils.ValidateAccessToken(tokenStr)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Token inválido"})
		return
	}

	if jti, ok := claims["jti"].(string); ok && jti != "" {
		var ttl time.Duration
		if expRaw, ok := claims["exp"].(float64); ok {
			ttl = time.Until(time.Unix(int64(expRaw), 0))
		}
		if ttl < 0 {
			ttl = 0
		}
		if err := utils.RevokeJTI(jti, ttl); err != nil {
			logging.Sugar().Warnw("access token revocation skipped", "error", err)
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Sessão encerrada com sucesso."})
}
