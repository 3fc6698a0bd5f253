package api

import (
	"net/http"

	"github.com/tcp_snm/algodex/internal/service"
)

// HandlerGetMe echoes the verified session of the caller.
func (a *Api) HandlerGetMe(w http.ResponseWriter, r *http.Request) {
	claims, err := service.GetClaimsFromContext(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	response := struct {
		UserName  string `json:"user_name"`
		ExpiresAt int64  `json:"expires_at,omitempty"`
	}{
		UserName: claims.UserName,
	}
	if claims.ExpiresAt != nil {
		response.ExpiresAt = claims.ExpiresAt.Unix()
	}

	respondWithValue(w, http.StatusOK, response)
}
