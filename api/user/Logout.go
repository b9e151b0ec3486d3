package user

import (
	"net/http"
	"time"

	"backend/api"
	"backend/database"
	"backend/server/util"

	"go.uber.org/zap"
)

// Logout a user
//
//	@Summary      Logout a user
//	@Description  Invalidates the caller's session token
//	@Tags         accounts
//	@Produce      plain
//	@Success      200  {string}  string	"Logout successful"
//	@Failure      401  {string}  string	"Unauthorized"
//	@Router       /api/v1/user/logout [post]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cookie, err := r.Cookie(api.SessionCookieName)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := database.DeleteLoginSession(scope.DB, cookie.Value); err != nil {
		scope.Log.Error("delete login session", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, api.SessionCookie(r, h.CookieDomain, "", time.Time{}))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Logout successful"))
}
