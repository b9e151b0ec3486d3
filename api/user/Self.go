package user

import (
	"net/http"

	"backend/server/util"
)

// Self returns the current user's details.
//
//	@Summary      Get current user
//	@Tags         accounts
//	@Produce      json
//	@Success      200 {object} database.User "Current user details"
//	@Failure      401 {string} string "Unauthorized"
//	@Router       /api/v1/user/self [get]
func (h *UserHandler) Self(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	util.WriteJSON(w, http.StatusOK, scope.User)
}
