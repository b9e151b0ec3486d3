package admin

import (
	"net/http"

	"backend/scheduler"
	"backend/server/util"
)

// AdminHandler serves maintenance endpoints. Every route requires IsAdmin.
type AdminHandler struct {
	Scheduler *scheduler.SchedulerService
}

func requireAdmin(w http.ResponseWriter, r *http.Request) (*util.RequestScope, bool) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	if !scope.User.IsAdmin {
		http.Error(w, "User is not an admin", http.StatusForbidden)
		return nil, false
	}
	return scope, true
}
