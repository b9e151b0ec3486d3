package sessions

import (
	"fmt"
	"net/http"
	"strings"

	"backend/api"
	"backend/database"
	"backend/server/util"
)

type ListAutomationsResponse struct {
	Automations []api.AutomationView `json:"automations"`
}

// List automations of a session
//
//	@Summary      List automations
//	@Tags         sessions
//	@Produce      json
//	@Param        session_id path string true "Session UUID"
//	@Success      200  {object}  ListAutomationsResponse
//	@Failure      404  {string}  string  "Session not found"
//	@Router       /api/v1/sessions/{session_id}/automations [get]
func (h *SessionsHandler) ListAutomations(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := database.GetOwnedSession(scope.DB, scope.User, r.PathValue("session_id"))
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}
	automations, err := database.ListAutomations(scope.DB, session)
	if err != nil {
		api.WriteError(w, scope.Log, err, api.SessionNotFound)
		return
	}

	util.WriteJSON(w, http.StatusOK, ListAutomationsResponse{Automations: api.NewAutomationViews(session, automations)})
}

// DownloadFilename is "<name>.<ext>" with whitespace turned into dashes and
// quotes removed so it can sit inside a quoted header parameter.
func DownloadFilename(a *database.Automation) string {
	name := strings.Join(strings.Fields(a.Name), "-")
	name = strings.NewReplacer(`"`, "", `\`, "").Replace(name)
	if name == "" {
		name = "automation"
	}
	return fmt.Sprintf("%s.%s", name, a.Language.Extension())
}

// Download an automation's code
//
//	@Summary      Download an automation
//	@Description  Returns the code as an attachment and marks the automation downloaded
//	@Tags         sessions
//	@Produce      plain
//	@Param        session_id     path string true "Session UUID"
//	@Param        automation_id  path string true "Automation UUID"
//	@Success      200  {string}  string  "code"
//	@Failure      404  {string}  string  "Automation not found"
//	@Router       /api/v1/sessions/{session_id}/automations/{automation_id}/download [get]
func (h *SessionsHandler) Download(w http.ResponseWriter, r *http.Request) {
	scope, err := util.GetScope(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := database.GetOwnedSession(scope.DB, scope.User, r.PathValue("session_id"))
	if err != nil {
		api.WriteError(w, scope.Log, err, api.AutomationNotFound)
		return
	}
	automation, err := database.GetAutomation(scope.DB, session, r.PathValue("automation_id"))
	if err != nil {
		api.WriteError(w, scope.Log, err, api.AutomationNotFound)
		return
	}
	if err := database.MarkAutomationDownloaded(scope.DB, session, automation); err != nil {
		api.WriteError(w, scope.Log, err, api.AutomationNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, DownloadFilename(automation)))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(automation.Code))
}
