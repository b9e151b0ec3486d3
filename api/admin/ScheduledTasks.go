package admin

import (
	"errors"
	"net/http"

	"backend/scheduler"
	"backend/server/util"

	"go.uber.org/zap"
)

// ListTasks returns all registered tasks
//
//	@Summary      List scheduled tasks
//	@Tags         admin
//	@Produce      json
//	@Success      200  {object}  map[string][]scheduler.Task
//	@Failure      403  {string}  string  "User is not an admin"
//	@Router       /api/v1/admin/tasks [get]
func (h *AdminHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	util.WriteJSON(w, http.StatusOK, map[string][]scheduler.Task{"tasks": h.Scheduler.ListTasks()})
}

// RunTask runs a task immediately
//
//	@Summary      Run a scheduled task now
//	@Tags         admin
//	@Produce      json
//	@Param        task_name path string true "Task name"
//	@Success      200  {object}  map[string]string
//	@Failure      403  {string}  string  "User is not an admin"
//	@Failure      404  {string}  string  "Task not found"
//	@Router       /api/v1/admin/tasks/{task_name}/run [post]
func (h *AdminHandler) RunTask(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	taskName := r.PathValue("task_name")
	err := h.Scheduler.RunTaskNow(r.Context(), taskName)
	if errors.Is(err, scheduler.ErrUnknownTask) {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		scope.Log.Error("manual task run failed", zap.String("task", taskName), zap.Error(err))
		http.Error(w, "Task failed", http.StatusInternalServerError)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Task completed successfully"})
}
