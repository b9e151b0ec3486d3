package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"backend/database"
	"backend/scheduler"
	"backend/server/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T, isAdmin bool) (*http.ServeMux, func(*http.Request) *http.Request) {
	t.Helper()
	DB, err := database.SetupDatabase(database.Config{
		Backend:    "sqlite",
		SqlitePath: filepath.Join(t.TempDir(), "test.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	user, err := database.CreateUser(DB, "u", "u@example.com", []byte("password"), isAdmin)
	require.NoError(t, err)

	s := scheduler.NewSchedulerService(DB, zap.NewNop())
	require.NoError(t, s.RegisterTasks())
	h := &AdminHandler{Scheduler: s}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/tasks", h.ListTasks)
	mux.HandleFunc("POST /admin/tasks/{task_name}/run", h.RunTask)
	mux.HandleFunc("GET /admin/tables", h.ListTables)
	mux.HandleFunc("GET /admin/tables/{table_name}", h.GetTableInfo)

	withScope := func(r *http.Request) *http.Request {
		return r.WithContext(util.WithScope(r.Context(), &util.RequestScope{DB: DB, User: user, Log: zap.NewNop()}))
	}
	return mux, withScope
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	mux, withScope := setup(t, false)
	for _, target := range []string{"/admin/tasks", "/admin/tables"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, withScope(httptest.NewRequest("GET", target, nil)))
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
	}
}

func TestAdminTasks(t *testing.T) {
	mux, withScope := setup(t, true)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withScope(httptest.NewRequest("GET", "/admin/tasks", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "prune_login_sessions")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, withScope(httptest.NewRequest("POST", "/admin/tasks/prune_login_sessions/run", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, withScope(httptest.NewRequest("POST", "/admin/tasks/unknown/run", nil)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminTablesHideSecrets(t *testing.T) {
	mux, withScope := setup(t, true)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withScope(httptest.NewRequest("GET", "/admin/tables", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Tables []TableInfo `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Tables, len(database.Tabels))
	assert.Equal(t, "users", listed.Tables[0].Name)
	assert.EqualValues(t, 1, listed.Tables[0].Rows)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, withScope(httptest.NewRequest("GET", "/admin/tables/users", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email"`)
	assert.NotContains(t, rec.Body.String(), "password_hash")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, withScope(httptest.NewRequest("GET", "/admin/tables/nope", nil)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
