package server

import (
	"net/http"

	"backend/api/admin"
	"backend/api/agents"
	"backend/api/ai"
	"backend/api/integrations"
	"backend/api/reference"
	"backend/api/sessions"
	"backend/api/user"
	"backend/extractor"
	"backend/generator"
	"backend/llm"
)

func (s *BackendServer) routes() http.Handler {
	mux := http.NewServeMux()
	v1PrivateApis := http.NewServeMux()
	websocketMux := http.NewServeMux()

	userHandler := &user.UserHandler{DB: s.DB, Log: s.Log, CookieDomain: s.Options.CookieDomain}
	sessionsHandler := &sessions.SessionsHandler{
		Extraction: &extractor.Service{
			Extractor: &extractor.Extractor{LLM: s.LLM, Model: s.Options.ExtractionModel, Log: s.Log},
			Log:       s.Log,
		},
		Generation: &generator.Service{
			Generator: &generator.Generator{LLM: s.LLM, Model: s.Options.GenerationModel, Log: s.Log},
			Agents:    s.Agents,
			Log:       s.Log,
		},
		Events: s.Events,
	}
	integrationsHandler := &integrations.IntegrationsHandler{Events: s.Events}
	agentsHandler := &agents.AgentsHandler{Registry: s.Agents}
	aiHandler := &ai.AIHandler{LLM: s.LLM, Model: s.Options.ChatModel, Models: llm.DefaultModels(s.LLM.Name()).Catalogue}
	adminHandler := &admin.AdminHandler{Scheduler: s.Scheduler}

	v1PrivateApis.HandleFunc("GET /sessions", sessionsHandler.List)
	v1PrivateApis.HandleFunc("POST /sessions", sessionsHandler.Create)
	v1PrivateApis.HandleFunc("GET /sessions/{session_id}", sessionsHandler.Get)
	v1PrivateApis.HandleFunc("PATCH /sessions/{session_id}", sessionsHandler.Update)
	v1PrivateApis.HandleFunc("DELETE /sessions/{session_id}", sessionsHandler.Delete)
	v1PrivateApis.HandleFunc("GET /sessions/{session_id}/messages", sessionsHandler.ListMessages)
	v1PrivateApis.HandleFunc("POST /sessions/{session_id}/messages", sessionsHandler.AppendMessage)
	v1PrivateApis.HandleFunc("POST /sessions/{session_id}/extract-context", sessionsHandler.ExtractContext)
	v1PrivateApis.HandleFunc("POST /sessions/{session_id}/generate-code", sessionsHandler.GenerateCode)
	v1PrivateApis.HandleFunc("GET /sessions/{session_id}/automations", sessionsHandler.ListAutomations)
	v1PrivateApis.HandleFunc("GET /sessions/{session_id}/automations/{automation_id}/download", sessionsHandler.Download)

	v1PrivateApis.HandleFunc("GET /sessions/{session_id}/integrations", integrationsHandler.List)
	v1PrivateApis.HandleFunc("POST /sessions/{session_id}/integrations", integrationsHandler.Create)
	v1PrivateApis.HandleFunc("PATCH /sessions/{session_id}/integrations/{integration_id}", integrationsHandler.Update)
	v1PrivateApis.HandleFunc("DELETE /sessions/{session_id}/integrations/{integration_id}", integrationsHandler.Delete)

	v1PrivateApis.HandleFunc("GET /agents", agentsHandler.List)
	v1PrivateApis.HandleFunc("GET /agents/{agent_type}", agentsHandler.Get)

	v1PrivateApis.HandleFunc("POST /ai/chat", aiHandler.Chat)
	v1PrivateApis.HandleFunc("GET /ai/models", aiHandler.ListModels)

	v1PrivateApis.HandleFunc("POST /user/logout", userHandler.Logout)
	v1PrivateApis.HandleFunc("GET /user/self", userHandler.Self)

	v1PrivateApis.HandleFunc("GET /admin/tasks", adminHandler.ListTasks)
	v1PrivateApis.HandleFunc("POST /admin/tasks/{task_name}/run", adminHandler.RunTask)
	v1PrivateApis.HandleFunc("GET /admin/tables", adminHandler.ListTables)
	v1PrivateApis.HandleFunc("GET /admin/tables/{table_name}", adminHandler.GetTableInfo)

	logging := Logging(s.Log)
	auth := AuthMiddleware(s.DB, s.Log)

	mux.Handle("POST /api/v1/user/login", logging(http.HandlerFunc(userHandler.Login)))
	mux.Handle("POST /api/v1/user/register", logging(http.HandlerFunc(userHandler.Register)))
	mux.HandleFunc("GET /_health", s.health)
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", CreateStack(logging, auth)(v1PrivateApis)))
	mux.HandleFunc("GET /reference", reference.ScalarReference)
	mux.HandleFunc("GET /reference/openapi.json", reference.OpenAPI)
	mux.HandleFunc("GET /reference/version", reference.VersionHandler)

	websocketMux.HandleFunc("/connect", s.Events.Connect)
	mux.Handle("/ws/", http.StripPrefix("/ws", auth(websocketMux)))

	return mux
}

func (s *BackendServer) health(w http.ResponseWriter, r *http.Request) {
	status := s.Status()
	if status != StatusRunning {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Server is not running, status: " + status))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Server is running"))
}
