// Package docs registers the OpenAPI document of the HTTP API with swag.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [{"url": "{{.BasePath}}"}],
    "components": {
        "securitySchemes": {
            "cookieAuth": {"type": "apiKey", "in": "cookie", "name": "session_id"}
        }
    },
    "security": [{"cookieAuth": []}],
    "paths": {
        "/user/register": {"post": {"tags": ["accounts"], "summary": "Register a user", "security": [], "responses": {"201": {"description": "User created"}, "400": {"description": "Invalid input"}}}},
        "/user/login": {"post": {"tags": ["accounts"], "summary": "Login a user", "security": [], "responses": {"200": {"description": "Login successful"}, "401": {"description": "Invalid email or password"}}}},
        "/user/logout": {"post": {"tags": ["accounts"], "summary": "Logout a user", "responses": {"200": {"description": "Logout successful"}}}},
        "/user/self": {"get": {"tags": ["accounts"], "summary": "Get current user", "responses": {"200": {"description": "Current user"}}}},
        "/sessions": {
            "get": {"tags": ["sessions"], "summary": "List sessions", "responses": {"200": {"description": "{sessions}"}}},
            "post": {"tags": ["sessions"], "summary": "Create a session", "responses": {"201": {"description": "{sessionId, agentType}"}, "400": {"description": "Invalid agent type"}}}
        },
        "/sessions/{session_id}": {
            "get": {"tags": ["sessions"], "summary": "Get a session", "responses": {"200": {"description": "{session, messages, integrations, automations}"}, "404": {"description": "Session not found"}}},
            "patch": {"tags": ["sessions"], "summary": "Update a session", "responses": {"200": {"description": "Session"}, "404": {"description": "Session not found"}}},
            "delete": {"tags": ["sessions"], "summary": "Delete a session", "responses": {"200": {"description": "{success: true}"}, "404": {"description": "Session not found"}}}
        },
        "/sessions/{session_id}/messages": {
            "get": {"tags": ["sessions"], "summary": "List messages", "responses": {"200": {"description": "{messages}"}}},
            "post": {"tags": ["sessions"], "summary": "Append a message", "responses": {"201": {"description": "{messageId}"}}}
        },
        "/sessions/{session_id}/extract-context": {"post": {"tags": ["sessions"], "summary": "Extract context", "responses": {"200": {"description": "{extracted, integrationsCreated}"}, "500": {"description": "Model provider not configured"}}}},
        "/sessions/{session_id}/generate-code": {"post": {"tags": ["sessions"], "summary": "Generate automations", "responses": {"200": {"description": "{generated, automationIds}"}, "500": {"description": "Code generation failed"}}}},
        "/sessions/{session_id}/automations": {"get": {"tags": ["sessions"], "summary": "List automations", "responses": {"200": {"description": "{automations}"}}}},
        "/sessions/{session_id}/automations/{automation_id}/download": {"get": {"tags": ["sessions"], "summary": "Download an automation", "responses": {"200": {"description": "Code attachment"}, "404": {"description": "Automation not found"}}}},
        "/sessions/{session_id}/integrations": {
            "get": {"tags": ["integrations"], "summary": "List integrations", "responses": {"200": {"description": "{integrations}"}}},
            "post": {"tags": ["integrations"], "summary": "Create integration", "responses": {"201": {"description": "Integration"}, "409": {"description": "Duplicate name"}}}
        },
        "/sessions/{session_id}/integrations/{integration_id}": {
            "patch": {"tags": ["integrations"], "summary": "Update integration", "responses": {"200": {"description": "Integration"}}},
            "delete": {"tags": ["integrations"], "summary": "Delete integration", "responses": {"200": {"description": "{success: true}"}}}
        },
        "/agents": {"get": {"tags": ["agents"], "summary": "List agents", "responses": {"200": {"description": "{agents}"}}}},
        "/agents/{agent_type}": {"get": {"tags": ["agents"], "summary": "Get an agent", "responses": {"200": {"description": "Agent template"}, "404": {"description": "Agent not found"}}}},
        "/ai/chat": {"post": {"tags": ["ai"], "summary": "Stream a chat completion", "responses": {"200": {"description": "text/plain stream"}}}},
        "/ai/models": {"get": {"tags": ["ai"], "summary": "List chat models", "responses": {"200": {"description": "{models}"}}}},
        "/admin/tasks": {"get": {"tags": ["admin"], "summary": "List scheduled tasks", "responses": {"200": {"description": "{tasks}"}, "403": {"description": "User is not an admin"}}}},
        "/admin/tasks/{task_name}/run": {"post": {"tags": ["admin"], "summary": "Run a scheduled task now", "responses": {"200": {"description": "Task ran"}, "403": {"description": "User is not an admin"}, "404": {"description": "Unknown task"}}}},
        "/admin/tables": {"get": {"tags": ["admin"], "summary": "List tables", "responses": {"200": {"description": "{tables}"}, "403": {"description": "User is not an admin"}}}},
        "/admin/tables/{table_name}": {"get": {"tags": ["admin"], "summary": "Describe a table", "responses": {"200": {"description": "Table fields"}, "403": {"description": "User is not an admin"}, "404": {"description": "Table not found"}}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Title:            "Automation Sessions API",
	Description:      "Conversational automation sessions: context extraction, code generation and downloads.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
