package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"backend/api"
	"backend/api/integrations"
	"backend/api/sessions"
	"backend/database"
	"backend/extractor"
	"backend/generator"
)

// AutoExtractEvery is how many user messages pass between automatic
// extraction runs in SendMessageAutoExtract.
const AutoExtractEvery = 3

// APIError is returned for every non 2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	host       string
	sessionId  string
	httpClient *http.Client
}

func NewClient(host string) *Client {
	return &Client{
		host:       strings.TrimSuffix(host, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (c *Client) SetSessionId(sessionId string) { c.sessionId = sessionId }

func (c *Client) GetSessionId() string { return c.sessionId }

func (c *Client) newRequest(ctx context.Context, method string, path string, in interface{}) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return nil, err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.host+"/api/v1"+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Origin", c.host)
	if c.sessionId != "" {
		req.AddCookie(&http.Cookie{Name: api.SessionCookieName, Value: c.sessionId})
	}
	return req, nil
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method string, path string, in interface{}, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, in)
	if err != nil {
		return err
	}
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, name string, email string, password string) error {
	return c.do(ctx, http.MethodPost, "/user/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
}

// Login stores the session cookie on the client and returns it.
func (c *Client) Login(ctx context.Context, email string, password string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/user/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	resp, err := c.send(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == api.SessionCookieName && cookie.Value != "" {
			c.sessionId = cookie.Value
			return cookie.Value, nil
		}
	}
	return "", errors.New("no session id found")
}

func (c *Client) Self(ctx context.Context) (*database.User, error) {
	var user database.User
	if err := c.do(ctx, http.MethodGet, "/user/self", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListSessions(ctx context.Context) ([]api.SessionView, error) {
	var out sessions.ListSessionsResponse
	if err := c.do(ctx, http.MethodGet, "/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

func (c *Client) CreateSession(ctx context.Context, req sessions.CreateSessionRequest) (sessions.CreateSessionResponse, error) {
	var out sessions.CreateSessionResponse
	err := c.do(ctx, http.MethodPost, "/sessions", req, &out)
	return out, err
}

func (c *Client) GetSession(ctx context.Context, sessionId string) (sessions.SessionDetailResponse, error) {
	var out sessions.SessionDetailResponse
	err := c.do(ctx, http.MethodGet, "/sessions/"+sessionId, nil, &out)
	return out, err
}

func (c *Client) DeleteSession(ctx context.Context, sessionId string) error {
	return c.do(ctx, http.MethodDelete, "/sessions/"+sessionId, nil, nil)
}

func (c *Client) ListMessages(ctx context.Context, sessionId string) ([]api.MessageView, error) {
	var out sessions.ListMessagesResponse
	if err := c.do(ctx, http.MethodGet, "/sessions/"+sessionId+"/messages", nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *Client) SendMessage(ctx context.Context, sessionId string, role database.Role, content string) (string, error) {
	var out sessions.AppendMessageResponse
	err := c.do(ctx, http.MethodPost, "/sessions/"+sessionId+"/messages", sessions.AppendMessageRequest{
		Role:    role,
		Content: content,
	}, &out)
	return out.MessageID, err
}

// SendMessageAutoExtract appends a user message and runs extraction whenever
// the session's user message count reaches a multiple of AutoExtractEvery.
// The returned result is nil when no extraction ran.
func (c *Client) SendMessageAutoExtract(ctx context.Context, sessionId string, content string) (string, *extractor.Result, error) {
	messageId, err := c.SendMessage(ctx, sessionId, database.RoleUser, content)
	if err != nil {
		return "", nil, err
	}

	messages, err := c.ListMessages(ctx, sessionId)
	if err != nil {
		return messageId, nil, err
	}
	userMessages := 0
	for _, m := range messages {
		if m.Role == database.RoleUser {
			userMessages++
		}
	}
	if userMessages == 0 || userMessages%AutoExtractEvery != 0 {
		return messageId, nil, nil
	}

	result, err := c.ExtractContext(ctx, sessionId)
	if err != nil {
		return messageId, nil, err
	}
	return messageId, &result, nil
}

func (c *Client) ExtractContext(ctx context.Context, sessionId string) (extractor.Result, error) {
	var out extractor.Result
	err := c.do(ctx, http.MethodPost, "/sessions/"+sessionId+"/extract-context", nil, &out)
	return out, err
}

func (c *Client) GenerateCode(ctx context.Context, sessionId string, language database.Language) (generator.Result, error) {
	var out generator.Result
	err := c.do(ctx, http.MethodPost, "/sessions/"+sessionId+"/generate-code", sessions.GenerateCodeRequest{Language: language}, &out)
	return out, err
}

func (c *Client) ListAutomations(ctx context.Context, sessionId string) ([]api.AutomationView, error) {
	var out sessions.ListAutomationsResponse
	if err := c.do(ctx, http.MethodGet, "/sessions/"+sessionId+"/automations", nil, &out); err != nil {
		return nil, err
	}
	return out.Automations, nil
}

func (c *Client) ListIntegrations(ctx context.Context, sessionId string) ([]api.IntegrationView, error) {
	var out integrations.ListIntegrationsResponse
	if err := c.do(ctx, http.MethodGet, "/sessions/"+sessionId+"/integrations", nil, &out); err != nil {
		return nil, err
	}
	return out.Integrations, nil
}

func (c *Client) CreateIntegration(ctx context.Context, sessionId string, req integrations.CreateIntegrationRequest) (api.IntegrationView, error) {
	var out api.IntegrationView
	err := c.do(ctx, http.MethodPost, "/sessions/"+sessionId+"/integrations", req, &out)
	return out, err
}

func (c *Client) UpdateIntegration(ctx context.Context, sessionId string, integrationId string, req integrations.UpdateIntegrationRequest) (api.IntegrationView, error) {
	var out api.IntegrationView
	err := c.do(ctx, http.MethodPatch, "/sessions/"+sessionId+"/integrations/"+integrationId, req, &out)
	return out, err
}

func (c *Client) DeleteIntegration(ctx context.Context, sessionId string, integrationId string) error {
	return c.do(ctx, http.MethodDelete, "/sessions/"+sessionId+"/integrations/"+integrationId, nil, nil)
}

// DownloadAutomation returns the attachment filename and the code.
func (c *Client) DownloadAutomation(ctx context.Context, sessionId string, automationId string) (string, []byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/sessions/"+sessionId+"/automations/"+automationId+"/download", nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := c.send(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	code, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	if err != nil {
		return "", nil, fmt.Errorf("parse content disposition: %w", err)
	}
	return params["filename"], code, nil
}
