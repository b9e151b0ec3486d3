package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"backend/agents"
	"backend/api/websocket"
	"backend/llm"
	"backend/scheduler"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	StatusStarting = "starting"
	StatusRunning  = "running"
	StatusStopping = "stopping"
)

type Options struct {
	Host            string
	Port            int64
	CookieDomain    string
	ExtractionModel string
	GenerationModel string
	ChatModel       string
	ShutdownTimeout time.Duration
}

// BackendServer owns the http.Server, the websocket hub and the scheduler
// and ties their lifetimes together in Run.
type BackendServer struct {
	Options   Options
	DB        *gorm.DB
	LLM       llm.Provider
	Agents    *agents.Registry
	Events    *websocket.WebSocketHandler
	Scheduler *scheduler.SchedulerService
	Log       *zap.Logger

	status  atomic.Value
	handler http.Handler
}

func NewBackendServer(opts Options, DB *gorm.DB, provider llm.Provider, log *zap.Logger) (*BackendServer, error) {
	registry, err := agents.Load()
	if err != nil {
		return nil, fmt.Errorf("load agent templates: %w", err)
	}
	defaults := llm.DefaultModels(provider.Name())
	if opts.ExtractionModel == "" {
		opts.ExtractionModel = defaults.Extraction
	}
	if opts.GenerationModel == "" {
		opts.GenerationModel = defaults.Generation
	}
	if opts.ChatModel == "" {
		opts.ChatModel = defaults.Chat
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &BackendServer{
		Options:   opts,
		DB:        DB,
		LLM:       provider,
		Agents:    registry,
		Events:    websocket.NewWebSocketHandler(log),
		Scheduler: scheduler.NewSchedulerService(DB, log),
		Log:       log,
	}
	if err := s.Scheduler.RegisterTasks(); err != nil {
		return nil, err
	}
	s.status.Store(StatusStarting)
	s.handler = s.routes()
	return s, nil
}

func (s *BackendServer) Handler() http.Handler { return s.handler }

func (s *BackendServer) Status() string { return s.status.Load().(string) }

func (s *BackendServer) Address() string {
	return fmt.Sprintf("%s:%d", s.Options.Host, s.Options.Port)
}

// Run binds the configured address and serves on it. See Serve.
func (s *BackendServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Address())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Address(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled or the listener fails, then shuts
// the http server and the scheduler down. ln is already bound, so health
// reports running only once connections can be accepted.
func (s *BackendServer) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	s.Log.Info("starting server", zap.String("addr", ln.Addr().String()), zap.String("llm", s.LLM.Name()))
	s.status.Store(StatusRunning)
	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		s.Scheduler.Start()
		<-gctx.Done()
		s.Scheduler.Stop()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.status.Store(StatusStopping)
		s.Log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Options.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
