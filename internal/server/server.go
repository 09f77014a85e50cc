package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/SHoar/Wedding-AI/internal/adapter/utils"
	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/internal/handlers"
	"github.com/SHoar/Wedding-AI/internal/middleware"
	"github.com/SHoar/Wedding-AI/internal/worker"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	http   *http.Server
	logger *logger_i.Logger
}

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	Supervisor       *worker.Supervisor
	CloseServices    func()
}

// Routes wires the API behind the middleware chain. mcp may be nil.
func Routes(chain *middleware.Chain, h *handlers.Handler, mcp http.Handler) *chi.Mux {
	r := utils.NewRouter()

	r.Get("/health", chain.WrapPublic(h.Health))
	r.Post("/ask", chain.Wrap(h.Ask))
	r.Post("/ask_docs", chain.Wrap(h.AskDocs))
	if mcp != nil {
		r.Handle("/mcp", chain.Handler(mcp))
	}
	return r
}

func NewServer(listenAddr string, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:         listenAddr,
			Handler:      handler,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: logger_i.NewLogger("Server"),
	}
}

// CreateServer blocks until the server stops. A graceful shutdown returns nil.
func (s *Server) CreateServer() error {
	s.logger.Info("Server is listening at", "address", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Server crashed", "error", err, "addr", s.http.Addr)
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	return nil
}

func (s *Server) ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	s.logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		s.http.SetKeepAlivesEnabled(false)

		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error("Could not shutdown gracefully", "error", err)
		}

		if shutdownParams.Supervisor != nil {
			shutdownParams.Supervisor.Stop(config.ShutdownContextTimeout)
		}
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Gracefully shut down")
	case <-ctx.Done():
		s.logger.Error("Force shut down")
		os.Exit(1)
	}
}
