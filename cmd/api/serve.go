package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/internal/handlers"
	"github.com/SHoar/Wedding-AI/internal/mcpserver"
	"github.com/SHoar/Wedding-AI/internal/middleware"
	"github.com/SHoar/Wedding-AI/internal/server"
	"github.com/SHoar/Wedding-AI/internal/worker"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"github.com/spf13/cobra"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API (GET /health, POST /ask, POST /ask_docs) together with
/metrics, /swagger and the /mcp tool endpoint.

The documentation index is warmed in the background; requests that arrive
before it is ready trigger the build themselves.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	logger := logger_i.NewLogger("main")

	serviceContext, cancelServices := context.WithCancel(cmd.Context())
	defer cancelServices()

	a, err := newApp(serviceContext, s)
	if err != nil {
		return err
	}

	supervisor := worker.NewSupervisor(serviceContext)
	if a.index != nil {
		supervisor.Go("index warm-up", a.index.Build, func(err error) {
			if err != nil {
				logger.Warn("Index warm-up failed, will retry on first question", "error", err)
			}
		})
	}

	chain := middleware.NewChain(middleware.Options{AuthToken: s.AuthToken, RateLimit: s.RateLimitEnabled})
	routes := server.Routes(chain, handlers.NewHandler(a.service, s.Model()), mcpserver.New(a.service).Handler())
	srv := server.NewServer(listenAddr, routes)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	go srv.ShutDownHandler(server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		Supervisor:       supervisor,
		CloseServices: func() {
			cancelServices()
			a.Close()
		},
	})
	serverErr := make(chan error, 1)
	go func() { serverErr <- srv.CreateServer() }()

	select {
	case <-stopExecution:
	case err := <-serverErr:
		if err != nil {
			signal.Stop(gracefulShutdown)
			supervisor.Stop(config.ShutdownContextTimeout)
			cancelServices()
			a.Close()
			return err
		}
		<-stopExecution
	}
	logger.Info("Server stopped")
	return nil
}
