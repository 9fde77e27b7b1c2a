package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/crewmate/internal/config"
	"github.com/dropDatabas3/crewmate/internal/http/server"
	"github.com/dropDatabas3/crewmate/internal/observability/logger"
)

func main() {
	var (
		cfgPath  string
		logLevel string
	)

	root := &cobra.Command{
		Use:   "crewmate",
		Short: "Backend del asistente de onboarding para Slack",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfgPath, logLevel)
		},
	}

	serveCmd.Flags().StringVar(&cfgPath, "config", envOr("CONFIG_PATH", ""), "Ruta al config.yaml (opcional)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "Nivel de log: debug|info|warn|error")

	root.AddCommand(serveCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func runServe(cfgPath, logLevel string) error {
	// .env es opcional; en deploys reales las vars vienen del entorno.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       logLevel,
		ServiceName: "crewmate",
	})
	defer func() { _ = logger.Sync() }()

	log := logger.Named("main")

	if missing := cfg.MissingRequired(); len(missing) > 0 {
		// El server arranca igual: /api/auth-url reporta las vars faltantes.
		for _, name := range missing {
			log.Warn("missing required env var", logger.String("var", name))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, cleanup, err := server.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("wiring: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn("cleanup error", logger.Err(err))
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
