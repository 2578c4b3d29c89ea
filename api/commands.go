package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rogerio-castellano/epidemic-stats/internal/config"
	"github.com/rogerio-castellano/epidemic-stats/internal/db"
	"github.com/rogerio-castellano/epidemic-stats/internal/http/handlers"
	rl "github.com/rogerio-castellano/epidemic-stats/internal/http/rate_limiter"
	"github.com/rogerio-castellano/epidemic-stats/internal/http/router"
	"github.com/rogerio-castellano/epidemic-stats/internal/logging"
	"github.com/rogerio-castellano/epidemic-stats/internal/redissvc"
	"github.com/rogerio-castellano/epidemic-stats/internal/repo"
	"github.com/rogerio-castellano/epidemic-stats/internal/stats"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	var configFile string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the statistics HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configFile)
		},
	}

	root := &cobra.Command{
		Use:          "epistats",
		Short:        "Epidemic statistics reporting API",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (yaml, json or toml)")

	root.AddCommand(serveCmd)
	root.AddCommand(&cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard snapshot as JSON and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printDashboard(cmd.Context(), configFile, cmd.OutOrStdout())
		},
	})

	return root
}

// app holds the wired dependencies shared by the commands.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	service *stats.Service
	cache   *redissvc.RedisService
	closers []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func bootstrap(ctx context.Context, configFile string) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.PrettyLogs)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	database, err := db.Connect(ctx, db.Options{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, database.Close)

	statsRepo := repo.NewPostgresStatsRepository(database, cfg.QueryTimeout)
	a.service = stats.NewService(statsRepo, logger.Named("stats"))

	if cfg.CacheEnabled() {
		rdb, err := redissvc.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		a.cache = redissvc.NewRedisService(rdb, cfg.CacheTTL)
		logger.Info("response cache enabled", zap.String("redis", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	return a, nil
}

func serve(ctx context.Context, configFile string) error {
	a, err := bootstrap(ctx, configFile)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := handlers.Options{StrictFilters: a.cfg.StrictFilters}
	if a.cache != nil {
		opts.Cache = a.cache
	}

	limiter := rl.New(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst)
	go limiter.StartVisitorCleanupLoop(ctx, time.Minute, 5*time.Minute)

	srv := &http.Server{
		Addr: a.cfg.Addr,
		Handler: router.NewRouter(router.Dependencies{
			Server:         handlers.NewServer(a.service, a.logger.Named("http"), opts),
			Limiter:        limiter,
			Logger:         a.logger.Named("access"),
			RequestTimeout: a.cfg.RequestTimeout,
		}),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		a.logger.Info("server running", zap.String("addr", a.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func printDashboard(ctx context.Context, configFile string, out io.Writer) error {
	a, err := bootstrap(ctx, configFile)
	if err != nil {
		return err
	}
	defer a.Close()

	dashboard, err := a.service.GetDashboardStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch dashboard statistics: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dashboard)
}
