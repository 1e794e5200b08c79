package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gamerental/config"
	"gamerental/db"
	"gamerental/handlers"
	"gamerental/monitoring"
	"gamerental/ratelimit"
	"gamerental/repository"
	"gamerental/router"
	"gamerental/service"
	"gamerental/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, !skipMigrate)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not migrate the schema on startup")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, migrate bool) error {
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.Open(dbOptions(cfg))
	if err != nil {
		return err
	}
	defer db.Close(conn)
	if migrate {
		if err := db.Migrate(conn); err != nil {
			return err
		}
	}

	opts := router.Options{AllowedOrigins: cfg.AllowedOrigins()}
	if cfg.RedisURL != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		opts.Limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow)
		utils.LogInfo("Rate limiting enabled", map[string]interface{}{
			"requests": cfg.RateLimitRequests,
			"window":   cfg.RateLimitWindow.String(),
		})
	}

	monitoring.InitMetrics()
	engine := router.New(opts, newHandler(conn))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.LogInfo("Listening", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.Log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newHandler wires repositories into services into the HTTP handler.
func newHandler(conn *gorm.DB) *handlers.Handler {
	categoryRepo := repository.NewCategoryRepository(conn)
	gameRepo := repository.NewGameRepository(conn)
	customerRepo := repository.NewCustomerRepository(conn)
	rentalRepo := repository.NewRentalRepository(conn)

	return handlers.New(
		service.NewCategoryService(categoryRepo),
		service.NewGameService(gameRepo, categoryRepo),
		service.NewCustomerService(customerRepo),
		service.NewRentalService(rentalRepo, nil),
		repository.NewStatsRepository(conn),
	)
}
