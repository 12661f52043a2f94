package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/config"
	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/revocation"
	"taskflow-app/taskflow/routes"
	"taskflow-app/taskflow/services"
	"taskflow-app/taskflow/telemetry"
	"taskflow-app/taskflow/utils/dates"
)

const shutdownTimeout = 10 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if servePort != "" {
			cfg.AppPort = servePort
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (overrides APP_PORT)")
}

func serve(ctx context.Context, cfg config.Config) error {
	cfg.ConfigureLogging()
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	dates.SetLocation(loc)
	log.Infof("Calendar dates follow the %s time zone", dates.Location())

	db, err := database.Setup(cfg)
	if err != nil {
		log.Errorf("Failed to initialize database: %v", err)
		return err
	}
	defer db.Close()

	producer, err := broker.InitProducer(cfg)
	if err != nil {
		log.Warnf("Failed to connect to NATS at %s: %v", cfg.NatsURL, err)
		log.Warn("Continuing without domain events")
	}
	defer producer.Close()

	revoked, closeRevoked := revocationStore(ctx, cfg)
	defer closeRevoked()

	exporter, err := telemetry.NewExporter(ctx, cfg, os.Stdout)
	if err != nil {
		log.Errorf("Failed to set up trace export: %v", err)
		return err
	}
	if exporter == nil {
		log.Info("Trace export is disabled")
	}
	tp := telemetry.NewTracerProvider(exporter)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warnf("Failed to shut down tracer provider: %v", err)
		}
	}()

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours, cfg.MinPasswordLength, revoked, producer)
	services.AuthServiceInstance = authService

	userService := services.NewUserService(producer)
	services.UserServiceInstance = userService

	boardService := services.NewBoardService(producer)
	services.BoardServiceInstance = boardService

	listService := services.NewListService(producer)
	services.ListServiceInstance = listService

	taskService := services.NewTaskService(producer)
	services.TaskServiceInstance = taskService

	notificationService := services.NewNotificationService(producer)
	services.NotificationServiceInstance = notificationService

	reportService := services.NewReportService(boardService)
	services.ReportServiceInstance = reportService

	router := routes.NewRouter(db, routes.Services{
		Auth:         authService,
		User:         userService,
		Board:        boardService,
		List:         listService,
		Task:         taskService,
		Notification: notificationService,
		Report:       reportService,
	}, cfg.AllowedOrigins, log.StandardLogger())

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("API server is running on port %s", cfg.AppPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorf("Failed to start server: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
		return err
	}
	log.Info("Server stopped")
	return nil
}

// revocationStore connects to Redis for the logout denylist. Without Redis,
// logout cannot revoke tokens and they stay valid until they expire.
func revocationStore(ctx context.Context, cfg config.Config) (revocation.Store, func()) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR is empty, token revocation is disabled")
		return revocation.NoopStore, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warnf("Failed to connect to Redis at %s: %v, token revocation is disabled", cfg.RedisAddr, err)
		_ = client.Close()
		return revocation.NoopStore, func() {}
	}

	log.Infof("Token revocation store connected to %s", cfg.RedisAddr)
	return revocation.NewRedisStore(client), func() {
		if err := client.Close(); err != nil {
			log.Warnf("Failed to close Redis client: %v", err)
		}
	}
}
