package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/studio-scheduler/internal/api/http"
	"github.com/spec-kit/studio-scheduler/internal/api/http/handlers"
	"github.com/spec-kit/studio-scheduler/internal/auth"
	"github.com/spec-kit/studio-scheduler/internal/config"
	"github.com/spec-kit/studio-scheduler/internal/events"
	"github.com/spec-kit/studio-scheduler/internal/observability"
	"github.com/spec-kit/studio-scheduler/internal/persistence"
	"github.com/spec-kit/studio-scheduler/internal/repository"
	"github.com/spec-kit/studio-scheduler/internal/service"
	"github.com/spec-kit/studio-scheduler/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	eligibilityService := service.NewEligibilityService(service.EligibilityDependencies{
		ServiceRepo:    serviceRepo,
		StaffRepo:      staffRepo,
		AssignmentRepo: assignmentRepo,
		Dispatcher:     dispatcher,
	})
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: bookingRepo,
		Dispatcher:  dispatcher,
		Scheduling:  cfg.Scheduling,
	})
	routingService := service.NewRoutingService(serviceRepo, assignmentRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	tenantMiddleware := auth.NewTenantMiddleware(tokenManager, staffRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	assignmentsHandler := handlers.NewAssignmentsHandler(eligibilityService)
	bookingsHandler := handlers.NewBookingsHandler(bookingService, routingService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:           healthHandler,
		Assignments:      assignmentsHandler,
		Bookings:         bookingsHandler,
		TenantMiddleware: tenantMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
