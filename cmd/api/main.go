package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/quantumhr/portal-service/internal/api/http"
	"github.com/quantumhr/portal-service/internal/api/http/handlers"
	"github.com/quantumhr/portal-service/internal/auth"
	"github.com/quantumhr/portal-service/internal/config"
	"github.com/quantumhr/portal-service/internal/events"
	"github.com/quantumhr/portal-service/internal/observability"
	"github.com/quantumhr/portal-service/internal/persistence"
	"github.com/quantumhr/portal-service/internal/repository"
	"github.com/quantumhr/portal-service/internal/service"
	"github.com/quantumhr/portal-service/internal/session"
	"github.com/quantumhr/portal-service/internal/worker"
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

	blobs := persistence.NewSessionBlobStore(redis)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	permissionRepo := repository.NewPermissionRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	leaveRepo := repository.NewLeaveRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	payslipRepo := repository.NewPayslipRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:       userRepo,
		PermissionRepo: permissionRepo,
		Blobs:          blobs,
	}, logger)
	employeeService := service.NewEmployeeService(employeeRepo, departmentRepo)
	leaveService := service.NewLeaveService(leaveRepo, dispatcher, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo)
	payrollService := service.NewPayrollService(payslipRepo)
	userService := service.NewUserService(userRepo, permissionRepo, cfg.Auth.BcryptCost, logger)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), blobs, permissionRepo, cfg.Session, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, cfg.Session),
		Employees:      handlers.NewEmployeesHandler(employeeService),
		Organization:   handlers.NewOrganizationHandler(employeeService),
		Leave:          handlers.NewLeaveHandler(leaveService),
		Attendance:     handlers.NewAttendanceHandler(attendanceService),
		Payroll:        handlers.NewPayrollHandler(payrollService),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: authMiddleware,
		Guard:          session.NewGuard(),
		SessionCfg:     cfg.Session,
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
