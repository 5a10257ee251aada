package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/brewlane/cafe-backoffice-go/internal/config"
	appHTTP "github.com/brewlane/cafe-backoffice-go/internal/handler/http"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/cron"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/database"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/jwt"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/oauth"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/sse"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/storage"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/tracker"
	"github.com/brewlane/cafe-backoffice-go/internal/repository/postgresql"
	attendanceService "github.com/brewlane/cafe-backoffice-go/internal/service/attendance"
	serviceAuth "github.com/brewlane/cafe-backoffice-go/internal/service/auth"
	dashboardService "github.com/brewlane/cafe-backoffice-go/internal/service/dashboard"
	employeeService "github.com/brewlane/cafe-backoffice-go/internal/service/employee"
	"github.com/brewlane/cafe-backoffice-go/internal/service/file"
	ingredientService "github.com/brewlane/cafe-backoffice-go/internal/service/ingredient"
	orderService "github.com/brewlane/cafe-backoffice-go/internal/service/order"
	productService "github.com/brewlane/cafe-backoffice-go/internal/service/product"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	productRepo := postgresql.NewProductRepository(db)
	ingredientRepo := postgresql.NewIngredientRepository(db)
	orderRepo := postgresql.NewOrderRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	trackers := tracker.NewManager()
	hub := sse.NewHub()

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, trackers, hub)
	authSvc := serviceAuth.NewAuthService(db, employeeRepo, JWTService, jwtRepo, googleService, attendanceSvc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileService)
	productSvc := productService.NewProductService(productRepo, fileService)
	ingredientSvc := ingredientService.NewIngredientService(ingredientRepo)
	orderSvc := orderService.NewOrderService(orderRepo, productRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	productHandler := appHTTP.NewProductHandler(productSvc)
	ingredientHandler := appHTTP.NewIngredientHandler(ingredientSvc)
	orderHandler := appHTTP.NewOrderHandler(orderSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	eventsHandler := appHTTP.NewEventsHandler(JWTService, hub)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, time.Duration(cfg.Attendance.StaleSessionCutoffHours)*time.Hour)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			FrontendURL: cfg.App.FrontendURL,
			Env:         cfg.App.Env,
			UploadsDir:  cfg.Storage.BasePath,
		},
		JWTService,
		authHandler,
		attendanceHandler,
		employeeHandler,
		productHandler,
		ingredientHandler,
		orderHandler,
		dashboardHandler,
		eventsHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	scheduler.Stop()
	trackers.StopAll()
}
