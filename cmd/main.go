package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/dokuhost/admin-service/docs"
	authMiddleware "github.com/dokuhost/admin-service/internal/auth/middleware"
	"github.com/dokuhost/admin-service/internal/auth/service"
	"github.com/dokuhost/admin-service/internal/config"
	"github.com/dokuhost/admin-service/internal/handlers"
	"github.com/dokuhost/admin-service/internal/logger"
	"github.com/dokuhost/admin-service/internal/middlewares"
	"github.com/dokuhost/admin-service/internal/repositories"
	"github.com/dokuhost/admin-service/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title DokuHost Admin API
// @version 1.0
// @description API for user administration, student records and support tickets

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting DokuHost Admin Service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := service.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	userTokenRepo := repositories.NewUserTokenRepository(db)
	userLogRepo := repositories.NewUserLogRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	majorRepo := repositories.NewMajorRepository(db)
	studentRepo := repositories.NewStudentRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, userTokenRepo, tokenGenerator, logger.Logger)
	userService := services.NewUserService(userRepo, userLogRepo, userTokenRepo, logger.Logger)
	roleService := services.NewRoleService(roleRepo, logger.Logger)
	majorService := services.NewMajorService(majorRepo, logger.Logger)
	studentService := services.NewStudentService(studentRepo, logger.Logger)
	ticketService := services.NewTicketService(ticketRepo, userRepo, logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, logger.Logger)
	userHandler := handlers.NewUserHandler(userService, logger.Logger)
	roleHandler := handlers.NewRoleHandler(roleService, logger.Logger)
	majorHandler := handlers.NewMajorHandler(majorService, logger.Logger)
	studentHandler := handlers.NewStudentHandler(studentService, logger.Logger)
	ticketHandler := handlers.NewTicketHandler(ticketService, logger.Logger)

	// Initialize auth middleware
	requireAuth := authMiddleware.AuthMiddleware(tokenGenerator)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public auth routes
			authHandler.RegisterRoutes(r)
			// Authenticated user administration routes
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				userHandler.RegisterRoutes(r)
			})
		})

		r.Route("/roles", func(r chi.Router) {
			r.Use(requireAuth)
			roleHandler.RegisterRoutes(r)
		})

		r.Route("/majors", func(r chi.Router) {
			r.Use(requireAuth)
			majorHandler.RegisterRoutes(r)
		})

		r.Route("/students", func(r chi.Router) {
			r.Use(requireAuth)
			studentHandler.RegisterRoutes(r)
		})

		r.Route("/tickets", func(r chi.Router) {
			r.Use(requireAuth)
			ticketHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "admin_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Try the migrations folder relative to the binary first
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
