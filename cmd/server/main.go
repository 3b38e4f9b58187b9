package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gym-manager/internal/api"
	"github.com/gym-manager/internal/auth"
	"github.com/gym-manager/internal/config"
	"github.com/gym-manager/internal/middleware"
	"github.com/gym-manager/internal/scheduler"
	"github.com/gym-manager/internal/storage"

	_ "github.com/gym-manager/docs" // swagger docs
)

// @title Gym Manager API
// @version 1.0
// @description Fitness-club management backend: accounts and roles, memberships, class scheduling, reservations, room/equipment inventory, coupons, trainer notes and notifications.

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your token with the `Bearer ` prefix, e.g. "Bearer eyJhbGci..."

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	log.Println("Connecting to database...")
	db, err := storage.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	log.Println("Running migrations...")
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := storage.NewUserRepository(db)
	membershipRepo := storage.NewMembershipRepository(db)
	classRepo := storage.NewClassRepository(db)
	reservationRepo := storage.NewReservationRepository(db)
	inventoryRepo := storage.NewInventoryRepository(db)
	couponRepo := storage.NewCouponRepository(db)
	noteRepo := storage.NewNoteRepository(db)
	notificationRepo := storage.NewNotificationRepository(db)

	// Create bootstrap admin if configured
	ctx := context.Background()
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		admin, err := userRepo.CreateAdmin(ctx, adminEmail, adminPassword, "Admin")
		if err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Printf("Admin user ready: %s", admin.Email)
		}
	}

	// Initialize the authentication core
	codec := auth.NewTokenCodec(cfg.Token.Secret)
	verifier := auth.NewVerifier(userRepo, codec, cfg.Token.TTL, nil)
	authMiddleware := middleware.NewAuthMiddleware(codec, userRepo, nil)

	// Initialize the reminder scheduler
	reminder := scheduler.NewReminder(cfg.Reminder, classRepo, reservationRepo, membershipRepo, notificationRepo, nil)
	log.Println("Starting reminder scheduler...")
	if err := reminder.Start(ctx); err != nil {
		log.Fatalf("Failed to start reminder scheduler: %v", err)
	}

	// Initialize API handlers
	handler := api.NewHandler(
		verifier,
		userRepo,
		membershipRepo,
		classRepo,
		reservationRepo,
		inventoryRepo,
		couponRepo,
		noteRepo,
		notificationRepo,
		reminder,
	)

	// Setup router
	router := api.NewRouter(handler, authMiddleware)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	// Stop reminder scheduler
	reminder.Stop()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
