package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fkhayef/splitledger/docs"
	"github.com/fkhayef/splitledger/internal/config"
	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/internal/ledger"
	"github.com/fkhayef/splitledger/internal/user"
	"github.com/fkhayef/splitledger/pkg/logging"
	mw "github.com/fkhayef/splitledger/pkg/middleware"
)

// @title        Splitledger API
// @version      1.0
// @description  Expense splitting and balance netting between friends and groups.
// @BasePath     /api/v1
func main() {
	// Load .env file
	envErr := godotenv.Load()

	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)
	if envErr != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to database", "driver", cfg.DBDriver)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, userService)
	groupHandler := group.NewHandler(groupService)

	// Expense + balance feature
	expenseRepo := expense.NewRepository(db)
	ledgerCore := ledger.New(ledger.Options{
		Currency:  cfg.DefaultCurrency,
		Tolerance: cfg.SplitTolerance,
	})
	ledgerService := ledger.NewService(ledgerCore, expenseRepo, userService, cfg.PageSize).
		WithGroups(groupService)
	ledgerHandler := ledger.NewHandler(ledgerService)

	groupRoutes := groupHandler.Routes()
	ledgerHandler.RegisterGroupRoutes(groupRoutes)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(mw.UserContext)
	r.Use(mw.RequestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/users", userHandler.Routes())
		r.Mount("/expenses", ledgerHandler.ExpenseRoutes())
		r.Mount("/balances", ledgerHandler.BalanceRoutes())
		r.Mount("/groups", groupRoutes)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Server starting", "port", cfg.Port, "currency", cfg.DefaultCurrency, "tolerance", cfg.SplitTolerance)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
