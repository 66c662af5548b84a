package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	database "github.com/fintrackapp/fintrack/db"
	"github.com/fintrackapp/fintrack/internal/finance/application"
	"github.com/fintrackapp/fintrack/internal/finance/infrastructure"
	"github.com/fintrackapp/fintrack/internal/finance/interfaces"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

// userContextMiddleware trusts the X-User-ID header set by the upstream
// gateway after it has authenticated the request.
func userContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if _, err := uuid.Parse(userID); err != nil {
			respondError(w, http.StatusUnauthorized, "Missing or invalid user identity")
			return
		}
		ctx := context.WithValue(r.Context(), "userID", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router             *http.ServeMux
	dbService          *database.DBService
	accountHandler     *interfaces.AccountHandler
	categoryHandler    *interfaces.CategoryHandler
	transactionHandler *interfaces.TransactionHandler
}

func NewServer(dbService *database.DBService, accountHandler *interfaces.AccountHandler, categoryHandler *interfaces.CategoryHandler, transactionHandler *interfaces.TransactionHandler) *Server {
	return &Server{
		router:             http.NewServeMux(),
		dbService:          dbService,
		accountHandler:     accountHandler,
		categoryHandler:    categoryHandler,
		transactionHandler: transactionHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	health := s.dbService.Health()
	if health["status"] != "up" {
		respondJSON(w, http.StatusServiceUnavailable, health)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Ledger routes (user identity from the gateway header)
	ledgerRoutes := http.NewServeMux()

	// ACCOUNTS API
	ledgerRoutes.Handle("POST /api/accounts", http.HandlerFunc(s.accountHandler.CreateAccount))
	ledgerRoutes.Handle("GET /api/accounts", http.HandlerFunc(s.accountHandler.GetUserAccounts))
	ledgerRoutes.Handle("GET /api/accounts/{accountID}", http.HandlerFunc(s.accountHandler.GetAccount))
	ledgerRoutes.Handle("PUT /api/accounts/{accountID}", http.HandlerFunc(s.accountHandler.UpdateAccount))
	ledgerRoutes.Handle("DELETE /api/accounts/{accountID}", http.HandlerFunc(s.accountHandler.DeleteAccount))

	// CATEGORIES API
	ledgerRoutes.Handle("POST /api/categories", http.HandlerFunc(s.categoryHandler.CreateCategory))
	ledgerRoutes.Handle("GET /api/categories", http.HandlerFunc(s.categoryHandler.GetUserCategories))
	ledgerRoutes.Handle("POST /api/categories/defaults", http.HandlerFunc(s.categoryHandler.CreateDefaultCategories))
	ledgerRoutes.Handle("PUT /api/categories/{categoryID}", http.HandlerFunc(s.categoryHandler.UpdateCategory))
	ledgerRoutes.Handle("DELETE /api/categories/{categoryID}", http.HandlerFunc(s.categoryHandler.DeleteCategory))

	// TRANSACTIONS API
	ledgerRoutes.Handle("POST /api/transactions", http.HandlerFunc(s.transactionHandler.CreateTransaction))
	ledgerRoutes.Handle("GET /api/transactions", http.HandlerFunc(s.transactionHandler.GetUserTransactions))
	ledgerRoutes.Handle("GET /api/transactions/summary", http.HandlerFunc(s.transactionHandler.GetTransactionSummary))
	ledgerRoutes.Handle("GET /api/transactions/{transactionID}", http.HandlerFunc(s.transactionHandler.GetTransaction))
	ledgerRoutes.Handle("PUT /api/transactions/{transactionID}", http.HandlerFunc(s.transactionHandler.UpdateTransaction))
	ledgerRoutes.Handle("DELETE /api/transactions/{transactionID}", http.HandlerFunc(s.transactionHandler.DeleteTransaction))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("GET /api/ready", publicRoutes)
	mainRouter.Handle("/api/", userContextMiddleware(ledgerRoutes))
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService(os.Getenv("DB_CONNECTION_STRING"))
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "db/migrations"
	}
	if err := database.RunMigrationsWithDB(dbService.DB, migrationsPath); err != nil {
		log.Fatalf("Could not run migrations: %v", err)
	}

	accountRepo := infrastructure.NewAccountRepository(dbService.DB)
	accountService := application.NewAccountService(accountRepo)
	accountHandler := interfaces.NewAccountHandler(accountService, respondJSON, respondError)

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	categoryService := application.NewCategoryService(categoryRepo)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	transactionService := application.NewTransactionService(transactionRepo, accountService, categoryService)
	transactionHandler := interfaces.NewTransactionHandler(transactionService, respondJSON, respondError)

	reconciliationRepo := infrastructure.NewReconciliationRepository(dbService.DB)
	reconciliationService := application.NewReconciliationService(reconciliationRepo)

	server := NewServer(dbService, accountHandler, categoryHandler, transactionHandler)
	server.RegisterRoutes()

	if err := StartBalanceAuditScheduler(reconciliationService); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	handler := loggingMiddleware(server.router)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Server starting on %s...", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func StartBalanceAuditScheduler(reconciliationService *application.ReconciliationService) error {
	schedule := os.Getenv("BALANCE_AUDIT_SCHEDULE")
	if schedule == "" {
		schedule = "@every 1h"
	}
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := reconciliationService.AuditBalances(context.Background()); err != nil {
			log.Printf("Error auditing account balances: %v", err)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
