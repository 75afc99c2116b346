package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/Popsicool/wages-finance/pkg/cooperative"
	"github.com/Popsicool/wages-finance/pkg/gateway"
	"github.com/Popsicool/wages-finance/pkg/handlers"
	"github.com/Popsicool/wages-finance/pkg/investment"
	"github.com/Popsicool/wages-finance/pkg/loan"
	"github.com/Popsicool/wages-finance/pkg/middleware"
	"github.com/Popsicool/wages-finance/pkg/notify"
	"github.com/Popsicool/wages-finance/pkg/savings"
	dydbstore "github.com/Popsicool/wages-finance/pkg/storage/dynamodb"
	"github.com/Popsicool/wages-finance/pkg/sweep"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	tables := tablesFromEnv()
	store := dydbstore.New(dbClient, tables)

	// SQS Client and notification sink
	var notifier notify.Notifier = notify.NoOpNotifier{}
	if queueURL := os.Getenv("SQS_NOTIFICATIONS_QUEUE_URL"); queueURL != "" {
		notifier = notify.NewSQSNotifier(sqs.NewFromConfig(cfg), queueURL)
	} else {
		log.Println("SQS_NOTIFICATIONS_QUEUE_URL not set, notifications disabled")
	}

	// Engines and the sweeper over them
	savingsEngine := savings.NewEngine(store, store, notifier, logger)
	investmentEngine := investment.NewEngine(store, store, notifier, logger)
	cooperativeEngine := cooperative.NewEngine(store, store, notifier, logger)
	loanEngine := loan.NewEngine(store, store, store, notifier, logger)
	sweeper := sweep.NewSweeper(store, savingsEngine, investmentEngine, cooperativeEngine, loanEngine, logger)

	banks, err := loadBanks(os.Getenv("BANKS_FILE"))
	if err != nil {
		log.Fatalf("unable to load bank registry, %v", err)
	}

	// Create our handler
	handler := handlers.NewApiHandler(store, savingsEngine, investmentEngine, cooperativeEngine, loanEngine, sweeper, banks)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(chimiddleware.Recoverer)

	handler.Routes(router)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func tablesFromEnv() dydbstore.Tables {
	tables := dydbstore.Tables{
		Wallets:     os.Getenv("DYNAMODB_WALLETS_TABLE_NAME"),
		Audit:       os.Getenv("DYNAMODB_AUDIT_TABLE_NAME"),
		Savings:     os.Getenv("DYNAMODB_SAVINGS_TABLE_NAME"),
		Offerings:   os.Getenv("DYNAMODB_OFFERINGS_TABLE_NAME"),
		Positions:   os.Getenv("DYNAMODB_POSITIONS_TABLE_NAME"),
		Memberships: os.Getenv("DYNAMODB_MEMBERSHIPS_TABLE_NAME"),
		Loans:       os.Getenv("DYNAMODB_LOANS_TABLE_NAME"),
	}
	if tables.Wallets == "" || tables.Audit == "" || tables.Savings == "" ||
		tables.Offerings == "" || tables.Positions == "" || tables.Memberships == "" || tables.Loans == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}
	return tables
}

// loadBanks reads the supported bank list from a JSON file. An empty path
// yields an empty registry.
func loadBanks(path string) (*gateway.Registry, error) {
	if path == "" {
		return gateway.NewRegistry(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var banks []gateway.Bank
	if err := json.Unmarshal(data, &banks); err != nil {
		return nil, err
	}
	return gateway.NewRegistry(banks), nil
}
