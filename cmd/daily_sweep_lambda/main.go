package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/Popsicool/wages-finance/pkg/cooperative"
	"github.com/Popsicool/wages-finance/pkg/investment"
	"github.com/Popsicool/wages-finance/pkg/loan"
	"github.com/Popsicool/wages-finance/pkg/notify"
	"github.com/Popsicool/wages-finance/pkg/savings"
	dydbstore "github.com/Popsicool/wages-finance/pkg/storage/dynamodb"
	"github.com/Popsicool/wages-finance/pkg/sweep"
)

var sweeper *sweep.Sweeper

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	dbClient := dynamodb.NewFromConfig(cfg)
	store := dydbstore.New(dbClient, tablesFromEnv())

	var notifier notify.Notifier = notify.NoOpNotifier{}
	if queueURL := os.Getenv("SQS_NOTIFICATIONS_QUEUE_URL"); queueURL != "" {
		notifier = notify.NewSQSNotifier(sqs.NewFromConfig(cfg), queueURL)
	}

	savingsEngine := savings.NewEngine(store, store, notifier, logger)
	investmentEngine := investment.NewEngine(store, store, notifier, logger)
	cooperativeEngine := cooperative.NewEngine(store, store, notifier, logger)
	loanEngine := loan.NewEngine(store, store, store, notifier, logger)

	sweeper = sweep.NewSweeper(store, savingsEngine, investmentEngine, cooperativeEngine, loanEngine, logger)
}

// HandleRequest is triggered by an EventBridge Schedule once a day.
func HandleRequest(ctx context.Context) (sweep.Summary, error) {
	return sweeper.RunDailySweep(ctx, time.Now().UTC()), nil
}

func main() {
	lambda.Start(HandleRequest)
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
