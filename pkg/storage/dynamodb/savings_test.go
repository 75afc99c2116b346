package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Popsicool/wages-finance/pkg/models"
	"github.com/Popsicool/wages-finance/pkg/storage"
	"github.com/Popsicool/wages-finance/pkg/storage/dynamodb/mocks"
)

func testPlan() *models.SavingsPlan {
	return &models.SavingsPlan{
		ID:      "plan-1",
		UserID:  "user-1",
		Amount:  1000,
		Active:  true,
		Version: 3,
	}
}

func TestUpdateSavingsPlan(t *testing.T) {
	wallet := &models.Wallet{UserID: "user-1", Balance: 5000, Version: 2}

	t.Run("Debit Commits Plan Wallet And Audit Together", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			return len(input.TransactItems) == 3 &&
				input.TransactItems[0].Put != nil &&
				input.TransactItems[1].Update != nil &&
				input.TransactItems[2].Put != nil
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		store := New(mockClient, testTables())
		plan := testPlan()
		activity := &models.AuditActivity{ID: "act-1", UserID: "user-1", Amount: 1000, Direction: models.DEBIT}
		err := store.UpdateSavingsPlan(context.Background(), plan, -1000, activity)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), plan.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Zero Delta Skips The Wallet", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			return len(input.TransactItems) == 1
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		store := New(mockClient, testTables())
		err := store.UpdateSavingsPlan(context.Background(), testPlan(), 0, nil)

		assert.NoError(t, err)
		mockClient.AssertNotCalled(t, "GetItem", mock.Anything, mock.Anything)
	})

	t.Run("Wallet Condition Failure Is Insufficient Funds", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil)
		cancellation := &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")},
				{Code: aws.String("ConditionalCheckFailed")},
			},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancellation)

		store := New(mockClient, testTables())
		plan := testPlan()
		err := store.UpdateSavingsPlan(context.Background(), plan, -1000, nil)

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		// The failed commit restores the version the caller saw.
		assert.Equal(t, int64(3), plan.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Entity Condition Failure Is A Version Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil)
		cancellation := &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
			},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancellation)

		store := New(mockClient, testTables())
		err := store.UpdateSavingsPlan(context.Background(), testPlan(), -1000, nil)

		assert.ErrorIs(t, err, storage.ErrVersionConflict)
	})

	t.Run("Credit Has No Balance Guard", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			update := input.TransactItems[1].Update
			return update != nil && *update.ConditionExpression == "version = :version"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		store := New(mockClient, testTables())
		err := store.UpdateSavingsPlan(context.Background(), testPlan(), 5025, nil)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})
}

func TestListContributablePlans(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Returns Matching Plans", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		planAV, _ := attributevalue.MarshalMap(testPlan())
		mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(input *dynamodb.ScanInput) bool {
			return *input.TableName == "savings"
		})).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{planAV}}, nil)

		store := New(mockClient, testTables())
		plans, err := store.ListContributablePlans(context.Background(), today)

		assert.NoError(t, err)
		assert.Len(t, plans, 1)
		assert.Equal(t, "plan-1", plans[0].ID)
		mockClient.AssertExpectations(t)
	})

	t.Run("Scan Failure", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Scan", mock.Anything, mock.Anything).Return(nil, errors.New("scan failed"))

		store := New(mockClient, testTables())
		_, err := store.ListContributablePlans(context.Background(), today)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to scan contributable savings plans")
	})
}

func TestGetSavingsPlan(t *testing.T) {
	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		store := New(mockClient, testTables())
		_, err := store.GetSavingsPlan(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
