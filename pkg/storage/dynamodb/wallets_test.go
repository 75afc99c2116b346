package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Popsicool/wages-finance/pkg/models"
	"github.com/Popsicool/wages-finance/pkg/storage"
	"github.com/Popsicool/wages-finance/pkg/storage/dynamodb/mocks"
)

func testTables() Tables {
	return Tables{
		Wallets:     "wallets",
		Audit:       "audit",
		Savings:     "savings",
		Offerings:   "offerings",
		Positions:   "positions",
		Memberships: "memberships",
		Loans:       "loans",
	}
}

func TestCreateWallet(t *testing.T) {
	wallet := &models.Wallet{UserID: "test-user"}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil)

		store := New(mockClient, testTables())
		createdWallet, err := store.CreateWallet(context.Background(), wallet)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), createdWallet.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		store := New(mockClient, testTables())
		_, err := store.CreateWallet(context.Background(), wallet)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "wallet for user ID test-user already exists")
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		store := New(mockClient, testTables())
		_, err := store.CreateWallet(context.Background(), wallet)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create wallet in DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestGetWallet(t *testing.T) {
	userID := "test-user"
	wallet := &models.Wallet{UserID: userID, Balance: 100, Version: 1}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil)

		store := New(mockClient, testTables())
		got, err := store.GetWallet(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, wallet.Balance, got.Balance)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		store := New(mockClient, testTables())
		_, err := store.GetWallet(context.Background(), userID)

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("get failed"))

		store := New(mockClient, testTables())
		_, err := store.GetWallet(context.Background(), userID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get wallet from DynamoDB")
	})
}

func TestCreditWallet(t *testing.T) {
	wallet := &models.Wallet{UserID: "test-user", Balance: 100, Version: 1}

	t.Run("Success With Audit", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			return len(input.TransactItems) == 2
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		store := New(mockClient, testTables())
		activity := &models.AuditActivity{ID: "act-1", UserID: "test-user", Amount: 50, Direction: models.CREDIT}
		err := store.CreditWallet(context.Background(), wallet, 50, activity)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Non Positive Amount", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())
		err := store.CreditWallet(context.Background(), wallet, 0, nil)

		assert.Error(t, err)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})
}
