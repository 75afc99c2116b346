package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Popsicool/wages-finance/pkg/models"
	"github.com/Popsicool/wages-finance/pkg/storage"
)

const loansByStatusGSI = "status-date_requested-index"

// GetLoan retrieves a loan by its ID.
func (s *Store) GetLoan(ctx context.Context, loanID string) (*models.Loan, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": loanID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal loan ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Loans),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get loan from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("loan %s: %w", loanID, storage.ErrNotFound)
	}

	var loan models.Loan
	if err := attributevalue.UnmarshalMap(result.Item, &loan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal loan: %w", err)
	}

	return &loan, nil
}

// CreateLoan stores a new loan request.
func (s *Store) CreateLoan(ctx context.Context, loan *models.Loan) (*models.Loan, error) {
	loan.Version = 1
	loan.DateRequested = time.Now()

	loanAV, err := attributevalue.MarshalMap(loan)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal loan: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Loans),
		Item:                loanAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("loan %s already exists", loan.ID)
		}
		return nil, fmt.Errorf("failed to create loan in DynamoDB: %w", err)
	}

	return loan, nil
}

// ListLoansByStatus retrieves every loan in any of the given statuses,
// one GSI query per status.
func (s *Store) ListLoansByStatus(ctx context.Context, statuses ...models.LoanStatus) ([]models.Loan, error) {
	var loans []models.Loan
	for _, status := range statuses {
		result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.Tables.Loans),
			IndexName:              aws.String(loansByStatusGSI),
			KeyConditionExpression: aws.String("#status = :status"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: string(status)},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query loans with status %s: %w", status, err)
		}

		var page []models.Loan
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal loans: %w", err)
		}
		loans = append(loans, page...)
	}

	return loans, nil
}

// UpdateLoan commits a loan transition, the borrower's wallet delta and the
// audit entry in one DynamoDB transaction.
func (s *Store) UpdateLoan(ctx context.Context, loan *models.Loan, walletDelta int64, activity *models.AuditActivity) error {
	priorVersion := loan.Version
	loan.Version++

	if err := s.commitEntity(ctx, s.Tables.Loans, loan, priorVersion, loan.UserID, walletDelta, activity); err != nil {
		loan.Version = priorVersion
		return fmt.Errorf("loan %s: %w", loan.ID, err)
	}

	return nil
}
