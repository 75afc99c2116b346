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

// GetSavingsPlan retrieves a savings plan by its ID.
func (s *Store) GetSavingsPlan(ctx context.Context, planID string) (*models.SavingsPlan, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": planID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal savings plan ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Savings),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get savings plan from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("savings plan %s: %w", planID, storage.ErrNotFound)
	}

	var plan models.SavingsPlan
	if err := attributevalue.UnmarshalMap(result.Item, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal savings plan: %w", err)
	}

	return &plan, nil
}

// CreateSavingsPlan stores a new plan.
func (s *Store) CreateSavingsPlan(ctx context.Context, plan *models.SavingsPlan) (*models.SavingsPlan, error) {
	now := time.Now()
	plan.Version = 1
	plan.CreatedAt = now
	plan.UpdatedAt = now

	planAV, err := attributevalue.MarshalMap(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal savings plan: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Savings),
		Item:                planAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("savings plan %s already exists", plan.ID)
		}
		return nil, fmt.Errorf("failed to create savings plan in DynamoDB: %w", err)
	}

	return plan, nil
}

// ListContributablePlans retrieves active plans inside their saving window
// that have not yet met their goal. RFC3339 timestamps compare
// lexicographically, so the date window works as a plain string comparison.
func (s *Store) ListContributablePlans(ctx context.Context, today time.Time) ([]models.SavingsPlan, error) {
	todayStr, err := today.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sweep date: %w", err)
	}

	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.Tables.Savings),
		FilterExpression: aws.String("is_active = :true AND goal_met = :false AND start_date <= :today AND withdrawal_date >= :today"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":today": &types.AttributeValueMemberS{Value: string(todayStr)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan contributable savings plans: %w", err)
	}

	var plans []models.SavingsPlan
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &plans); err != nil {
		return nil, fmt.Errorf("failed to unmarshal savings plans: %w", err)
	}

	return plans, nil
}

// ListMaturedPlans retrieves active plans whose withdrawal date has passed.
func (s *Store) ListMaturedPlans(ctx context.Context, today time.Time) ([]models.SavingsPlan, error) {
	todayStr, err := today.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sweep date: %w", err)
	}

	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.Tables.Savings),
		FilterExpression: aws.String("is_active = :true AND withdrawal_date <= :today"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":today": &types.AttributeValueMemberS{Value: string(todayStr)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan matured savings plans: %w", err)
	}

	var plans []models.SavingsPlan
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &plans); err != nil {
		return nil, fmt.Errorf("failed to unmarshal savings plans: %w", err)
	}

	return plans, nil
}

// UpdateSavingsPlan commits a plan transition, the owner's wallet delta and
// the audit entry in one DynamoDB transaction.
func (s *Store) UpdateSavingsPlan(ctx context.Context, plan *models.SavingsPlan, walletDelta int64, activity *models.AuditActivity) error {
	priorVersion := plan.Version
	plan.Version++
	plan.UpdatedAt = time.Now()

	if err := s.commitEntity(ctx, s.Tables.Savings, plan, priorVersion, plan.UserID, walletDelta, activity); err != nil {
		plan.Version = priorVersion
		return fmt.Errorf("savings plan %s: %w", plan.ID, err)
	}

	return nil
}
