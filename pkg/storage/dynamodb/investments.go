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

const positionsByStatusGSI = "status-due_date-index"

// GetOffering retrieves an investment offering by its ID.
func (s *Store) GetOffering(ctx context.Context, offeringID string) (*models.InvestmentOffering, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": offeringID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal offering ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Offerings),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get offering from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("offering %s: %w", offeringID, storage.ErrNotFound)
	}

	var offering models.InvestmentOffering
	if err := attributevalue.UnmarshalMap(result.Item, &offering); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offering: %w", err)
	}

	return &offering, nil
}

// CreateOffering stores a new offering.
func (s *Store) CreateOffering(ctx context.Context, offering *models.InvestmentOffering) (*models.InvestmentOffering, error) {
	offering.Version = 1

	offeringAV, err := attributevalue.MarshalMap(offering)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal offering: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Offerings),
		Item:                offeringAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("offering %s already exists", offering.ID)
		}
		return nil, fmt.Errorf("failed to create offering in DynamoDB: %w", err)
	}

	return offering, nil
}

// ListExpiredOfferings retrieves active offerings whose end date has passed.
func (s *Store) ListExpiredOfferings(ctx context.Context, today time.Time) ([]models.InvestmentOffering, error) {
	todayStr, err := today.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sweep date: %w", err)
	}

	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.Tables.Offerings),
		FilterExpression: aws.String("is_active = :true AND end_date <= :today"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":today": &types.AttributeValueMemberS{Value: string(todayStr)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan expired offerings: %w", err)
	}

	var offerings []models.InvestmentOffering
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &offerings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offerings: %w", err)
	}

	return offerings, nil
}

// UpdateOffering commits an offering transition under its version lock.
// Offerings never move wallet money directly.
func (s *Store) UpdateOffering(ctx context.Context, offering *models.InvestmentOffering) error {
	priorVersion := offering.Version
	offering.Version++

	if err := s.commitEntity(ctx, s.Tables.Offerings, offering, priorVersion, "", 0, nil); err != nil {
		offering.Version = priorVersion
		return fmt.Errorf("offering %s: %w", offering.ID, err)
	}

	return nil
}

// GetPosition retrieves an investment position by its ID.
func (s *Store) GetPosition(ctx context.Context, positionID string) (*models.InvestmentPosition, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": positionID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal position ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Positions),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get position from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("position %s: %w", positionID, storage.ErrNotFound)
	}

	var position models.InvestmentPosition
	if err := attributevalue.UnmarshalMap(result.Item, &position); err != nil {
		return nil, fmt.Errorf("failed to unmarshal position: %w", err)
	}

	return &position, nil
}

// ListMaturablePositions retrieves ACTIVE positions whose due date has passed.
func (s *Store) ListMaturablePositions(ctx context.Context, today time.Time) ([]models.InvestmentPosition, error) {
	todayStr, err := today.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sweep date: %w", err)
	}

	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Positions),
		IndexName:              aws.String(positionsByStatusGSI),
		KeyConditionExpression: aws.String("#status = :status AND due_date <= :today"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.InvestmentActive)},
			":today":  &types.AttributeValueMemberS{Value: string(todayStr)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query maturable positions: %w", err)
	}

	var positions []models.InvestmentPosition
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &positions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal positions: %w", err)
	}

	return positions, nil
}

// CreatePosition atomically creates a position, debits the subscriber's
// wallet for the principal, consumes offering quota and appends the audit
// entry in a single transaction. The quota condition stops oversubscription
// the same way the balance condition stops overdrafts.
func (s *Store) CreatePosition(ctx context.Context, position *models.InvestmentPosition, offering *models.InvestmentOffering, activity *models.AuditActivity) error {
	position.Version = 1
	position.CreatedAt = time.Now()

	positionAV, err := attributevalue.MarshalMap(position)
	if err != nil {
		return fmt.Errorf("failed to marshal position: %w", err)
	}

	debitItem, err := s.walletDeltaItem(ctx, position.UserID, -position.Principal)
	if err != nil {
		return err
	}

	put, err := auditPutItem(s.Tables.Audit, activity)
	if err != nil {
		return err
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Positions),
					Item:                positionAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			debitItem,
			{
				Update: &types.Update{
					TableName: aws.String(s.Tables.Offerings),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: offering.ID},
					},
					UpdateExpression:    aws.String("SET quota = quota - :shares, investors = investors + :one, version = version + :one"),
					ConditionExpression: aws.String("quota >= :shares AND version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":shares":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", position.Shares)},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", offering.Version)},
						":one":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			put,
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		return translateCancellation(err, 1, true)
	}

	return nil
}

// CancelPosition closes a position and, in the same transaction, credits the
// owner's wallet with the refund, gives the shares back to the offering and
// appends the audit entry. One commit, so a failed leg can never leave the
// quota restored while the position is still open.
func (s *Store) CancelPosition(ctx context.Context, position *models.InvestmentPosition, offering *models.InvestmentOffering, refund int64, activity *models.AuditActivity) error {
	priorVersion := position.Version
	position.Version++

	positionAV, err := attributevalue.MarshalMap(position)
	if err != nil {
		position.Version = priorVersion
		return fmt.Errorf("failed to marshal position: %w", err)
	}

	creditItem, err := s.walletDeltaItem(ctx, position.UserID, refund)
	if err != nil {
		position.Version = priorVersion
		return err
	}

	put, err := auditPutItem(s.Tables.Audit, activity)
	if err != nil {
		position.Version = priorVersion
		return err
	}

	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Positions),
				Item:                positionAV,
				ConditionExpression: aws.String("version = :version"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", priorVersion)},
				},
			},
		},
		creditItem,
	}

	if offering != nil {
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName: aws.String(s.Tables.Offerings),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: offering.ID},
				},
				UpdateExpression:    aws.String("SET quota = quota + :shares, investors = investors - :one, version = version + :one"),
				ConditionExpression: aws.String("version = :version"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":shares":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", position.Shares)},
					":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", offering.Version)},
					":one":     &types.AttributeValueMemberN{Value: "1"},
				},
			},
		})
	}
	items = append(items, put)

	if _, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		position.Version = priorVersion
		return translateCancellation(err, 1, false)
	}

	return nil
}

// UpdatePosition commits a position transition, the owner's wallet delta and
// the audit entry in one DynamoDB transaction.
func (s *Store) UpdatePosition(ctx context.Context, position *models.InvestmentPosition, walletDelta int64, activity *models.AuditActivity) error {
	priorVersion := position.Version
	position.Version++

	if err := s.commitEntity(ctx, s.Tables.Positions, position, priorVersion, position.UserID, walletDelta, activity); err != nil {
		position.Version = priorVersion
		return fmt.Errorf("position %s: %w", position.ID, err)
	}

	return nil
}
