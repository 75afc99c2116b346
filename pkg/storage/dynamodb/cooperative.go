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

// GetMembership retrieves a user's cooperative membership.
func (s *Store) GetMembership(ctx context.Context, userID string) (*models.CooperativeMembership, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal membership user ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Memberships),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get membership from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("membership for user %s: %w", userID, storage.ErrNotFound)
	}

	var membership models.CooperativeMembership
	if err := attributevalue.UnmarshalMap(result.Item, &membership); err != nil {
		return nil, fmt.Errorf("failed to unmarshal membership: %w", err)
	}

	return &membership, nil
}

// CreateMembership stores a new membership, one per user.
func (s *Store) CreateMembership(ctx context.Context, membership *models.CooperativeMembership) (*models.CooperativeMembership, error) {
	now := time.Now()
	membership.Version = 1
	membership.JoinedAt = now
	membership.UpdatedAt = now

	membershipAV, err := attributevalue.MarshalMap(membership)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal membership: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Memberships),
		Item:                membershipAV,
		ConditionExpression: aws.String("attribute_not_exists(user_id)"),
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("membership for user %s already exists", membership.UserID)
		}
		return nil, fmt.Errorf("failed to create membership in DynamoDB: %w", err)
	}

	return membership, nil
}

// ListActiveMemberships retrieves every active membership.
func (s *Store) ListActiveMemberships(ctx context.Context) ([]models.CooperativeMembership, error) {
	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.Tables.Memberships),
		FilterExpression: aws.String("is_active = :true"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan active memberships: %w", err)
	}

	var memberships []models.CooperativeMembership
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &memberships); err != nil {
		return nil, fmt.Errorf("failed to unmarshal memberships: %w", err)
	}

	return memberships, nil
}

// UpdateMembership commits a membership transition, the member's wallet delta
// and the audit entry in one DynamoDB transaction.
func (s *Store) UpdateMembership(ctx context.Context, membership *models.CooperativeMembership, walletDelta int64, activity *models.AuditActivity) error {
	priorVersion := membership.Version
	membership.Version++
	membership.UpdatedAt = time.Now()

	if err := s.commitEntity(ctx, s.Tables.Memberships, membership, priorVersion, membership.UserID, walletDelta, activity); err != nil {
		membership.Version = priorVersion
		return fmt.Errorf("membership %s: %w", membership.MembershipID, err)
	}

	return nil
}
