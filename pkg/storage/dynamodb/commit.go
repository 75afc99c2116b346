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

// commitEntity writes an entity state transition and, in the same DynamoDB
// transaction, applies a wallet delta and appends an audit entry.
//
// The entity item must already carry its incremented version; priorVersion is
// the version read before the transition, enforced with a conditional
// expression so a concurrent writer loses exactly one of the two races.
// A negative walletDelta debits the owner's wallet guarded by a
// balance >= amount condition; a positive one credits it; zero skips the
// wallet entirely. activity may be nil for pure state transitions.
func (s *Store) commitEntity(ctx context.Context, table string, entity any, priorVersion int64, userID string, walletDelta int64, activity *models.AuditActivity) error {
	entityAV, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity for commit: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(table),
				Item:                entityAV,
				ConditionExpression: aws.String("version = :version"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", priorVersion)},
				},
			},
		},
	}

	walletIdx := -1
	if walletDelta != 0 {
		item, err := s.walletDeltaItem(ctx, userID, walletDelta)
		if err != nil {
			return err
		}
		walletIdx = len(items)
		items = append(items, item)
	}

	if activity != nil {
		put, err := auditPutItem(s.Tables.Audit, activity)
		if err != nil {
			return err
		}
		items = append(items, put)
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		return translateCancellation(err, walletIdx, walletDelta < 0)
	}

	return nil
}

// walletDeltaItem builds the wallet update leg of a commit. It reads the
// wallet first so the update can assert the version it saw, the same
// optimistic-locking shape used on the entity itself.
func (s *Store) walletDeltaItem(ctx context.Context, userID string, delta int64) (types.TransactWriteItem, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to get wallet for commit: %w", err)
	}

	update := &types.Update{
		TableName: aws.String(s.Tables.Wallets),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", abs(delta))},
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", wallet.Version)},
			":inc":     &types.AttributeValueMemberN{Value: "1"},
			":now":     &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	}

	if delta < 0 {
		update.UpdateExpression = aws.String("SET balance = balance - :amount, version = version + :inc, updated_at = :now")
		update.ConditionExpression = aws.String("balance >= :amount AND version = :version")
	} else {
		update.UpdateExpression = aws.String("SET balance = balance + :amount, version = version + :inc, updated_at = :now")
		update.ConditionExpression = aws.String("version = :version")
	}

	return types.TransactWriteItem{Update: update}, nil
}

// auditPutItem builds the append-only audit leg of a commit.
func auditPutItem(table string, activity *models.AuditActivity) (types.TransactWriteItem, error) {
	activityAV, err := attributevalue.MarshalMap(activity)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal audit activity: %w", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(table),
			Item:                activityAV,
			ConditionExpression: aws.String("attribute_not_exists(id)"),
		},
	}, nil
}

// translateCancellation maps a TransactWriteItems failure onto the storage
// error taxonomy. Item 0 is always the entity write; walletIdx (when >= 0)
// is the wallet leg.
func translateCancellation(err error, walletIdx int, debit bool) error {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return fmt.Errorf("failed to execute commit transaction: %w", err)
	}

	for i, reason := range tce.CancellationReasons {
		if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
			continue
		}
		if i == walletIdx && debit {
			return storage.ErrInsufficientFunds
		}
		return storage.ErrVersionConflict
	}

	return fmt.Errorf("failed to execute commit transaction: %w", err)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
