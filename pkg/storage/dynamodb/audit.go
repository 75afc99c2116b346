package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Popsicool/wages-finance/pkg/models"
)

const activitiesByUserGSI = "user_id-created_at-index"

// AppendActivity inserts an audit entry. The trail is append-only: the
// conditional expression rejects any attempt to rewrite an existing entry.
func (s *Store) AppendActivity(ctx context.Context, activity *models.AuditActivity) error {
	put, err := auditPutItem(s.Tables.Audit, activity)
	if err != nil {
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           put.Put.TableName,
		Item:                put.Put.Item,
		ConditionExpression: put.Put.ConditionExpression,
	})
	if err != nil {
		return fmt.Errorf("failed to append audit activity: %w", err)
	}

	return nil
}

// ListActivitiesByUser retrieves the most recent audit entries for a user,
// newest first.
func (s *Store) ListActivitiesByUser(ctx context.Context, userID string, limit int32) ([]models.AuditActivity, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Audit),
		IndexName:              aws.String(activitiesByUserGSI),
		KeyConditionExpression: aws.String("user_id = :user_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_id": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query audit activities: %w", err)
	}

	var activities []models.AuditActivity
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &activities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit activities: %w", err)
	}

	return activities, nil
}
