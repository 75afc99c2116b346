package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
)

type fakeSQS struct {
	sent []*sqs.SendMessageInput
	err  error
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &sqs.SendMessageOutput{}, nil
}

func TestNoOpNotifier(t *testing.T) {
	// The no-op value itself must satisfy the interface so entrypoints can
	// wire it without taking its address.
	var notifier Notifier = NoOpNotifier{}

	err := notifier.Notify(context.Background(), Notification{UserID: "user-1"})

	assert.NoError(t, err)
}

func TestSQSNotifier(t *testing.T) {
	notification := Notification{
		UserID:    "user-1",
		Title:     "Savings Payout",
		Body:      "Your savings matured",
		CreatedAt: time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC),
	}

	t.Run("Sends JSON To The Queue", func(t *testing.T) {
		client := &fakeSQS{}
		notifier := NewSQSNotifier(client, "https://sqs.test/queue")

		err := notifier.Notify(context.Background(), notification)

		assert.NoError(t, err)
		assert.Len(t, client.sent, 1)
		assert.Equal(t, "https://sqs.test/queue", *client.sent[0].QueueUrl)

		var decoded Notification
		assert.NoError(t, json.Unmarshal([]byte(*client.sent[0].MessageBody), &decoded))
		assert.Equal(t, notification, decoded)
	})

	t.Run("Send Failure", func(t *testing.T) {
		client := &fakeSQS{err: errors.New("queue unavailable")}
		notifier := NewSQSNotifier(client, "https://sqs.test/queue")

		err := notifier.Notify(context.Background(), notification)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send notification to SQS")
	})
}
