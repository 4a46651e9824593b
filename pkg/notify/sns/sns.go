// Package sns publishes notifications to an SNS topic.
package sns

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/rolevend/rolevend/pkg/notify"
)

// Client is the subset of the SNS API the notifier uses.
type Client interface {
	Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

// Ensure Notifier implements notify.Notifier
var _ notify.Notifier = (*Notifier)(nil)

// Notifier publishes JSON payloads to SNS topics.
type Notifier struct {
	client Client
}

// New creates an SNS notifier.
func New(client Client) *Notifier {
	return &Notifier{client: client}
}

// Notify publishes the payload as a JSON message.
func (n *Notifier) Notify(ctx context.Context, topic, subject string, payload map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = n.client.Publish(ctx, &awssns.PublishInput{
		TopicArn: aws.String(topic),
		Subject:  aws.String(subject),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}
