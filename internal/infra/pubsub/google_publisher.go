package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
)

// cloudPublisher sends order notifications to a Cloud Pub/Sub topic.
// Messages are ordered per session so a customer's checkouts reach the
// operator in the order they were placed.
type cloudPublisher struct {
	client  *pubsub.Client
	topic   *pubsub.Publisher
	topicID string
	logger  *slog.Logger
}

// NewGooglePubSubPublisher fails fast when the topic is missing.
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "create pubsub client")
	}

	name := "projects/" + projectID + "/topics/" + topicID
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: name}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "lookup topic %s", name)
	}

	topic := client.Publisher(topicID)
	topic.EnableMessageOrdering = true

	logger.Info("order notifications go to cloud pubsub", slog.String("topic", name))

	return &cloudPublisher{client: client, topic: topic, topicID: topicID, logger: logger}, nil
}

func (p *cloudPublisher) PublishOrderNotification(ctx context.Context, event *service.OrderNotificationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "encode order notification")
	}

	msg := &pubsub.Message{
		Data:        data,
		Attributes:  eventAttributes(event),
		OrderingKey: event.SessionKey,
	}

	serverID, err := p.topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		// a failed ordered publish pauses its key until resumed
		p.topic.ResumePublish(msg.OrderingKey)

		return errors.Wrapf(err, "publish to %s", p.topicID)
	}

	p.logger.Debug("order notification published",
		slog.String("server_id", serverID),
		slog.String("request_id", event.RequestID),
		slog.Any("order_ids", event.OrderIDs),
	)

	return nil
}

func (p *cloudPublisher) Close() error {
	p.topic.Stop()

	return errors.Wrap(p.client.Close(), "close pubsub client")
}
