package messenger

import (
	"context"
	"strconv"

	"storefront/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

const firebaseTitle = "New order"

// messageSender is the slice of *messaging.Client the messenger uses.
type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// firebaseMessenger publishes each line as an FCM message on a topic the operator's devices subscribe to.
type firebaseMessenger struct {
	client messageSender
	topic  string
}

// NewFirebaseMessenger initializes the Firebase app from a credentials file.
func NewFirebaseMessenger(ctx context.Context, projectID, credentialsPath, topic string) (service.Messenger, error) {
	if topic == "" {
		return nil, errors.New("firebase topic is required")
	}

	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	var appCfg *firebase.Config
	if projectID != "" {
		appCfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseMessenger{client: client, topic: topic}, nil
}

// SendBatch sends one topic message per line, in order.
func (m *firebaseMessenger) SendBatch(ctx context.Context, messages []string) error {
	for idx, text := range messages {
		message := &messaging.Message{
			Topic: m.topic,
			Notification: &messaging.Notification{
				Title: firebaseTitle,
				Body:  text,
			},
			Data: map[string]string{
				"index": strconv.Itoa(idx),
				"total": strconv.Itoa(len(messages)),
			},
		}

		if _, err := m.client.Send(ctx, message); err != nil {
			return errors.Wrapf(err, "failed to send message %d of %d", idx+1, len(messages))
		}
	}

	return nil
}
