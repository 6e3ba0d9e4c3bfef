// Package notification contains presentation-channel implementations.
package notification

import (
	"context"
	"log/slog"

	"geocue/config"
	"geocue/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// firebasePresenter delivers notifications through Firebase Cloud Messaging,
// targeting either a single device token or a topic.
type firebasePresenter struct {
	client      *messaging.Client
	deviceToken string
	topic       string
}

// NewFirebasePresenter creates a Firebase-backed presentation channel.
func NewFirebasePresenter(ctx context.Context, cfg *config.FirebaseConfig) (service.Presenter, error) {
	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebasePresenter{
		client:      client,
		deviceToken: cfg.DeviceToken,
		topic:       cfg.Topic,
	}, nil
}

// Present sends a push notification carrying the deep link so the client can
// route back into history filtered by region.
func (p *firebasePresenter) Present(ctx context.Context, title, message, deepLink string) error {
	msg := &messaging.Message{
		Token: p.deviceToken,
		Topic: p.topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  message,
		},
		Data: map[string]string{
			"deep_link": deepLink,
		},
	}

	if _, err := p.client.Send(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send notification")
	}

	return nil
}

// logPresenter is used when Firebase is not configured; notifications are
// only visible in the logs.
type logPresenter struct {
	logger *slog.Logger
}

// NewLogPresenter creates a log-only presentation channel.
func NewLogPresenter(logger *slog.Logger) service.Presenter {
	return &logPresenter{logger: logger}
}

func (p *logPresenter) Present(_ context.Context, title, message, deepLink string) error {
	p.logger.Info("[LogPresenter] Notification",
		slog.String("title", title),
		slog.String("message", message),
		slog.String("deep_link", deepLink),
	)

	return nil
}
