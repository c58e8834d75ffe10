// internal/notify/notify.go

// Package notify pushes staff-facing alerts when an order or room service
// request is persisted. Delivery is best effort: failures are logged and
// never reach the guest.
package notify

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/config"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/logger"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/models"
)

// TopicAPI is the slice of the SNS client we use.
type TopicAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// EmailAPI is the slice of the SES client we use.
type EmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Notifier fans persisted records out to the configured channels. A nil
// Notifier is valid and does nothing.
type Notifier struct {
	cfg    config.NotificationConfig
	topic  TopicAPI
	email  EmailAPI
	logger logger.Logger
}

// New builds a Notifier from config, or nil when notifications are disabled.
func New(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	n := &Notifier{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "notify"}),
	}
	if cfg.TopicARN != "" {
		n.topic = sns.NewFromConfig(awsCfg)
	}
	if cfg.FromEmail != "" && cfg.StaffList != "" {
		n.email = ses.NewFromConfig(awsCfg)
	}
	return n, nil
}

// NewWithClients wires explicit clients; used by tests.
func NewWithClients(cfg config.NotificationConfig, topic TopicAPI, email EmailAPI, log logger.Logger) *Notifier {
	return &Notifier{cfg: cfg, topic: topic, email: email, logger: log}
}

// OrderPlaced announces a new restaurant order.
func (n *Notifier) OrderPlaced(ctx context.Context, order *models.OrderPayload) {
	if n == nil || order == nil {
		return
	}
	subject := fmt.Sprintf("New order %s for room %s", order.DisplayID, order.RoomNumber)
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}
	body := fmt.Sprintf("%s\nTotal: %.2f", strings.Join(lines, "\n"), order.TotalAmount)
	n.send(ctx, subject, body)
}

// RoomServiceRequested announces a new housekeeping/amenity request.
func (n *Notifier) RoomServiceRequested(ctx context.Context, req *models.RoomServicePayload) {
	if n == nil || req == nil {
		return
	}
	subject := fmt.Sprintf("New %s request %s for room %s", req.RequestType, req.DisplayID, req.RoomNumber)
	n.send(ctx, subject, subject)
}

func (n *Notifier) send(ctx context.Context, subject, body string) {
	if n.topic != nil {
		if _, err := n.topic.Publish(ctx, &sns.PublishInput{
			TopicArn: &n.cfg.TopicARN,
			Subject:  &subject,
			Message:  &body,
		}); err != nil {
			n.logger.Warn("sns publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if n.email != nil {
		charset := "UTF-8"
		if _, err := n.email.SendEmail(ctx, &ses.SendEmailInput{
			Source: &n.cfg.FromEmail,
			Destination: &sestypes.Destination{
				ToAddresses: strings.Split(n.cfg.StaffList, ","),
			},
			Message: &sestypes.Message{
				Subject: &sestypes.Content{Data: &subject, Charset: &charset},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: &body, Charset: &charset},
				},
			},
		}); err != nil {
			n.logger.Warn("ses send failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
