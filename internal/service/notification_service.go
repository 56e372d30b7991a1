package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/quantumhr/portal-service/internal/config"
	"github.com/quantumhr/portal-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventLeaveRequested, n.handleLeaveRequested)
	n.dispatcher.Subscribe(events.EventLeaveApproved, n.handleLeaveDecision)
	n.dispatcher.Subscribe(events.EventLeaveRejected, n.handleLeaveDecision)
}

func (n *NotificationService) handleLeaveRequested(ctx context.Context, event events.Event) error {
	n.logger.Info("LeaveRequested", zap.String("employee_id", event.EmployeeID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleLeaveDecision(ctx context.Context, event events.Event) error {
	n.logger.Info("LeaveDecision",
		zap.String("type", string(event.Type)),
		zap.String("employee_id", event.EmployeeID),
		zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("employee_id", event.EmployeeID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("employee_id", event.EmployeeID),
		zap.String("event_type", string(event.Type)))
}
