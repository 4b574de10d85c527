package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/InternLink-2025/placement-service/internal/events"
)

// NotifierService consumes domain events from the bus and records
// notification entries. Actual mail delivery is handled outside this
// service; the SMTP settings on the platform config are for that layer.
type NotifierService struct {
	subscriber message.Subscriber
	logger     *slog.Logger
}

func NewNotifierService(subscriber message.Subscriber, logger *slog.Logger) *NotifierService {
	return &NotifierService{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Start subscribes to every topic and consumes until ctx is cancelled.
func (n *NotifierService) Start(ctx context.Context) error {
	applicationTopics := []string{
		events.TopicApplicationSubmitted,
		events.TopicApplicationDecided,
		events.TopicApplicationWithdrawn,
	}

	for _, topic := range applicationTopics {
		messages, err := n.subscriber.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
		go n.consumeApplicationEvents(topic, messages)
	}

	projectMessages, err := n.subscriber.Subscribe(ctx, events.TopicProjectPublished)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", events.TopicProjectPublished, err)
	}
	go n.consumeProjectEvents(events.TopicProjectPublished, projectMessages)

	n.logger.Info("Notifier started", "topics", len(applicationTopics)+1)
	return nil
}

func (n *NotifierService) consumeApplicationEvents(topic string, messages <-chan *message.Message) {
	for msg := range messages {
		var event events.ApplicationEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			n.logger.Error("Failed to decode application event", "topic", topic, "error", err)
			msg.Ack()
			continue
		}

		n.logger.Info("Notification",
			"topic", topic,
			"application_id", event.ApplicationID,
			"project_id", event.ProjectID,
			"student_id", event.StudentID,
			"status", event.Status)

		msg.Ack()
	}
}

func (n *NotifierService) consumeProjectEvents(topic string, messages <-chan *message.Message) {
	for msg := range messages {
		var event events.ProjectEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			n.logger.Error("Failed to decode project event", "topic", topic, "error", err)
			msg.Ack()
			continue
		}

		n.logger.Info("Notification",
			"topic", topic,
			"project_id", event.ProjectID,
			"organization_id", event.OrganizationID,
			"title", event.Title)

		msg.Ack()
	}
}
