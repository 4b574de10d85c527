package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/InternLink-2025/placement-service/internal/models"
)

// Topics for the in-process event bus.
const (
	TopicApplicationSubmitted = "application.submitted"
	TopicApplicationDecided   = "application.decided"
	TopicApplicationWithdrawn = "application.withdrawn"
	TopicProjectPublished     = "project.published"
)

// ApplicationEvent is published whenever an application changes state.
type ApplicationEvent struct {
	ApplicationID uint                     `json:"application_id"`
	ProjectID     uint                     `json:"project_id"`
	StudentID     string                   `json:"student_id"`
	Status        models.ApplicationStatus `json:"status"`
	DecidedBy     *string                  `json:"decided_by,omitempty"`
	OccurredAt    time.Time                `json:"occurred_at"`
}

// ProjectEvent is published when a project becomes visible to students.
type ProjectEvent struct {
	ProjectID      uint                 `json:"project_id"`
	OrganizationID string               `json:"organization_id"`
	Title          string               `json:"title"`
	Status         models.ProjectStatus `json:"status"`
	OccurredAt     time.Time            `json:"occurred_at"`
}

// Publisher wraps a watermill publisher with JSON payload encoding.
type Publisher struct {
	pub message.Publisher
}

func NewPublisher(pub message.Publisher) *Publisher {
	return &Publisher{pub: pub}
}

func (p *Publisher) publish(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := p.pub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) ApplicationSubmitted(event ApplicationEvent) error {
	return p.publish(TopicApplicationSubmitted, event)
}

func (p *Publisher) ApplicationDecided(event ApplicationEvent) error {
	return p.publish(TopicApplicationDecided, event)
}

func (p *Publisher) ApplicationWithdrawn(event ApplicationEvent) error {
	return p.publish(TopicApplicationWithdrawn, event)
}

func (p *Publisher) ProjectPublished(event ProjectEvent) error {
	return p.publish(TopicProjectPublished, event)
}
