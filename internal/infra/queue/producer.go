package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationTask is the wire payload for one reminder dispatch. It carries
// everything the worker needs to render and send the email without a lead
// lookup of its own.
type NotificationTask struct {
	LeadID        string `json:"lead_id"`
	Category      string `json:"category"`
	ScheduledDate string `json:"scheduled_date"` // YYYY-MM-DD

	BDName  string `json:"bd_name"`
	BDEmail string `json:"bd_email"`

	ClientName    string `json:"client_name"`
	ArchitectName string `json:"architect_name"`
	FirmName      string `json:"firm_name"`
	ClientMobile  string `json:"client_mobile"`

	Origin string `json:"origin"` // STATUS_TRANSITION, DAILY_SCAN
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishNotification(ctx context.Context, task NotificationTask) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal notification task: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}

	return nil
}
