package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/maisonsia/bd-crm/internal/entity"
	"github.com/maisonsia/bd-crm/internal/infra/mail"
)

// MailSender is the transport contract the worker dispatches through.
type MailSender interface {
	Send(to, subject, htmlBody string) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  MailSender
	Logs    entity.FollowUpLogRepositoryInterface
}

func NewWorker(ch *amqp.Channel, mailer MailSender, logs entity.FollowUpLogRepositoryInterface) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
		Logs:    logs,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var task NotificationTask
			if err := json.Unmarshal(d.Body, &task); err != nil {
				log.Printf("[WORKER] invalid task JSON: %s", err)
				// Malformed message. Reject without requeue so it lands on the DLQ.
				d.Nack(false, false)
				continue
			}

			log.Printf("[WORKER] dispatching %s reminder for lead %s (origin %s)", task.Category, task.LeadID, task.Origin)

			w.processTask(context.Background(), task)

			// The attempt is logged either way; retries come from the lead's
			// own still-due dates, not from redelivery.
			d.Ack(false)
		}
	}()

	log.Printf("[WORKER] notification worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processTask(ctx context.Context, task NotificationTask) {
	scheduled, err := time.Parse("2006-01-02", task.ScheduledDate)
	if err != nil {
		scheduled = time.Now()
	}

	sendErr := w.dispatch(task)
	if sendErr != nil {
		log.Printf("[WORKER] dispatch failed for lead %s: %s", task.LeadID, sendErr)
	}

	entry := entity.NewFollowUpLog(task.LeadID, entity.FollowUpCategory(task.Category), scheduled, task.BDEmail, sendErr)
	if err := w.Logs.Create(ctx, entry); err != nil {
		log.Printf("[WORKER] failed to record follow-up log for lead %s: %s", task.LeadID, err)
	}
}

func (w *Worker) dispatch(task NotificationTask) error {
	subject, body, err := mail.RenderFollowUp(entity.FollowUpCategory(task.Category), mail.FollowUpData{
		LeadID:        task.LeadID,
		BDName:        task.BDName,
		ClientName:    task.ClientName,
		ArchitectName: task.ArchitectName,
		FirmName:      task.FirmName,
		ClientMobile:  task.ClientMobile,
	})
	if err != nil {
		return err
	}
	return w.Mailer.Send(task.BDEmail, subject, body)
}
