package usecase

import (
	"context"

	"github.com/maisonsia/bd-crm/internal/entity"
	"github.com/maisonsia/bd-crm/internal/infra/queue"
)

// QueueProducerInterface publishes a notification task for the queue worker.
// Used for dispatches that must not block the calling transition.
type QueueProducerInterface interface {
	PublishNotification(ctx context.Context, task queue.NotificationTask) error
}

// FollowUpNotifier delivers one reminder synchronously and reports the
// outcome. The daily scan uses it so success and failure are observable for
// the audit log.
type FollowUpNotifier interface {
	SendFollowUp(lead *entity.Lead, category entity.FollowUpCategory) error
}
