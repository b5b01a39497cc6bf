package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	FollowUpStatusSent   = "sent"
	FollowUpStatusFailed = "failed"
)

// FollowUpLog is one line of the notification audit trail. Entries are
// append-only: written once when a dispatch is attempted, never mutated.
type FollowUpLog struct {
	ID            string           `json:"id"`
	LeadID        string           `json:"lead_id"`
	Category      FollowUpCategory `json:"followup_type"`
	ScheduledDate time.Time        `json:"scheduled_date"`
	SentAt        *time.Time       `json:"sent_date,omitempty"`
	Status        string           `json:"status"`
	EmailSentTo   string           `json:"email_sent_to,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// NewFollowUpLog records one dispatch attempt. sendErr == nil marks the entry
// sent and stamps SentAt; otherwise the entry is failed and carries the reason.
func NewFollowUpLog(leadID string, category FollowUpCategory, scheduled time.Time, sentTo string, sendErr error) *FollowUpLog {
	now := time.Now()
	log := &FollowUpLog{
		ID:            uuid.New().String(),
		LeadID:        leadID,
		Category:      category,
		ScheduledDate: scheduled,
		Status:        FollowUpStatusSent,
		EmailSentTo:   sentTo,
		Notes:         "Email sent successfully",
		CreatedAt:     now,
	}
	if sendErr != nil {
		log.Status = FollowUpStatusFailed
		log.Notes = sendErr.Error()
	} else {
		log.SentAt = &now
	}
	return log
}

type FollowUpLogRepositoryInterface interface {
	Create(ctx context.Context, log *FollowUpLog) error
	Delete(ctx context.Context, id string) error
	FindByLeadID(ctx context.Context, leadID string) ([]*FollowUpLog, error)
}
