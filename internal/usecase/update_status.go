package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/maisonsia/bd-crm/internal/entity"
	"github.com/maisonsia/bd-crm/internal/infra/queue"
)

// UpdateMeetingStatusInput carries the submitted flag values and remarks.
// Flags only latch: a true value sets the flag, a false value is ignored, so
// an already-set status can never be cleared through this operation.
type UpdateMeetingStatusInput struct {
	NotInterested  bool `json:"not_interested"`
	RequireLetter  bool `json:"require_letter"`
	EmailCatalogue bool `json:"email_catalogue"`
	QuotationSent  bool `json:"quotation_sent"`

	NotInterestedRemark  string `json:"not_interested_remark"`
	RequireLetterRemark  string `json:"require_letter_remark"`
	EmailCatalogueRemark string `json:"email_catalogue_remark"`
	QuotationSentRemark  string `json:"quotation_sent_remark"`

	UpdateNote string `json:"update_note"`
}

type ScheduledFollowUp struct {
	Category entity.FollowUpCategory `json:"category"`
	Date     time.Time               `json:"date"`
}

type UpdateMeetingStatusOutput struct {
	LeadID    string              `json:"lead_id"`
	Scheduled []ScheduledFollowUp `json:"scheduled_followups"`
}

type UpdateMeetingStatusUseCase struct {
	Leads entity.LeadRepositoryInterface
	Queue QueueProducerInterface
	Now   func() time.Time
}

func NewUpdateMeetingStatusUseCase(leads entity.LeadRepositoryInterface, producer QueueProducerInterface) *UpdateMeetingStatusUseCase {
	return &UpdateMeetingStatusUseCase{
		Leads: leads,
		Queue: producer,
		Now:   time.Now,
	}
}

func (uc *UpdateMeetingStatusUseCase) Execute(ctx context.Context, leadID string, input UpdateMeetingStatusInput) (*UpdateMeetingStatusOutput, error) {
	lead, err := uc.Leads.FindByLeadID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found: " + leadID}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load lead: " + err.Error()}
	}

	wasRequireLetter := lead.RequireLetter
	wasEmailCatalogue := lead.EmailCatalogue
	wasQuotationSent := lead.QuotationSent

	lead.NotInterested = lead.NotInterested || input.NotInterested
	lead.RequireLetter = lead.RequireLetter || input.RequireLetter
	lead.EmailCatalogue = lead.EmailCatalogue || input.EmailCatalogue
	lead.QuotationSent = lead.QuotationSent || input.QuotationSent

	// Remarks track set flags only. Re-submitting a flag that is already true
	// updates the remark without touching its follow-up dates.
	if lead.NotInterested && input.NotInterestedRemark != "" {
		lead.NotInterestedRemark = strings.TrimSpace(input.NotInterestedRemark)
	}
	if lead.RequireLetter && input.RequireLetterRemark != "" {
		lead.RequireLetterRemark = strings.TrimSpace(input.RequireLetterRemark)
	}
	if lead.EmailCatalogue && input.EmailCatalogueRemark != "" {
		lead.EmailCatalogueRemark = strings.TrimSpace(input.EmailCatalogueRemark)
	}
	if lead.QuotationSent && input.QuotationSentRemark != "" {
		lead.QuotationSentRemark = strings.TrimSpace(input.QuotationSentRemark)
	}

	now := uc.Now()
	if note := strings.TrimSpace(input.UpdateNote); note != "" {
		lead.LastFollowUpUpdate = fmt.Sprintf("%s: %s", now.Format("2006-01-02 15:04"), note)
	}

	today := DateOnly(now)
	var scheduled []ScheduledFollowUp

	appendScheduled := func(categories []entity.FollowUpCategory) {
		for _, c := range categories {
			scheduled = append(scheduled, ScheduledFollowUp{Category: c, Date: *lead.FollowUpDate(c)})
		}
	}

	if lead.RequireLetter && !wasRequireLetter {
		appendScheduled(ScheduleFollowUps(lead, entity.StatusRequireLetter, today))
	}
	if lead.EmailCatalogue && !wasEmailCatalogue {
		appendScheduled(ScheduleFollowUps(lead, entity.StatusEmailCatalogue, today))
	}
	if lead.QuotationSent && !wasQuotationSent {
		appendScheduled(ScheduleFollowUps(lead, entity.StatusQuotationSent, today))
	}

	lead.UpdatedAt = now

	if err := uc.Leads.Update(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist status update: " + err.Error()}
	}

	// Require-letter gets an immediate heads-up on top of the 3-month
	// reminder. It goes through the queue so the transition never blocks on
	// SMTP; a publish failure is logged, never surfaced.
	if lead.RequireLetter && !wasRequireLetter && lead.BDEmail != "" {
		task := notificationTaskFor(lead, entity.FollowUpRequireLetter, today, "STATUS_TRANSITION")
		if err := uc.Queue.PublishNotification(ctx, task); err != nil {
			log.Printf("failed to enqueue require-letter notification for lead %s: %v", lead.LeadID, err)
		}
	}

	return &UpdateMeetingStatusOutput{
		LeadID:    lead.LeadID,
		Scheduled: scheduled,
	}, nil
}

func notificationTaskFor(lead *entity.Lead, category entity.FollowUpCategory, scheduled time.Time, origin string) queue.NotificationTask {
	return queue.NotificationTask{
		LeadID:        lead.LeadID,
		Category:      string(category),
		ScheduledDate: scheduled.Format("2006-01-02"),
		BDName:        lead.BDName,
		BDEmail:       lead.BDEmail,
		ClientName:    lead.ClientName,
		ArchitectName: lead.ArchitectName,
		FirmName:      lead.FirmName,
		ClientMobile:  lead.ClientMobile,
		Origin:        origin,
	}
}
