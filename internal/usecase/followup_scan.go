package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/maisonsia/bd-crm/internal/entity"
)

// ErrNoBDEmail marks dispatch attempts that had nowhere to go. Logged as a
// failed entry like any other dispatch failure.
var ErrNoBDEmail = errors.New("BD email not available")

type DispatchResult struct {
	LeadID   string                  `json:"lead_id"`
	Category entity.FollowUpCategory `json:"category"`
	Sent     bool                    `json:"sent"`
}

type ScanSummary struct {
	Date         time.Time        `json:"date"`
	LeadsChecked int              `json:"leads_checked"`
	Results      []DispatchResult `json:"results"`
}

func (s *ScanSummary) counts() (sent, failed int) {
	for _, r := range s.Results {
		if r.Sent {
			sent++
		} else {
			failed++
		}
	}
	return
}

// FollowUpScanUseCase is the daily pass over the leads whose follow-up date
// has arrived. Each lead's dispatch and write-back is isolated: one broken
// lead never aborts the rest of the scan.
type FollowUpScanUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Logs     entity.FollowUpLogRepositoryInterface
	Notifier FollowUpNotifier
}

func NewFollowUpScanUseCase(
	leads entity.LeadRepositoryInterface,
	logs entity.FollowUpLogRepositoryInterface,
	notifier FollowUpNotifier,
) *FollowUpScanUseCase {
	return &FollowUpScanUseCase{
		Leads:    leads,
		Logs:     logs,
		Notifier: notifier,
	}
}

func (uc *FollowUpScanUseCase) Execute(ctx context.Context, today time.Time) (*ScanSummary, error) {
	today = DateOnly(today)

	leads, err := uc.Leads.FindDueFollowUps(ctx, today)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load due leads: " + err.Error()}
	}

	summary := &ScanSummary{Date: today, LeadsChecked: len(leads)}

	for _, lead := range leads {
		for _, category := range DueCategories(lead, today) {
			summary.Results = append(summary.Results, uc.dispatchOne(ctx, lead, category, today))
		}
	}

	sent, failed := summary.counts()
	log.Printf("follow-up scan %s: %d leads due, %d sent, %d failed",
		today.Format("2006-01-02"), summary.LeadsChecked, sent, failed)

	return summary, nil
}

func (uc *FollowUpScanUseCase) dispatchOne(ctx context.Context, lead *entity.Lead, category entity.FollowUpCategory, today time.Time) DispatchResult {
	sendErr := ErrNoBDEmail
	if lead.BDEmail != "" {
		sendErr = uc.Notifier.SendFollowUp(lead, category)
	}
	if sendErr != nil {
		log.Printf("follow-up dispatch failed: lead=%s category=%s: %v", lead.LeadID, category, sendErr)
	}

	entry := entity.NewFollowUpLog(lead.LeadID, category, today, lead.BDEmail, sendErr)

	if category == entity.FollowUpQuotation {
		// Quotation is the only self-renewing reminder: advance by 15 days
		// from today whether or not the email went out, and commit the new
		// date together with the audit entry.
		AdvanceQuotationFollowUp(lead, today)
		lead.UpdatedAt = timeNow()

		txn := NewTransaction()
		txn.AddOperation("record_followup_log", func(ctx context.Context) error {
			return uc.Logs.Create(ctx, entry)
		})
		txn.AddCompensation("delete_followup_log", func(ctx context.Context) error {
			return uc.Logs.Delete(ctx, entry.ID)
		})
		txn.AddOperation("advance_quotation_date", func(ctx context.Context) error {
			return uc.Leads.Update(ctx, lead)
		})
		if err := txn.Execute(ctx); err != nil {
			log.Printf("failed to commit quotation follow-up for lead %s: %v", lead.LeadID, err)
		}
	} else if err := uc.Logs.Create(ctx, entry); err != nil {
		log.Printf("failed to record follow-up log for lead %s: %v", lead.LeadID, err)
	}

	return DispatchResult{
		LeadID:   lead.LeadID,
		Category: category,
		Sent:     sendErr == nil,
	}
}
