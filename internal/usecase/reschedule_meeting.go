package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/maisonsia/bd-crm/internal/entity"
)

type RescheduleMeetingInput struct {
	RescheduleDate string `json:"reschedule_date"` // YYYY-MM-DD
	RescheduleTime string `json:"reschedule_time"` // HH:MM
	Remark         string `json:"remark"`
}

type RescheduleMeetingUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewRescheduleMeetingUseCase(leads entity.LeadRepositoryInterface) *RescheduleMeetingUseCase {
	return &RescheduleMeetingUseCase{Leads: leads}
}

// Execute overwrites the reschedule fields unconditionally. Rescheduling is
// independent of the status flags and never touches follow-up dates.
func (uc *RescheduleMeetingUseCase) Execute(ctx context.Context, leadID string, input RescheduleMeetingInput) error {
	if input.RescheduleDate != "" && !isValidDate(input.RescheduleDate) {
		return &DomainError{Code: "VALIDATION_ERROR", Message: "reschedule_date must be a valid date (YYYY-MM-DD)"}
	}
	if input.RescheduleTime != "" && !isValidClockTime(input.RescheduleTime) {
		return &DomainError{Code: "VALIDATION_ERROR", Message: "reschedule_time must be a valid time (HH:MM)"}
	}

	lead, err := uc.Leads.FindByLeadID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found: " + leadID}
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load lead: " + err.Error()}
	}

	lead.RescheduleDate = parseDate(input.RescheduleDate)
	lead.RescheduleTime = input.RescheduleTime
	lead.RescheduleRemark = strings.TrimSpace(input.Remark)
	lead.UpdatedAt = timeNow()

	if err := uc.Leads.Update(ctx, lead); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist reschedule: " + err.Error()}
	}

	return nil
}
