package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/maisonsia/bd-crm/internal/entity"
)

type AssignLeadUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewAssignLeadUseCase(leads entity.LeadRepositoryInterface) *AssignLeadUseCase {
	return &AssignLeadUseCase{Leads: leads}
}

// Execute assigns a lead to a named person. An empty assignee is rejected
// before anything is read or written.
func (uc *AssignLeadUseCase) Execute(ctx context.Context, leadID, assignedTo string) error {
	assignedTo = strings.TrimSpace(assignedTo)
	if assignedTo == "" {
		return &DomainError{Code: "VALIDATION_ERROR", Message: "assigned_to is required"}
	}

	lead, err := uc.Leads.FindByLeadID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found: " + leadID}
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load lead: " + err.Error()}
	}

	lead.AssignedTo = assignedTo
	lead.UpdatedAt = timeNow()

	if err := uc.Leads.Update(ctx, lead); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist assignment: " + err.Error()}
	}

	return nil
}
