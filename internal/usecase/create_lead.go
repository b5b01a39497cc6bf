package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/maisonsia/bd-crm/internal/entity"
)

type CreateLeadInput struct {
	ClientName    string `json:"client_name"`
	ArchitectName string `json:"architect_name"`
	FirmName      string `json:"firm_name"`
	Grade         string `json:"grade"`
	ClientType    string `json:"client_type"`
	BDName        string `json:"bd_name"`
	BDEmail       string `json:"bd_email"`
	ClientMobile  string `json:"client_mobile"`
	Address       string `json:"address"`
	MeetingDate   string `json:"meeting_date"` // YYYY-MM-DD
	MeetingTime   string `json:"meeting_time"` // HH:MM
	Remark        string `json:"remark"`
}

type CreateLeadOutput struct {
	LeadID    string    `json:"lead_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateLeadUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewCreateLeadUseCase(leads entity.LeadRepositoryInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{Leads: leads}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if validationErrors := ValidateCreateLeadInput(input); len(validationErrors) > 0 {
		return nil, validationDomainError(validationErrors)
	}

	lead := entity.NewLead()
	lead.ClientName = strings.TrimSpace(input.ClientName)
	lead.ArchitectName = strings.TrimSpace(input.ArchitectName)
	lead.FirmName = strings.TrimSpace(input.FirmName)
	lead.Grade = input.Grade
	lead.ClientType = input.ClientType
	lead.BDName = strings.TrimSpace(input.BDName)
	lead.BDEmail = strings.TrimSpace(input.BDEmail)
	lead.ClientMobile = strings.TrimSpace(input.ClientMobile)
	lead.Address = strings.TrimSpace(input.Address)
	lead.MeetingDate = parseDate(input.MeetingDate)
	lead.MeetingTime = input.MeetingTime
	lead.Remark = strings.TrimSpace(input.Remark)

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
		}
	}

	return &CreateLeadOutput{
		LeadID:    lead.LeadID,
		CreatedAt: lead.CreatedAt,
	}, nil
}
