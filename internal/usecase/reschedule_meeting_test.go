package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/maisonsia/bd-crm/internal/entity"
	"github.com/maisonsia/bd-crm/internal/usecase"
)

func TestRescheduleMeetingOverwritesPreviousReschedule(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	lead := &entity.Lead{
		LeadID:           "AB12CD34",
		RescheduleDate:   datePtr(2024, time.January, 3),
		RescheduleTime:   "10:00",
		RescheduleRemark: "client travelling",
	}

	leads.On("FindByLeadID", ctx, "AB12CD34").Return(lead, nil)
	leads.On("Update", ctx, lead).Return(nil)

	uc := usecase.NewRescheduleMeetingUseCase(leads)
	err := uc.Execute(ctx, "AB12CD34", usecase.RescheduleMeetingInput{
		RescheduleDate: "2024-01-10",
		RescheduleTime: "16:00",
		Remark:         "site visit moved",
	})

	assert.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 10), *lead.RescheduleDate)
	assert.Equal(t, "16:00", lead.RescheduleTime)
	assert.Equal(t, "site visit moved", lead.RescheduleRemark)
	leads.AssertExpectations(t)
}

func TestRescheduleMeetingLeavesFollowUpsAlone(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	lead := &entity.Lead{
		LeadID:                "AB12CD34",
		QuotationSent:         true,
		QuotationFollowUpDate: datePtr(2024, time.January, 16),
	}

	leads.On("FindByLeadID", ctx, "AB12CD34").Return(lead, nil)
	leads.On("Update", ctx, lead).Return(nil)

	uc := usecase.NewRescheduleMeetingUseCase(leads)
	err := uc.Execute(ctx, "AB12CD34", usecase.RescheduleMeetingInput{
		RescheduleDate: "2024-02-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 16), *lead.QuotationFollowUpDate)
	assert.True(t, lead.QuotationSent)
}

func TestRescheduleMeetingValidatesFormats(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.RescheduleMeetingInput
	}{
		{"bad date", usecase.RescheduleMeetingInput{RescheduleDate: "10-01-2024"}},
		{"bad time", usecase.RescheduleMeetingInput{RescheduleTime: "4 o'clock"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leads := new(MockLeadRepository)
			uc := usecase.NewRescheduleMeetingUseCase(leads)

			err := uc.Execute(context.Background(), "AB12CD34", tt.input)

			assert.True(t, usecase.IsDomainError(err))
			leads.AssertNotCalled(t, "FindByLeadID", mock.Anything, mock.Anything)
		})
	}
}
