package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StatusKind names one of the four independent meeting-status flags.
type StatusKind string

const (
	StatusNotInterested  StatusKind = "not_interested"
	StatusRequireLetter  StatusKind = "require_letter"
	StatusEmailCatalogue StatusKind = "email_catalogue"
	StatusQuotationSent  StatusKind = "quotation_sent"
)

// FollowUpCategory names one of the reminder schedules a lead can carry.
// email_catalogue sets two of them (first call and final call).
type FollowUpCategory string

const (
	FollowUpRequireLetter   FollowUpCategory = "require_letter"
	FollowUpCatalogueFirst  FollowUpCategory = "email_catalogue_first"
	FollowUpCatalogueSecond FollowUpCategory = "email_catalogue_second"
	FollowUpQuotation       FollowUpCategory = "quotation"
)

type Lead struct {
	LeadID string `json:"lead_id"`

	ClientName    string `json:"client_name,omitempty"`
	ArchitectName string `json:"architect_name,omitempty"`
	FirmName      string `json:"firm_name,omitempty"`
	Grade         string `json:"grade,omitempty"`
	ClientType    string `json:"client_type,omitempty"`
	ClientMobile  string `json:"client_mobile,omitempty"`
	Address       string `json:"address,omitempty"`

	BDName  string `json:"bd_name,omitempty"`
	BDEmail string `json:"bd_email,omitempty"`

	MeetingDate *time.Time `json:"meeting_date,omitempty"`
	MeetingTime string     `json:"meeting_time,omitempty"`
	Remark      string     `json:"remark,omitempty"`

	AssignedTo string `json:"assigned_to,omitempty"`

	RescheduleDate   *time.Time `json:"reschedule_date,omitempty"`
	RescheduleTime   string     `json:"reschedule_time,omitempty"`
	RescheduleRemark string     `json:"reschedule_remark,omitempty"`

	NotInterested  bool `json:"not_interested"`
	RequireLetter  bool `json:"require_letter"`
	EmailCatalogue bool `json:"email_catalogue"`
	QuotationSent  bool `json:"quotation_sent"`

	NotInterestedRemark  string `json:"not_interested_remark,omitempty"`
	RequireLetterRemark  string `json:"require_letter_remark,omitempty"`
	EmailCatalogueRemark string `json:"email_catalogue_remark,omitempty"`
	QuotationSentRemark  string `json:"quotation_sent_remark,omitempty"`

	RequireLetterFollowUpDate   *time.Time `json:"require_letter_followup_date,omitempty"`
	CatalogueFirstFollowUpDate  *time.Time `json:"email_catalogue_followup_date,omitempty"`
	CatalogueSecondFollowUpDate *time.Time `json:"email_catalogue_second_followup_date,omitempty"`
	QuotationFollowUpDate       *time.Time `json:"quotation_followup_date,omitempty"`

	LastFollowUpUpdate string `json:"last_followup_update,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLead assigns the short uppercase lead identifier and the audit timestamps.
func NewLead() *Lead {
	now := time.Now()
	return &Lead{
		LeadID:    strings.ToUpper(uuid.New().String()[:8]),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Flag reports the current value of one status flag.
func (l *Lead) Flag(kind StatusKind) bool {
	switch kind {
	case StatusNotInterested:
		return l.NotInterested
	case StatusRequireLetter:
		return l.RequireLetter
	case StatusEmailCatalogue:
		return l.EmailCatalogue
	case StatusQuotationSent:
		return l.QuotationSent
	}
	return false
}

// FollowUpDate returns the stored follow-up date for a category, nil when unscheduled.
func (l *Lead) FollowUpDate(category FollowUpCategory) *time.Time {
	switch category {
	case FollowUpRequireLetter:
		return l.RequireLetterFollowUpDate
	case FollowUpCatalogueFirst:
		return l.CatalogueFirstFollowUpDate
	case FollowUpCatalogueSecond:
		return l.CatalogueSecondFollowUpDate
	case FollowUpQuotation:
		return l.QuotationFollowUpDate
	}
	return nil
}

// LeadStats carries the dashboard counters.
type LeadStats struct {
	Total            int `json:"total_leads"`
	Assigned         int `json:"assigned_leads"`
	Unassigned       int `json:"unassigned_leads"`
	PendingFollowUps int `json:"pending_followups"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByLeadID(ctx context.Context, leadID string) (*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	FindRecent(ctx context.Context, limit int) ([]*Lead, error)
	FindUnassigned(ctx context.Context) ([]*Lead, error)

	// FindDueFollowUps matches by exact date equality, not <=. A scan skipped
	// for a day permanently misses that day's reminders.
	FindDueFollowUps(ctx context.Context, due time.Time) ([]*Lead, error)

	Stats(ctx context.Context, asOf time.Time) (*LeadStats, error)
}
