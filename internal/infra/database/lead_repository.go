package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/maisonsia/bd-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	lead_id, client_name, architect_name, firm_name, grade, client_type,
	client_mobile, address, bd_name, bd_email,
	meeting_date, meeting_time, remark, assigned_to,
	reschedule_date, reschedule_time, reschedule_remark,
	not_interested, require_letter, email_catalogue, quotation_sent,
	not_interested_remark, require_letter_remark, email_catalogue_remark, quotation_sent_remark,
	require_letter_followup_date, email_catalogue_followup_date,
	email_catalogue_second_followup_date, quotation_followup_date,
	last_followup_update, created_at, updated_at`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25,
		        $26, $27, $28, $29, $30, $31, $32)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.LeadID,
		nullString(lead.ClientName),
		nullString(lead.ArchitectName),
		nullString(lead.FirmName),
		nullString(lead.Grade),
		nullString(lead.ClientType),
		nullString(lead.ClientMobile),
		nullString(lead.Address),
		nullString(lead.BDName),
		nullString(lead.BDEmail),
		lead.MeetingDate,
		nullString(lead.MeetingTime),
		nullString(lead.Remark),
		nullString(lead.AssignedTo),
		lead.RescheduleDate,
		nullString(lead.RescheduleTime),
		nullString(lead.RescheduleRemark),
		lead.NotInterested,
		lead.RequireLetter,
		lead.EmailCatalogue,
		lead.QuotationSent,
		nullString(lead.NotInterestedRemark),
		nullString(lead.RequireLetterRemark),
		nullString(lead.EmailCatalogueRemark),
		nullString(lead.QuotationSentRemark),
		lead.RequireLetterFollowUpDate,
		lead.CatalogueFirstFollowUpDate,
		lead.CatalogueSecondFollowUpDate,
		lead.QuotationFollowUpDate,
		nullString(lead.LastFollowUpUpdate),
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrDuplicateLeadID
		}
		return err
	}
	return nil
}

func (r *LeadRepository) FindByLeadID(ctx context.Context, leadID string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE lead_id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, leadID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			client_name = $2, architect_name = $3, firm_name = $4, grade = $5,
			client_type = $6, client_mobile = $7, address = $8,
			bd_name = $9, bd_email = $10,
			meeting_date = $11, meeting_time = $12, remark = $13,
			assigned_to = $14,
			reschedule_date = $15, reschedule_time = $16, reschedule_remark = $17,
			not_interested = $18, require_letter = $19, email_catalogue = $20, quotation_sent = $21,
			not_interested_remark = $22, require_letter_remark = $23,
			email_catalogue_remark = $24, quotation_sent_remark = $25,
			require_letter_followup_date = $26, email_catalogue_followup_date = $27,
			email_catalogue_second_followup_date = $28, quotation_followup_date = $29,
			last_followup_update = $30, updated_at = $31
		WHERE lead_id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		lead.LeadID,
		nullString(lead.ClientName),
		nullString(lead.ArchitectName),
		nullString(lead.FirmName),
		nullString(lead.Grade),
		nullString(lead.ClientType),
		nullString(lead.ClientMobile),
		nullString(lead.Address),
		nullString(lead.BDName),
		nullString(lead.BDEmail),
		lead.MeetingDate,
		nullString(lead.MeetingTime),
		nullString(lead.Remark),
		nullString(lead.AssignedTo),
		lead.RescheduleDate,
		nullString(lead.RescheduleTime),
		nullString(lead.RescheduleRemark),
		lead.NotInterested,
		lead.RequireLetter,
		lead.EmailCatalogue,
		lead.QuotationSent,
		nullString(lead.NotInterestedRemark),
		nullString(lead.RequireLetterRemark),
		nullString(lead.EmailCatalogueRemark),
		nullString(lead.QuotationSentRemark),
		lead.RequireLetterFollowUpDate,
		lead.CatalogueFirstFollowUpDate,
		lead.CatalogueSecondFollowUpDate,
		lead.QuotationFollowUpDate,
		nullString(lead.LastFollowUpUpdate),
		lead.UpdatedAt,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY updated_at DESC LIMIT $1`
	return r.queryLeads(ctx, query, limit)
}

func (r *LeadRepository) FindUnassigned(ctx context.Context) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE assigned_to IS NULL OR assigned_to = ''
		ORDER BY created_at ASC`
	return r.queryLeads(ctx, query)
}

// FindDueFollowUps matches on date equality only. There is no <= catch-up: a
// day with no scan keeps that day's reminders unsent.
func (r *LeadRepository) FindDueFollowUps(ctx context.Context, due time.Time) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE require_letter_followup_date = $1
		   OR email_catalogue_followup_date = $1
		   OR email_catalogue_second_followup_date = $1
		   OR quotation_followup_date = $1`
	return r.queryLeads(ctx, query, due)
}

func (r *LeadRepository) Stats(ctx context.Context, asOf time.Time) (*entity.LeadStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE assigned_to IS NOT NULL AND assigned_to <> ''),
			COUNT(*) FILTER (WHERE assigned_to IS NULL OR assigned_to = ''),
			COUNT(*) FILTER (WHERE require_letter_followup_date <= $1
				OR email_catalogue_followup_date <= $1
				OR email_catalogue_second_followup_date <= $1
				OR quotation_followup_date <= $1)
		FROM leads
	`

	stats := &entity.LeadStats{}
	err := r.DB.QueryRowContext(ctx, query, asOf).Scan(
		&stats.Total,
		&stats.Assigned,
		&stats.Unassigned,
		&stats.PendingFollowUps,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *LeadRepository) queryLeads(ctx context.Context, query string, args ...interface{}) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var (
		clientName, architectName, firmName, grade, clientType  sql.NullString
		clientMobile, address, bdName, bdEmail                  sql.NullString
		meetingTime, remark, assignedTo                         sql.NullString
		rescheduleTime, rescheduleRemark                        sql.NullString
		niRemark, rlRemark, ecRemark, qsRemark, lastUpdate      sql.NullString
		meetingDate, rescheduleDate                             sql.NullTime
		rlFollowUp, ecFirstFollowUp, ecSecondFollowUp, qFollowUp sql.NullTime
	)

	err := row.Scan(
		&lead.LeadID,
		&clientName, &architectName, &firmName, &grade, &clientType,
		&clientMobile, &address, &bdName, &bdEmail,
		&meetingDate, &meetingTime, &remark, &assignedTo,
		&rescheduleDate, &rescheduleTime, &rescheduleRemark,
		&lead.NotInterested, &lead.RequireLetter, &lead.EmailCatalogue, &lead.QuotationSent,
		&niRemark, &rlRemark, &ecRemark, &qsRemark,
		&rlFollowUp, &ecFirstFollowUp, &ecSecondFollowUp, &qFollowUp,
		&lastUpdate, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.ClientName = clientName.String
	lead.ArchitectName = architectName.String
	lead.FirmName = firmName.String
	lead.Grade = grade.String
	lead.ClientType = clientType.String
	lead.ClientMobile = clientMobile.String
	lead.Address = address.String
	lead.BDName = bdName.String
	lead.BDEmail = bdEmail.String
	lead.MeetingTime = meetingTime.String
	lead.Remark = remark.String
	lead.AssignedTo = assignedTo.String
	lead.RescheduleTime = rescheduleTime.String
	lead.RescheduleRemark = rescheduleRemark.String
	lead.NotInterestedRemark = niRemark.String
	lead.RequireLetterRemark = rlRemark.String
	lead.EmailCatalogueRemark = ecRemark.String
	lead.QuotationSentRemark = qsRemark.String
	lead.LastFollowUpUpdate = lastUpdate.String
	lead.MeetingDate = timePtr(meetingDate)
	lead.RescheduleDate = timePtr(rescheduleDate)
	lead.RequireLetterFollowUpDate = timePtr(rlFollowUp)
	lead.CatalogueFirstFollowUpDate = timePtr(ecFirstFollowUp)
	lead.CatalogueSecondFollowUpDate = timePtr(ecSecondFollowUp)
	lead.QuotationFollowUpDate = timePtr(qFollowUp)

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
