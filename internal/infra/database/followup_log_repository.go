package database

import (
	"context"
	"database/sql"

	"github.com/maisonsia/bd-crm/internal/entity"
)

type FollowUpLogRepository struct {
	DB *sql.DB
}

func NewFollowUpLogRepository(db *sql.DB) *FollowUpLogRepository {
	return &FollowUpLogRepository{DB: db}
}

func (r *FollowUpLogRepository) Create(ctx context.Context, log *entity.FollowUpLog) error {
	query := `
		INSERT INTO followup_logs
			(id, lead_id, followup_type, scheduled_date, sent_date, status, email_sent_to, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		log.ID,
		log.LeadID,
		string(log.Category),
		log.ScheduledDate,
		log.SentAt,
		log.Status,
		nullString(log.EmailSentTo),
		nullString(log.Notes),
		log.CreatedAt,
	)
	return err
}

// Delete exists only as the compensation for a failed quotation commit. The
// log is append-only everywhere else.
func (r *FollowUpLogRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM followup_logs WHERE id = $1`, id)
	return err
}

func (r *FollowUpLogRepository) FindByLeadID(ctx context.Context, leadID string) ([]*entity.FollowUpLog, error) {
	query := `
		SELECT id, lead_id, followup_type, scheduled_date, sent_date, status, email_sent_to, notes, created_at
		FROM followup_logs
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*entity.FollowUpLog
	for rows.Next() {
		var entry entity.FollowUpLog
		var category string
		var sentAt sql.NullTime
		var emailSentTo, notes sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.LeadID,
			&category,
			&entry.ScheduledDate,
			&sentAt,
			&entry.Status,
			&emailSentTo,
			&notes,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		entry.Category = entity.FollowUpCategory(category)
		entry.EmailSentTo = emailSentTo.String
		entry.Notes = notes.String
		if sentAt.Valid {
			t := sentAt.Time
			entry.SentAt = &t
		}
		logs = append(logs, &entry)
	}
	return logs, rows.Err()
}
