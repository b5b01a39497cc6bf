package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonsia/bd-crm/internal/entity"
)

func newLeadRepoMock(t *testing.T) (*LeadRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewLeadRepository(db), mock, func() { db.Close() }
}

var leadColumnNames = []string{
	"lead_id", "client_name", "architect_name", "firm_name", "grade", "client_type",
	"client_mobile", "address", "bd_name", "bd_email",
	"meeting_date", "meeting_time", "remark", "assigned_to",
	"reschedule_date", "reschedule_time", "reschedule_remark",
	"not_interested", "require_letter", "email_catalogue", "quotation_sent",
	"not_interested_remark", "require_letter_remark", "email_catalogue_remark", "quotation_sent_remark",
	"require_letter_followup_date", "email_catalogue_followup_date",
	"email_catalogue_second_followup_date", "quotation_followup_date",
	"last_followup_update", "created_at", "updated_at",
}

func addLeadRow(rows *sqlmock.Rows, leadID string, now time.Time) *sqlmock.Rows {
	return rows.AddRow(
		leadID, "Ravi Kumar", nil, "Kumar Interiors", "A", "architect",
		"9876543210", nil, "Naved", "naved@example.com",
		nil, "14:30", nil, nil,
		nil, nil, nil,
		false, false, true, false,
		nil, nil, "wants catalogue", nil,
		nil, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), nil,
		nil, now, now,
	)
}

func TestLeadRepositoryCreate(t *testing.T) {
	repo, mock, cleanup := newLeadRepoMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO leads").
		WillReturnResult(sqlmock.NewResult(0, 1))

	lead := entity.NewLead()
	lead.ClientName = "Ravi Kumar"
	err := repo.Create(context.Background(), lead)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryCreateDuplicateID(t *testing.T) {
	repo, mock, cleanup := newLeadRepoMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO leads").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), entity.NewLead())

	assert.ErrorIs(t, err, entity.ErrDuplicateLeadID)
}

func TestLeadRepositoryFindByLeadID(t *testing.T) {
	repo, mock, cleanup := newLeadRepoMock(t)
	defer cleanup()

	now := time.Now()
	rows := addLeadRow(sqlmock.NewRows(leadColumnNames), "AB12CD34", now)
	mock.ExpectQuery("FROM leads WHERE lead_id").
		WithArgs("AB12CD34").
		WillReturnRows(rows)

	lead, err := repo.FindByLeadID(context.Background(), "AB12CD34")
	require.NoError(t, err)

	assert.Equal(t, "AB12CD34", lead.LeadID)
	assert.Equal(t, "Ravi Kumar", lead.ClientName)
	assert.Empty(t, lead.ArchitectName)
	assert.True(t, lead.EmailCatalogue)
	require.NotNil(t, lead.CatalogueFirstFollowUpDate)
	assert.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), *lead.CatalogueFirstFollowUpDate)
	assert.Nil(t, lead.QuotationFollowUpDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryFindByLeadIDNotFound(t *testing.T) {
	repo, mock, cleanup := newLeadRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("FROM leads WHERE lead_id").
		WithArgs("MISSING1").
		WillReturnError(sql.ErrNoRows)

	lead, err := repo.FindByLeadID(context.Background(), "MISSING1")

	assert.Nil(t, lead)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestLeadRepositoryUpdateUnknownLead(t *testing.T) {
	repo, mock, cleanup := newLeadRepoMock(t)
	defer cleanup()

	mock.ExpectExec("UPDATE leads SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), entity.NewLead())

	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestLeadRepositoryFindDueFollowUps(t *testing.T) {
	repo, mock, cleanup := newLeadRepoMock(t)
	defer cleanup()

	due := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	rows := sqlmock.NewRows(leadColumnNames)
	addLeadRow(rows, "AB12CD34", now)
	addLeadRow(rows, "EF56GH78", now)

	mock.ExpectQuery("FROM leads").
		WithArgs(due).
		WillReturnRows(rows)

	leads, err := repo.FindDueFollowUps(context.Background(), due)
	require.NoError(t, err)

	assert.Len(t, leads, 2)
	assert.Equal(t, "AB12CD34", leads[0].LeadID)
	assert.Equal(t, "EF56GH78", leads[1].LeadID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryStats(t *testing.T) {
	repo, mock, cleanup := newLeadRepoMock(t)
	defer cleanup()

	asOf := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"total", "assigned", "unassigned", "pending"}).
		AddRow(12, 7, 5, 3)

	mock.ExpectQuery("SELECT").
		WithArgs(asOf).
		WillReturnRows(rows)

	stats, err := repo.Stats(context.Background(), asOf)
	require.NoError(t, err)

	assert.Equal(t, 12, stats.Total)
	assert.Equal(t, 7, stats.Assigned)
	assert.Equal(t, 5, stats.Unassigned)
	assert.Equal(t, 3, stats.PendingFollowUps)
}
