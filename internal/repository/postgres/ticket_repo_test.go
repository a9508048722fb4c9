package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

func TestTicketRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO sponsor_tickets`).
					WithArgs(int64(5), "48271635", 2026).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
			},
			wantID: 11,
		},
		{
			name: "duplicate ticket number",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO sponsor_tickets`).
					WithArgs(int64(5), "48271635", 2026).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateTicketNumber,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO sponsor_tickets`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTicketRepository(db)
			ticket := &domain.SponsorTicket{SponsorID: 5, TicketNumber: "48271635", Year: 2026}
			err = repo.Create(ctx, ticket)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, ticket.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTicketRepository_CountBySponsor(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sponsor_tickets`).
		WithArgs(int64(5), 2026).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	repo := NewTicketRepository(db)
	count, err := repo.CountBySponsor(ctx, 5, 2026)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_ListBySponsor(t *testing.T) {
	ctx := context.Background()
	sentAt := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM sponsor_tickets`).
		WithArgs(int64(5), 2026).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "sponsor_id", "ticket_number", "recipient_name",
			"recipient_email", "sent_at", "printed_at", "year",
		}).
			AddRow(int64(1), int64(5), "48271635", "Diana Prince", "diana@example.com", sentAt, nil, 2026).
			AddRow(int64(2), int64(5), "90551272", "", "", nil, nil, 2026))

	repo := NewTicketRepository(db)
	tickets, err := repo.ListBySponsor(ctx, 5, 2026)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.True(t, tickets[0].Assigned())
	require.NotNil(t, tickets[0].SentAt)
	assert.Equal(t, sentAt, *tickets[0].SentAt)
	assert.False(t, tickets[1].Assigned())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_Assign(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE sponsor_tickets`).
					WithArgs("Diana Prince", "diana@example.com", int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing ticket",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE sponsor_tickets`).
					WithArgs("Diana Prince", "diana@example.com", int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTicketRepository(db)
			err = repo.Assign(ctx, 1, "Diana Prince", "diana@example.com")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTicketRepository_MarkSent_and_MarkPrinted(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE sponsor_tickets SET sent_at`).
		WithArgs(at, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE sponsor_tickets SET printed_at`).
		WithArgs(at, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewTicketRepository(db)
	require.NoError(t, repo.MarkSent(ctx, 1, at))
	require.NoError(t, repo.MarkPrinted(ctx, 1, at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_ListAssigned(t *testing.T) {
	ctx := context.Background()
	printedAt := time.Date(2026, 1, 22, 9, 30, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM sponsor_tickets t`).
		WithArgs(2026).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "sponsor_id", "ticket_number", "recipient_name",
			"recipient_email", "sent_at", "printed_at", "year",
			"company_name", "tier",
		}).AddRow(int64(1), int64(5), "48271635", "Diana Prince", "", nil, printedAt, 2026, "Acme Corp", "Gold"))

	repo := NewTicketRepository(db)
	guests, err := repo.ListAssigned(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "Acme Corp", guests[0].CompanyName)
	assert.Equal(t, domain.TierGold, guests[0].Tier)
	require.NotNil(t, guests[0].Ticket.PrintedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
