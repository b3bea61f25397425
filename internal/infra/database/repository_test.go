package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refinly/loan-referral/internal/entity"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestLeadRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO leads`).
		WithArgs(int64(7), "Aina", 35, 150000.0, 20, 1200.0, "New").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))
	mock.ExpectCommit()

	lead := entity.NewLead(7, "Aina", 35, 150000, 20, 1200)
	err := repo.Create(context.Background(), lead)

	require.NoError(t, err)
	assert.Equal(t, int64(42), lead.ID)
	assert.Equal(t, now, lead.CreatedAt)
	assert.Equal(t, entity.LeadStatusNew, lead.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryCreateRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO leads`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), entity.NewLead(7, "Aina", 35, 150000, 20, 1200))

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryCreateUnknownReferrer(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO leads`).WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), entity.NewLead(999, "Aina", 35, 150000, 20, 1200))

	assert.ErrorIs(t, err, entity.ErrReferrerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryCreateCommitFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO leads`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := repo.Create(context.Background(), entity.NewLead(7, "Aina", 35, 150000, 20, 1200))

	assert.ErrorContains(t, err, "commit lead")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryListStale(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)
	cutoff := time.Now().Add(-48 * time.Hour)
	created := cutoff.Add(-time.Hour)

	cols := []string{"id", "referrer_id", "name", "age", "loan_amount", "loan_tenure", "current_repayment", "status", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT (.+) FROM leads WHERE status = \$1 AND created_at < \$2`).
		WithArgs("New", cutoff).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(3), int64(7), "Aina", 35, 150000.0, 20, 1200.0, "New", created, created))

	leads, err := repo.ListStale(context.Background(), entity.LeadStatusNew, cutoff)

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, int64(3), leads[0].ID)
	assert.Equal(t, entity.LeadStatusNew, leads[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBankPackageRepositoryFindAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBankPackageRepository(db)

	cols := []string{"id", "name", "min_amount", "max_amount", "interest_rate", "tenure_options"}
	mock.ExpectQuery(`SELECT (.+) FROM bank_packages`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), "Home Saver", 50000.0, 500000.0, 4.2, []byte("{10,20,30}")).
			AddRow(int64(2), "Quick Cash", 5000.0, 50000.0, 7.5, []byte("{1,3,5}")))

	packages, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, packages, 2)
	assert.Equal(t, "Home Saver", packages[0].Name)
	assert.Equal(t, []int{10, 20, 30}, packages[0].TenureOptions)
	assert.Equal(t, []int{1, 3, 5}, packages[1].TenureOptions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Farah", "farah@example.com", "hash", "referrer").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &entity.User{
		Name: "Farah", Email: "Farah@Example.com", PasswordHash: "hash", Role: entity.RoleReferrer,
	})

	assert.ErrorIs(t, err, entity.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("farah@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "created_at"}).
			AddRow(int64(7), "Farah", "farah@example.com", "hash", "referrer", now))

	u, err := repo.FindByEmail(context.Background(), " FARAH@example.com ")

	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, entity.RoleReferrer, u.Role)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "created_at"}))

	_, err := repo.FindByID(context.Background(), 404)

	assert.ErrorIs(t, err, entity.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
