package record_db

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"picset/domain"
)

func TestFetchRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRecordDBRepository(mock)

	rows := pgxmock.NewRows([]string{"version", "collections"}).
		AddRow(int64(3), []byte(`{"photos":[{"key":"avatar","source_location":"s3://b/p.jpg","content_type":"image/jpeg","size":10,"gravity":"smart","committed":true}]}`))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT version, collections FROM records WHERE record_type = $1 AND record_id = $2`)).
		WithArgs("accounts.user", "42").
		WillReturnRows(rows)

	record, err := repo.FetchRecord(context.Background(), "accounts.user", "42")
	require.NoError(t, err)
	require.EqualValues(t, 3, record.Version)
	require.Len(t, record.Collection("photos"), 1)
	require.Equal(t, "avatar", record.Collection("photos")[0].Key)
	require.True(t, record.Collection("photos")[0].Committed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchRecord_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRecordDBRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT version, collections FROM records WHERE record_type = $1 AND record_id = $2`)).
		WithArgs("accounts.user", "missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.FetchRecord(context.Background(), "accounts.user", "missing")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRecordDBRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO records (record_type, record_id, version, collections) VALUES ($1, $2, 0, '{}'::jsonb)`)).
		WithArgs("accounts.user", "42").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.InsertRecord(context.Background(), "accounts.user", "42"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCollection_BumpsVersion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRecordDBRepository(mock)
	images := domain.Images{{Key: "avatar", SourceLocation: "/tmp/a.jpg", ContentType: "image/jpeg", Gravity: domain.GravitySmart}}

	mock.ExpectExec("UPDATE records").
		WithArgs("photos", pgxmock.AnyArg(), "accounts.user", "42", int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	version, err := repo.UpdateCollection(context.Background(), "accounts.user", "42", "photos", images, 3)
	require.NoError(t, err)
	require.EqualValues(t, 4, version)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCollection_StaleVersion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRecordDBRepository(mock)

	mock.ExpectExec("UPDATE records").
		WithArgs("photos", pgxmock.AnyArg(), "accounts.user", "42", int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err = repo.UpdateCollection(context.Background(), "accounts.user", "42", "photos", domain.Images{}, 3)
	require.ErrorIs(t, err, domain.ErrStaleVersion)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFoldCollection_GuardedByAssignedVersion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRecordDBRepository(mock)

	mock.ExpectExec("UPDATE records").
		WithArgs("photos", pgxmock.AnyArg(), "accounts.user", "42", int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.FoldCollection(context.Background(), "accounts.user", "42", "photos", domain.Images{}, 4))
	require.NoError(t, mock.ExpectationsWereMet())
}
