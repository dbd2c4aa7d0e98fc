package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unipub/pubmeta-api/internal/models"
)

func newJournalRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestJournalRepositoryList(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()
	repo := NewJournalRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "issn", "eissn", "created_at", "updated_at"}).
		AddRow("j1", "Acta Informatica", "0001-5903", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, issn, eissn, created_at, updated_at FROM journals WHERE 1=1 ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM journals WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.JournalFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepositoryListWithSearch(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()
	repo := NewJournalRepository(db)

	mock.ExpectQuery("SELECT id, title, issn, eissn, created_at, updated_at FROM journals WHERE 1=1 AND").
		WithArgs("%acta%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "issn", "eissn", "created_at", "updated_at"}))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%acta%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, total, err := repo.List(context.Background(), models.JournalFilter{Search: "Acta"})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepositoryFindByISSN(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()
	repo := NewJournalRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "issn", "eissn", "created_at", "updated_at"}).
		AddRow("j1", "Acta Informatica", "0001-5903", "1432-0525", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, issn, eissn, created_at, updated_at FROM journals WHERE issn = $1 LIMIT 1")).
		WithArgs("0001-5903").
		WillReturnRows(rows)

	journal, err := repo.FindByISSN(context.Background(), "0001-5903")
	require.NoError(t, err)
	assert.Equal(t, "j1", journal.ID)
	require.NotNil(t, journal.EISSN)
	assert.Equal(t, "1432-0525", *journal.EISSN)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()
	repo := NewJournalRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, issn, eissn, created_at, updated_at FROM journals WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepositorySearchByTitle(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()
	repo := NewJournalRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "issn", "eissn", "created_at", "updated_at"}).
		AddRow("j1", "Journal of Informatics", "1111-2222", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, issn, eissn, created_at, updated_at FROM journals WHERE LOWER(title) LIKE $1 ORDER BY title ASC")).
		WithArgs("%informatics%").
		WillReturnRows(rows)

	journals, err := repo.SearchByTitle(context.Background(), "Informatics")
	require.NoError(t, err)
	assert.Len(t, journals, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepositoryExistsByISSN(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()
	repo := NewJournalRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM journals WHERE issn = $1 LIMIT 1")).
		WithArgs("0001-5903").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsByISSN(context.Background(), "0001-5903", "")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM journals WHERE issn = $1 AND id <> $2 LIMIT 1")).
		WithArgs("0001-5903", "j1").
		WillReturnError(sql.ErrNoRows)

	exists, err = repo.ExistsByISSN(context.Background(), "0001-5903", "j1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepositoryCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()
	repo := NewJournalRepository(db)

	mock.ExpectExec("INSERT INTO journals").
		WithArgs(sqlmock.AnyArg(), "Acta Informatica", "0001-5903", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	journal := &models.Journal{Title: "Acta Informatica", ISSN: "0001-5903"}
	require.NoError(t, repo.Create(context.Background(), journal))
	assert.NotEmpty(t, journal.ID)

	mock.ExpectExec("DELETE FROM journals").
		WithArgs("j1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Rows affected is not inspected: deleting a missing row succeeds.
	require.NoError(t, repo.Delete(context.Background(), "j1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
