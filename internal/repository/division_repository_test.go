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

func newDivisionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestDivisionRepositoryListByInstituteFilter(t *testing.T) {
	db, mock, cleanup := newDivisionRepoMock(t)
	defer cleanup()
	repo := NewDivisionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "institute_id", "created_at", "updated_at"}).
		AddRow("d1", "Databases", "i1", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, name, institute_id, created_at, updated_at FROM divisions WHERE 1=1 AND institute_id =").
		WithArgs("i1").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("i1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.DivisionFilter{InstituteID: "i1"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDivisionRepositoryListByInstitute(t *testing.T) {
	db, mock, cleanup := newDivisionRepoMock(t)
	defer cleanup()
	repo := NewDivisionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "institute_id", "created_at", "updated_at"}).
		AddRow("d1", "Databases", "i1", time.Now(), time.Now()).
		AddRow("d2", "Networks", "i1", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, institute_id, created_at, updated_at FROM divisions WHERE institute_id = $1 ORDER BY name ASC")).
		WithArgs("i1").
		WillReturnRows(rows)

	divisions, err := repo.ListByInstitute(context.Background(), "i1")
	require.NoError(t, err)
	assert.Len(t, divisions, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDivisionRepositoryFindDetailByID(t *testing.T) {
	db, mock, cleanup := newDivisionRepoMock(t)
	defer cleanup()
	repo := NewDivisionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "institute_id", "created_at", "updated_at", "institute_name"}).
		AddRow("d1", "Databases", "i1", time.Now(), time.Now(), "Institute of Informatics")
	mock.ExpectQuery("SELECT d.id, d.name, d.institute_id, d.created_at, d.updated_at, i.name AS institute_name").
		WithArgs("d1").
		WillReturnRows(rows)

	detail, err := repo.FindDetailByID(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "Institute of Informatics", detail.InstituteName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDivisionRepositoryExists(t *testing.T) {
	db, mock, cleanup := newDivisionRepoMock(t)
	defer cleanup()
	repo := NewDivisionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM divisions WHERE id = $1 LIMIT 1")).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "d1")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM divisions WHERE id = $1 LIMIT 1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	exists, err = repo.Exists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDivisionRepositoryCreateAndUpdate(t *testing.T) {
	db, mock, cleanup := newDivisionRepoMock(t)
	defer cleanup()
	repo := NewDivisionRepository(db)

	mock.ExpectExec("INSERT INTO divisions").
		WithArgs(sqlmock.AnyArg(), "Databases", "i1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	division := &models.Division{Name: "Databases", InstituteID: "i1"}
	require.NoError(t, repo.Create(context.Background(), division))
	assert.NotEmpty(t, division.ID)

	mock.ExpectExec("UPDATE divisions SET").
		WithArgs("Data Engineering", "i1", sqlmock.AnyArg(), division.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	division.Name = "Data Engineering"
	require.NoError(t, repo.Update(context.Background(), division))
	assert.NoError(t, mock.ExpectationsWereMet())
}
