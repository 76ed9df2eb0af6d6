package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollegeMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var collegeColumns = []string{"college", "university_name", "state", "seats", "tuition_fee", "hostel_charges_pa", "annual", "one_time",
	"tuition_package", "grand_total", "opening_rank_2023", "closing_rank_2023", "website", "overview"}

func TestCollegeSQLRepositoryLoad(t *testing.T) {
	db, mock, cleanup := newCollegeMock(t)
	defer cleanup()
	repo := NewCollegeSQLRepository(db)

	rows := sqlmock.NewRows(collegeColumns).
		AddRow("Alpha Medical College", "Alpha University", "Goa", 100, 1500000, nil, nil, nil, nil, 2500000, 10, 900, "https://alpha.test", "").
		AddRow("Beta College", "", "Kerala", nil, nil, nil, nil, nil, nil, nil, nil, nil, "", "")
	mock.ExpectQuery(regexp.QuoteMeta(selectCollegesQuery)).WillReturnRows(rows)

	colleges, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, colleges, 2)
	assert.Equal(t, "Alpha Medical College", colleges[0].Name)
	require.NotNil(t, colleges[0].ClosingRank)
	assert.Equal(t, int64(900), *colleges[0].ClosingRank)
	assert.Nil(t, colleges[0].HostelChargesPA)
	assert.Nil(t, colleges[1].ClosingRank)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeSQLRepositoryLoadError(t *testing.T) {
	db, mock, cleanup := newCollegeMock(t)
	defer cleanup()
	repo := NewCollegeSQLRepository(db)

	mock.ExpectQuery("SELECT college").WillReturnError(errors.New("relation does not exist"))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list colleges")
	assert.NoError(t, mock.ExpectationsWereMet())
}
