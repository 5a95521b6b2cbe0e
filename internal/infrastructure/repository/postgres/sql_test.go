package postgres

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

func TestNormalizeLimit(t *testing.T) {
	require.Equal(t, 5, normalizeLimit(0, 5, 50))
	require.Equal(t, 50, normalizeLimit(500, 5, 50))
	require.Equal(t, 7, normalizeLimit(7, 5, 50))
	require.Equal(t, 1000, normalizeLimit(1000, 5, 0))
}

func TestNullableString(t *testing.T) {
	require.Nil(t, nullableString("  "))
	require.Equal(t, "ENG", *nullableString(" ENG "))
	require.Equal(t, "", stringValue(nil))
}

func TestOverwriteSuffix(t *testing.T) {
	got := overwriteSuffix(seasonTableModel{}, "league_id", "season_year")
	require.Equal(t,
		"ON CONFLICT (league_id, season_year) DO UPDATE SET season_name = EXCLUDED.season_name, start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date, is_current = EXCLUDED.is_current",
		got,
	)
}
