package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/league"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/player"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/venue"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newRegexMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

func TestUpsertRows_SplitsIntoBatchesInOneTx(t *testing.T) {
	db, mock := newRegexMockDB(t)
	repo := NewLeagueRepository(db)

	items := make([]league.League, 0, 150)
	for i := 1; i <= 150; i++ {
		items = append(items, league.League{LeagueID: int64(i), Name: fmt.Sprintf("League %d", i)})
	}

	mock.ExpectBegin()
	mock.ExpectExec(`^INSERT INTO leagues \(league_id, league_name, .*\$800\) ON CONFLICT \(league_id\) DO UPDATE SET league_name = EXCLUDED\.league_name`).
		WillReturnResult(sqlmock.NewResult(0, 100))
	mock.ExpectExec(`^INSERT INTO leagues .*\$400\) ON CONFLICT \(league_id\)`).
		WillReturnResult(sqlmock.NewResult(0, 50))
	mock.ExpectCommit()

	require.NoError(t, repo.UpsertMany(context.Background(), items))
}

func TestUpsertRows_RollsBackOnError(t *testing.T) {
	db, mock := newRegexMockDB(t)
	repo := NewLeagueRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`^INSERT INTO leagues`).WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := repo.UpsertMany(context.Background(), []league.League{{LeagueID: 39, Name: "Premier League"}})
	require.ErrorContains(t, err, "upsert leagues rows 0-0")
}

func TestUpsertRows_EmptyIsNoop(t *testing.T) {
	db, _ := newRegexMockDB(t)
	require.NoError(t, NewLeagueRepository(db).UpsertMany(context.Background(), nil))
}

func TestVenueRepository_UpsertPartialKeepsRicherColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepository(db)
	city := "London"

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO dim_venues (venue_id, venue_name, city) VALUES ($1, $2, $3) ON CONFLICT (venue_id) DO UPDATE SET venue_name = EXCLUDED.venue_name, city = COALESCE(EXCLUDED.city, dim_venues.city)").
		WithArgs(int64(494), "Emirates Stadium", &city).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpsertPartial(context.Background(), []venue.Venue{{VenueID: 494, Name: "Emirates Stadium", City: &city}}))
}

func TestPlayerRepository_UpsertSkeletonsOnlyTouchesNameAndPhoto(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlayerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO dim_players (player_id, player_name, photo_url) VALUES ($1, $2, $3) ON CONFLICT (player_id) DO UPDATE SET player_name = EXCLUDED.player_name, photo_url = COALESCE(EXCLUDED.photo_url, dim_players.photo_url)").
		WithArgs(int64(1460), "B. Saka", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpsertSkeletons(context.Background(), []player.Player{{PlayerID: 1460, Name: "B. Saka"}}))
}
