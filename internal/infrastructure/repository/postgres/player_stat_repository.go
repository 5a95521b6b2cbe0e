package postgres

import (
	"context"
	"fmt"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/playerstat"
	qb "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type PlayerStatRepository struct {
	db *sqlx.DB
}

func NewPlayerStatRepository(db *sqlx.DB) *PlayerStatRepository {
	return &PlayerStatRepository{db: db}
}

func (r *PlayerStatRepository) UpsertMany(ctx context.Context, items []playerstat.Stat) error {
	rows := make([]playerStatTableModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, toPlayerStatTableModel(item))
	}
	return upsertRows(ctx, r.db, "fact_player_stats", rows, overwriteSuffix(playerStatTableModel{}, "fixture_id", "player_id"))
}

func (r *PlayerStatRepository) ListRecentByPlayer(ctx context.Context, playerID int64, limit int) ([]playerstat.MatchLine, error) {
	statCols, err := qb.Columns(playerStatTableModel{})
	if err != nil {
		return nil, fmt.Errorf("player stat columns: %w", err)
	}
	cols := append(prefixColumns("s", statCols),
		"m.match_date",
		"h.team_name AS home_team",
		"a.team_name AS away_team",
		"m.home_goals",
		"m.away_goals",
	)

	query, args, err := qb.Select(cols...).
		From("fact_player_stats s").
		Join("JOIN matches m ON m.fixture_id = s.fixture_id").
		Join(joinHomeTeam).
		Join(joinAwayTeam).
		Where(qb.Eq("s.player_id", playerID)).
		OrderBy("m.match_date DESC").
		Limit(normalizeLimit(limit, 5, 38)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build player recent stats query: %w", err)
	}

	var rows []playerStatLineModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player recent stats player=%d: %w", playerID, err)
	}

	out := make([]playerstat.MatchLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstat.MatchLine{
			Stat:      fromPlayerStatTableModel(row.playerStatTableModel),
			MatchDate: row.MatchDate,
			HomeTeam:  row.HomeTeam,
			AwayTeam:  row.AwayTeam,
			HomeGoals: row.HomeGoals,
			AwayGoals: row.AwayGoals,
		})
	}
	return out, nil
}

func toPlayerStatTableModel(s playerstat.Stat) playerStatTableModel {
	return playerStatTableModel{
		FixtureID:        s.FixtureID,
		PlayerID:         s.PlayerID,
		TeamID:           s.TeamID,
		MinutesPlayed:    s.MinutesPlayed,
		Number:           s.Number,
		Position:         nullableString(s.Position),
		Rating:           s.Rating,
		Captain:          s.Captain,
		Substitute:       s.Substitute,
		Offsides:         s.Offsides,
		ShotsTotal:       s.ShotsTotal,
		ShotsOnTarget:    s.ShotsOnTarget,
		GoalsTotal:       s.GoalsTotal,
		GoalsConceded:    s.GoalsConceded,
		Assists:          s.Assists,
		Saves:            s.Saves,
		PassesTotal:      s.PassesTotal,
		PassesKey:        s.PassesKey,
		PassesAccuracy:   s.PassesAccuracy,
		TacklesTotal:     s.TacklesTotal,
		Blocks:           s.Blocks,
		Interceptions:    s.Interceptions,
		DuelsTotal:       s.DuelsTotal,
		DuelsWon:         s.DuelsWon,
		DribblesAttempts: s.DribblesAttempts,
		DribblesSuccess:  s.DribblesSuccess,
		DribblesPast:     s.DribblesPast,
		FoulsDrawn:       s.FoulsDrawn,
		FoulsCommitted:   s.FoulsCommitted,
		YellowCards:      s.YellowCards,
		RedCards:         s.RedCards,
		PenaltyWon:       s.PenaltyWon,
		PenaltyCommitted: s.PenaltyCommitted,
		PenaltyScored:    s.PenaltyScored,
		PenaltyMissed:    s.PenaltyMissed,
		PenaltySaved:     s.PenaltySaved,
	}
}

func fromPlayerStatTableModel(row playerStatTableModel) playerstat.Stat {
	return playerstat.Stat{
		FixtureID:        row.FixtureID,
		PlayerID:         row.PlayerID,
		TeamID:           row.TeamID,
		MinutesPlayed:    row.MinutesPlayed,
		Number:           row.Number,
		Position:         stringValue(row.Position),
		Rating:           row.Rating,
		Captain:          row.Captain,
		Substitute:       row.Substitute,
		Offsides:         row.Offsides,
		ShotsTotal:       row.ShotsTotal,
		ShotsOnTarget:    row.ShotsOnTarget,
		GoalsTotal:       row.GoalsTotal,
		GoalsConceded:    row.GoalsConceded,
		Assists:          row.Assists,
		Saves:            row.Saves,
		PassesTotal:      row.PassesTotal,
		PassesKey:        row.PassesKey,
		PassesAccuracy:   row.PassesAccuracy,
		TacklesTotal:     row.TacklesTotal,
		Blocks:           row.Blocks,
		Interceptions:    row.Interceptions,
		DuelsTotal:       row.DuelsTotal,
		DuelsWon:         row.DuelsWon,
		DribblesAttempts: row.DribblesAttempts,
		DribblesSuccess:  row.DribblesSuccess,
		DribblesPast:     row.DribblesPast,
		FoulsDrawn:       row.FoulsDrawn,
		FoulsCommitted:   row.FoulsCommitted,
		YellowCards:      row.YellowCards,
		RedCards:         row.RedCards,
		PenaltyWon:       row.PenaltyWon,
		PenaltyCommitted: row.PenaltyCommitted,
		PenaltyScored:    row.PenaltyScored,
		PenaltyMissed:    row.PenaltyMissed,
		PenaltySaved:     row.PenaltySaved,
	}
}
