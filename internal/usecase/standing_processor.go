package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/rawresponse"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/standing"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
)

type StandingProcessor struct {
	reader       *rawReader
	standingRepo standing.Repository
	logger       *logging.Logger
}

func NewStandingProcessor(rawRepo rawresponse.Repository, standingRepo standing.Repository, opts ProcessorOptions) *StandingProcessor {
	reader := newRawReader(rawRepo, opts)
	return &StandingProcessor{reader: reader, standingRepo: standingRepo, logger: reader.logger}
}

// Process overwrites fact_standings with the most recently fetched snapshot of
// every (league, season, team). UpdatedAt is that snapshot's fetch time, so
// reprocessing the same raw rows writes identical values.
func (p *StandingProcessor) Process(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingProcessor.Process")
	defer span.End()

	rows, err := readDecoded[standingsPayload](ctx, p.reader, rawresponse.EndpointStandings)
	if err != nil {
		return 0, err
	}

	items := make([]standing.Standing, 0)
	for _, row := range rows {
		for _, entry := range row.envelope.Response {
			if entry.League == nil || entry.League.ID.Int() <= 0 {
				p.logger.WarnContext(ctx, "skip standings without league", "response_id", row.raw.ID)
				continue
			}
			leagueID := int64(entry.League.ID.Int())
			seasonYear := entry.League.Season.Int()
			for _, group := range entry.League.Standings {
				for _, r := range group {
					if r.Team.ID.Int() <= 0 {
						p.logger.WarnContext(ctx, "skip standing row without team",
							"response_id", row.raw.ID,
							"league_id", leagueID,
							"season", seasonYear,
						)
						continue
					}
					description := ""
					if r.Description != nil {
						description = *r.Description
					}
					items = append(items, standing.Standing{
						LeagueID:     leagueID,
						Season:       seasonYear,
						TeamID:       int64(r.Team.ID.Int()),
						TeamName:     strings.TrimSpace(r.Team.Name),
						Rank:         r.Rank.Int(),
						Points:       r.Points.Int(),
						GoalsDiff:    r.GoalsDiff.Int(),
						GroupName:    r.Group,
						Form:         r.Form,
						Status:       r.Status,
						Description:  description,
						Played:       r.All.Played.Int(),
						Win:          r.All.Win.Int(),
						Draw:         r.All.Draw.Int(),
						Lose:         r.All.Lose.Int(),
						GoalsFor:     r.All.Goals.For.Int(),
						GoalsAgainst: r.All.Goals.Against.Int(),
						UpdatedAt:    row.raw.FetchedAt.UTC(),
					})
				}
			}
		}
	}

	type standingKey struct {
		leagueID int64
		season   int
		teamID   int64
	}
	items = dedupLast(items, func(s standing.Standing) standingKey {
		return standingKey{s.LeagueID, s.Season, s.TeamID}
	})
	if len(items) == 0 {
		return 0, nil
	}
	if err := p.standingRepo.UpsertMany(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert standings: %w", err)
	}
	p.logger.InfoContext(ctx, "standings processed", "count", len(items))
	return len(items), nil
}
