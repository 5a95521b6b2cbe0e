package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/league"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/rawresponse"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/season"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
)

type LeagueProcessor struct {
	reader     *rawReader
	leagueRepo league.Repository
	logger     *logging.Logger
}

func NewLeagueProcessor(rawRepo rawresponse.Repository, leagueRepo league.Repository, opts ProcessorOptions) *LeagueProcessor {
	reader := newRawReader(rawRepo, opts)
	return &LeagueProcessor{reader: reader, leagueRepo: leagueRepo, logger: reader.logger}
}

// Process loads every stored /leagues response into leagues and returns the
// number of distinct leagues written.
func (p *LeagueProcessor) Process(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueProcessor.Process")
	defer span.End()

	rows, err := readDecoded[leaguePayload](ctx, p.reader, rawresponse.EndpointLeagues)
	if err != nil {
		return 0, err
	}

	items := make([]league.League, 0)
	for _, row := range rows {
		for _, entry := range row.envelope.Response {
			if entry.League == nil || entry.League.ID.Int() <= 0 {
				p.logger.WarnContext(ctx, "skip league without id", "response_id", row.raw.ID)
				continue
			}
			item := league.League{
				LeagueID:    int64(entry.League.ID.Int()),
				Name:        strings.TrimSpace(entry.League.Name),
				Type:        entry.League.Type,
				Country:     entry.Country.Name,
				CountryCode: entry.Country.Code,
				LogoURL:     entry.League.Logo,
				FlagURL:     entry.Country.Flag,
				SeasonCount: len(entry.Seasons),
			}
			if err := item.Validate(); err != nil {
				p.logger.WarnContext(ctx, "skip invalid league", "response_id", row.raw.ID, "error", err)
				continue
			}
			items = append(items, item)
		}
	}

	items = dedupLast(items, func(l league.League) int64 { return l.LeagueID })
	if len(items) == 0 {
		return 0, nil
	}
	if err := p.leagueRepo.UpsertMany(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert leagues: %w", err)
	}
	p.logger.InfoContext(ctx, "leagues processed", "count", len(items))
	return len(items), nil
}

type SeasonProcessor struct {
	reader     *rawReader
	seasonRepo season.Repository
	logger     *logging.Logger
}

func NewSeasonProcessor(rawRepo rawresponse.Repository, seasonRepo season.Repository, opts ProcessorOptions) *SeasonProcessor {
	reader := newRawReader(rawRepo, opts)
	return &SeasonProcessor{reader: reader, seasonRepo: seasonRepo, logger: reader.logger}
}

// Process expands the seasons list of every stored /leagues response.
func (p *SeasonProcessor) Process(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonProcessor.Process")
	defer span.End()

	rows, err := readDecoded[leaguePayload](ctx, p.reader, rawresponse.EndpointLeagues)
	if err != nil {
		return 0, err
	}

	items := make([]season.Season, 0)
	for _, row := range rows {
		for _, entry := range row.envelope.Response {
			if entry.League == nil || entry.League.ID.Int() <= 0 {
				continue
			}
			leagueID := int64(entry.League.ID.Int())
			for _, s := range entry.Seasons {
				item := season.Season{
					LeagueID:  leagueID,
					Year:      s.Year.Int(),
					Name:      season.DisplayName(s.Year.Int(), s.Start, s.End),
					StartDate: parseDate(s.Start),
					EndDate:   parseDate(s.End),
					IsCurrent: s.Current,
				}
				if err := item.Validate(); err != nil {
					p.logger.WarnContext(ctx, "skip invalid season", "league_id", leagueID, "error", err)
					continue
				}
				items = append(items, item)
			}
		}
	}

	type seasonKey struct {
		leagueID int64
		year     int
	}
	items = dedupLast(items, func(s season.Season) seasonKey { return seasonKey{s.LeagueID, s.Year} })
	if len(items) == 0 {
		return 0, nil
	}
	if err := p.seasonRepo.UpsertMany(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert seasons: %w", err)
	}
	p.logger.InfoContext(ctx, "seasons processed", "count", len(items))
	return len(items), nil
}

func parseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil
	}
	return &t
}
