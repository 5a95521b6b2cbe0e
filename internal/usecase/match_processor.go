package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/match"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/rawresponse"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/venue"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
)

type MatchResult struct {
	Matches int `json:"matches"`
	Venues  int `json:"venues"`
}

type MatchProcessor struct {
	reader    *rawReader
	matchRepo match.Repository
	venueRepo venue.Repository
	logger    *logging.Logger
}

func NewMatchProcessor(rawRepo rawresponse.Repository, matchRepo match.Repository, venueRepo venue.Repository, opts ProcessorOptions) *MatchProcessor {
	reader := newRawReader(rawRepo, opts)
	return &MatchProcessor{reader: reader, matchRepo: matchRepo, venueRepo: venueRepo, logger: reader.logger}
}

// Process loads stored /fixtures responses. A non-nil season restricts the
// load to fixtures of that season.
func (p *MatchProcessor) Process(ctx context.Context, season *int) (MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchProcessor.Process")
	defer span.End()

	rows, err := readDecoded[fixturePayload](ctx, p.reader, rawresponse.EndpointFixtures)
	if err != nil {
		return MatchResult{}, err
	}

	matches := make([]match.Match, 0)
	venues := make([]venue.Venue, 0)
	for _, row := range rows {
		for _, entry := range row.envelope.Response {
			if season != nil && entry.League.Season.Int() != *season {
				continue
			}
			item, ok := p.toMatch(ctx, row.raw.ID, entry)
			if !ok {
				continue
			}
			matches = append(matches, item)

			if v, ok := partialVenue(entry.Fixture.Venue); ok {
				venues = append(venues, v)
			}
		}
	}

	venues = dedupLast(venues, func(v venue.Venue) int64 { return v.VenueID })
	matches = dedupLast(matches, func(m match.Match) int64 { return m.FixtureID })

	if len(venues) > 0 {
		if err := p.venueRepo.UpsertPartial(ctx, venues); err != nil {
			return MatchResult{}, fmt.Errorf("upsert match venues: %w", err)
		}
	}
	if len(matches) > 0 {
		if err := p.matchRepo.UpsertMany(ctx, matches); err != nil {
			return MatchResult{Venues: len(venues)}, fmt.Errorf("upsert matches: %w", err)
		}
	}

	p.logger.InfoContext(ctx, "matches processed", "matches", len(matches), "venues", len(venues))
	return MatchResult{Matches: len(matches), Venues: len(venues)}, nil
}

func (p *MatchProcessor) toMatch(ctx context.Context, responseID int64, entry fixturePayload) (match.Match, bool) {
	if entry.Fixture == nil || entry.Fixture.ID.Int() <= 0 {
		p.logger.WarnContext(ctx, "skip fixture without id", "response_id", responseID)
		return match.Match{}, false
	}
	fixtureID := int64(entry.Fixture.ID.Int())

	kickoff, err := time.Parse(time.RFC3339, strings.TrimSpace(entry.Fixture.Date))
	if err != nil {
		p.logger.WarnContext(ctx, "skip fixture with invalid date",
			"response_id", responseID,
			"fixture_id", fixtureID,
			"error", err,
		)
		return match.Match{}, false
	}

	status := strings.ToUpper(strings.TrimSpace(entry.Fixture.Status.Short))
	homeGoals := entry.Goals.Home.Ptr()
	awayGoals := entry.Goals.Away.Ptr()

	var venueID *int64
	if entry.Fixture.Venue != nil {
		venueID = entry.Fixture.Venue.ID.Int64Ptr()
	}

	item := match.Match{
		FixtureID:     fixtureID,
		LeagueID:      int64(entry.League.ID.Int()),
		Season:        entry.League.Season.Int(),
		Round:         entry.League.Round,
		MatchDate:     kickoff.UTC(),
		Referee:       entry.Fixture.Referee,
		VenueID:       venueID,
		StatusShort:   status,
		StatusLong:    entry.Fixture.Status.Long,
		Elapsed:       entry.Fixture.Status.Elapsed.Ptr(),
		HomeTeamID:    int64(entry.Teams.Home.ID.Int()),
		AwayTeamID:    int64(entry.Teams.Away.ID.Int()),
		HomeGoals:     homeGoals,
		AwayGoals:     awayGoals,
		HalftimeHome:  entry.Score.Halftime.Home.Ptr(),
		HalftimeAway:  entry.Score.Halftime.Away.Ptr(),
		ExtratimeHome: entry.Score.Extratime.Home.Ptr(),
		ExtratimeAway: entry.Score.Extratime.Away.Ptr(),
		PenaltyHome:   entry.Score.Penalty.Home.Ptr(),
		PenaltyAway:   entry.Score.Penalty.Away.Ptr(),
		Winner:        match.DeriveWinner(status, homeGoals, awayGoals),
	}
	if err := item.Validate(); err != nil {
		p.logger.WarnContext(ctx, "skip invalid fixture", "response_id", responseID, "error", err)
		return match.Match{}, false
	}
	return item, true
}

// partialVenue keeps only what a fixture knows about its venue.
func partialVenue(v *venuePayload) (venue.Venue, bool) {
	if v == nil || v.ID.Int() <= 0 || v.Name == nil || strings.TrimSpace(*v.Name) == "" {
		return venue.Venue{}, false
	}
	return venue.Venue{
		VenueID: int64(v.ID.Int()),
		Name:    strings.TrimSpace(*v.Name),
		City:    v.City,
	}, true
}
