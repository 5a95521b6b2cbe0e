package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/rawresponse"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/team"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/venue"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
)

type TeamResult struct {
	Teams  int `json:"teams"`
	Venues int `json:"venues"`
}

type TeamProcessor struct {
	reader    *rawReader
	teamRepo  team.Repository
	venueRepo venue.Repository
	logger    *logging.Logger
}

func NewTeamProcessor(rawRepo rawresponse.Repository, teamRepo team.Repository, venueRepo venue.Repository, opts ProcessorOptions) *TeamProcessor {
	reader := newRawReader(rawRepo, opts)
	return &TeamProcessor{reader: reader, teamRepo: teamRepo, venueRepo: venueRepo, logger: reader.logger}
}

// Process writes venues before teams so team.venue_id always resolves.
func (p *TeamProcessor) Process(ctx context.Context) (TeamResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamProcessor.Process")
	defer span.End()

	rows, err := readDecoded[teamPayload](ctx, p.reader, rawresponse.EndpointTeams)
	if err != nil {
		return TeamResult{}, err
	}

	teams := make([]team.Team, 0)
	venues := make([]venue.Venue, 0)
	for _, row := range rows {
		for _, entry := range row.envelope.Response {
			if entry.Team == nil || entry.Team.ID.Int() <= 0 {
				p.logger.WarnContext(ctx, "skip team without id", "response_id", row.raw.ID)
				continue
			}

			var venueID *int64
			if v, ok := fullVenue(entry.Venue); ok {
				venues = append(venues, v)
				venueID = &v.VenueID
			}

			item := team.Team{
				TeamID:   int64(entry.Team.ID.Int()),
				Name:     strings.TrimSpace(entry.Team.Name),
				Code:     entry.Team.Code,
				Country:  entry.Team.Country,
				Founded:  entry.Team.Founded.Ptr(),
				National: entry.Team.National,
				LogoURL:  entry.Team.Logo,
				VenueID:  venueID,
			}
			if err := item.Validate(); err != nil {
				p.logger.WarnContext(ctx, "skip invalid team", "response_id", row.raw.ID, "error", err)
				continue
			}
			teams = append(teams, item)
		}
	}

	venues = dedupLast(venues, func(v venue.Venue) int64 { return v.VenueID })
	teams = dedupLast(teams, func(t team.Team) int64 { return t.TeamID })

	if len(venues) > 0 {
		if err := p.venueRepo.UpsertMany(ctx, venues); err != nil {
			return TeamResult{}, fmt.Errorf("upsert venues: %w", err)
		}
	}
	if len(teams) > 0 {
		if err := p.teamRepo.UpsertMany(ctx, teams); err != nil {
			return TeamResult{Venues: len(venues)}, fmt.Errorf("upsert teams: %w", err)
		}
	}

	p.logger.InfoContext(ctx, "teams processed", "teams", len(teams), "venues", len(venues))
	return TeamResult{Teams: len(teams), Venues: len(venues)}, nil
}

func fullVenue(v *venuePayload) (venue.Venue, bool) {
	if v == nil || v.ID.Int() <= 0 || v.Name == nil || strings.TrimSpace(*v.Name) == "" {
		return venue.Venue{}, false
	}
	return venue.Venue{
		VenueID:  int64(v.ID.Int()),
		Name:     strings.TrimSpace(*v.Name),
		Address:  v.Address,
		City:     v.City,
		Capacity: v.Capacity.Ptr(),
		Surface:  v.Surface,
		ImageURL: v.Image,
	}, true
}
