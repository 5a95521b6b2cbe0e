package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/player"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/playerstat"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/rawresponse"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
)

type PlayerStatsResult struct {
	Players int `json:"players"`
	Stats   int `json:"stats"`
}

type PlayerStatsProcessor struct {
	reader     *rawReader
	playerRepo player.Repository
	statRepo   playerstat.Repository
	logger     *logging.Logger
}

func NewPlayerStatsProcessor(rawRepo rawresponse.Repository, playerRepo player.Repository, statRepo playerstat.Repository, opts ProcessorOptions) *PlayerStatsProcessor {
	reader := newRawReader(rawRepo, opts)
	return &PlayerStatsProcessor{reader: reader, playerRepo: playerRepo, statRepo: statRepo, logger: reader.logger}
}

// Process loads stored /fixtures/players responses. Players are written as
// skeletons first so every stat row has a dim_players row.
func (p *PlayerStatsProcessor) Process(ctx context.Context) (PlayerStatsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsProcessor.Process")
	defer span.End()

	rows, err := readDecoded[fixturePlayersPayload](ctx, p.reader, rawresponse.EndpointFixturePlayers)
	if err != nil {
		return PlayerStatsResult{}, err
	}

	players := make([]player.Player, 0)
	stats := make([]playerstat.Stat, 0)
	for _, row := range rows {
		fixtureID := fixtureIDOf(row.raw, row.envelope)
		if fixtureID <= 0 {
			p.logger.WarnContext(ctx, "skip player stats without fixture id", "response_id", row.raw.ID)
			continue
		}

		for _, teamEntry := range row.envelope.Response {
			var teamID int64
			if teamEntry.Team != nil {
				teamID = int64(teamEntry.Team.ID.Int())
			}
			for _, entry := range teamEntry.Players {
				if entry.Player == nil || entry.Player.ID.Int() <= 0 {
					p.logger.WarnContext(ctx, "skip player entry without id",
						"response_id", row.raw.ID,
						"fixture_id", fixtureID,
					)
					continue
				}
				playerID := int64(entry.Player.ID.Int())

				skeleton := player.Player{
					PlayerID: playerID,
					Name:     strings.TrimSpace(entry.Player.Name),
					PhotoURL: entry.Player.Photo,
				}
				if err := skeleton.Validate(); err != nil {
					p.logger.WarnContext(ctx, "skip invalid player", "fixture_id", fixtureID, "error", err)
					continue
				}
				players = append(players, skeleton)

				var line playerMatchStatsPayload
				if len(entry.Statistics) > 0 {
					line = entry.Statistics[0]
				}
				stats = append(stats, toStat(fixtureID, playerID, teamID, line))
			}
		}
	}

	players = dedupLast(players, func(pl player.Player) int64 { return pl.PlayerID })
	type statKey struct {
		fixtureID int64
		playerID  int64
	}
	stats = dedupLast(stats, func(s playerstat.Stat) statKey { return statKey{s.FixtureID, s.PlayerID} })

	if len(players) > 0 {
		if err := p.playerRepo.UpsertSkeletons(ctx, players); err != nil {
			return PlayerStatsResult{}, fmt.Errorf("upsert skeleton players: %w", err)
		}
	}
	if len(stats) > 0 {
		if err := p.statRepo.UpsertMany(ctx, stats); err != nil {
			return PlayerStatsResult{Players: len(players)}, fmt.Errorf("upsert player stats: %w", err)
		}
	}

	p.logger.InfoContext(ctx, "player stats processed", "players", len(players), "stats", len(stats))
	return PlayerStatsResult{Players: len(players), Stats: len(stats)}, nil
}

// fixtureIDOf prefers the stored request params and falls back to the
// parameters echoed in the body.
func fixtureIDOf(raw rawresponse.RawResponse, env apiEnvelope[fixturePlayersPayload]) int64 {
	value := raw.Param("fixture")
	if value == "" {
		value = env.parameter("fixture")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func toStat(fixtureID, playerID, teamID int64, s playerMatchStatsPayload) playerstat.Stat {
	return playerstat.Stat{
		FixtureID:        fixtureID,
		PlayerID:         playerID,
		TeamID:           teamID,
		MinutesPlayed:    s.Games.Minutes.Int(),
		Number:           s.Games.Number.Int(),
		Position:         s.Games.Position,
		Rating:           s.Games.Rating.Ptr(),
		Captain:          s.Games.Captain,
		Substitute:       s.Games.Substitute,
		Offsides:         s.Offsides.Int(),
		ShotsTotal:       s.Shots.Total.Int(),
		ShotsOnTarget:    s.Shots.On.Int(),
		GoalsTotal:       s.Goals.Total.Int(),
		GoalsConceded:    s.Goals.Conceded.Int(),
		Assists:          s.Goals.Assists.Int(),
		Saves:            s.Goals.Saves.Int(),
		PassesTotal:      s.Passes.Total.Int(),
		PassesKey:        s.Passes.Key.Int(),
		PassesAccuracy:   s.Passes.Accuracy.Int(),
		TacklesTotal:     s.Tackles.Total.Int(),
		Blocks:           s.Tackles.Blocks.Int(),
		Interceptions:    s.Tackles.Interceptions.Int(),
		DuelsTotal:       s.Duels.Total.Int(),
		DuelsWon:         s.Duels.Won.Int(),
		DribblesAttempts: s.Dribbles.Attempts.Int(),
		DribblesSuccess:  s.Dribbles.Success.Int(),
		DribblesPast:     s.Dribbles.Past.Int(),
		FoulsDrawn:       s.Fouls.Drawn.Int(),
		FoulsCommitted:   s.Fouls.Committed.Int(),
		YellowCards:      s.Cards.Yellow.Int(),
		RedCards:         s.Cards.Red.Int(),
		PenaltyWon:       s.Penalty.Won.Int(),
		PenaltyCommitted: s.Penalty.Committed.Int(),
		PenaltyScored:    s.Penalty.Scored.Int(),
		PenaltyMissed:    s.Penalty.Missed.Int(),
		PenaltySaved:     s.Penalty.Saved.Int(),
	}
}

type PlayerProfileProcessor struct {
	reader     *rawReader
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewPlayerProfileProcessor(rawRepo rawresponse.Repository, playerRepo player.Repository, opts ProcessorOptions) *PlayerProfileProcessor {
	reader := newRawReader(rawRepo, opts)
	return &PlayerProfileProcessor{reader: reader, playerRepo: playerRepo, logger: reader.logger}
}

type fetchedProfile struct {
	fetchedAt  time.Time
	responseID int64
	player     player.Player
}

// Process merges /players and /players/profiles responses; for a player seen
// in both the most recently fetched profile wins.
func (p *PlayerProfileProcessor) Process(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerProfileProcessor.Process")
	defer span.End()

	profiles := make([]fetchedProfile, 0)
	for _, endpoint := range []string{rawresponse.EndpointPlayers, rawresponse.EndpointPlayerProfiles} {
		rows, err := readDecoded[playerProfilePayload](ctx, p.reader, endpoint)
		if err != nil {
			return 0, err
		}
		for _, row := range rows {
			for _, entry := range row.envelope.Response {
				item, ok := toProfile(entry)
				if !ok {
					p.logger.WarnContext(ctx, "skip invalid player profile", "endpoint", endpoint, "response_id", row.raw.ID)
					continue
				}
				profiles = append(profiles, fetchedProfile{fetchedAt: row.raw.FetchedAt, responseID: row.raw.ID, player: item})
			}
		}
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].fetchedAt.Equal(profiles[j].fetchedAt) {
			return profiles[i].responseID < profiles[j].responseID
		}
		return profiles[i].fetchedAt.Before(profiles[j].fetchedAt)
	})
	profiles = dedupLast(profiles, func(f fetchedProfile) int64 { return f.player.PlayerID })
	if len(profiles) == 0 {
		return 0, nil
	}

	items := make([]player.Player, 0, len(profiles))
	for _, f := range profiles {
		items = append(items, f.player)
	}
	if err := p.playerRepo.UpsertProfiles(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert player profiles: %w", err)
	}
	p.logger.InfoContext(ctx, "player profiles processed", "count", len(items))
	return len(items), nil
}

func toProfile(entry playerProfilePayload) (player.Player, bool) {
	if entry.Player == nil || entry.Player.ID.Int() <= 0 {
		return player.Player{}, false
	}
	src := entry.Player

	// A processed profile is never a skeleton, even when the provider has no
	// first name on record.
	firstname := src.Firstname
	if firstname == nil {
		empty := ""
		firstname = &empty
	}

	number := src.Number.Int()
	position := src.Position
	if len(entry.Statistics) > 0 {
		games := entry.Statistics[0].Games
		if number == 0 {
			number = games.Number.Int()
		}
		if position == nil {
			position = games.Position
		}
	}

	var birthDate *time.Time
	if src.Birth.Date != nil {
		birthDate = parseDate(*src.Birth.Date)
	}

	item := player.Player{
		PlayerID:     int64(src.ID.Int()),
		Name:         strings.TrimSpace(src.Name),
		Firstname:    firstname,
		Lastname:     src.Lastname,
		Age:          src.Age.Int(),
		BirthDate:    birthDate,
		BirthPlace:   src.Birth.Place,
		BirthCountry: src.Birth.Country,
		Nationality:  src.Nationality,
		Height:       src.Height,
		Weight:       src.Weight,
		Number:       number,
		Position:     position,
		PhotoURL:     src.Photo,
	}
	if item.Validate() != nil {
		return player.Player{}, false
	}
	return item, true
}
