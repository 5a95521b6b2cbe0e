package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/match"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/player"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/playerstat"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/team"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/usecase"
)

type playerDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Firstname   *string `json:"firstname,omitempty"`
	Lastname    *string `json:"lastname,omitempty"`
	Age         int     `json:"age,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	Number      int     `json:"number,omitempty"`
	Position    *string `json:"position,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
}

type teamDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Country  string `json:"country,omitempty"`
	Founded  *int   `json:"founded,omitempty"`
	LogoURL  string `json:"logoUrl,omitempty"`
	VenueID  *int64 `json:"venueId,omitempty"`
	National bool   `json:"national"`
}

type seasonDTO struct {
	Year      int     `json:"year"`
	Name      string  `json:"name"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	IsCurrent bool    `json:"isCurrent"`
}

type leagueOverviewDTO struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type,omitempty"`
	Country     string      `json:"country"`
	CountryCode string      `json:"countryCode,omitempty"`
	LogoURL     string      `json:"logoUrl,omitempty"`
	FlagURL     string      `json:"flagUrl,omitempty"`
	Seasons     []seasonDTO `json:"seasons"`
}

type playerMatchLineDTO struct {
	FixtureID     int64    `json:"fixtureId"`
	MatchDate     string   `json:"matchDate"`
	HomeTeam      string   `json:"homeTeam"`
	AwayTeam      string   `json:"awayTeam"`
	HomeGoals     *int     `json:"homeGoals"`
	AwayGoals     *int     `json:"awayGoals"`
	MinutesPlayed int      `json:"minutesPlayed"`
	Position      string   `json:"position,omitempty"`
	Rating        *float64 `json:"rating"`
	Goals         int      `json:"goals"`
	Assists       int      `json:"assists"`
	ShotsTotal    int      `json:"shotsTotal"`
	ShotsOnTarget int      `json:"shotsOnTarget"`
	PassesKey     int      `json:"keyPasses"`
	YellowCards   int      `json:"yellowCards"`
	RedCards      int      `json:"redCards"`
}

type matchResultDTO struct {
	FixtureID   int64   `json:"fixtureId"`
	Season      int     `json:"season"`
	Round       string  `json:"round"`
	MatchDate   string  `json:"matchDate"`
	StatusShort string  `json:"status"`
	HomeTeam    string  `json:"homeTeam"`
	AwayTeam    string  `json:"awayTeam"`
	HomeGoals   *int    `json:"homeGoals"`
	AwayGoals   *int    `json:"awayGoals"`
	Winner      *string `json:"winner"`
}

type standingRowDTO struct {
	Rank         int    `json:"rank"`
	TeamID       int64  `json:"teamId"`
	TeamName     string `json:"teamName"`
	Played       int    `json:"played"`
	Win          int    `json:"win"`
	Draw         int    `json:"draw"`
	Lose         int    `json:"lose"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	GoalsDiff    int    `json:"goalsDiff"`
	Points       int    `json:"points"`
	Form         string `json:"form,omitempty"`
	Description  string `json:"description,omitempty"`
}

type standingsTableDTO struct {
	LeagueID  int64            `json:"leagueId"`
	Season    int              `json:"season"`
	UpdatedAt string           `json:"updatedAt,omitempty"`
	Rows      []standingRowDTO `json:"rows"`
}

func (h *Handler) GetLeagueOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueOverview")
	defer span.End()

	overview, err := h.lookupService.LeagueOverview(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get league overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	l := overview.League
	out := leagueOverviewDTO{
		ID:          l.LeagueID,
		Name:        l.Name,
		Type:        l.Type,
		Country:     l.Country,
		CountryCode: l.CountryCode,
		LogoURL:     l.LogoURL,
		FlagURL:     l.FlagURL,
		Seasons:     make([]seasonDTO, 0, len(overview.Seasons)),
	}
	for _, s := range overview.Seasons {
		out.Seasons = append(out.Seasons, seasonDTO{
			Year:      s.Year,
			Name:      s.Name,
			StartDate: formatDate(s.StartDate),
			EndDate:   formatDate(s.EndDate),
			IsCurrent: s.IsCurrent,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchTeams")
	defer span.End()

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	name := r.URL.Query().Get("name")
	items, err := h.lookupService.SearchTeams(ctx, name, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "search teams failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	name := r.URL.Query().Get("name")
	items, err := h.lookupService.SearchPlayers(ctx, name, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "search players failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListPlayerRecentStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerRecentStats")
	defer span.End()

	playerID, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("playerID")), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: playerID must be an integer", usecase.ErrInvalidInput))
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.lookupService.PlayerRecentStats(ctx, playerID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list player stats failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerMatchLineDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchLineToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListTeamRecentResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamRecentResults")
	defer span.End()

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	name := r.URL.Query().Get("name")
	items, err := h.lookupService.TeamRecentResults(ctx, name, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list team results failed", "team", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultsToDTO(items))
}

func (h *Handler) ListHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHeadToHead")
	defer span.End()

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	query := r.URL.Query()
	teamA, teamB := query.Get("team_a"), query.Get("team_b")
	items, err := h.lookupService.HeadToHead(ctx, teamA, teamB, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list head to head failed", "team_a", teamA, "team_b", teamB, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultsToDTO(items))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	season, err := queryInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.lookupService.StandingsBySeason(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := standingsTableDTO{
		LeagueID: table.LeagueID,
		Season:   table.Season,
		Rows:     make([]standingRowDTO, 0, len(table.Rows)),
	}
	var updatedAt time.Time
	for _, row := range table.Rows {
		if row.UpdatedAt.After(updatedAt) {
			updatedAt = row.UpdatedAt
		}
		out.Rows = append(out.Rows, standingRowDTO{
			Rank:         row.Rank,
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			Played:       row.Played,
			Win:          row.Win,
			Draw:         row.Draw,
			Lose:         row.Lose,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			GoalsDiff:    row.GoalsDiff,
			Points:       row.Points,
			Form:         row.Form,
			Description:  row.Description,
		})
	}
	if !updatedAt.IsZero() {
		out.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:       t.TeamID,
		Name:     t.Name,
		Code:     t.Code,
		Country:  t.Country,
		Founded:  t.Founded,
		LogoURL:  t.LogoURL,
		VenueID:  t.VenueID,
		National: t.National,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	out := t.Format(time.DateOnly)
	return &out
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:          p.PlayerID,
		Name:        p.Name,
		Firstname:   p.Firstname,
		Lastname:    p.Lastname,
		Age:         p.Age,
		Nationality: p.Nationality,
		Number:      p.Number,
		Position:    p.Position,
		PhotoURL:    p.PhotoURL,
	}
}

func matchLineToDTO(line playerstat.MatchLine) playerMatchLineDTO {
	return playerMatchLineDTO{
		FixtureID:     line.FixtureID,
		MatchDate:     line.MatchDate.UTC().Format(time.RFC3339),
		HomeTeam:      line.HomeTeam,
		AwayTeam:      line.AwayTeam,
		HomeGoals:     line.HomeGoals,
		AwayGoals:     line.AwayGoals,
		MinutesPlayed: line.MinutesPlayed,
		Position:      line.Position,
		Rating:        line.Rating,
		Goals:         line.GoalsTotal,
		Assists:       line.Assists,
		ShotsTotal:    line.ShotsTotal,
		ShotsOnTarget: line.ShotsOnTarget,
		PassesKey:     line.PassesKey,
		YellowCards:   line.YellowCards,
		RedCards:      line.RedCards,
	}
}

func resultsToDTO(items []match.Result) []matchResultDTO {
	out := make([]matchResultDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchResultDTO{
			FixtureID:   item.FixtureID,
			Season:      item.Season,
			Round:       item.Round,
			MatchDate:   item.MatchDate.UTC().Format(time.RFC3339),
			StatusShort: item.StatusShort,
			HomeTeam:    item.HomeTeam,
			AwayTeam:    item.AwayTeam,
			HomeGoals:   item.HomeGoals,
			AwayGoals:   item.AwayGoals,
			Winner:      item.Winner,
		})
	}
	return out
}
