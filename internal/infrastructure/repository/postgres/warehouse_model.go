package postgres

import "time"

type leagueTableModel struct {
	LeagueID        int64   `db:"league_id"`
	Name            string  `db:"league_name"`
	Type            *string `db:"league_type"`
	Country         *string `db:"country"`
	CountryCode     *string `db:"country_code"`
	LogoURL         *string `db:"logo_url"`
	FlagURL         *string `db:"flag_url"`
	NumberOfSeasons int     `db:"number_of_seasons"`
}

type seasonTableModel struct {
	LeagueID  int64      `db:"league_id"`
	Year      int        `db:"season_year"`
	Name      string     `db:"season_name"`
	StartDate *time.Time `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`
	IsCurrent bool       `db:"is_current"`
}

type venueTableModel struct {
	VenueID  int64   `db:"venue_id"`
	Name     string  `db:"venue_name"`
	Address  *string `db:"address"`
	City     *string `db:"city"`
	Capacity *int    `db:"capacity"`
	Surface  *string `db:"surface"`
	ImageURL *string `db:"image_url"`
}

// venuePartialInsertModel carries the venue columns present on fixtures.
type venuePartialInsertModel struct {
	VenueID int64   `db:"venue_id"`
	Name    string  `db:"venue_name"`
	City    *string `db:"city"`
}

type teamTableModel struct {
	TeamID   int64   `db:"team_id"`
	Name     string  `db:"team_name"`
	Code     *string `db:"team_code"`
	Country  *string `db:"country"`
	Founded  *int    `db:"founded"`
	National bool    `db:"national"`
	LogoURL  *string `db:"logo_url"`
	VenueID  *int64  `db:"venue_id"`
}

type matchTableModel struct {
	FixtureID     int64     `db:"fixture_id"`
	LeagueID      int64     `db:"league_id"`
	Season        int       `db:"season"`
	Round         *string   `db:"round"`
	MatchDate     time.Time `db:"match_date"`
	Referee       *string   `db:"referee"`
	VenueID       *int64    `db:"venue_id"`
	StatusShort   string    `db:"status_short"`
	StatusLong    *string   `db:"status_long"`
	Elapsed       *int      `db:"elapsed"`
	HomeTeamID    int64     `db:"home_team_id"`
	AwayTeamID    int64     `db:"away_team_id"`
	HomeGoals     *int      `db:"home_goals"`
	AwayGoals     *int      `db:"away_goals"`
	HalftimeHome  *int      `db:"halftime_home"`
	HalftimeAway  *int      `db:"halftime_away"`
	ExtratimeHome *int      `db:"extratime_home"`
	ExtratimeAway *int      `db:"extratime_away"`
	PenaltyHome   *int      `db:"penalty_home"`
	PenaltyAway   *int      `db:"penalty_away"`
	Winner        *string   `db:"winner"`
}

type matchResultModel struct {
	FixtureID   int64     `db:"fixture_id"`
	Season      int       `db:"season"`
	Round       *string   `db:"round"`
	MatchDate   time.Time `db:"match_date"`
	StatusShort string    `db:"status_short"`
	HomeTeam    string    `db:"home_team"`
	AwayTeam    string    `db:"away_team"`
	HomeGoals   *int      `db:"home_goals"`
	AwayGoals   *int      `db:"away_goals"`
	Winner      *string   `db:"winner"`
}

type playerTableModel struct {
	PlayerID     int64      `db:"player_id"`
	Name         string     `db:"player_name"`
	Firstname    *string    `db:"firstname"`
	Lastname     *string    `db:"lastname"`
	Age          *int       `db:"age"`
	BirthDate    *time.Time `db:"birth_date"`
	BirthPlace   *string    `db:"birth_place"`
	BirthCountry *string    `db:"birth_country"`
	Nationality  *string    `db:"nationality"`
	Height       *string    `db:"height"`
	Weight       *string    `db:"weight"`
	Number       *int       `db:"number"`
	Position     *string    `db:"position"`
	PhotoURL     *string    `db:"photo_url"`
}

type playerSkeletonInsertModel struct {
	PlayerID int64   `db:"player_id"`
	Name     string  `db:"player_name"`
	PhotoURL *string `db:"photo_url"`
}

type playerStatTableModel struct {
	FixtureID        int64    `db:"fixture_id"`
	PlayerID         int64    `db:"player_id"`
	TeamID           int64    `db:"team_id"`
	MinutesPlayed    int      `db:"minutes_played"`
	Number           int      `db:"number"`
	Position         *string  `db:"position"`
	Rating           *float64 `db:"rating"`
	Captain          bool     `db:"captain"`
	Substitute       bool     `db:"substitute"`
	Offsides         int      `db:"offsides"`
	ShotsTotal       int      `db:"shots_total"`
	ShotsOnTarget    int      `db:"shots_on_target"`
	GoalsTotal       int      `db:"goals_total"`
	GoalsConceded    int      `db:"goals_conceded"`
	Assists          int      `db:"assists"`
	Saves            int      `db:"saves"`
	PassesTotal      int      `db:"passes_total"`
	PassesKey        int      `db:"passes_key"`
	PassesAccuracy   int      `db:"passes_accuracy"`
	TacklesTotal     int      `db:"tackles_total"`
	Blocks           int      `db:"blocks"`
	Interceptions    int      `db:"interceptions"`
	DuelsTotal       int      `db:"duels_total"`
	DuelsWon         int      `db:"duels_won"`
	DribblesAttempts int      `db:"dribbles_attempts"`
	DribblesSuccess  int      `db:"dribbles_success"`
	DribblesPast     int      `db:"dribbles_past"`
	FoulsDrawn       int      `db:"fouls_drawn"`
	FoulsCommitted   int      `db:"fouls_committed"`
	YellowCards      int      `db:"yellow_cards"`
	RedCards         int      `db:"red_cards"`
	PenaltyWon       int      `db:"penalty_won"`
	PenaltyCommitted int      `db:"penalty_committed"`
	PenaltyScored    int      `db:"penalty_scored"`
	PenaltyMissed    int      `db:"penalty_missed"`
	PenaltySaved     int      `db:"penalty_saved"`
}

type playerStatLineModel struct {
	playerStatTableModel
	MatchDate time.Time `db:"match_date"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	HomeGoals *int      `db:"home_goals"`
	AwayGoals *int      `db:"away_goals"`
}

type standingTableModel struct {
	LeagueID     int64     `db:"league_id"`
	Season       int       `db:"season"`
	TeamID       int64     `db:"team_id"`
	TeamName     string    `db:"team_name"`
	Rank         int       `db:"rank"`
	Points       int       `db:"points"`
	GoalsDiff    int       `db:"goals_diff"`
	GroupName    *string   `db:"group_name"`
	Form         *string   `db:"form"`
	Status       *string   `db:"status"`
	Description  *string   `db:"description"`
	Played       int       `db:"played"`
	Win          int       `db:"win"`
	Draw         int       `db:"draw"`
	Lose         int       `db:"lose"`
	GoalsFor     int       `db:"goals_for"`
	GoalsAgainst int       `db:"goals_against"`
	UpdatedAt    time.Time `db:"updated_at"`
}
