package standing

import "time"

// Standing is a team's table row for a league season. UpdatedAt is the fetch
// time of the snapshot it came from.
type Standing struct {
	LeagueID     int64
	Season       int
	TeamID       int64
	TeamName     string
	Rank         int
	Points       int
	GoalsDiff    int
	GroupName    string
	Form         string
	Status       string
	Description  string
	Played       int
	Win          int
	Draw         int
	Lose         int
	GoalsFor     int
	GoalsAgainst int
	UpdatedAt    time.Time
}
