package playerstat

import (
	"fmt"
	"time"
)

// Stat is one player's line for one fixture. Counting fields default to 0
// when the provider omits them; Rating stays nil.
type Stat struct {
	FixtureID        int64
	PlayerID         int64
	TeamID           int64
	MinutesPlayed    int
	Number           int
	Position         string
	Rating           *float64
	Captain          bool
	Substitute       bool
	Offsides         int
	ShotsTotal       int
	ShotsOnTarget    int
	GoalsTotal       int
	GoalsConceded    int
	Assists          int
	Saves            int
	PassesTotal      int
	PassesKey        int
	PassesAccuracy   int
	TacklesTotal     int
	Blocks           int
	Interceptions    int
	DuelsTotal       int
	DuelsWon         int
	DribblesAttempts int
	DribblesSuccess  int
	DribblesPast     int
	FoulsDrawn       int
	FoulsCommitted   int
	YellowCards      int
	RedCards         int
	PenaltyWon       int
	PenaltyCommitted int
	PenaltyScored    int
	PenaltyMissed    int
	PenaltySaved     int
}

func (s Stat) Validate() error {
	if s.FixtureID <= 0 {
		return fmt.Errorf("stat fixture id is required")
	}
	if s.PlayerID <= 0 {
		return fmt.Errorf("stat player id is required")
	}
	return nil
}

// MatchLine is a stat joined with its fixture for lookups.
type MatchLine struct {
	Stat
	MatchDate time.Time
	HomeTeam  string
	AwayTeam  string
	HomeGoals *int
	AwayGoals *int
}
