package match

import (
	"fmt"
	"time"
)

const (
	WinnerHome = "HOME"
	WinnerAway = "AWAY"
	WinnerDraw = "DRAW"
)

// FinishedStatuses are the provider short codes for a completed match.
var FinishedStatuses = []string{"FT", "AET", "PEN"}

// Match is one fixture. Goals stay nil until the provider reports them.
type Match struct {
	FixtureID     int64
	LeagueID      int64
	Season        int
	Round         string
	MatchDate     time.Time
	Referee       *string
	VenueID       *int64
	StatusShort   string
	StatusLong    string
	Elapsed       *int
	HomeTeamID    int64
	AwayTeamID    int64
	HomeGoals     *int
	AwayGoals     *int
	HalftimeHome  *int
	HalftimeAway  *int
	ExtratimeHome *int
	ExtratimeAway *int
	PenaltyHome   *int
	PenaltyAway   *int
	Winner        *string
}

func (m Match) Validate() error {
	if m.FixtureID <= 0 {
		return fmt.Errorf("fixture id is required")
	}
	if m.HomeTeamID <= 0 || m.AwayTeamID <= 0 {
		return fmt.Errorf("fixture %d: both team ids are required", m.FixtureID)
	}
	return nil
}

func IsFinished(statusShort string) bool {
	for _, s := range FinishedStatuses {
		if s == statusShort {
			return true
		}
	}
	return false
}

// DeriveWinner is defined only for finished matches with both goal counts known.
func DeriveWinner(statusShort string, homeGoals, awayGoals *int) *string {
	if !IsFinished(statusShort) || homeGoals == nil || awayGoals == nil {
		return nil
	}
	var w string
	switch {
	case *homeGoals > *awayGoals:
		w = WinnerHome
	case *homeGoals < *awayGoals:
		w = WinnerAway
	default:
		w = WinnerDraw
	}
	return &w
}

// Result is a match joined with team names for lookups.
type Result struct {
	FixtureID   int64
	Season      int
	Round       string
	MatchDate   time.Time
	StatusShort string
	HomeTeam    string
	AwayTeam    string
	HomeGoals   *int
	AwayGoals   *int
	Winner      *string
}
