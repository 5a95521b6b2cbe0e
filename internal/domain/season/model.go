package season

import (
	"fmt"
	"time"
)

// Season is keyed by (LeagueID, Year). Name is a display label only and is
// not unique across leagues.
type Season struct {
	LeagueID  int64
	Year      int
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	IsCurrent bool
}

func (s Season) Validate() error {
	if s.LeagueID <= 0 {
		return fmt.Errorf("season league id is required")
	}
	if s.Year <= 0 {
		return fmt.Errorf("season year is required")
	}
	return nil
}

// DisplayName renders "2023-2024" from the season's start and end dates.
func DisplayName(year int, start, end string) string {
	if len(start) >= 4 && len(end) >= 4 {
		return start[:4] + "-" + end[:4]
	}
	return fmt.Sprintf("%d", year)
}
