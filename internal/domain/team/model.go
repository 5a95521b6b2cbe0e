package team

import "fmt"

// Team is a club from the provider's /teams endpoint.
type Team struct {
	TeamID   int64
	Name     string
	Code     string
	Country  string
	Founded  *int
	National bool
	LogoURL  string
	VenueID  *int64
}

func (t Team) Validate() error {
	if t.TeamID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
