package league

import "fmt"

// League is a competition as described by the provider's /leagues endpoint.
type League struct {
	LeagueID    int64
	Name        string
	Type        string
	Country     string
	CountryCode string
	LogoURL     string
	FlagURL     string
	SeasonCount int
}

func (l League) Validate() error {
	if l.LeagueID <= 0 {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}
