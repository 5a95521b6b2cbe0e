package player

import (
	"fmt"
	"time"
)

// Player is a row of dim_players. A player first seen in a match payload is a
// skeleton: only the name and photo are known and Firstname is nil until a
// profile fetch completes it.
type Player struct {
	PlayerID     int64
	Name         string
	Firstname    *string
	Lastname     *string
	Age          int
	BirthDate    *time.Time
	BirthPlace   *string
	BirthCountry *string
	Nationality  *string
	Height       *string
	Weight       *string
	Number       int
	Position     *string
	PhotoURL     *string
}

func (p Player) IsSkeleton() bool {
	return p.Firstname == nil
}

func (p Player) Validate() error {
	if p.PlayerID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player %d: name is required", p.PlayerID)
	}
	return nil
}
