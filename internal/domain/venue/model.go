package venue

// Venue is a stadium. Matches only carry id, name and city, so a venue seen
// only through fixtures has the remaining columns unset.
type Venue struct {
	VenueID  int64
	Name     string
	Address  *string
	City     *string
	Capacity *int
	Surface  *string
	ImageURL *string
}
