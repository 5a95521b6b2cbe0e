package season

import "testing"

func TestDisplayName(t *testing.T) {
	if got := DisplayName(2023, "2023-08-11", "2024-05-19"); got != "2023-2024" {
		t.Fatalf("unexpected name: %s", got)
	}
	if got := DisplayName(2010, "", "2011-05-22"); got != "2010" {
		t.Fatalf("expected year fallback, got %s", got)
	}
}

func TestSeason_Validate(t *testing.T) {
	if err := (Season{LeagueID: 39}).Validate(); err == nil {
		t.Fatalf("expected error for missing year")
	}
	if err := (Season{LeagueID: 39, Year: 2024}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
