package memory

import (
	"context"
	"testing"
	"time"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/match"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/player"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/rawresponse"
	"github.com/itbasis/go-clock"
)

func TestMatchRepository_ListFinishedWithoutPlayerStats(t *testing.T) {
	ctx := context.Background()
	raw := NewRawResponseRepository(clock.NewMock())
	repo := NewMatchRepository(raw)

	base := time.Date(2024, 5, 19, 15, 0, 0, 0, time.UTC)
	_ = repo.UpsertMany(ctx, []match.Match{
		{FixtureID: 1, StatusShort: "FT", MatchDate: base.Add(-72 * time.Hour)},
		{FixtureID: 2, StatusShort: "FT", MatchDate: base},
		{FixtureID: 3, StatusShort: "NS", MatchDate: base.Add(24 * time.Hour)},
		{FixtureID: 4, StatusShort: "AET", MatchDate: base.Add(-24 * time.Hour)},
	})
	if _, err := raw.Insert(ctx, rawresponse.EndpointFixturePlayers, map[string]any{"fixture": 4}, []byte(`{}`)); err != nil {
		t.Fatalf("insert raw: %v", err)
	}

	ids, err := repo.ListFinishedWithoutPlayerStats(ctx, 10)
	if err != nil {
		t.Fatalf("list work set: %v", err)
	}
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 1 {
		t.Fatalf("expected [2 1], got %v", ids)
	}

	ids, _ = repo.ListFinishedWithoutPlayerStats(ctx, 1)
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("expected limit to keep most recent, got %v", ids)
	}
}

func TestPlayerRepository_SkeletonDoesNotClobberProfile(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository()
	first := "Bukayo"
	photo := "https://media.api-sports.io/football/players/1460.png"

	_ = repo.UpsertProfiles(ctx, []player.Player{{PlayerID: 1460, Name: "Bukayo Saka", Firstname: &first, Age: 22, PhotoURL: &photo}})
	_ = repo.UpsertSkeletons(ctx, []player.Player{{PlayerID: 1460, Name: "B. Saka"}})

	got, ok := repo.Get(1460)
	if !ok {
		t.Fatalf("player missing")
	}
	if got.IsSkeleton() || got.Age != 22 {
		t.Fatalf("profile columns were cleared: %+v", got)
	}
	if got.Name != "B. Saka" || got.PhotoURL == nil {
		t.Fatalf("unexpected name/photo: %+v", got)
	}

	ids, _ := repo.ListSkeletonIDs(ctx, 10)
	if len(ids) != 0 {
		t.Fatalf("expected no skeletons, got %v", ids)
	}
}

func TestRawResponseRepository_NewestFirst(t *testing.T) {
	ctx := context.Background()
	mock := clock.NewMock()
	raw := NewRawResponseRepository(mock)

	_, _ = raw.Insert(ctx, rawresponse.EndpointStandings, map[string]any{"season": 2023}, []byte(`{"n":1}`))
	mock.Add(time.Hour)
	_, _ = raw.Insert(ctx, rawresponse.EndpointStandings, map[string]any{"season": 2023}, []byte(`{"n":2}`))

	rows, err := raw.ListByEndpoint(ctx, rawresponse.EndpointStandings)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != 2 {
		t.Fatalf("expected newest first, got %+v", rows)
	}
	if rows[0].Param("season") != "2023" {
		t.Fatalf("unexpected season param %q", rows[0].Param("season"))
	}
	if _, err := raw.Insert(ctx, rawresponse.EndpointStandings, nil, nil); err == nil {
		t.Fatalf("expected empty payload error")
	}
}
