package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLookupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/league", handler.GetLeagueOverview)
	mux.HandleFunc("GET /v1/players/search", handler.SearchPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}/stats", handler.ListPlayerRecentStats)
	mux.HandleFunc("GET /v1/teams/search", handler.SearchTeams)
	mux.HandleFunc("GET /v1/teams/results", handler.ListTeamRecentResults)
	mux.HandleFunc("GET /v1/teams/head-to-head", handler.ListHeadToHead)
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
}

// Scheduler entrypoints. Each one maps onto a single fetch or processing run.
func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	jobs := map[string]http.HandlerFunc{
		"fetch-league":           handler.RunFetchLeagueJob,
		"fetch-teams":            handler.RunFetchTeamsJob,
		"fetch-fixtures":         handler.RunFetchFixturesJob,
		"fetch-standings":        handler.RunFetchStandingsJob,
		"fetch-player-stats":     handler.RunFetchPlayerStatsJob,
		"fetch-player-profiles":  handler.RunFetchPlayerProfilesJob,
		"repair-player-profiles": handler.RunRepairPlayerProfilesJob,
		"run-processing":         handler.RunProcessingJob,
	}
	for name, fn := range jobs {
		mux.Handle("POST /v1/internal/jobs/"+name, RequireInternalJobToken(internalJobToken, fn))
	}
}
