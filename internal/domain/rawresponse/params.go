package rawresponse

import "strconv"

const (
	EndpointLeagues        = "/leagues"
	EndpointTeams          = "/teams"
	EndpointFixtures       = "/fixtures"
	EndpointStandings      = "/standings"
	EndpointFixturePlayers = "/fixtures/players"
	EndpointPlayers        = "/players"
	EndpointPlayerProfiles = "/players/profiles"
)

const (
	SyncProfile       = "profile_sync"
	SyncProfileRepair = "profile_repair"
)

func formatFloatParam(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatIntParam(v int64) string {
	return strconv.FormatInt(v, 10)
}
