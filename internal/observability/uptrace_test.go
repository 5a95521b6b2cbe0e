package observability

import (
	"context"
	"testing"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/config"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "epl-stats-bot",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitUptrace_EmptyDSN(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled:     true,
		UptraceLogsEnabled: true,
		ServiceName:        "epl-stats-bot",
		AppEnv:             config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, nil)
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestUptraceDisabledReason(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{name: "flag off", cfg: config.Config{UptraceEnabled: false, UptraceDSN: "https://t@api.uptrace.dev"}, want: "UPTRACE_ENABLED=false"},
		{name: "blank dsn", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "  "}, want: "UPTRACE_DSN empty"},
		{name: "enabled", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "https://t@api.uptrace.dev"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uptraceDisabledReason(tt.cfg); got != tt.want {
				t.Fatalf("uptraceDisabledReason()=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestUptraceResourceAttributes(t *testing.T) {
	attrs := uptraceResourceAttributes(config.Config{LeagueID: 39, CurrentSeason: 2024})
	got := map[string]int64{}
	for _, kv := range attrs {
		got[string(kv.Key)] = kv.Value.AsInt64()
	}
	if got["epl.league_id"] != 39 || got["epl.current_season"] != 2024 {
		t.Fatalf("unexpected resource attributes: %+v", got)
	}
}
