package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/usecase"
	sonic "github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

type fetcher interface {
	FetchLeague(ctx context.Context) (usecase.FetchSummary, error)
	FetchTeams(ctx context.Context, seasons []int) (usecase.FetchSummary, error)
	FetchTeamsMultiSeason(ctx context.Context, seasons []int) (usecase.FetchSummary, error)
	FetchTeamsHistorical(ctx context.Context) (usecase.FetchSummary, error)
	FetchFixtures(ctx context.Context, seasons []int, status string) (usecase.FetchSummary, error)
	FetchStandings(ctx context.Context, seasons []int) (usecase.FetchSummary, error)
	FetchPlayerStats(ctx context.Context, limit int) (usecase.FetchSummary, error)
	FetchPlayerProfiles(ctx context.Context, season int) (usecase.FetchSummary, error)
	RepairSkeletonProfiles(ctx context.Context, limit int) (usecase.FetchSummary, error)
}

type processor interface {
	RunFullProcessing(ctx context.Context) (usecase.RunSummary, error)
}

type jobs struct {
	fetch    fetcher
	pipeline processor
}

type openFunc func(ctx context.Context) (jobs, func(), error)

var errRunFailed = errors.New("processing run failed")

func newRootCmd(open openFunc, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "epl-ingest",
		Short:        "Fetch EPL data from api-football and load the warehouse",
		SilenceUsage: true,
	}
	root.SetOut(out)

	run := func(fn func(ctx context.Context, j jobs) (any, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			j, cleanup, err := open(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := fn(ctx, j)
			if err != nil {
				return err
			}
			if err := writeSummary(cmd.OutOrStdout(), summary); err != nil {
				return err
			}
			if rs, ok := summary.(usecase.RunSummary); ok && !rs.Success {
				return fmt.Errorf("%w: %d step error(s)", errRunFailed, len(rs.Errors))
			}
			return nil
		}
	}

	root.AddCommand(
		fetchLeagueCmd(run),
		fetchTeamsCmd(run),
		fetchFixturesCmd(run),
		fetchStandingsCmd(run),
		fetchPlayerStatsCmd(run),
		fetchPlayerProfilesCmd(run),
		repairProfilesCmd(run),
		processCmd(run),
	)
	return root
}

type runner func(fn func(ctx context.Context, j jobs) (any, error)) func(*cobra.Command, []string) error

func fetchLeagueCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch-league",
		Short: "Fetch the configured league and its seasons",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, j jobs) (any, error) {
			return j.fetch.FetchLeague(ctx)
		}),
	}
}

func fetchTeamsCmd(run runner) *cobra.Command {
	var (
		seasons    []int
		multi      bool
		historical bool
	)
	cmd := &cobra.Command{
		Use:   "fetch-teams",
		Short: "Fetch teams for the current, given or historical seasons",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, j jobs) (any, error) {
			switch {
			case historical:
				return j.fetch.FetchTeamsHistorical(ctx)
			case multi:
				return j.fetch.FetchTeamsMultiSeason(ctx, seasons)
			default:
				return j.fetch.FetchTeams(ctx, seasons)
			}
		}),
	}
	cmd.Flags().IntSliceVar(&seasons, "season", nil, "Season year (repeatable)")
	cmd.Flags().BoolVar(&multi, "multi", false, "Fetch every given season and report per-season totals")
	cmd.Flags().BoolVar(&historical, "historical", false, "Fetch the configured historical season range")
	cmd.MarkFlagsMutuallyExclusive("multi", "historical")
	cmd.MarkFlagsMutuallyExclusive("season", "historical")
	return cmd
}

func fetchFixturesCmd(run runner) *cobra.Command {
	var (
		seasons []int
		status  string
	)
	cmd := &cobra.Command{
		Use:   "fetch-fixtures",
		Short: "Fetch fixtures per season, optionally filtered by status",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, j jobs) (any, error) {
			return j.fetch.FetchFixtures(ctx, seasons, status)
		}),
	}
	cmd.Flags().IntSliceVar(&seasons, "season", nil, "Season year (repeatable)")
	cmd.Flags().StringVar(&status, "status", "", "Fixture status filter, e.g. FT")
	return cmd
}

func fetchStandingsCmd(run runner) *cobra.Command {
	var seasons []int
	cmd := &cobra.Command{
		Use:   "fetch-standings",
		Short: "Fetch league standings per season",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, j jobs) (any, error) {
			return j.fetch.FetchStandings(ctx, seasons)
		}),
	}
	cmd.Flags().IntSliceVar(&seasons, "season", nil, "Season year (repeatable)")
	return cmd
}

func fetchPlayerStatsCmd(run runner) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "fetch-player-stats",
		Short: "Fetch per-fixture player stats for finished matches without stats",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, j jobs) (any, error) {
			return j.fetch.FetchPlayerStats(ctx, limit)
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of fixtures")
	return cmd
}

func fetchPlayerProfilesCmd(run runner) *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "fetch-player-profiles",
		Short: "Page through player profiles for a season",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, j jobs) (any, error) {
			return j.fetch.FetchPlayerProfiles(ctx, season)
		}),
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year (defaults to the current season)")
	return cmd
}

func repairProfilesCmd(run runner) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "repair-profiles",
		Short: "Fetch profiles for skeleton players",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, j jobs) (any, error) {
			return j.fetch.RepairSkeletonProfiles(ctx, limit)
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of players")
	return cmd
}

func processCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Run the full transform/load pipeline over the raw store",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, j jobs) (any, error) {
			return j.pipeline.RunFullProcessing(ctx)
		}),
	}
}

func writeSummary(w io.Writer, summary any) error {
	enc := sonic.ConfigDefault.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}
