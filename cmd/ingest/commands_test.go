package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/usecase"
	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fetcherMock struct {
	mock.Mock
}

func (m *fetcherMock) summary(args mock.Arguments) (usecase.FetchSummary, error) {
	return args.Get(0).(usecase.FetchSummary), args.Error(1)
}

func (m *fetcherMock) FetchLeague(ctx context.Context) (usecase.FetchSummary, error) {
	return m.summary(m.Called(ctx))
}

func (m *fetcherMock) FetchTeams(ctx context.Context, seasons []int) (usecase.FetchSummary, error) {
	return m.summary(m.Called(ctx, seasons))
}

func (m *fetcherMock) FetchTeamsMultiSeason(ctx context.Context, seasons []int) (usecase.FetchSummary, error) {
	return m.summary(m.Called(ctx, seasons))
}

func (m *fetcherMock) FetchTeamsHistorical(ctx context.Context) (usecase.FetchSummary, error) {
	return m.summary(m.Called(ctx))
}

func (m *fetcherMock) FetchFixtures(ctx context.Context, seasons []int, status string) (usecase.FetchSummary, error) {
	return m.summary(m.Called(ctx, seasons, status))
}

func (m *fetcherMock) FetchStandings(ctx context.Context, seasons []int) (usecase.FetchSummary, error) {
	return m.summary(m.Called(ctx, seasons))
}

func (m *fetcherMock) FetchPlayerStats(ctx context.Context, limit int) (usecase.FetchSummary, error) {
	return m.summary(m.Called(ctx, limit))
}

func (m *fetcherMock) FetchPlayerProfiles(ctx context.Context, season int) (usecase.FetchSummary, error) {
	return m.summary(m.Called(ctx, season))
}

func (m *fetcherMock) RepairSkeletonProfiles(ctx context.Context, limit int) (usecase.FetchSummary, error) {
	return m.summary(m.Called(ctx, limit))
}

type processorStub struct {
	summary usecase.RunSummary
	err     error
}

func (p processorStub) RunFullProcessing(context.Context) (usecase.RunSummary, error) {
	return p.summary, p.err
}

func execute(t *testing.T, j jobs, args ...string) (string, error) {
	t.Helper()

	closed := false
	open := func(context.Context) (jobs, func(), error) {
		return j, func() { closed = true }, nil
	}

	var out bytes.Buffer
	root := newRootCmd(open, &out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	if err == nil && !closed {
		t.Fatalf("expected cleanup to run")
	}
	return out.String(), err
}

func TestFetchTeams_Historical(t *testing.T) {
	t.Parallel()

	f := &fetcherMock{}
	f.On("FetchTeamsHistorical", mock.Anything).Return(usecase.FetchSummary{
		Operation:      "fetch_teams_historical",
		UnitsAttempted: 14,
		UnitsSucceeded: 14,
	}, nil).Once()

	out, err := execute(t, jobs{fetch: f}, "fetch-teams", "--historical")
	require.NoError(t, err)
	f.AssertExpectations(t)

	var got usecase.FetchSummary
	require.NoError(t, sonic.Unmarshal([]byte(out), &got))
	assert.Equal(t, "fetch_teams_historical", got.Operation)
	assert.Equal(t, 14, got.UnitsSucceeded)
}

func TestFetchTeams_RepeatedSeasonFlag(t *testing.T) {
	t.Parallel()

	f := &fetcherMock{}
	f.On("FetchTeamsMultiSeason", mock.Anything, []int{2022, 2023}).Return(usecase.FetchSummary{Operation: "fetch_teams_multi_season"}, nil).Once()

	_, err := execute(t, jobs{fetch: f}, "fetch-teams", "--multi", "--season", "2022", "--season", "2023")
	require.NoError(t, err)
	f.AssertExpectations(t)
}

func TestFetchTeams_ConflictingFlags(t *testing.T) {
	t.Parallel()

	f := &fetcherMock{}
	_, err := execute(t, jobs{fetch: f}, "fetch-teams", "--multi", "--historical")
	require.Error(t, err)
	f.AssertNotCalled(t, "FetchTeamsHistorical", mock.Anything)
}

func TestFetchFixtures_PassesStatus(t *testing.T) {
	t.Parallel()

	f := &fetcherMock{}
	f.On("FetchFixtures", mock.Anything, []int{2024}, "FT").Return(usecase.FetchSummary{
		Operation:   "fetch_fixtures",
		FailedUnits: []string{"season=2024"},
	}, nil).Once()

	out, err := execute(t, jobs{fetch: f}, "fetch-fixtures", "--season", "2024", "--status", "FT")
	require.NoError(t, err, "failed units are reported, not fatal")
	assert.Contains(t, out, "season=2024")
	f.AssertExpectations(t)
}

func TestFetchPlayerStats_InvalidLimit(t *testing.T) {
	t.Parallel()

	f := &fetcherMock{}
	f.On("FetchPlayerStats", mock.Anything, 0).Return(usecase.FetchSummary{}, usecase.ErrInvalidInput).Once()

	out, err := execute(t, jobs{fetch: f}, "fetch-player-stats", "--limit", "0")
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
	assert.Empty(t, out)
}

func TestRepairProfiles_DefaultLimit(t *testing.T) {
	t.Parallel()

	f := &fetcherMock{}
	f.On("RepairSkeletonProfiles", mock.Anything, 50).Return(usecase.FetchSummary{Operation: "repair_profiles"}, nil).Once()

	_, err := execute(t, jobs{fetch: f}, "repair-profiles")
	require.NoError(t, err)
	f.AssertExpectations(t)
}

func TestProcess_FailedRunExitsWithError(t *testing.T) {
	t.Parallel()

	p := processorStub{summary: usecase.RunSummary{RunID: "run-1", Success: false, Errors: []string{"teams: boom"}}}

	out, err := execute(t, jobs{pipeline: p}, "process")
	require.ErrorIs(t, err, errRunFailed)
	assert.True(t, strings.Contains(out, `"run_id": "run-1"`), "summary is still printed: %s", out)
}

func TestProcess_Success(t *testing.T) {
	t.Parallel()

	p := processorStub{summary: usecase.RunSummary{RunID: "run-2", Success: true, TeamsCount: 20}}

	out, err := execute(t, jobs{pipeline: p}, "process")
	require.NoError(t, err)
	assert.Contains(t, out, `"teams_count": 20`)
}

func TestOpenFailureIsReturned(t *testing.T) {
	t.Parallel()

	open := func(context.Context) (jobs, func(), error) {
		return jobs{}, nil, errors.New("load config: DB_MAX_OPEN_CONNS must be >= 1")
	}
	root := newRootCmd(open, &bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"fetch-league"})

	require.Error(t, root.Execute())
}
