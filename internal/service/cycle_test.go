package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmix/linear-mcp/internal/linear/core"
	"github.com/cosmix/linear-mcp/internal/mcperr"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newCycleServiceForTest(teams *fakeTeamAPI, cycles *fakeCycleAPI) *CycleService {
	svc := NewCycleService(teams, cycles)
	svc.now = func() time.Time { return testNow }
	return svc
}

func ts(t time.Time) string {
	return t.Format(time.RFC3339)
}

func strptr(s string) *string {
	return &s
}

func TestGetTeamsFiltering(t *testing.T) {
	teams := &fakeTeamAPI{teams: []core.Team{
		{ID: "t1", Name: "Engineering", Key: "ENG"},
		{ID: "t2", Name: "Design", Key: "DES"},
		{ID: "", Name: "Ghost", Key: "GHO"},
		{ID: "t3"},
	}}
	svc := newCycleServiceForTest(teams, &fakeCycleAPI{})

	all, err := svc.GetTeams("")
	require.NoError(t, err)
	assert.Len(t, all, 3, "entries without an id are dropped, empty name/key kept")

	byName, err := svc.GetTeams("gin")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Engineering", byName[0].Name)

	byKey, err := svc.GetTeams("des")
	require.NoError(t, err)
	require.Len(t, byKey, 1)
	assert.Equal(t, "DES", byKey[0].Key)
}

func TestCycleClassification(t *testing.T) {
	completed := ts(testNow.AddDate(0, -1, 0))

	tests := []struct {
		name          string
		cycle         core.Cycle
		wantActive    bool
		wantCompleted bool
	}{
		{
			name: "now within window and not completed",
			cycle: core.Cycle{
				StartsAt: ts(testNow.AddDate(0, 0, -7)),
				EndsAt:   ts(testNow.AddDate(0, 0, 7)),
			},
			wantActive: true,
		},
		{
			name: "completed wins regardless of dates",
			cycle: core.Cycle{
				StartsAt:    ts(testNow.AddDate(0, 0, -7)),
				EndsAt:      ts(testNow.AddDate(0, 0, 7)),
				CompletedAt: &completed,
			},
			wantCompleted: true,
		},
		{
			name: "future cycle is not active",
			cycle: core.Cycle{
				StartsAt: ts(testNow.AddDate(0, 0, 7)),
				EndsAt:   ts(testNow.AddDate(0, 0, 21)),
			},
		},
		{
			name:  "missing dates never active",
			cycle: core.Cycle{ID: "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := classifyCycle(tt.cycle, testNow)
			assert.Equal(t, tt.wantActive, dto.IsActive)
			assert.Equal(t, tt.wantCompleted, dto.IsCompleted)
		})
	}
}

func teamCycleFixture() (*fakeTeamAPI, *fakeCycleAPI) {
	completed := ts(testNow.AddDate(0, 0, -15))
	teams := &fakeTeamAPI{teams: []core.Team{{ID: "team-1", Name: "Engineering", Key: "ENG"}}}
	cycles := &fakeCycleAPI{cycles: map[string][]core.Cycle{
		"team-1": {
			{
				ID: "cycle-1", Number: 1,
				StartsAt:    ts(testNow.AddDate(0, 0, -28)),
				EndsAt:      ts(testNow.AddDate(0, 0, -14)),
				CompletedAt: &completed,
			},
			{
				ID: "cycle-2", Number: 2,
				StartsAt: ts(testNow.AddDate(0, 0, -7)),
				EndsAt:   ts(testNow.AddDate(0, 0, 7)),
			},
			{
				ID: "cycle-3", Number: 3,
				StartsAt: ts(testNow.AddDate(0, 0, 14)),
				EndsAt:   ts(testNow.AddDate(0, 0, 28)),
			},
		},
	}}
	return teams, cycles
}

func TestResolveCycleFilter(t *testing.T) {
	teams, cycles := teamCycleFixture()
	svc := newCycleServiceForTest(teams, cycles)

	t.Run("opaque specific id passes through without lookup", func(t *testing.T) {
		id, err := svc.ResolveCycleFilter(CycleFilter{Type: "specific", ID: "abc-uuid"})
		require.NoError(t, err)
		assert.Equal(t, "abc-uuid", id)
	})

	t.Run("numeric specific id resolves by cycle number", func(t *testing.T) {
		id, err := svc.ResolveCycleFilter(CycleFilter{Type: "specific", ID: "2", TeamID: "team-1"})
		require.NoError(t, err)
		assert.Equal(t, "cycle-2", id)
	})

	t.Run("unknown cycle number fails", func(t *testing.T) {
		_, err := svc.ResolveCycleFilter(CycleFilter{Type: "specific", ID: "999", TeamID: "team-1"})
		require.Error(t, err)
		typed, ok := mcperr.As(err)
		require.True(t, ok)
		assert.Equal(t, mcperr.CodeInvalidRequest, typed.Code)
		assert.Contains(t, typed.Message, "No cycle found with number 999")
	})

	t.Run("current resolves to the active cycle", func(t *testing.T) {
		id, err := svc.ResolveCycleFilter(CycleFilter{Type: "current", TeamID: "team-1"})
		require.NoError(t, err)
		assert.Equal(t, "cycle-2", id)
	})

	t.Run("next resolves to the earliest upcoming cycle", func(t *testing.T) {
		id, err := svc.ResolveCycleFilter(CycleFilter{Type: "next", TeamID: "team-1"})
		require.NoError(t, err)
		assert.Equal(t, "cycle-3", id)
	})

	t.Run("previous resolves to the most recently completed cycle", func(t *testing.T) {
		id, err := svc.ResolveCycleFilter(CycleFilter{Type: "previous", TeamID: "team-1"})
		require.NoError(t, err)
		assert.Equal(t, "cycle-1", id)
	})

	t.Run("missing teamId is rejected", func(t *testing.T) {
		_, err := svc.ResolveCycleFilter(CycleFilter{Type: "current"})
		require.Error(t, err)
		typed, ok := mcperr.As(err)
		require.True(t, ok)
		assert.Equal(t, mcperr.CodeInvalidRequest, typed.Code)
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := svc.ResolveCycleFilter(CycleFilter{Type: "current", TeamID: "nope"})
		require.Error(t, err)
		assert.EqualError(t, err, "Team not found")
	})

	t.Run("team without cycles", func(t *testing.T) {
		emptyTeams := &fakeTeamAPI{teams: []core.Team{{ID: "team-2", Name: "Design", Key: "DES"}}}
		empty := newCycleServiceForTest(emptyTeams, &fakeCycleAPI{})
		_, err := empty.ResolveCycleFilter(CycleFilter{Type: "current", TeamID: "team-2"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No cycles found for team team-2")
	})
}

func TestGetTeamCycles(t *testing.T) {
	teams, cycles := teamCycleFixture()
	svc := newCycleServiceForTest(teams, cycles)

	result, err := svc.GetTeamCycles("team-1")
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.False(t, result[0].IsActive)
	assert.True(t, result[0].IsCompleted)
	assert.True(t, result[1].IsActive)
	assert.False(t, result[2].IsActive)

	_, err = svc.GetTeamCycles("missing")
	require.Error(t, err)
	assert.EqualError(t, err, "Team not found")
}
