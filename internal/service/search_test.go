package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmix/linear-mcp/internal/linear/core"
	"github.com/cosmix/linear-mcp/internal/mcperr"
)

func newSearchServiceForTest(issues *fakeIssueAPI, teams *fakeTeamAPI, projects *fakeProjectAPI, cycleAPI *fakeCycleAPI) *SearchService {
	return NewSearchService(issues, teams, projects, newCycleServiceForTest(teams, cycleAPI))
}

func searchFixture() (*fakeIssueAPI, *fakeTeamAPI, *fakeProjectAPI, *fakeCycleAPI) {
	teams, cycleAPI := teamCycleFixture()
	teams.viewer = &core.User{ID: "current-user", Name: "Current User"}
	return &fakeIssueAPI{}, teams, &fakeProjectAPI{}, cycleAPI
}

// leaks reports whether the literal "me" survives anywhere in a lowered
// filter object.
func leaksMe(v interface{}) bool {
	switch x := v.(type) {
	case string:
		return x == "me"
	case []interface{}:
		for _, item := range x {
			if leaksMe(item) {
				return true
			}
		}
	case []map[string]interface{}:
		for _, item := range x {
			if leaksMe(item) {
				return true
			}
		}
	case map[string]interface{}:
		for _, item := range x {
			if leaksMe(item) {
				return true
			}
		}
	}
	return false
}

func TestBuildFilterQueryAndAssignedToMe(t *testing.T) {
	issues, teams, projects, cycleAPI := searchFixture()
	svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

	filter, err := svc.BuildFilter(SearchIssuesArgs{
		Query:  "bug",
		Filter: &SearchFilter{AssignedTo: "me"},
	})
	require.NoError(t, err)
	require.NotNil(t, filter)

	and, ok := filter["and"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, and, 2)

	or, ok := and[0]["or"].([]interface{})
	require.True(t, ok)
	require.Len(t, or, 2)
	title := or[0].(map[string]interface{})["title"].(map[string]interface{})
	assert.Equal(t, "bug", title["contains"])
	description := or[1].(map[string]interface{})["description"].(map[string]interface{})
	assert.Equal(t, "bug", description["contains"])

	assignee := and[1]["assignee"].(map[string]interface{})
	id := assignee["id"].(map[string]interface{})
	assert.Equal(t, "current-user", id["eq"])

	assert.False(t, leaksMe(filter), `"me" must never reach the wire`)
}

func TestBuildFilterNoConditions(t *testing.T) {
	issues, teams, projects, cycleAPI := searchFixture()
	svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

	filter, err := svc.BuildFilter(SearchIssuesArgs{})
	require.NoError(t, err)
	assert.Nil(t, filter)
}

func TestBuildFilterSingleConditionIsNotWrapped(t *testing.T) {
	issues, teams, projects, cycleAPI := searchFixture()
	svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

	filter, err := svc.BuildFilter(SearchIssuesArgs{ProjectID: "proj-1"})
	require.NoError(t, err)
	require.NotNil(t, filter)
	assert.NotContains(t, filter, "and")
	project := filter["project"].(map[string]interface{})
	id := project["id"].(map[string]interface{})
	assert.Equal(t, "proj-1", id["eq"])
}

func TestBuildFilterRecursiveMeResolution(t *testing.T) {
	issues, teams, projects, cycleAPI := searchFixture()
	svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

	me := "me"
	other := "user-2"
	filter, err := svc.BuildFilter(SearchIssuesArgs{
		Filter: &SearchFilter{
			AssignedTo: "me",
			Or: []SearchFilter{
				{Creator: &UserFilter{ID: &IDComparator{Eq: &me}}},
				{And: []SearchFilter{
					{Assignee: &UserFilter{ID: &IDComparator{In: []string{"me", other}}}},
				}},
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, filter)

	assert.False(t, leaksMe(filter), `nested "me" occurrences must all resolve`)
	assert.Equal(t, 1, teams.viewerCalls, "viewer lookup is memoized per call")
}

// containsKey reports whether key appears anywhere in a lowered filter
// object.
func containsKey(v interface{}, key string) bool {
	switch x := v.(type) {
	case []interface{}:
		for _, item := range x {
			if containsKey(item, key) {
				return true
			}
		}
	case []map[string]interface{}:
		for _, item := range x {
			if containsKey(item, key) {
				return true
			}
		}
	case map[string]interface{}:
		for k, item := range x {
			if k == key || containsKey(item, key) {
				return true
			}
		}
	}
	return false
}

func TestBuildFilterNestedAssignedToShortcut(t *testing.T) {
	issues, teams, projects, cycleAPI := searchFixture()
	svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

	contains := "x"
	filter, err := svc.BuildFilter(SearchIssuesArgs{
		Filter: &SearchFilter{
			Or: []SearchFilter{
				{AssignedTo: "me"},
				{Title: &StringComparator{Contains: &contains}},
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, filter)

	or, ok := filter["or"].([]interface{})
	require.True(t, ok)
	require.Len(t, or, 2)

	assignee := or[0].(map[string]interface{})["assignee"].(map[string]interface{})
	assert.Equal(t, "current-user", assignee["id"].(map[string]interface{})["eq"])

	assert.False(t, leaksMe(filter), `nested shortcut "me" must resolve before the wire`)
	assert.False(t, containsKey(filter, "assignedTo"), "shortcut keys never reach the wire")
	assert.False(t, containsKey(filter, "createdBy"), "shortcut keys never reach the wire")
}

func TestBuildFilterNestedShortcutBesideCanonicalField(t *testing.T) {
	issues, teams, projects, cycleAPI := searchFixture()
	svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

	explicit := "user-2"
	filter, err := svc.BuildFilter(SearchIssuesArgs{
		Filter: &SearchFilter{
			Or: []SearchFilter{
				{
					AssignedTo: "user-1",
					Assignee:   &UserFilter{ID: &IDComparator{Eq: &explicit}},
				},
			},
		},
	})
	require.NoError(t, err)

	node := filter["or"].([]interface{})[0].(map[string]interface{})
	assignee := node["assignee"].(map[string]interface{})
	assert.Equal(t, "user-2", assignee["id"].(map[string]interface{})["eq"], "explicit condition keeps its slot")

	and := node["and"].([]interface{})
	require.Len(t, and, 1)
	lowered := and[0].(map[string]interface{})["assignee"].(map[string]interface{})
	assert.Equal(t, "user-1", lowered["id"].(map[string]interface{})["eq"], "shortcut is and-ed in, not dropped")
}

func TestBuildFilterNestedCycleShortcut(t *testing.T) {
	t.Run("nested cycle lowers to id equality", func(t *testing.T) {
		issues, teams, projects, cycleAPI := searchFixture()
		svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

		filter, err := svc.BuildFilter(SearchIssuesArgs{
			Filter: &SearchFilter{
				Or: []SearchFilter{
					{Cycle: &CycleRef{CycleFilter: CycleFilter{Type: "current", TeamID: "team-1"}}},
					{AssignedTo: "me"},
				},
			},
		})
		require.NoError(t, err)

		node := filter["or"].([]interface{})[0].(map[string]interface{})
		cycle := node["cycle"].(map[string]interface{})
		assert.Equal(t, "cycle-2", cycle["id"].(map[string]interface{})["eq"])
		assert.False(t, containsKey(filter, "teamId"), "cycle shortcut fields never reach the wire")
	})

	t.Run("nested cycle resolution failure is re-wrapped", func(t *testing.T) {
		issues, teams, projects, cycleAPI := searchFixture()
		svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

		_, err := svc.BuildFilter(SearchIssuesArgs{
			Filter: &SearchFilter{
				And: []SearchFilter{
					{Cycle: &CycleRef{CycleFilter: CycleFilter{Type: "current", TeamID: "ghost"}}},
				},
			},
		})
		require.Error(t, err)
		typed, ok := mcperr.As(err)
		require.True(t, ok)
		assert.Equal(t, mcperr.CodeInvalidRequest, typed.Code)
		assert.Equal(t, "Failed to resolve cycle filter: Team not found", typed.Message)
	})
}

func TestBuildFilterProjectNameResolution(t *testing.T) {
	t.Run("single match lowers to project id", func(t *testing.T) {
		issues, teams, projects, cycleAPI := searchFixture()
		projects.listPage = &core.ProjectPage{Projects: []core.Project{{ID: "proj-9", Name: "Platform"}}}
		svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

		filter, err := svc.BuildFilter(SearchIssuesArgs{ProjectName: "Platform"})
		require.NoError(t, err)
		project := filter["project"].(map[string]interface{})
		assert.Equal(t, "proj-9", project["id"].(map[string]interface{})["eq"])
	})

	t.Run("zero matches", func(t *testing.T) {
		issues, teams, projects, cycleAPI := searchFixture()
		svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

		_, err := svc.BuildFilter(SearchIssuesArgs{ProjectName: "Nope"})
		require.Error(t, err)
		typed, ok := mcperr.As(err)
		require.True(t, ok)
		assert.Equal(t, mcperr.CodeInvalidRequest, typed.Code)
		assert.Contains(t, typed.Message, `No projects found matching name "Nope"`)
	})

	t.Run("ambiguous matches list candidates", func(t *testing.T) {
		issues, teams, projects, cycleAPI := searchFixture()
		projects.listPage = &core.ProjectPage{Projects: []core.Project{
			{ID: "p1", Name: "API"},
			{ID: "p2", Name: "API v2"},
		}}
		svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

		_, err := svc.BuildFilter(SearchIssuesArgs{ProjectName: "API"})
		require.Error(t, err)
		typed, ok := mcperr.As(err)
		require.True(t, ok)
		assert.Contains(t, typed.Message, "Please use projectId instead")
		assert.Contains(t, typed.Message, "API (p1)")
		assert.Contains(t, typed.Message, "API v2 (p2)")
	})

	t.Run("explicit projectId skips name resolution", func(t *testing.T) {
		issues, teams, projects, cycleAPI := searchFixture()
		svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

		filter, err := svc.BuildFilter(SearchIssuesArgs{ProjectID: "proj-1", ProjectName: "whatever"})
		require.NoError(t, err)
		require.NotNil(t, filter)
		assert.Empty(t, projects.listFilters)
	})
}

func TestBuildFilterCycleResolution(t *testing.T) {
	t.Run("resolved cycle lowers to id equality", func(t *testing.T) {
		issues, teams, projects, cycleAPI := searchFixture()
		svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

		filter, err := svc.BuildFilter(SearchIssuesArgs{
			Filter: &SearchFilter{Cycle: &CycleRef{CycleFilter: CycleFilter{Type: "current", TeamID: "team-1"}}},
		})
		require.NoError(t, err)
		cycle := filter["cycle"].(map[string]interface{})
		assert.Equal(t, "cycle-2", cycle["id"].(map[string]interface{})["eq"])
	})

	t.Run("resolution failure is re-wrapped", func(t *testing.T) {
		issues, teams, projects, cycleAPI := searchFixture()
		svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

		_, err := svc.BuildFilter(SearchIssuesArgs{
			Filter: &SearchFilter{Cycle: &CycleRef{CycleFilter: CycleFilter{Type: "current", TeamID: "ghost"}}},
		})
		require.Error(t, err)
		typed, ok := mcperr.As(err)
		require.True(t, ok)
		assert.Equal(t, mcperr.CodeInvalidRequest, typed.Code)
		assert.Equal(t, "Failed to resolve cycle filter: Team not found", typed.Message)
	})
}

func TestSearchIssuesMapsResults(t *testing.T) {
	issues, teams, projects, cycleAPI := searchFixture()
	issues.searchPage = &core.IssueSearchPage{Issues: []core.Issue{
		{
			ID:          "issue-1",
			Identifier:  "TEST-1",
			Title:       "First",
			Description: "# Heading\n\nBody",
			State:       &core.StateRef{Name: "Todo"},
			Team:        &core.Team{Name: "Engineering"},
			Labels:      &core.LabelConnection{Nodes: []core.Label{{Name: "bug"}}},
		},
		{ID: "issue-2", Identifier: "TEST-2", Title: "Second"},
	}}
	svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

	results, err := svc.SearchIssues(SearchIssuesArgs{Query: "x"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "TEST-1", results[0].Identifier)
	assert.Equal(t, "Todo", results[0].Status)
	assert.Equal(t, []string{"bug"}, results[0].Labels)
	require.NotNil(t, results[0].Description)
	assert.Equal(t, "Heading Body", *results[0].Description)

	assert.Equal(t, "TEST-2", results[1].Identifier)
	assert.Nil(t, results[1].Description)
	assert.NotNil(t, results[1].Labels)
}

func TestSearchIssuesPassesPaginationThrough(t *testing.T) {
	issues, teams, projects, cycleAPI := searchFixture()
	svc := newSearchServiceForTest(issues, teams, projects, cycleAPI)

	_, err := svc.SearchIssues(SearchIssuesArgs{
		Query:   "x",
		First:   25,
		After:   "cursor-abc",
		OrderBy: "updatedAt",
	})
	require.NoError(t, err)

	require.Len(t, issues.searchOpts, 1)
	assert.Equal(t, core.SearchOpts{First: 25, After: "cursor-abc", OrderBy: "updatedAt"}, issues.searchOpts[0])
}

func TestParseSearchFilterRejectsUnknownKeys(t *testing.T) {
	_, err := ParseSearchFilter(map[string]interface{}{"titel": map[string]interface{}{"eq": "x"}})
	require.Error(t, err)

	filter, err := ParseSearchFilter(map[string]interface{}{
		"assignedTo": "me",
		"title":      map[string]interface{}{"contains": "bug"},
	})
	require.NoError(t, err)
	require.NotNil(t, filter)
	assert.Equal(t, "me", filter.AssignedTo)
	require.NotNil(t, filter.Title)
	assert.Equal(t, "bug", *filter.Title.Contains)

	nested, err := ParseSearchFilter(map[string]interface{}{
		"or": []interface{}{
			map[string]interface{}{"assignedTo": "me"},
			map[string]interface{}{"cycle": map[string]interface{}{"type": "current", "teamId": "team-1"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, nested.Or, 2)
	assert.Equal(t, "me", nested.Or[0].AssignedTo)
	require.NotNil(t, nested.Or[1].Cycle)
	assert.Equal(t, "current", nested.Or[1].Cycle.Type)
	assert.Equal(t, "team-1", nested.Or[1].Cycle.TeamID)
}
