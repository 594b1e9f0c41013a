package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmix/linear-mcp/internal/linear/core"
)

func depsFixture() *fakeIssueAPI {
	return &fakeIssueAPI{
		issues: map[string]*core.Issue{
			"a": {ID: "a", Identifier: "ENG-1", Title: "root"},
		},
		relations: map[string][]core.IssueRelation{
			"a": {
				{ID: "r1", Type: "blocks", RelatedIssue: &core.IssueRef{ID: "b", Identifier: "ENG-2", Title: "downstream"}},
				{ID: "r2", Type: "blocked", RelatedIssue: &core.IssueRef{ID: "c", Identifier: "ENG-3", Title: "upstream"}},
				{ID: "r3", Type: "related", RelatedIssue: &core.IssueRef{ID: "d", Identifier: "ENG-4", Title: "unrelated"}},
			},
			"b": {
				{ID: "r4", Type: "blocks", RelatedIssue: &core.IssueRef{ID: "e", Identifier: "ENG-5", Title: "further down"}},
			},
		},
	}
}

func TestGetIssueDependencies(t *testing.T) {
	svc := NewDepsService(depsFixture())

	dto, err := svc.GetIssueDependencies("ENG-1", 2)
	require.NoError(t, err)

	assert.Equal(t, "a", dto.Root)

	ids := make([]string, 0, len(dto.Nodes))
	for _, n := range dto.Nodes {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c", "e"}, ids,
		"related-type edges do not pull issues into the graph")

	assert.Contains(t, dto.Edges, DependencyEdge{From: "a", To: "b", Type: "blocks"})
	assert.Contains(t, dto.Edges, DependencyEdge{From: "c", To: "a", Type: "blocks"})
	assert.Contains(t, dto.Edges, DependencyEdge{From: "b", To: "e", Type: "blocks"})

	// Acyclic graph carries a work order; blockers sort before blocked.
	require.NotEmpty(t, dto.Order)
	pos := map[string]int{}
	for i, id := range dto.Order {
		pos[id] = i
	}
	assert.Less(t, pos["c"], pos["a"])
	assert.Less(t, pos["a"], pos["b"])
	assert.Less(t, pos["b"], pos["e"])
}

func TestGetIssueDependenciesDepthLimit(t *testing.T) {
	svc := NewDepsService(depsFixture())

	dto, err := svc.GetIssueDependencies("a", 1)
	require.NoError(t, err)

	for _, n := range dto.Nodes {
		assert.NotEqual(t, "e", n.ID, "second hop must not be expanded at depth 1")
	}
}

func TestGetIssueDependenciesCycleOmitsOrder(t *testing.T) {
	issues := &fakeIssueAPI{
		issues: map[string]*core.Issue{
			"a": {ID: "a", Identifier: "ENG-1", Title: "root"},
		},
		relations: map[string][]core.IssueRelation{
			"a": {{ID: "r1", Type: "blocks", RelatedIssue: &core.IssueRef{ID: "b", Identifier: "ENG-2", Title: "b"}}},
			"b": {{ID: "r2", Type: "blocks", RelatedIssue: &core.IssueRef{ID: "a", Identifier: "ENG-1", Title: "root"}}},
		},
	}
	svc := NewDepsService(issues)

	dto, err := svc.GetIssueDependencies("a", 3)
	require.NoError(t, err)
	assert.Len(t, dto.Edges, 2)
	assert.Empty(t, dto.Order, "cyclic graphs have no valid work order")
}
