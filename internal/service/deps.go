package service

import (
	"sort"
	"strings"
	"sync"

	"github.com/cosmix/linear-mcp/internal/linear/core"
	"github.com/cosmix/linear-mcp/internal/mcperr"
	"github.com/dominikbraun/graph"
)

const (
	defaultDepsDepth = 2
	maxDepsDepth     = 5
)

// DepsService walks the blocking relations around an issue and returns them
// as a directed graph.
type DepsService struct {
	issues IssueAPI
}

// NewDepsService creates a dependency service over the given client.
func NewDepsService(issues IssueAPI) *DepsService {
	return &DepsService{issues: issues}
}

// GetIssueDependencies traverses blocking relations breadth-first from the
// given issue, up to depth hops (default 2, capped at 5). Edges point from
// blocker to blocked. When the resulting graph is acyclic the response also
// carries a valid work order.
func (s *DepsService) GetIssueDependencies(issueID string, depth int) (*DependencyGraphDTO, error) {
	if depth <= 0 {
		depth = defaultDepsDepth
	}
	if depth > maxDepsDepth {
		depth = maxDepsDepth
	}

	root, err := s.issues.GetIssue(issueID)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, mcperr.InvalidRequestf("Issue not found: %s", issueID)
		}
		return nil, mcperr.Passthrough(err)
	}

	nodes := map[string]DependencyNode{
		root.ID: {ID: root.ID, Identifier: root.Identifier, Title: root.Title},
	}
	var edges []DependencyEdge
	seenEdges := map[DependencyEdge]bool{}

	frontier := []string{root.ID}
	visited := map[string]bool{root.ID: true}

	for hop := 0; hop < depth && len(frontier) > 0; hop++ {
		relationSets, err := s.fetchRelations(frontier)
		if err != nil {
			return nil, mcperr.Passthrough(err)
		}

		var next []string
		for _, id := range frontier {
			for _, rel := range relationSets[id] {
				if rel.RelatedIssue == nil {
					continue
				}
				target := rel.RelatedIssue
				var edge DependencyEdge
				switch strings.ToLower(rel.Type) {
				case "blocks":
					edge = DependencyEdge{From: id, To: target.ID, Type: "blocks"}
				case "blocked", "blockedby":
					edge = DependencyEdge{From: target.ID, To: id, Type: "blocks"}
				default:
					continue
				}

				if _, ok := nodes[target.ID]; !ok {
					nodes[target.ID] = DependencyNode{
						ID:         target.ID,
						Identifier: target.Identifier,
						Title:      target.Title,
					}
				}
				if !seenEdges[edge] {
					seenEdges[edge] = true
					edges = append(edges, edge)
				}
				if !visited[target.ID] {
					visited[target.ID] = true
					next = append(next, target.ID)
				}
			}
		}
		frontier = next
	}

	dto := &DependencyGraphDTO{
		Root:  root.ID,
		Nodes: make([]DependencyNode, 0, len(nodes)),
		Edges: edges,
	}
	for _, n := range nodes {
		dto.Nodes = append(dto.Nodes, n)
	}
	sort.Slice(dto.Nodes, func(i, j int) bool {
		return dto.Nodes[i].Identifier < dto.Nodes[j].Identifier
	})
	if dto.Edges == nil {
		dto.Edges = []DependencyEdge{}
	}

	g := graph.New(graph.StringHash, graph.Directed())
	for id := range nodes {
		_ = g.AddVertex(id)
	}
	for _, e := range edges {
		_ = g.AddEdge(e.From, e.To)
	}
	// TopologicalSort fails on cyclic graphs; the order is then simply
	// omitted from the response.
	if order, err := graph.TopologicalSort(g); err == nil {
		dto.Order = order
	}

	return dto, nil
}

// fetchRelations loads the relation sets of one BFS frontier concurrently.
func (s *DepsService) fetchRelations(ids []string) (map[string][]core.IssueRelation, error) {
	type result struct {
		id        string
		relations []core.IssueRelation
		err       error
	}

	results := make([]result, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			relations, err := s.issues.GetIssueRelations(id)
			results[i] = result{id: id, relations: relations, err: err}
		}(i, id)
	}
	wg.Wait()

	out := make(map[string][]core.IssueRelation, len(ids))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		out[r.id] = r.relations
	}
	return out, nil
}
