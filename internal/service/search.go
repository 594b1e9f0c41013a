package service

import (
	"fmt"
	"strings"

	"github.com/cosmix/linear-mcp/internal/linear/core"
	"github.com/cosmix/linear-mcp/internal/mcperr"
	"github.com/cosmix/linear-mcp/internal/text"
)

// SearchService composes issue search filters and maps results to flat
// DTOs.
type SearchService struct {
	issues   IssueAPI
	teams    TeamAPI
	projects ProjectAPI
	cycles   *CycleService
}

// NewSearchService creates a search service over the given upstream clients.
func NewSearchService(issues IssueAPI, teams TeamAPI, projects ProjectAPI, cycles *CycleService) *SearchService {
	return &SearchService{
		issues:   issues,
		teams:    teams,
		projects: projects,
		cycles:   cycles,
	}
}

// SearchIssuesArgs are the arguments for SearchIssues. After and OrderBy
// pass through to the upstream query untouched.
type SearchIssuesArgs struct {
	Query       string
	Filter      *SearchFilter
	ProjectID   string
	ProjectName string
	First       int
	After       string
	OrderBy     string
}

// SearchIssues composes the filter conditions, resolves every "me"
// self-reference, runs the search and maps each result to a flat DTO in
// upstream order.
func (s *SearchService) SearchIssues(args SearchIssuesArgs) ([]IssueSearchResult, error) {
	filter, err := s.BuildFilter(args)
	if err != nil {
		return nil, mcperr.Passthrough(err)
	}

	page, err := s.issues.SearchIssues(filter, core.SearchOpts{
		First:   args.First,
		After:   args.After,
		OrderBy: args.OrderBy,
	})
	if err != nil {
		return nil, mcperr.Passthrough(err)
	}

	results := make([]IssueSearchResult, len(page.Issues))
	for i := range page.Issues {
		results[i] = mapSearchResult(&page.Issues[i])
	}
	return results, nil
}

// BuildFilter assembles the upstream filter object. Conditions are ANDed in
// a fixed order: free-text, project, assignedTo/createdBy shortcuts, cycle,
// remaining field filters, then explicit and/or sub-trees. Returns nil when
// no condition applies.
func (s *SearchService) BuildFilter(args SearchIssuesArgs) (map[string]interface{}, error) {
	var conds []map[string]interface{}
	resolveViewer := s.viewerResolver()
	resolveCycle := func(cf CycleFilter) (string, error) {
		id, err := s.cycles.ResolveCycleFilter(cf)
		if err != nil {
			return "", mcperr.InvalidRequestf("Failed to resolve cycle filter: %s", errMessage(err))
		}
		return id, nil
	}

	appendCond := func(f *SearchFilter) error {
		if err := f.lowerShortcuts(resolveCycle); err != nil {
			return err
		}
		if err := f.resolveMe(resolveViewer); err != nil {
			return err
		}
		m, err := f.toMap()
		if err != nil {
			return err
		}
		if len(m) > 0 {
			conds = append(conds, m)
		}
		return nil
	}

	if args.Query != "" {
		q := args.Query
		cond := &SearchFilter{Or: []SearchFilter{
			{Title: &StringComparator{Contains: &q}},
			{Description: &StringComparator{Contains: &q}},
		}}
		if err := appendCond(cond); err != nil {
			return nil, err
		}
	}

	projectID := args.ProjectID
	if projectID == "" && args.ProjectName != "" {
		resolved, err := s.resolveProjectName(args.ProjectName)
		if err != nil {
			return nil, err
		}
		projectID = resolved
	}
	if projectID != "" {
		id := projectID
		cond := &SearchFilter{Project: &RelationFilter{ID: &IDComparator{Eq: &id}}}
		if err := appendCond(cond); err != nil {
			return nil, err
		}
	}

	if f := args.Filter; f != nil {
		if f.AssignedTo != "" {
			v := f.AssignedTo
			cond := &SearchFilter{Assignee: &UserFilter{ID: &IDComparator{Eq: &v}}}
			if err := appendCond(cond); err != nil {
				return nil, err
			}
		}
		if f.CreatedBy != "" {
			v := f.CreatedBy
			cond := &SearchFilter{Creator: &UserFilter{ID: &IDComparator{Eq: &v}}}
			if err := appendCond(cond); err != nil {
				return nil, err
			}
		}
		if f.Cycle != nil {
			cycleID, err := resolveCycle(f.Cycle.CycleFilter)
			if err != nil {
				return nil, err
			}
			conds = append(conds, map[string]interface{}{
				"cycle": map[string]interface{}{
					"id": map[string]interface{}{"eq": cycleID},
				},
			})
		}

		rest := *f
		rest.AssignedTo = ""
		rest.CreatedBy = ""
		rest.Cycle = nil
		rest.And = nil
		rest.Or = nil
		if err := appendCond(&rest); err != nil {
			return nil, err
		}

		if len(f.And) > 0 {
			cond := &SearchFilter{And: f.And}
			if err := appendCond(cond); err != nil {
				return nil, err
			}
		}
		if len(f.Or) > 0 {
			cond := &SearchFilter{Or: f.Or}
			if err := appendCond(cond); err != nil {
				return nil, err
			}
		}
	}

	switch len(conds) {
	case 0:
		return nil, nil
	case 1:
		return conds[0], nil
	default:
		return map[string]interface{}{"and": conds}, nil
	}
}

// viewerResolver returns a per-call memoized resolver for the authenticated
// user's id, so many "me" occurrences in one filter tree cost one lookup.
func (s *SearchService) viewerResolver() func() (string, error) {
	var (
		id   string
		err  error
		done bool
	)
	return func() (string, error) {
		if !done {
			done = true
			var viewer *core.User
			viewer, err = s.teams.GetViewer()
			if err == nil {
				id = viewer.ID
			}
		}
		return id, err
	}
}

// resolveProjectName maps a project name to an id. Zero matches and
// ambiguous matches are both InvalidRequest; ambiguity lists the candidates
// so the caller can switch to projectId.
func (s *SearchService) resolveProjectName(name string) (string, error) {
	page, err := s.projects.ListProjects(&core.ProjectFilter{Name: name})
	if err != nil {
		return "", mcperr.Passthrough(err)
	}

	switch len(page.Projects) {
	case 0:
		return "", mcperr.InvalidRequestf("No projects found matching name %q", name)
	case 1:
		return page.Projects[0].ID, nil
	default:
		candidates := make([]string, 0, len(page.Projects))
		for _, p := range page.Projects {
			candidates = append(candidates, fmt.Sprintf("%s (%s)", p.Name, p.ID))
		}
		return "", mcperr.InvalidRequestf(
			"Multiple projects match name %q. Please use projectId instead. Matching projects: %s",
			name, strings.Join(candidates, ", "))
	}
}

func mapSearchResult(issue *core.Issue) IssueSearchResult {
	result := IssueSearchResult{
		ID:          issue.ID,
		Identifier:  issue.Identifier,
		Title:       issue.Title,
		Description: text.CleanDescription(issue.Description),
		Priority:    issue.Priority,
		Labels:      []string{},
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
		URL:         issue.URL,
	}
	if issue.State != nil {
		result.Status = issue.State.Name
	}
	if issue.Assignee != nil {
		result.Assignee = issue.Assignee.Name
	}
	if issue.Team != nil {
		result.TeamName = issue.Team.Name
	}
	if issue.Labels != nil {
		for _, label := range issue.Labels.Nodes {
			result.Labels = append(result.Labels, label.Name)
		}
	}
	return result
}

// errMessage extracts the human message from an error, unwrapping the typed
// kind so wrapped messages do not double up the code prefix.
func errMessage(err error) string {
	if typed, ok := mcperr.As(err); ok {
		return typed.Message
	}
	return err.Error()
}
