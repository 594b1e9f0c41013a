package service

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/cosmix/linear-mcp/internal/linear/core"
	"github.com/cosmix/linear-mcp/internal/mcperr"
	"github.com/cosmix/linear-mcp/internal/text"
)

// symbolicCycleRegex matches cycle references that need resolution against
// the issue's team: the three symbolic names plus bare cycle numbers.
// Anything else is an opaque cycle id and ships verbatim.
var symbolicCycleRegex = regexp.MustCompile(`^(current|next|previous|\d+)$`)

// IssueService orchestrates issue retrieval, creation, update and deletion.
type IssueService struct {
	issues    IssueAPI
	teams     TeamAPI
	workflows WorkflowAPI
	cycles    *CycleService
}

// NewIssueService creates an issue service over the given upstream clients.
func NewIssueService(issues IssueAPI, teams TeamAPI, workflows WorkflowAPI, cycles *CycleService) *IssueService {
	return &IssueService{
		issues:    issues,
		teams:     teams,
		workflows: workflows,
		cycles:    cycles,
	}
}

// CreateIssueArgs are the arguments for CreateIssue. TeamID may be omitted
// when ParentID is given; the team is then inherited from the parent.
type CreateIssueArgs struct {
	Title       string
	TeamID      string
	ParentID    string
	Description string
	Status      string
	Priority    *int
	AssigneeID  string
	LabelIDs    []string
	ProjectID   string
}

// UpdateIssueArgs are the sparse arguments for UpdateIssue. Nil fields are
// left untouched.
type UpdateIssueArgs struct {
	IssueID     string
	Title       *string
	Description *string
	Status      *string
	Priority    *int
	AssigneeID  *string
	LabelIDs    []string
	CycleID     *string
}

// GetIssue retrieves an issue and materializes the full DTO: relationships
// are always assembled; comments only when includeRelationships is set.
// Mention extraction runs over the raw description (and raw comment bodies
// when fetched), never over the cleaned text.
func (s *IssueService) GetIssue(issueID string, includeRelationships bool) (*IssueDTO, error) {
	issue, err := s.issues.GetIssue(issueID)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, mcperr.InvalidRequestf("Issue not found: %s", issueID)
		}
		return nil, mcperr.Passthrough(err)
	}

	// Relations and comments live behind separate queries; fetch them
	// concurrently. List order stays upstream order either way.
	var (
		wg        sync.WaitGroup
		relations []core.IssueRelation
		relErr    error
		comments  []core.Comment
		comErr    error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		relations, relErr = s.issues.GetIssueRelations(issue.ID)
	}()
	if includeRelationships {
		wg.Add(1)
		go func() {
			defer wg.Done()
			comments, comErr = s.issues.GetIssueComments(issue.ID)
		}()
	}
	wg.Wait()

	if relErr != nil {
		return nil, mcperr.Passthrough(relErr)
	}
	if comErr != nil {
		return nil, mcperr.Passthrough(comErr)
	}

	return buildIssueDTO(issue, relations, comments, includeRelationships), nil
}

// CreateIssue creates an issue and returns it fully materialized through the
// read path. Parent lookup failures and the missing teamId/parentId check
// surface as plain InvalidRequest; everything else is wrapped once as an
// internal "Failed to create issue" error.
func (s *IssueService) CreateIssue(args CreateIssueArgs) (*IssueDTO, error) {
	teamID := args.TeamID

	if args.ParentID != "" {
		parent, err := s.issues.GetIssue(args.ParentID)
		if err != nil {
			if core.IsNotFoundError(err) {
				return nil, mcperr.InvalidRequest("Parent issue not found")
			}
			return nil, mcperr.WrapInternal("Failed to create issue", err)
		}
		if teamID == "" {
			if parent.Team == nil || parent.Team.ID == "" {
				return nil, mcperr.InvalidRequest("Parent issue has no team to inherit")
			}
			teamID = parent.Team.ID
		}
	}
	if teamID == "" {
		return nil, mcperr.InvalidRequest("Either teamId or parentId must be provided")
	}

	dto, err := s.createIssue(teamID, args)
	if err != nil {
		return nil, mcperr.WrapInternal("Failed to create issue", err)
	}
	return dto, nil
}

func (s *IssueService) createIssue(teamID string, args CreateIssueArgs) (*IssueDTO, error) {
	input := core.IssueCreateInput{
		TeamID:      teamID,
		Title:       args.Title,
		Description: args.Description,
		ParentID:    args.ParentID,
		ProjectID:   args.ProjectID,
		LabelIDs:    args.LabelIDs,
	}

	if args.Priority != nil {
		if err := validatePriority(*args.Priority); err != nil {
			return nil, err
		}
		input.Priority = args.Priority
	}

	if args.AssigneeID != "" {
		assigneeID, err := s.resolveAssignee(args.AssigneeID)
		if err != nil {
			return nil, err
		}
		input.AssigneeID = assigneeID
	}

	if args.Status != "" {
		stateID, err := s.resolveStatusID(teamID, args.Status)
		if err != nil {
			return nil, err
		}
		input.StateID = stateID
	}

	issue, err := s.issues.CreateIssue(input)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, errors.New("No issue returned")
	}

	return s.GetIssue(issue.ID, false)
}

// UpdateIssue applies a sparse patch to an issue and returns it through the
// read path. Every failure, typed or not, gets its message nested under
// "Failed to update issue" — the nested chain is load-bearing for existing
// consumers.
func (s *IssueService) UpdateIssue(args UpdateIssueArgs) (*IssueDTO, error) {
	dto, err := s.updateIssue(args)
	if err != nil {
		return nil, mcperr.Rewrap("Failed to update issue", err)
	}
	return dto, nil
}

func (s *IssueService) updateIssue(args UpdateIssueArgs) (*IssueDTO, error) {
	issue, err := s.issues.GetIssue(args.IssueID)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, mcperr.InvalidRequestf("Issue not found: %s", args.IssueID)
		}
		return nil, err
	}

	if issue.Team == nil || issue.Team.ID == "" {
		return nil, mcperr.InvalidRequestf("Issue %s has no team", issue.Identifier)
	}

	input := core.IssueUpdateInput{
		Title:       args.Title,
		Description: args.Description,
		LabelIDs:    args.LabelIDs,
	}

	if args.Priority != nil {
		if err := validatePriority(*args.Priority); err != nil {
			return nil, err
		}
		input.Priority = args.Priority
	}

	if args.AssigneeID != nil {
		assigneeID, err := s.resolveAssignee(*args.AssigneeID)
		if err != nil {
			return nil, err
		}
		input.AssigneeID = &assigneeID
	}

	if args.Status != nil {
		stateID, err := s.resolveStatusID(issue.Team.ID, *args.Status)
		if err != nil {
			return nil, err
		}
		input.StateID = &stateID
	}

	if args.CycleID != nil {
		cycleID := *args.CycleID
		if symbolicCycleRegex.MatchString(cycleID) {
			resolved, err := s.resolveSymbolicCycle(issue.Team.ID, cycleID)
			if err != nil {
				return nil, err
			}
			cycleID = resolved
		}
		input.CycleID = &cycleID
	}

	if _, err := s.issues.UpdateIssue(issue.ID, input); err != nil {
		return nil, err
	}

	return s.GetIssue(args.IssueID, false)
}

// DeleteIssue verifies the issue exists, then deletes it. The existence
// check surfaces unwrapped; only delete-time failures get the operation
// wrapper.
func (s *IssueService) DeleteIssue(issueID string) error {
	issue, err := s.issues.GetIssue(issueID)
	if err != nil {
		if core.IsNotFoundError(err) {
			return mcperr.InvalidRequestf("Issue not found: %s", issueID)
		}
		return mcperr.Passthrough(err)
	}

	if err := s.issues.DeleteIssue(issue.ID); err != nil {
		return mcperr.WrapInternal("Failed to delete issue", err)
	}
	return nil
}

// resolveAssignee maps the self-reference "me" to the authenticated user's
// id; any other value ships verbatim.
func (s *IssueService) resolveAssignee(assigneeID string) (string, error) {
	if assigneeID != "me" {
		return assigneeID, nil
	}
	viewer, err := s.teams.GetViewer()
	if err != nil {
		return "", err
	}
	return viewer.ID, nil
}

// resolveStatusID matches a status name, case-insensitively, against the
// team's workflow states.
func (s *IssueService) resolveStatusID(teamID, status string) (string, error) {
	states, err := s.workflows.GetTeamStates(teamID)
	if err != nil {
		return "", err
	}

	for _, state := range states {
		if strings.EqualFold(state.Name, status) {
			return state.ID, nil
		}
	}

	teamName := teamID
	if teams, err := s.teams.GetTeams(); err == nil {
		for _, team := range teams {
			if team.ID == teamID {
				teamName = team.Name
				break
			}
		}
	}

	names := make([]string, 0, len(states))
	for _, state := range states {
		names = append(names, state.Name)
	}
	return "", mcperr.InvalidParamsf("Invalid status name %q for team %q. Valid statuses are: %s",
		status, teamName, strings.Join(names, ", "))
}

func (s *IssueService) resolveSymbolicCycle(teamID, ref string) (string, error) {
	filter := CycleFilter{TeamID: teamID}
	switch ref {
	case "current", "next", "previous":
		filter.Type = ref
	default:
		filter.Type = "specific"
		filter.ID = ref
	}
	return s.cycles.ResolveCycleFilter(filter)
}

func validatePriority(priority int) error {
	if priority < 0 || priority > 4 {
		return mcperr.InvalidParamsf("Invalid priority value \"%d\". Priority must be between 0 (No priority) and 4 (Low).", priority)
	}
	return nil
}

// buildIssueDTO flattens an upstream issue plus its relation and comment
// collections into the stable output shape.
func buildIssueDTO(issue *core.Issue, relations []core.IssueRelation, comments []core.Comment, includeComments bool) *IssueDTO {
	dto := &IssueDTO{
		ID:          issue.ID,
		Identifier:  issue.Identifier,
		Title:       issue.Title,
		Description: text.CleanDescription(issue.Description),
		Priority:    issue.Priority,
		Estimate:    issue.Estimate,
		DueDate:     issue.DueDate,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
		URL:         issue.URL,
		Labels:      []string{},
		SubIssues:   []IssueSummary{},
	}

	if issue.State != nil {
		dto.Status = issue.State.Name
	}
	if issue.Assignee != nil {
		dto.Assignee = issue.Assignee.Name
	}
	if issue.Team != nil {
		dto.TeamName = issue.Team.Name
	}
	if issue.Creator != nil {
		dto.CreatorName = issue.Creator.Name
	}
	if issue.Labels != nil {
		for _, label := range issue.Labels.Nodes {
			dto.Labels = append(dto.Labels, label.Name)
		}
	}
	if issue.Parent != nil && issue.Parent.ID != "" {
		dto.Parent = &IssueSummary{
			ID:         issue.Parent.ID,
			Identifier: issue.Parent.Identifier,
			Title:      issue.Parent.Title,
		}
	}
	if issue.Children != nil {
		for _, child := range issue.Children.Nodes {
			dto.SubIssues = append(dto.SubIssues, IssueSummary{
				ID:         child.ID,
				Identifier: child.Identifier,
				Title:      child.Title,
			})
		}
	}

	dto.Relationships = buildRelationships(issue, relations)

	// Mentions come from the raw description, then the raw comment bodies,
	// deduplicated across both in first-occurrence order.
	mentions := text.ExtractMentions(issue.Description)
	if includeComments {
		dto.Comments = mapComments(comments)
		for _, c := range comments {
			mentions = text.MergeMentions(mentions, text.ExtractMentions(c.Body))
		}
	}
	dto.MentionedIssues = mentions.Issues
	dto.MentionedUsers = mentions.Users

	return dto
}
