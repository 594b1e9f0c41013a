// Package service implements the tool-facing operations: issue retrieval and
// mutation, search filter composition, team/cycle resolution, and the
// document/project/comment CRUD surface. Services depend on narrow upstream
// interfaces so tests can swap in fakes without any HTTP.
package service

import (
	"github.com/cosmix/linear-mcp/internal/linear"
	"github.com/cosmix/linear-mcp/internal/linear/core"
)

// IssueAPI is the upstream surface the issue, search, comment and dependency
// services need.
type IssueAPI interface {
	GetIssue(issueID string) (*core.Issue, error)
	GetIssueRelations(issueID string) ([]core.IssueRelation, error)
	GetIssueComments(issueID string) ([]core.Comment, error)
	CreateIssue(input core.IssueCreateInput) (*core.Issue, error)
	UpdateIssue(issueID string, input core.IssueUpdateInput) (*core.Issue, error)
	DeleteIssue(issueID string) error
	SearchIssues(filter map[string]interface{}, opts core.SearchOpts) (*core.IssueSearchPage, error)
}

// TeamAPI exposes team listing and viewer identity.
type TeamAPI interface {
	GetTeams() ([]core.Team, error)
	GetViewer() (*core.User, error)
}

// CycleAPI exposes per-team cycle listing.
type CycleAPI interface {
	ListTeamCycles(teamID string) ([]core.Cycle, error)
}

// WorkflowAPI exposes team-scoped workflow states.
type WorkflowAPI interface {
	GetTeamStates(teamID string) ([]core.WorkflowState, error)
}

// ProjectAPI exposes project CRUD.
type ProjectAPI interface {
	ListProjects(filter *core.ProjectFilter) (*core.ProjectPage, error)
	GetProject(projectID string) (*core.Project, error)
	CreateProject(input core.ProjectCreateInput) (*core.Project, error)
	UpdateProject(projectID string, input core.ProjectUpdateInput) (*core.Project, error)
}

// DocumentAPI exposes document CRUD.
type DocumentAPI interface {
	ListDocuments(filter *core.DocumentFilter) (*core.DocumentPage, error)
	GetDocument(documentID string) (*core.Document, error)
	CreateDocument(input core.DocumentCreateInput) (*core.Document, error)
	UpdateDocument(documentID string, input core.DocumentUpdateInput) (*core.Document, error)
	DeleteDocument(documentID string) (*core.DeleteResult, error)
}

// CommentAPI exposes comment creation.
type CommentAPI interface {
	CreateComment(issueID, body string) (*core.Comment, error)
}

// Services bundles every service over one Linear client. Tool registration
// takes this as a single dependency.
type Services struct {
	Issues    *IssueService
	Search    *SearchService
	Cycles    *CycleService
	Documents *DocumentService
	Projects  *ProjectService
	Comments  *CommentService
	Deps      *DepsService
}

// NewServices wires all services over the given client.
func NewServices(client *linear.Client) *Services {
	cycles := NewCycleService(client.Teams, client.Cycles)
	return &Services{
		Issues:    NewIssueService(client.Issues, client.Teams, client.Workflows, cycles),
		Search:    NewSearchService(client.Issues, client.Teams, client.Projects, cycles),
		Cycles:    cycles,
		Documents: NewDocumentService(client.Documents),
		Projects:  NewProjectService(client.Projects),
		Comments:  NewCommentService(client.Issues, client.Comments),
		Deps:      NewDepsService(client.Issues),
	}
}
