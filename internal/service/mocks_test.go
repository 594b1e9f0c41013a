package service

// Hand-rolled fakes over the upstream interfaces. Each fake records the
// calls it receives so tests can assert on what went upstream, not only on
// what came back.

import (
	"github.com/cosmix/linear-mcp/internal/linear/core"
)

type issueUpdateCall struct {
	id    string
	input core.IssueUpdateInput
}

type fakeIssueAPI struct {
	issues    map[string]*core.Issue
	relations map[string][]core.IssueRelation
	comments  map[string][]core.Comment

	getErr error

	created      []core.IssueCreateInput
	createResult *core.Issue
	createErr    error

	updates   []issueUpdateCall
	updateErr error

	deleted   []string
	deleteErr error

	searchFilters []map[string]interface{}
	searchOpts    []core.SearchOpts
	searchPage    *core.IssueSearchPage
	searchErr     error
}

func (f *fakeIssueAPI) GetIssue(issueID string) (*core.Issue, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if issue, ok := f.issues[issueID]; ok {
		return issue, nil
	}
	for _, issue := range f.issues {
		if issue.Identifier == issueID {
			return issue, nil
		}
	}
	return nil, &core.NotFoundError{ResourceType: "issue", ResourceID: issueID}
}

func (f *fakeIssueAPI) GetIssueRelations(issueID string) ([]core.IssueRelation, error) {
	return f.relations[issueID], nil
}

func (f *fakeIssueAPI) GetIssueComments(issueID string) ([]core.Comment, error) {
	return f.comments[issueID], nil
}

func (f *fakeIssueAPI) CreateIssue(input core.IssueCreateInput) (*core.Issue, error) {
	f.created = append(f.created, input)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeIssueAPI) UpdateIssue(issueID string, input core.IssueUpdateInput) (*core.Issue, error) {
	f.updates = append(f.updates, issueUpdateCall{id: issueID, input: input})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.issues[issueID], nil
}

func (f *fakeIssueAPI) DeleteIssue(issueID string) error {
	f.deleted = append(f.deleted, issueID)
	return f.deleteErr
}

func (f *fakeIssueAPI) SearchIssues(filter map[string]interface{}, opts core.SearchOpts) (*core.IssueSearchPage, error) {
	f.searchFilters = append(f.searchFilters, filter)
	f.searchOpts = append(f.searchOpts, opts)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.searchPage != nil {
		return f.searchPage, nil
	}
	return &core.IssueSearchPage{Issues: []core.Issue{}}, nil
}

type fakeTeamAPI struct {
	teams    []core.Team
	teamsErr error

	viewer      *core.User
	viewerErr   error
	viewerCalls int
}

func (f *fakeTeamAPI) GetTeams() ([]core.Team, error) {
	if f.teamsErr != nil {
		return nil, f.teamsErr
	}
	return f.teams, nil
}

func (f *fakeTeamAPI) GetViewer() (*core.User, error) {
	f.viewerCalls++
	if f.viewerErr != nil {
		return nil, f.viewerErr
	}
	return f.viewer, nil
}

type fakeCycleAPI struct {
	cycles map[string][]core.Cycle
	err    error
}

func (f *fakeCycleAPI) ListTeamCycles(teamID string) ([]core.Cycle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cycles[teamID], nil
}

type fakeWorkflowAPI struct {
	states map[string][]core.WorkflowState
	err    error
}

func (f *fakeWorkflowAPI) GetTeamStates(teamID string) ([]core.WorkflowState, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.states[teamID], nil
}

type fakeProjectAPI struct {
	listPage    *core.ProjectPage
	listFilters []*core.ProjectFilter
	listErr     error

	projects map[string]*core.Project

	created      []core.ProjectCreateInput
	createResult *core.Project
	createErr    error

	updates   []core.ProjectUpdateInput
	updateErr error
}

func (f *fakeProjectAPI) ListProjects(filter *core.ProjectFilter) (*core.ProjectPage, error) {
	f.listFilters = append(f.listFilters, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listPage != nil {
		return f.listPage, nil
	}
	return &core.ProjectPage{Projects: []core.Project{}}, nil
}

func (f *fakeProjectAPI) GetProject(projectID string) (*core.Project, error) {
	if project, ok := f.projects[projectID]; ok {
		return project, nil
	}
	return nil, &core.NotFoundError{ResourceType: "project", ResourceID: projectID}
}

func (f *fakeProjectAPI) CreateProject(input core.ProjectCreateInput) (*core.Project, error) {
	f.created = append(f.created, input)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeProjectAPI) UpdateProject(projectID string, input core.ProjectUpdateInput) (*core.Project, error) {
	f.updates = append(f.updates, input)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.projects[projectID], nil
}

type fakeDocumentAPI struct {
	listPage    *core.DocumentPage
	listFilters []*core.DocumentFilter
	listErr     error

	documents map[string]*core.Document

	created      []core.DocumentCreateInput
	createResult *core.Document
	createErr    error

	updates   []core.DocumentUpdateInput
	updateErr error

	deleted      []string
	deleteResult *core.DeleteResult
	deleteErr    error
}

func (f *fakeDocumentAPI) ListDocuments(filter *core.DocumentFilter) (*core.DocumentPage, error) {
	f.listFilters = append(f.listFilters, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listPage != nil {
		return f.listPage, nil
	}
	return &core.DocumentPage{Documents: []core.Document{}}, nil
}

func (f *fakeDocumentAPI) GetDocument(documentID string) (*core.Document, error) {
	if doc, ok := f.documents[documentID]; ok {
		return doc, nil
	}
	return nil, &core.NotFoundError{ResourceType: "document", ResourceID: documentID}
}

func (f *fakeDocumentAPI) CreateDocument(input core.DocumentCreateInput) (*core.Document, error) {
	f.created = append(f.created, input)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeDocumentAPI) UpdateDocument(documentID string, input core.DocumentUpdateInput) (*core.Document, error) {
	f.updates = append(f.updates, input)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.documents[documentID], nil
}

func (f *fakeDocumentAPI) DeleteDocument(documentID string) (*core.DeleteResult, error) {
	f.deleted = append(f.deleted, documentID)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	if f.deleteResult != nil {
		return f.deleteResult, nil
	}
	return &core.DeleteResult{Success: true}, nil
}

type commentCreateCall struct {
	issueID string
	body    string
}

type fakeCommentAPI struct {
	created []commentCreateCall
	result  *core.Comment
	err     error
}

func (f *fakeCommentAPI) CreateComment(issueID, body string) (*core.Comment, error) {
	f.created = append(f.created, commentCreateCall{issueID: issueID, body: body})
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
