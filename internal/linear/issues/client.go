package issues

import (
	"fmt"

	"github.com/cosmix/linear-mcp/internal/linear/core"
)

// Client handles all issue-related operations for the Linear API. It uses
// the shared BaseClient for HTTP communication.
type Client struct {
	base *core.BaseClient
}

// NewClient creates a new issue client with the provided base client.
func NewClient(base *core.BaseClient) *Client {
	return &Client{base: base}
}

// issueFields is the selection shared by every query that returns a full
// issue. Parent and children ride along so a single round trip materializes
// the scalar fields plus both single-hop relationships.
const issueFields = `
	id
	identifier
	title
	description
	priority
	estimate
	dueDate
	createdAt
	updatedAt
	url
	state {
		id
		name
	}
	assignee {
		id
		name
		displayName
		email
	}
	creator {
		id
		name
		displayName
	}
	team {
		id
		name
		key
	}
	labels {
		nodes {
			id
			name
			color
		}
	}
	parent {
		id
		identifier
		title
	}
	children {
		nodes {
			id
			identifier
			title
		}
	}
`

// GetIssue retrieves a single issue by UUID or identifier (e.g. "ENG-123").
// Linear's issue(id:) query accepts both forms.
func (ic *Client) GetIssue(issueID string) (*core.Issue, error) {
	if issueID == "" {
		return nil, &core.ValidationError{Field: "issueId", Message: "cannot be empty"}
	}

	query := fmt.Sprintf(`
		query GetIssue($id: String!) {
			issue(id: $id) {
				%s
			}
		}
	`, issueFields)

	variables := map[string]interface{}{
		"id": issueID,
	}

	var response struct {
		Issue *core.Issue `json:"issue"`
	}

	err := ic.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		// Linear reports unknown ids as "Entity not found" GraphQL errors
		// rather than null data.
		if core.IsGraphQLError(err) {
			return nil, &core.NotFoundError{ResourceType: "issue", ResourceID: issueID}
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	if response.Issue == nil || response.Issue.ID == "" {
		return nil, &core.NotFoundError{ResourceType: "issue", ResourceID: issueID}
	}

	return response.Issue, nil
}

// GetIssueRelations retrieves the typed relation edges of an issue in
// upstream order. Relations whose target has gone away come back with a nil
// relatedIssue and are passed through for the caller to drop.
func (ic *Client) GetIssueRelations(issueID string) ([]core.IssueRelation, error) {
	const query = `
		query GetIssueRelations($id: String!) {
			issue(id: $id) {
				relations {
					nodes {
						id
						type
						relatedIssue {
							id
							identifier
							title
						}
					}
				}
			}
		}
	`

	variables := map[string]interface{}{
		"id": issueID,
	}

	var response struct {
		Issue struct {
			Relations core.IssueRelationConnection `json:"relations"`
		} `json:"issue"`
	}

	err := ic.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue relations: %w", err)
	}

	return response.Issue.Relations.Nodes, nil
}

// GetIssueComments retrieves the comments of an issue in upstream order.
func (ic *Client) GetIssueComments(issueID string) ([]core.Comment, error) {
	const query = `
		query GetIssueComments($id: String!) {
			issue(id: $id) {
				comments {
					nodes {
						id
						body
						createdAt
						updatedAt
						user {
							id
							name
							displayName
						}
					}
				}
			}
		}
	`

	variables := map[string]interface{}{
		"id": issueID,
	}

	var response struct {
		Issue struct {
			Comments core.CommentConnection `json:"comments"`
		} `json:"issue"`
	}

	err := ic.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue comments: %w", err)
	}

	return response.Issue.Comments.Nodes, nil
}

// CreateIssue creates a new issue.
func (ic *Client) CreateIssue(input core.IssueCreateInput) (*core.Issue, error) {
	if input.TeamID == "" {
		return nil, &core.ValidationError{Field: "teamId", Message: "cannot be empty"}
	}
	if input.Title == "" {
		return nil, &core.ValidationError{Field: "title", Message: "cannot be empty"}
	}

	query := fmt.Sprintf(`
		mutation CreateIssue($input: IssueCreateInput!) {
			issueCreate(input: $input) {
				success
				issue {
					%s
				}
			}
		}
	`, issueFields)

	inputObj := map[string]interface{}{
		"teamId": input.TeamID,
		"title":  input.Title,
	}
	if input.Description != "" {
		inputObj["description"] = input.Description
	}
	if input.Priority != nil {
		inputObj["priority"] = *input.Priority
	}
	if input.AssigneeID != "" {
		inputObj["assigneeId"] = input.AssigneeID
	}
	if input.ParentID != "" {
		inputObj["parentId"] = input.ParentID
	}
	if input.ProjectID != "" {
		inputObj["projectId"] = input.ProjectID
	}
	if input.StateID != "" {
		inputObj["stateId"] = input.StateID
	}
	if len(input.LabelIDs) > 0 {
		inputObj["labelIds"] = input.LabelIDs
	}

	variables := map[string]interface{}{
		"input": inputObj,
	}

	var response struct {
		IssueCreate struct {
			Success bool        `json:"success"`
			Issue   *core.Issue `json:"issue"`
		} `json:"issueCreate"`
	}

	err := ic.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	if response.IssueCreate.Issue == nil || response.IssueCreate.Issue.ID == "" {
		return nil, nil
	}

	return response.IssueCreate.Issue, nil
}

// UpdateIssue applies a sparse patch to an issue. Only non-nil input fields
// travel upstream.
func (ic *Client) UpdateIssue(issueID string, input core.IssueUpdateInput) (*core.Issue, error) {
	if issueID == "" {
		return nil, &core.ValidationError{Field: "issueId", Message: "cannot be empty"}
	}

	query := fmt.Sprintf(`
		mutation UpdateIssue($id: String!, $input: IssueUpdateInput!) {
			issueUpdate(id: $id, input: $input) {
				success
				issue {
					%s
				}
			}
		}
	`, issueFields)

	inputObj := make(map[string]interface{})
	if input.Title != nil {
		inputObj["title"] = *input.Title
	}
	if input.Description != nil {
		inputObj["description"] = *input.Description
	}
	if input.Priority != nil {
		inputObj["priority"] = *input.Priority
	}
	if input.StateID != nil {
		inputObj["stateId"] = *input.StateID
	}
	if input.AssigneeID != nil {
		inputObj["assigneeId"] = *input.AssigneeID
	}
	if input.CycleID != nil {
		inputObj["cycleId"] = *input.CycleID
	}
	if input.LabelIDs != nil {
		inputObj["labelIds"] = input.LabelIDs
	}

	variables := map[string]interface{}{
		"id":    issueID,
		"input": inputObj,
	}

	var response struct {
		IssueUpdate struct {
			Success bool        `json:"success"`
			Issue   *core.Issue `json:"issue"`
		} `json:"issueUpdate"`
	}

	err := ic.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}

	if !response.IssueUpdate.Success {
		return nil, fmt.Errorf("issue update was not successful")
	}

	return response.IssueUpdate.Issue, nil
}

// DeleteIssue deletes an issue by UUID.
func (ic *Client) DeleteIssue(issueID string) error {
	if issueID == "" {
		return &core.ValidationError{Field: "issueId", Message: "cannot be empty"}
	}

	const query = `
		mutation DeleteIssue($id: String!) {
			issueDelete(id: $id) {
				success
			}
		}
	`

	variables := map[string]interface{}{
		"id": issueID,
	}

	var response struct {
		IssueDelete struct {
			Success bool `json:"success"`
		} `json:"issueDelete"`
	}

	err := ic.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}

	if !response.IssueDelete.Success {
		return fmt.Errorf("issue deletion was not successful")
	}

	return nil
}

// SearchIssues runs the issues query with a pre-composed filter object.
// Linear's IssueFilter is a nested comparator structure; composition happens
// in the service layer, this method only ships it along with the pagination
// cursor and ordering.
func (ic *Client) SearchIssues(filter map[string]interface{}, opts core.SearchOpts) (*core.IssueSearchPage, error) {
	first := opts.First
	if first <= 0 {
		first = 50
	}

	query := fmt.Sprintf(`
		query SearchIssues($filter: IssueFilter, $first: Int, $after: String, $orderBy: PaginationOrderBy) {
			issues(filter: $filter, first: $first, after: $after, orderBy: $orderBy) {
				nodes {
					%s
				}
				pageInfo {
					hasNextPage
					endCursor
				}
			}
		}
	`, issueFields)

	variables := map[string]interface{}{
		"first": first,
	}
	if len(filter) > 0 {
		variables["filter"] = filter
	}
	if opts.After != "" {
		variables["after"] = opts.After
	}
	if opts.OrderBy != "" {
		variables["orderBy"] = opts.OrderBy
	}

	var response struct {
		Issues struct {
			Nodes    []core.Issue  `json:"nodes"`
			PageInfo core.PageInfo `json:"pageInfo"`
		} `json:"issues"`
	}

	err := ic.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}

	return &core.IssueSearchPage{
		Issues:   response.Issues.Nodes,
		PageInfo: response.Issues.PageInfo,
	}, nil
}
