package projects

import (
	"fmt"

	"github.com/cosmix/linear-mcp/internal/linear/core"
)

// Client handles project operations for the Linear API.
type Client struct {
	base *core.BaseClient
}

// NewClient creates a new project client with the provided base client.
func NewClient(base *core.BaseClient) *Client {
	return &Client{base: base}
}

const projectFields = `
	id
	name
	description
	content
	state
	health
	startDate
	targetDate
	createdAt
	updatedAt
	url
`

// ListProjects retrieves projects matching the filter with cursor pagination.
func (pc *Client) ListProjects(filter *core.ProjectFilter) (*core.ProjectPage, error) {
	if filter == nil {
		filter = &core.ProjectFilter{}
	}
	if filter.First <= 0 {
		filter.First = 50
	}

	query := fmt.Sprintf(`
		query ListProjects($filter: ProjectFilter, $first: Int, $after: String, $includeArchived: Boolean) {
			projects(filter: $filter, first: $first, after: $after, includeArchived: $includeArchived) {
				nodes {
					%s
				}
				pageInfo {
					hasNextPage
					endCursor
				}
			}
		}
	`, projectFields)

	filterObj := make(map[string]interface{})
	if filter.Name != "" {
		filterObj["name"] = map[string]interface{}{
			"containsIgnoreCase": filter.Name,
		}
	}
	if filter.TeamID != "" {
		filterObj["accessibleTeams"] = map[string]interface{}{
			"some": map[string]interface{}{
				"id": map[string]interface{}{"eq": filter.TeamID},
			},
		}
	}

	includeArchived := true
	if filter.IncludeArchived != nil {
		includeArchived = *filter.IncludeArchived
	}

	variables := map[string]interface{}{
		"first":           filter.First,
		"includeArchived": includeArchived,
	}
	if len(filterObj) > 0 {
		variables["filter"] = filterObj
	}
	if filter.After != "" {
		variables["after"] = filter.After
	}

	var response struct {
		Projects struct {
			Nodes    []core.Project `json:"nodes"`
			PageInfo core.PageInfo  `json:"pageInfo"`
		} `json:"projects"`
	}

	err := pc.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return &core.ProjectPage{
		Projects: response.Projects.Nodes,
		PageInfo: response.Projects.PageInfo,
	}, nil
}

// GetProject retrieves a single project by UUID.
func (pc *Client) GetProject(projectID string) (*core.Project, error) {
	if projectID == "" {
		return nil, &core.ValidationError{Field: "projectId", Message: "cannot be empty"}
	}

	query := fmt.Sprintf(`
		query GetProject($id: String!) {
			project(id: $id) {
				%s
			}
		}
	`, projectFields)

	variables := map[string]interface{}{
		"id": projectID,
	}

	var response struct {
		Project *core.Project `json:"project"`
	}

	err := pc.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		if core.IsGraphQLError(err) {
			return nil, &core.NotFoundError{ResourceType: "project", ResourceID: projectID}
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if response.Project == nil || response.Project.ID == "" {
		return nil, &core.NotFoundError{ResourceType: "project", ResourceID: projectID}
	}

	return response.Project, nil
}

// CreateProject creates a new project.
func (pc *Client) CreateProject(input core.ProjectCreateInput) (*core.Project, error) {
	if input.Name == "" {
		return nil, &core.ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if len(input.TeamIDs) == 0 {
		return nil, &core.ValidationError{Field: "teamIds", Message: "cannot be empty"}
	}

	query := fmt.Sprintf(`
		mutation CreateProject($input: ProjectCreateInput!) {
			projectCreate(input: $input) {
				success
				project {
					%s
				}
			}
		}
	`, projectFields)

	inputObj := map[string]interface{}{
		"name":    input.Name,
		"teamIds": input.TeamIDs,
	}
	if input.Description != "" {
		inputObj["description"] = input.Description
	}
	if input.Content != "" {
		inputObj["content"] = input.Content
	}
	if input.StartDate != nil {
		inputObj["startDate"] = *input.StartDate
	}
	if input.TargetDate != nil {
		inputObj["targetDate"] = *input.TargetDate
	}

	variables := map[string]interface{}{
		"input": inputObj,
	}

	var response struct {
		ProjectCreate struct {
			Success bool          `json:"success"`
			Project *core.Project `json:"project"`
		} `json:"projectCreate"`
	}

	err := pc.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if !response.ProjectCreate.Success || response.ProjectCreate.Project == nil {
		return nil, fmt.Errorf("project creation was not successful")
	}

	return response.ProjectCreate.Project, nil
}

// UpdateProject applies a sparse patch to a project.
func (pc *Client) UpdateProject(projectID string, input core.ProjectUpdateInput) (*core.Project, error) {
	if projectID == "" {
		return nil, &core.ValidationError{Field: "projectId", Message: "cannot be empty"}
	}

	query := fmt.Sprintf(`
		mutation UpdateProject($id: String!, $input: ProjectUpdateInput!) {
			projectUpdate(id: $id, input: $input) {
				success
				project {
					%s
				}
			}
		}
	`, projectFields)

	inputObj := make(map[string]interface{})
	if input.Name != nil {
		inputObj["name"] = *input.Name
	}
	if input.Description != nil {
		inputObj["description"] = *input.Description
	}
	if input.Content != nil {
		inputObj["content"] = *input.Content
	}
	if input.Health != nil {
		inputObj["health"] = *input.Health
	}
	if input.StartDate != nil {
		inputObj["startDate"] = *input.StartDate
	}
	if input.TargetDate != nil {
		inputObj["targetDate"] = *input.TargetDate
	}

	variables := map[string]interface{}{
		"id":    projectID,
		"input": inputObj,
	}

	var response struct {
		ProjectUpdate struct {
			Success bool          `json:"success"`
			Project *core.Project `json:"project"`
		} `json:"projectUpdate"`
	}

	err := pc.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	if !response.ProjectUpdate.Success || response.ProjectUpdate.Project == nil {
		return nil, fmt.Errorf("project update was not successful")
	}

	return response.ProjectUpdate.Project, nil
}
