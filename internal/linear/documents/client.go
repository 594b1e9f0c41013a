package documents

import (
	"fmt"

	"github.com/cosmix/linear-mcp/internal/linear/core"
)

// Client handles document operations for the Linear API.
type Client struct {
	base *core.BaseClient
}

// NewClient creates a new document client with the provided base client.
func NewClient(base *core.BaseClient) *Client {
	return &Client{base: base}
}

const documentFields = `
	id
	title
	icon
	color
	content
	createdAt
	updatedAt
	url
	creator {
		id
		name
		displayName
	}
	project {
		id
		name
	}
`

// ListDocuments retrieves documents matching the filter with cursor
// pagination.
func (dc *Client) ListDocuments(filter *core.DocumentFilter) (*core.DocumentPage, error) {
	if filter == nil {
		filter = &core.DocumentFilter{}
	}
	if filter.First <= 0 {
		filter.First = 50
	}

	query := fmt.Sprintf(`
		query ListDocuments($filter: DocumentFilter, $first: Int, $after: String, $includeArchived: Boolean) {
			documents(filter: $filter, first: $first, after: $after, includeArchived: $includeArchived) {
				nodes {
					%s
				}
				pageInfo {
					hasNextPage
					endCursor
				}
			}
		}
	`, documentFields)

	filterObj := make(map[string]interface{})
	if filter.Name != "" {
		filterObj["title"] = map[string]interface{}{
			"containsIgnoreCase": filter.Name,
		}
	}
	// Project id and team access constraints share the project key.
	projectObj := make(map[string]interface{})
	if filter.ProjectID != "" {
		projectObj["id"] = map[string]interface{}{"eq": filter.ProjectID}
	}
	if filter.TeamID != "" {
		projectObj["accessibleTeams"] = map[string]interface{}{
			"some": map[string]interface{}{
				"id": map[string]interface{}{"eq": filter.TeamID},
			},
		}
	}
	if len(projectObj) > 0 {
		filterObj["project"] = projectObj
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
		Documents struct {
			Nodes    []core.Document `json:"nodes"`
			PageInfo core.PageInfo   `json:"pageInfo"`
		} `json:"documents"`
	}

	err := dc.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return &core.DocumentPage{
		Documents: response.Documents.Nodes,
		PageInfo:  response.Documents.PageInfo,
	}, nil
}

// GetDocument retrieves a single document by UUID or slug id.
func (dc *Client) GetDocument(documentID string) (*core.Document, error) {
	if documentID == "" {
		return nil, &core.ValidationError{Field: "documentId", Message: "cannot be empty"}
	}

	query := fmt.Sprintf(`
		query GetDocument($id: String!) {
			document(id: $id) {
				%s
			}
		}
	`, documentFields)

	variables := map[string]interface{}{
		"id": documentID,
	}

	var response struct {
		Document *core.Document `json:"document"`
	}

	err := dc.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		if core.IsGraphQLError(err) {
			return nil, &core.NotFoundError{ResourceType: "document", ResourceID: documentID}
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if response.Document == nil || response.Document.ID == "" {
		return nil, &core.NotFoundError{ResourceType: "document", ResourceID: documentID}
	}

	return response.Document, nil
}

// CreateDocument creates a new document.
func (dc *Client) CreateDocument(input core.DocumentCreateInput) (*core.Document, error) {
	if input.Title == "" {
		return nil, &core.ValidationError{Field: "title", Message: "cannot be empty"}
	}

	query := fmt.Sprintf(`
		mutation CreateDocument($input: DocumentCreateInput!) {
			documentCreate(input: $input) {
				success
				document {
					%s
				}
			}
		}
	`, documentFields)

	inputObj := map[string]interface{}{
		"title": input.Title,
	}
	if input.Content != "" {
		inputObj["content"] = input.Content
	}
	if input.Icon != nil {
		inputObj["icon"] = *input.Icon
	}
	if input.Color != nil {
		inputObj["color"] = *input.Color
	}
	if input.ProjectID != "" {
		inputObj["projectId"] = input.ProjectID
	}

	variables := map[string]interface{}{
		"input": inputObj,
	}

	var response struct {
		DocumentCreate struct {
			Success  bool           `json:"success"`
			Document *core.Document `json:"document"`
		} `json:"documentCreate"`
	}

	err := dc.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	if !response.DocumentCreate.Success || response.DocumentCreate.Document == nil {
		return nil, fmt.Errorf("document creation was not successful")
	}

	return response.DocumentCreate.Document, nil
}

// UpdateDocument applies a sparse patch to a document.
func (dc *Client) UpdateDocument(documentID string, input core.DocumentUpdateInput) (*core.Document, error) {
	if documentID == "" {
		return nil, &core.ValidationError{Field: "documentId", Message: "cannot be empty"}
	}

	query := fmt.Sprintf(`
		mutation UpdateDocument($id: String!, $input: DocumentUpdateInput!) {
			documentUpdate(id: $id, input: $input) {
				success
				document {
					%s
				}
			}
		}
	`, documentFields)

	inputObj := make(map[string]interface{})
	if input.Title != nil {
		inputObj["title"] = *input.Title
	}
	if input.Content != nil {
		inputObj["content"] = *input.Content
	}
	if input.Icon != nil {
		inputObj["icon"] = *input.Icon
	}
	if input.Color != nil {
		inputObj["color"] = *input.Color
	}

	variables := map[string]interface{}{
		"id":    documentID,
		"input": inputObj,
	}

	var response struct {
		DocumentUpdate struct {
			Success  bool           `json:"success"`
			Document *core.Document `json:"document"`
		} `json:"documentUpdate"`
	}

	err := dc.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	if !response.DocumentUpdate.Success || response.DocumentUpdate.Document == nil {
		return nil, fmt.Errorf("document update was not successful")
	}

	return response.DocumentUpdate.Document, nil
}

// DeleteDocument deletes a document. A clean success=false response comes
// back as a DeleteResult, not an error; only transport failures error out.
func (dc *Client) DeleteDocument(documentID string) (*core.DeleteResult, error) {
	if documentID == "" {
		return nil, &core.ValidationError{Field: "documentId", Message: "cannot be empty"}
	}

	const query = `
		mutation DeleteDocument($id: String!) {
			documentDelete(id: $id) {
				success
			}
		}
	`

	variables := map[string]interface{}{
		"id": documentID,
	}

	var response struct {
		DocumentDelete struct {
			Success bool `json:"success"`
		} `json:"documentDelete"`
	}

	err := dc.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to delete document: %w", err)
	}

	result := &core.DeleteResult{Success: response.DocumentDelete.Success}
	if !result.Success {
		result.Message = "document deletion was not successful"
	}
	return result, nil
}
