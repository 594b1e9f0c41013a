package comments

import (
	"fmt"

	"github.com/cosmix/linear-mcp/internal/linear/core"
)

// Client handles comment operations for the Linear API.
type Client struct {
	base *core.BaseClient
}

// NewClient creates a new comment client with the provided base client.
func NewClient(base *core.BaseClient) *Client {
	return &Client{base: base}
}

// CreateComment adds a comment to an issue. The issue id must be a UUID;
// identifier resolution happens in the service layer.
func (cc *Client) CreateComment(issueID, body string) (*core.Comment, error) {
	if issueID == "" {
		return nil, &core.ValidationError{Field: "issueId", Message: "cannot be empty"}
	}
	if body == "" {
		return nil, &core.ValidationError{Field: "body", Message: "cannot be empty"}
	}

	const query = `
		mutation CreateComment($input: CommentCreateInput!) {
			commentCreate(input: $input) {
				success
				comment {
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
	`

	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"issueId": issueID,
			"body":    body,
		},
	}

	var response struct {
		CommentCreate struct {
			Success bool          `json:"success"`
			Comment *core.Comment `json:"comment"`
		} `json:"commentCreate"`
	}

	err := cc.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if !response.CommentCreate.Success || response.CommentCreate.Comment == nil {
		return nil, fmt.Errorf("comment creation was not successful")
	}

	return response.CommentCreate.Comment, nil
}
