package teams

import (
	"fmt"

	"github.com/cosmix/linear-mcp/internal/linear/core"
)

// Client handles team and viewer operations for the Linear API.
type Client struct {
	base *core.BaseClient
}

// NewClient creates a new team client with the provided base client.
func NewClient(base *core.BaseClient) *Client {
	return &Client{base: base}
}

// GetTeams retrieves all teams in the workspace. Teams are the primary
// organizational unit in Linear; issue creation and cycle resolution both
// need them.
func (tc *Client) GetTeams() ([]core.Team, error) {
	const query = `
		query GetTeams {
			teams {
				nodes {
					id
					name
					key
					description
				}
			}
		}
	`

	var response struct {
		Teams struct {
			Nodes []core.Team `json:"nodes"`
		} `json:"teams"`
	}

	err := tc.base.ExecuteRequest(query, nil, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	return response.Teams.Nodes, nil
}

// GetViewer retrieves the authenticated user. "me" references resolve
// through this.
func (tc *Client) GetViewer() (*core.User, error) {
	const query = `
		query GetViewer {
			viewer {
				id
				name
				displayName
				email
			}
		}
	`

	var response struct {
		Viewer core.User `json:"viewer"`
	}

	err := tc.base.ExecuteRequest(query, nil, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer: %w", err)
	}

	return &response.Viewer, nil
}
