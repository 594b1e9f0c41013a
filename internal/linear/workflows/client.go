package workflows

import (
	"fmt"

	"github.com/cosmix/linear-mcp/internal/linear/core"
)

// Client handles workflow-state operations for the Linear API. Workflow
// states are team-scoped; status names only make sense inside one team.
type Client struct {
	base *core.BaseClient
}

// NewClient creates a new workflow client with the provided base client.
func NewClient(base *core.BaseClient) *Client {
	return &Client{base: base}
}

// GetTeamStates retrieves the workflow states of a team in upstream order.
func (wc *Client) GetTeamStates(teamID string) ([]core.WorkflowState, error) {
	if teamID == "" {
		return nil, &core.ValidationError{Field: "teamId", Message: "cannot be empty"}
	}

	const query = `
		query GetTeamStates($teamId: String!) {
			team(id: $teamId) {
				states {
					nodes {
						id
						name
						type
					}
				}
			}
		}
	`

	variables := map[string]interface{}{
		"teamId": teamID,
	}

	var response struct {
		Team struct {
			States struct {
				Nodes []core.WorkflowState `json:"nodes"`
			} `json:"states"`
		} `json:"team"`
	}

	err := wc.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow states: %w", err)
	}

	return response.Team.States.Nodes, nil
}
