package cycles

import (
	"fmt"

	"github.com/cosmix/linear-mcp/internal/linear/core"
)

// Client handles cycle operations for the Linear API.
type Client struct {
	base *core.BaseClient
}

// NewClient creates a new cycle client with the provided base client.
func NewClient(base *core.BaseClient) *Client {
	return &Client{base: base}
}

// ListTeamCycles retrieves the cycles of a team in upstream order. Activity
// classification is left to the caller; only the raw timestamps come back.
func (cc *Client) ListTeamCycles(teamID string) ([]core.Cycle, error) {
	if teamID == "" {
		return nil, &core.ValidationError{Field: "teamId", Message: "cannot be empty"}
	}

	const query = `
		query ListTeamCycles($filter: CycleFilter, $first: Int) {
			cycles(filter: $filter, first: $first) {
				nodes {
					id
					number
					name
					startsAt
					endsAt
					completedAt
					team {
						id
						name
						key
					}
				}
			}
		}
	`

	variables := map[string]interface{}{
		"filter": map[string]interface{}{
			"team": map[string]interface{}{
				"id": map[string]interface{}{
					"eq": teamID,
				},
			},
		},
		"first": 100,
	}

	var response struct {
		Cycles struct {
			Nodes []core.Cycle `json:"nodes"`
		} `json:"cycles"`
	}

	err := cc.base.ExecuteRequest(query, variables, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}

	return response.Cycles.Nodes, nil
}
