package linear

import (
	"github.com/cosmix/linear-mcp/internal/linear/comments"
	"github.com/cosmix/linear-mcp/internal/linear/core"
	"github.com/cosmix/linear-mcp/internal/linear/cycles"
	"github.com/cosmix/linear-mcp/internal/linear/documents"
	"github.com/cosmix/linear-mcp/internal/linear/issues"
	"github.com/cosmix/linear-mcp/internal/linear/projects"
	"github.com/cosmix/linear-mcp/internal/linear/teams"
	"github.com/cosmix/linear-mcp/internal/linear/workflows"
)

// Client is the main Linear API client that aggregates all sub-clients. It
// is passed explicitly into each service constructor; there is no package
// level singleton.
type Client struct {
	base *core.BaseClient

	Issues    *issues.Client
	Teams     *teams.Client
	Cycles    *cycles.Client
	Workflows *workflows.Client
	Projects  *projects.Client
	Documents *documents.Client
	Comments  *comments.Client
}

// NewClient creates a new Linear API client with all sub-clients sharing a
// single base client.
func NewClient(apiKey string) *Client {
	base := core.NewBaseClient(apiKey)
	return newClient(base)
}

// NewClientWithBase creates a client over a caller-supplied base client.
// Tests use this to point the whole stack at a local HTTP server.
func NewClientWithBase(base *core.BaseClient) *Client {
	return newClient(base)
}

func newClient(base *core.BaseClient) *Client {
	return &Client{
		base:      base,
		Issues:    issues.NewClient(base),
		Teams:     teams.NewClient(base),
		Cycles:    cycles.NewClient(base),
		Workflows: workflows.NewClient(base),
		Projects:  projects.NewClient(base),
		Documents: documents.NewClient(base),
		Comments:  comments.NewClient(base),
	}
}

// TestConnection verifies authentication and connectivity by fetching the
// viewer.
func (c *Client) TestConnection() error {
	_, err := c.Teams.GetViewer()
	return err
}
