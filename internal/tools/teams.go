package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cosmix/linear-mcp/internal/service"
)

// GetTeams returns the get_teams tool.
func GetTeams(cycles *service.CycleService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_teams",
			mcp.WithDescription("List Linear teams, optionally filtered by a case-insensitive substring match against team name or key."),
			mcp.WithString("nameFilter",
				mcp.Description("Substring to match against team name or key"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			nameFilter, err := optionalString(request, "nameFilter")
			if err != nil {
				return errorResult(err), nil
			}
			teams, err := cycles.GetTeams(nameFilter)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(teams), nil
		}
}

// GetTeamCycles returns the get_team_cycles tool.
func GetTeamCycles(cycles *service.CycleService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_team_cycles",
			mcp.WithDescription("List a team's cycles with derived isActive/isCompleted flags."),
			mcp.WithString("teamId",
				mcp.Required(),
				mcp.Description("Team UUID"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			teamID, err := requiredString(request, "teamId")
			if err != nil {
				return errorResult(err), nil
			}
			dtos, err := cycles.GetTeamCycles(teamID)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(dtos), nil
		}
}

// CreateComment returns the create_comment tool.
func CreateComment(comments *service.CommentService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("create_comment",
			mcp.WithDescription("Add a comment to a Linear issue."),
			mcp.WithString("issueId",
				mcp.Required(),
				mcp.Description("Issue UUID or identifier"),
			),
			mcp.WithString("body",
				mcp.Required(),
				mcp.Description("Comment body in markdown"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			issueID, err := requiredString(request, "issueId")
			if err != nil {
				return errorResult(err), nil
			}
			body, err := requiredString(request, "body")
			if err != nil {
				return errorResult(err), nil
			}
			dto, err := comments.CreateComment(issueID, body)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(dto), nil
		}
}
