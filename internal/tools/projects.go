package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cosmix/linear-mcp/internal/service"
)

// GetProjects returns the get_projects tool.
func GetProjects(projects *service.ProjectService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_projects",
			mcp.WithDescription("List Linear projects with optional name and team filters. Returns content previews unless includeFull is set."),
			mcp.WithString("name",
				mcp.Description("Case-insensitive substring match against project names"),
			),
			mcp.WithString("teamId",
				mcp.Description("Only projects accessible to this team"),
			),
			mcp.WithBoolean("includeArchived",
				mcp.Description("Include archived projects, defaults to true"),
			),
			mcp.WithBoolean("includeFull",
				mcp.Description("Return full content instead of a 200-character preview"),
			),
			mcp.WithNumber("first",
				mcp.Description("Page size, default 50, maximum 100"),
			),
			mcp.WithString("after",
				mcp.Description("Pagination cursor from a previous page"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args service.ProjectListArgs
			var err error
			if args.Name, err = optionalString(request, "name"); err != nil {
				return errorResult(err), nil
			}
			if args.TeamID, err = optionalString(request, "teamId"); err != nil {
				return errorResult(err), nil
			}
			if args.IncludeArchived, err = optionalBoolPtr(request, "includeArchived"); err != nil {
				return errorResult(err), nil
			}
			if args.IncludeFull, err = optionalBool(request, "includeFull", false); err != nil {
				return errorResult(err), nil
			}
			first, err := optionalInt(request, "first")
			if err != nil {
				return errorResult(err), nil
			}
			if first != nil {
				args.First = *first
			}
			if args.After, err = optionalString(request, "after"); err != nil {
				return errorResult(err), nil
			}

			page, err := projects.ListProjects(args)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(page), nil
		}
}

// GetProject returns the get_project tool.
func GetProject(projects *service.ProjectService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_project",
			mcp.WithDescription("Get a Linear project by id."),
			mcp.WithString("projectId",
				mcp.Required(),
				mcp.Description("Project UUID"),
			),
			mcp.WithBoolean("includeFull",
				mcp.Description("Return full content instead of a 200-character preview"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, err := requiredString(request, "projectId")
			if err != nil {
				return errorResult(err), nil
			}
			includeFull, err := optionalBool(request, "includeFull", false)
			if err != nil {
				return errorResult(err), nil
			}
			dto, err := projects.GetProject(projectID, includeFull)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(dto), nil
		}
}

// CreateProject returns the create_project tool.
func CreateProject(projects *service.ProjectService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("create_project",
			mcp.WithDescription("Create a Linear project attached to one or more teams."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Project name"),
			),
			mcp.WithArray("teamIds",
				mcp.Required(),
				mcp.Description("Ids of the teams the project belongs to"),
			),
			mcp.WithString("description",
				mcp.Description("Short description"),
			),
			mcp.WithString("content",
				mcp.Description("Markdown content"),
			),
			mcp.WithString("startDate",
				mcp.Description("Start date (ISO-8601)"),
			),
			mcp.WithString("targetDate",
				mcp.Description("Target date (ISO-8601)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			name, err := requiredString(request, "name")
			if err != nil {
				return errorResult(err), nil
			}
			args := service.ProjectCreateArgs{Name: name}
			if args.TeamIDs, err = optionalStringSlice(request, "teamIds"); err != nil {
				return errorResult(err), nil
			}
			if args.Description, err = optionalString(request, "description"); err != nil {
				return errorResult(err), nil
			}
			if args.Content, err = optionalString(request, "content"); err != nil {
				return errorResult(err), nil
			}
			if args.StartDate, err = optionalStringPtr(request, "startDate"); err != nil {
				return errorResult(err), nil
			}
			if args.TargetDate, err = optionalStringPtr(request, "targetDate"); err != nil {
				return errorResult(err), nil
			}

			dto, err := projects.CreateProject(args)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(dto), nil
		}
}

// UpdateProject returns the update_project tool.
func UpdateProject(projects *service.ProjectService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("update_project",
			mcp.WithDescription("Update a Linear project with a sparse patch; only provided fields change."),
			mcp.WithString("projectId",
				mcp.Required(),
				mcp.Description("Project UUID"),
			),
			mcp.WithString("name",
				mcp.Description("New name"),
			),
			mcp.WithString("description",
				mcp.Description("New short description"),
			),
			mcp.WithString("content",
				mcp.Description("New markdown content"),
			),
			mcp.WithString("health",
				mcp.Description("Project health"),
				mcp.Enum("onTrack", "atRisk", "offTrack"),
			),
			mcp.WithString("startDate",
				mcp.Description("New start date (ISO-8601)"),
			),
			mcp.WithString("targetDate",
				mcp.Description("New target date (ISO-8601)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, err := requiredString(request, "projectId")
			if err != nil {
				return errorResult(err), nil
			}
			args := service.ProjectUpdateArgs{ProjectID: projectID}
			if args.Name, err = optionalStringPtr(request, "name"); err != nil {
				return errorResult(err), nil
			}
			if args.Description, err = optionalStringPtr(request, "description"); err != nil {
				return errorResult(err), nil
			}
			if args.Content, err = optionalStringPtr(request, "content"); err != nil {
				return errorResult(err), nil
			}
			if args.Health, err = optionalStringPtr(request, "health"); err != nil {
				return errorResult(err), nil
			}
			if args.StartDate, err = optionalStringPtr(request, "startDate"); err != nil {
				return errorResult(err), nil
			}
			if args.TargetDate, err = optionalStringPtr(request, "targetDate"); err != nil {
				return errorResult(err), nil
			}

			dto, err := projects.UpdateProject(args)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(dto), nil
		}
}
