package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cosmix/linear-mcp/internal/mcperr"
	"github.com/cosmix/linear-mcp/internal/service"
)

// GetIssue returns the get_issue tool.
func GetIssue(issues *service.IssueService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_issue",
			mcp.WithDescription("Get detailed information about a Linear issue, including its relationships and mentions. Accepts a UUID or a human identifier like ENG-123."),
			mcp.WithString("issueId",
				mcp.Required(),
				mcp.Description("Issue UUID or identifier (e.g. ENG-123)"),
			),
			mcp.WithBoolean("includeRelationships",
				mcp.Description("Also include comments and comment mentions"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			issueID, err := requiredString(request, "issueId")
			if err != nil {
				return errorResult(err), nil
			}
			includeRelationships, err := optionalBool(request, "includeRelationships", false)
			if err != nil {
				return errorResult(err), nil
			}

			dto, err := issues.GetIssue(issueID, includeRelationships)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(dto), nil
		}
}

// SearchIssues returns the search_issues tool.
func SearchIssues(search *service.SearchService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("search_issues",
			mcp.WithDescription("Search Linear issues with a free-text query and structured filters. The literal \"me\" resolves to the authenticated user anywhere a user id is expected."),
			mcp.WithString("query",
				mcp.Description("Free-text search over title and description"),
			),
			mcp.WithObject("filter",
				mcp.Description("Structured filter: field comparators, and/or combinators, assignedTo/createdBy shortcuts, and a cycle reference {type, teamId, id}"),
			),
			mcp.WithString("projectId",
				mcp.Description("Restrict results to a project by id"),
			),
			mcp.WithString("projectName",
				mcp.Description("Restrict results to a project by name; must match exactly one project"),
			),
			mcp.WithNumber("first",
				mcp.Description("Page size, defaults to 50"),
			),
			mcp.WithString("after",
				mcp.Description("Pagination cursor from a previous page"),
			),
			mcp.WithString("orderBy",
				mcp.Description("Result ordering"),
				mcp.Enum("createdAt", "updatedAt"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			query, err := optionalString(request, "query")
			if err != nil {
				return errorResult(err), nil
			}
			rawFilter, err := optionalObject(request, "filter")
			if err != nil {
				return errorResult(err), nil
			}
			filter, err := service.ParseSearchFilter(rawFilter)
			if err != nil {
				return errorResult(mcperr.InvalidParams(err.Error())), nil
			}
			projectID, err := optionalString(request, "projectId")
			if err != nil {
				return errorResult(err), nil
			}
			projectName, err := optionalString(request, "projectName")
			if err != nil {
				return errorResult(err), nil
			}
			first, err := optionalInt(request, "first")
			if err != nil {
				return errorResult(err), nil
			}

			args := service.SearchIssuesArgs{
				Query:       query,
				Filter:      filter,
				ProjectID:   projectID,
				ProjectName: projectName,
			}
			if first != nil {
				args.First = *first
			}
			if args.After, err = optionalString(request, "after"); err != nil {
				return errorResult(err), nil
			}
			if args.OrderBy, err = optionalString(request, "orderBy"); err != nil {
				return errorResult(err), nil
			}

			results, err := search.SearchIssues(args)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(results), nil
		}
}

// CreateIssue returns the create_issue tool.
func CreateIssue(issues *service.IssueService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("create_issue",
			mcp.WithDescription("Create a Linear issue. Either teamId or parentId is required; a sub-issue inherits its parent's team when teamId is omitted."),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Issue title"),
			),
			mcp.WithString("teamId",
				mcp.Description("Team id; may be omitted when parentId is given"),
			),
			mcp.WithString("parentId",
				mcp.Description("Parent issue id to create a sub-issue under"),
			),
			mcp.WithString("description",
				mcp.Description("Markdown description"),
			),
			mcp.WithString("status",
				mcp.Description("Workflow state name, matched case-insensitively within the team"),
			),
			mcp.WithNumber("priority",
				mcp.Description("Priority from 0 (No priority) to 4 (Low)"),
			),
			mcp.WithString("assigneeId",
				mcp.Description("Assignee user id, or \"me\" for the authenticated user"),
			),
			mcp.WithArray("labelIds",
				mcp.Description("Label ids to apply"),
			),
			mcp.WithString("projectId",
				mcp.Description("Project id to attach the issue to"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			title, err := requiredString(request, "title")
			if err != nil {
				return errorResult(err), nil
			}
			args := service.CreateIssueArgs{Title: title}
			if args.TeamID, err = optionalString(request, "teamId"); err != nil {
				return errorResult(err), nil
			}
			if args.ParentID, err = optionalString(request, "parentId"); err != nil {
				return errorResult(err), nil
			}
			if args.Description, err = optionalString(request, "description"); err != nil {
				return errorResult(err), nil
			}
			if args.Status, err = optionalString(request, "status"); err != nil {
				return errorResult(err), nil
			}
			if args.Priority, err = optionalInt(request, "priority"); err != nil {
				return errorResult(err), nil
			}
			if args.AssigneeID, err = optionalString(request, "assigneeId"); err != nil {
				return errorResult(err), nil
			}
			if args.LabelIDs, err = optionalStringSlice(request, "labelIds"); err != nil {
				return errorResult(err), nil
			}
			if args.ProjectID, err = optionalString(request, "projectId"); err != nil {
				return errorResult(err), nil
			}

			dto, err := issues.CreateIssue(args)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(dto), nil
		}
}

// UpdateIssue returns the update_issue tool.
func UpdateIssue(issues *service.IssueService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("update_issue",
			mcp.WithDescription("Update a Linear issue with a sparse patch; only provided fields change. cycleId accepts current/next/previous, a cycle number, or a cycle id."),
			mcp.WithString("issueId",
				mcp.Required(),
				mcp.Description("Issue UUID or identifier"),
			),
			mcp.WithString("title",
				mcp.Description("New title"),
			),
			mcp.WithString("description",
				mcp.Description("New markdown description"),
			),
			mcp.WithString("status",
				mcp.Description("Workflow state name, matched case-insensitively within the issue's team"),
			),
			mcp.WithNumber("priority",
				mcp.Description("Priority from 0 (No priority) to 4 (Low)"),
			),
			mcp.WithString("assigneeId",
				mcp.Description("Assignee user id, or \"me\" for the authenticated user"),
			),
			mcp.WithArray("labelIds",
				mcp.Description("Replacement label id list"),
			),
			mcp.WithString("cycleId",
				mcp.Description("Cycle reference: current, next, previous, a cycle number, or a cycle id"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			issueID, err := requiredString(request, "issueId")
			if err != nil {
				return errorResult(err), nil
			}
			args := service.UpdateIssueArgs{IssueID: issueID}
			if args.Title, err = optionalStringPtr(request, "title"); err != nil {
				return errorResult(err), nil
			}
			if args.Description, err = optionalStringPtr(request, "description"); err != nil {
				return errorResult(err), nil
			}
			if args.Status, err = optionalStringPtr(request, "status"); err != nil {
				return errorResult(err), nil
			}
			if args.Priority, err = optionalInt(request, "priority"); err != nil {
				return errorResult(err), nil
			}
			if args.AssigneeID, err = optionalStringPtr(request, "assigneeId"); err != nil {
				return errorResult(err), nil
			}
			if args.LabelIDs, err = optionalStringSlice(request, "labelIds"); err != nil {
				return errorResult(err), nil
			}
			if args.CycleID, err = optionalStringPtr(request, "cycleId"); err != nil {
				return errorResult(err), nil
			}

			dto, err := issues.UpdateIssue(args)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(dto), nil
		}
}

// DeleteIssue returns the delete_issue tool.
func DeleteIssue(issues *service.IssueService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("delete_issue",
			mcp.WithDescription("Delete a Linear issue."),
			mcp.WithString("issueId",
				mcp.Required(),
				mcp.Description("Issue UUID or identifier"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			issueID, err := requiredString(request, "issueId")
			if err != nil {
				return errorResult(err), nil
			}
			if err := issues.DeleteIssue(issueID); err != nil {
				return errorResult(err), nil
			}
			return jsonResult(map[string]interface{}{"success": true}), nil
		}
}

// GetIssueDependencies returns the get_issue_dependencies tool.
func GetIssueDependencies(deps *service.DepsService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_issue_dependencies",
			mcp.WithDescription("Walk the blocking relations around an issue and return them as a directed graph, with a topological work order when the graph is acyclic."),
			mcp.WithString("issueId",
				mcp.Required(),
				mcp.Description("Issue UUID or identifier"),
			),
			mcp.WithNumber("depth",
				mcp.Description("Traversal depth in hops, default 2, maximum 5"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			issueID, err := requiredString(request, "issueId")
			if err != nil {
				return errorResult(err), nil
			}
			depth, err := optionalInt(request, "depth")
			if err != nil {
				return errorResult(err), nil
			}

			hops := 0
			if depth != nil {
				hops = *depth
			}
			dto, err := deps.GetIssueDependencies(issueID, hops)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(dto), nil
		}
}
