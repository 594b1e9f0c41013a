package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cosmix/linear-mcp/internal/service"
)

// GetDocuments returns the get_documents tool.
func GetDocuments(documents *service.DocumentService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_documents",
			mcp.WithDescription("List Linear documents with optional name, team and project filters. Returns content previews unless includeFull is set."),
			mcp.WithString("name",
				mcp.Description("Case-insensitive substring match against document titles"),
			),
			mcp.WithString("teamId",
				mcp.Description("Only documents in projects accessible to this team"),
			),
			mcp.WithString("projectId",
				mcp.Description("Only documents in this project"),
			),
			mcp.WithBoolean("includeArchived",
				mcp.Description("Include archived documents, defaults to true"),
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
			var args service.DocumentListArgs
			var err error
			if args.Name, err = optionalString(request, "name"); err != nil {
				return errorResult(err), nil
			}
			if args.TeamID, err = optionalString(request, "teamId"); err != nil {
				return errorResult(err), nil
			}
			if args.ProjectID, err = optionalString(request, "projectId"); err != nil {
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

			page, err := documents.ListDocuments(args)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(page), nil
		}
}

// GetDocument returns the get_document tool.
func GetDocument(documents *service.DocumentService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_document",
			mcp.WithDescription("Get a Linear document by id or slug."),
			mcp.WithString("documentId",
				mcp.Required(),
				mcp.Description("Document UUID or slug"),
			),
			mcp.WithBoolean("includeFull",
				mcp.Description("Return full content instead of a 200-character preview"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			documentID, err := requiredString(request, "documentId")
			if err != nil {
				return errorResult(err), nil
			}
			includeFull, err := optionalBool(request, "includeFull", false)
			if err != nil {
				return errorResult(err), nil
			}
			dto, err := documents.GetDocument(documentID, includeFull)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(dto), nil
		}
}

// CreateDocument returns the create_document tool.
func CreateDocument(documents *service.DocumentService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("create_document",
			mcp.WithDescription("Create a Linear document."),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Document title"),
			),
			mcp.WithString("content",
				mcp.Description("Markdown content"),
			),
			mcp.WithString("icon",
				mcp.Description("Icon emoji"),
			),
			mcp.WithString("color",
				mcp.Description("Icon color hex"),
			),
			mcp.WithString("projectId",
				mcp.Description("Project to attach the document to"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			title, err := requiredString(request, "title")
			if err != nil {
				return errorResult(err), nil
			}
			args := service.DocumentCreateArgs{Title: title}
			if args.Content, err = optionalString(request, "content"); err != nil {
				return errorResult(err), nil
			}
			if args.Icon, err = optionalStringPtr(request, "icon"); err != nil {
				return errorResult(err), nil
			}
			if args.Color, err = optionalStringPtr(request, "color"); err != nil {
				return errorResult(err), nil
			}
			if args.ProjectID, err = optionalString(request, "projectId"); err != nil {
				return errorResult(err), nil
			}

			dto, err := documents.CreateDocument(args)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(dto), nil
		}
}

// UpdateDocument returns the update_document tool.
func UpdateDocument(documents *service.DocumentService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("update_document",
			mcp.WithDescription("Update a Linear document with a sparse patch; only provided fields change."),
			mcp.WithString("documentId",
				mcp.Required(),
				mcp.Description("Document UUID or slug"),
			),
			mcp.WithString("title",
				mcp.Description("New title"),
			),
			mcp.WithString("content",
				mcp.Description("New markdown content"),
			),
			mcp.WithString("icon",
				mcp.Description("New icon emoji"),
			),
			mcp.WithString("color",
				mcp.Description("New icon color hex"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			documentID, err := requiredString(request, "documentId")
			if err != nil {
				return errorResult(err), nil
			}
			args := service.DocumentUpdateArgs{DocumentID: documentID}
			if args.Title, err = optionalStringPtr(request, "title"); err != nil {
				return errorResult(err), nil
			}
			if args.Content, err = optionalStringPtr(request, "content"); err != nil {
				return errorResult(err), nil
			}
			if args.Icon, err = optionalStringPtr(request, "icon"); err != nil {
				return errorResult(err), nil
			}
			if args.Color, err = optionalStringPtr(request, "color"); err != nil {
				return errorResult(err), nil
			}

			dto, err := documents.UpdateDocument(args)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(dto), nil
		}
}

// DeleteDocument returns the delete_document tool.
func DeleteDocument(documents *service.DocumentService) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("delete_document",
			mcp.WithDescription("Delete a Linear document. An unsuccessful deletion is reported in the result, not as an error."),
			mcp.WithString("documentId",
				mcp.Required(),
				mcp.Description("Document UUID or slug"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			documentID, err := requiredString(request, "documentId")
			if err != nil {
				return errorResult(err), nil
			}
			result, err := documents.DeleteDocument(documentID)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(result), nil
		}
}
