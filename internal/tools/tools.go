// Package tools declares the MCP tool surface and binds each tool to its
// service method. Handlers validate arguments, dispatch, and serialize the
// DTO as pretty-printed JSON; every failure comes back as a structured
// protocol error, never a transport error.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/cosmix/linear-mcp/internal/mcperr"
	"github.com/cosmix/linear-mcp/internal/service"
)

// RegisterAll wires every tool onto the server. Each handler is wrapped with
// per-call logging on the given logger.
func RegisterAll(s *server.MCPServer, svcs *service.Services, log logrus.FieldLogger) {
	add := func(tool mcp.Tool, handler server.ToolHandlerFunc) {
		s.AddTool(tool, withLogging(log, tool.Name, handler))
	}

	add(GetIssue(svcs.Issues))
	add(SearchIssues(svcs.Search))
	add(CreateIssue(svcs.Issues))
	add(UpdateIssue(svcs.Issues))
	add(DeleteIssue(svcs.Issues))
	add(GetIssueDependencies(svcs.Deps))
	add(GetTeams(svcs.Cycles))
	add(GetTeamCycles(svcs.Cycles))
	add(CreateComment(svcs.Comments))
	add(GetDocuments(svcs.Documents))
	add(GetDocument(svcs.Documents))
	add(CreateDocument(svcs.Documents))
	add(UpdateDocument(svcs.Documents))
	add(DeleteDocument(svcs.Documents))
	add(GetProjects(svcs.Projects))
	add(GetProject(svcs.Projects))
	add(CreateProject(svcs.Projects))
	add(UpdateProject(svcs.Projects))
}

// withLogging logs each call with its duration and outcome. Tool failures are
// part of the protocol response, so they log at debug like successes; only a
// handler error (which mcp-go turns into a protocol-level failure) warns.
func withLogging(log logrus.FieldLogger, name string, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := h(ctx, request)
		fields := logrus.Fields{
			"tool":     name,
			"duration": time.Since(start),
		}
		if err != nil {
			log.WithFields(fields).WithError(err).Warn("tool call failed")
			return result, err
		}
		fields["isError"] = result != nil && result.IsError
		log.WithFields(fields).Debug("tool call")
		return result, nil
	}
}

// jsonResult serializes a DTO as the single text payload of a successful
// call.
func jsonResult(v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(mcperr.Internalf("failed to serialize result: %s", err))
	}
	return mcp.NewToolResultText(string(data))
}

// errorResult converts any error into the stable "MCP error {code}:
// {message}" text shape.
func errorResult(err error) *mcp.CallToolResult {
	typed := mcperr.Passthrough(err)
	return mcp.NewToolResultError(fmt.Sprintf("MCP error %d: %s", typed.Code, typed.Message))
}
