package tools

import (
	"context"
	"io"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmix/linear-mcp/internal/mcperr"
)

func req(args map[string]interface{}) mcp.CallToolRequest {
	var r mcp.CallToolRequest
	r.Params.Arguments = args
	return r
}

func TestRequiredString(t *testing.T) {
	value, err := requiredString(req(map[string]interface{}{"issueId": "ENG-1"}), "issueId")
	require.NoError(t, err)
	assert.Equal(t, "ENG-1", value)

	_, err = requiredString(req(map[string]interface{}{}), "issueId")
	require.Error(t, err)
	typed, ok := mcperr.As(err)
	require.True(t, ok)
	assert.Equal(t, mcperr.CodeInvalidParams, typed.Code)
	assert.Equal(t, "missing required argument: issueId", typed.Message)

	_, err = requiredString(req(map[string]interface{}{"issueId": 7}), "issueId")
	require.Error(t, err)

	_, err = requiredString(req(map[string]interface{}{"issueId": ""}), "issueId")
	require.Error(t, err)
}

func TestOptionalParams(t *testing.T) {
	r := req(map[string]interface{}{
		"priority": float64(3),
		"flag":     true,
		"labels":   []interface{}{"a", "b"},
		"filter":   map[string]interface{}{"assignedTo": "me"},
	})

	priority, err := optionalInt(r, "priority")
	require.NoError(t, err)
	require.NotNil(t, priority)
	assert.Equal(t, 3, *priority)

	absent, err := optionalInt(r, "missing")
	require.NoError(t, err)
	assert.Nil(t, absent)

	flag, err := optionalBool(r, "flag", false)
	require.NoError(t, err)
	assert.True(t, flag)

	labels, err := optionalStringSlice(r, "labels")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, labels)

	filter, err := optionalObject(r, "filter")
	require.NoError(t, err)
	assert.Equal(t, "me", filter["assignedTo"])

	ptr, err := optionalStringPtr(r, "missing")
	require.NoError(t, err)
	assert.Nil(t, ptr)
}

func TestOptionalIntRejectsFractions(t *testing.T) {
	_, err := optionalInt(req(map[string]interface{}{"priority": 2.5}), "priority")
	require.Error(t, err)
	typed, ok := mcperr.As(err)
	require.True(t, ok)
	assert.Equal(t, mcperr.CodeInvalidParams, typed.Code)
}

func TestWithLoggingPassesResultThrough(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	want := mcp.NewToolResultText("ok")
	handler := withLogging(log, "get_issue", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return want, nil
	})

	got, err := handler(context.Background(), req(nil))
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestErrorResultFormat(t *testing.T) {
	result := errorResult(mcperr.InvalidRequest("Issue not found: X-1"))
	require.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Equal(t, "MCP error -32600: Issue not found: X-1", text.Text)
}
