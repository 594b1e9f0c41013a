package tools

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cosmix/linear-mcp/internal/mcperr"
)

// requiredString extracts a required string argument. Missing or empty
// values and type mismatches are InvalidParams.
func requiredString(request mcp.CallToolRequest, name string) (string, error) {
	args := request.GetArguments()
	raw, ok := args[name]
	if !ok {
		return "", mcperr.InvalidParamsf("missing required argument: %s", name)
	}
	value, ok := raw.(string)
	if !ok {
		return "", mcperr.InvalidParamsf("argument %s must be a string", name)
	}
	if value == "" {
		return "", mcperr.InvalidParamsf("argument %s must not be empty", name)
	}
	return value, nil
}

// optionalString extracts an optional string argument, defaulting to "".
func optionalString(request mcp.CallToolRequest, name string) (string, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", mcperr.InvalidParamsf("argument %s must be a string", name)
	}
	return value, nil
}

// optionalStringPtr distinguishes "absent" from "present but empty", which
// the sparse update paths need.
func optionalStringPtr(request mcp.CallToolRequest, name string) (*string, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return nil, nil
	}
	value, ok := raw.(string)
	if !ok {
		return nil, mcperr.InvalidParamsf("argument %s must be a string", name)
	}
	return &value, nil
}

// optionalBool extracts an optional boolean, defaulting to def.
func optionalBool(request mcp.CallToolRequest, name string, def bool) (bool, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return def, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return def, mcperr.InvalidParamsf("argument %s must be a boolean", name)
	}
	return value, nil
}

// optionalBoolPtr extracts an optional boolean keeping absence distinct.
func optionalBoolPtr(request mcp.CallToolRequest, name string) (*bool, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return nil, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return nil, mcperr.InvalidParamsf("argument %s must be a boolean", name)
	}
	return &value, nil
}

// optionalInt extracts an optional integer. JSON numbers arrive as float64;
// non-integral values are rejected.
func optionalInt(request mcp.CallToolRequest, name string) (*int, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return nil, nil
	}
	value, ok := raw.(float64)
	if !ok {
		return nil, mcperr.InvalidParamsf("argument %s must be a number", name)
	}
	n := int(value)
	if float64(n) != value {
		return nil, mcperr.InvalidParamsf("argument %s must be an integer", name)
	}
	return &n, nil
}

// optionalStringSlice extracts an optional array-of-strings argument. A nil
// return means the argument was absent.
func optionalStringSlice(request mcp.CallToolRequest, name string) ([]string, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, mcperr.InvalidParamsf("argument %s must be an array of strings", name)
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		value, ok := item.(string)
		if !ok {
			return nil, mcperr.InvalidParamsf("argument %s must be an array of strings", name)
		}
		values = append(values, value)
	}
	return values, nil
}

// optionalObject extracts an optional JSON object argument.
func optionalObject(request mcp.CallToolRequest, name string) (map[string]interface{}, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return nil, nil
	}
	value, ok := raw.(map[string]interface{})
	if !ok {
		return nil, mcperr.InvalidParamsf("argument %s must be an object", name)
	}
	return value, nil
}
