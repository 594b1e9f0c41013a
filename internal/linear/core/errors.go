package core

import (
	"errors"
	"fmt"
)

// ValidationError represents an input validation failure before any API call.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error: field '%s' with value '%v' %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Message)
}

// NotFoundError indicates that a requested resource doesn't exist upstream.
type NotFoundError struct {
	ResourceType string
	ResourceID   string
}

func (e *NotFoundError) Error() string {
	if e.ResourceID != "" {
		return fmt.Sprintf("%s not found: %s", e.ResourceType, e.ResourceID)
	}
	return fmt.Sprintf("%s not found", e.ResourceType)
}

// GraphQLError represents an error returned by the Linear GraphQL API,
// possibly with a 200 OK status.
type GraphQLError struct {
	Message string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("GraphQL error: %s", e.Message)
}

// HTTPError represents an HTTP-level error.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// IsNotFoundError checks if an error is a NotFoundError, unwrapping as needed.
func IsNotFoundError(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidationError checks if an error is a ValidationError, unwrapping as needed.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsGraphQLError checks if an error is a GraphQLError, unwrapping as needed.
func IsGraphQLError(err error) bool {
	var gqlErr *GraphQLError
	return errors.As(err, &gqlErr)
}
