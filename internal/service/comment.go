package service

import (
	"github.com/cosmix/linear-mcp/internal/linear/core"
	"github.com/cosmix/linear-mcp/internal/mcperr"
)

// CommentService creates comments on issues.
type CommentService struct {
	issues   IssueAPI
	comments CommentAPI
}

// NewCommentService creates a comment service over the given clients.
func NewCommentService(issues IssueAPI, comments CommentAPI) *CommentService {
	return &CommentService{issues: issues, comments: comments}
}

// CreateComment adds a comment to an issue. The issue reference may be a
// UUID or a human identifier; it is resolved through the read path first so
// the mutation always gets the UUID.
func (s *CommentService) CreateComment(issueID, body string) (*CommentDTO, error) {
	if body == "" {
		return nil, mcperr.InvalidParams("body is required")
	}

	issue, err := s.issues.GetIssue(issueID)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, mcperr.InvalidRequestf("Issue not found: %s", issueID)
		}
		return nil, mcperr.Passthrough(err)
	}

	comment, err := s.comments.CreateComment(issue.ID, body)
	if err != nil {
		return nil, mcperr.WrapInternal("Failed to create comment", err)
	}

	dtos := mapComments([]core.Comment{*comment})
	return &dtos[0], nil
}
