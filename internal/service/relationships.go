package service

import (
	"strings"

	"github.com/cosmix/linear-mcp/internal/linear/core"
)

// buildRelationships flattens an issue's parent, children and typed
// relations into a single ordered list: parent first when present, then
// sub-issues in upstream order, then relations in upstream order. Relation
// types are lower-cased; a relation whose target is gone is dropped rather
// than surfaced as an error.
func buildRelationships(issue *core.Issue, relations []core.IssueRelation) []RelationshipEntry {
	entries := []RelationshipEntry{}

	if issue.Parent != nil && issue.Parent.ID != "" {
		entries = append(entries, RelationshipEntry{
			Type:       "parent",
			IssueID:    issue.Parent.ID,
			Identifier: issue.Parent.Identifier,
			Title:      issue.Parent.Title,
		})
	}

	if issue.Children != nil {
		for _, child := range issue.Children.Nodes {
			entries = append(entries, RelationshipEntry{
				Type:       "sub",
				IssueID:    child.ID,
				Identifier: child.Identifier,
				Title:      child.Title,
			})
		}
	}

	for _, rel := range relations {
		if rel.RelatedIssue == nil {
			continue
		}
		entries = append(entries, RelationshipEntry{
			Type:       strings.ToLower(rel.Type),
			IssueID:    rel.RelatedIssue.ID,
			Identifier: rel.RelatedIssue.Identifier,
			Title:      rel.RelatedIssue.Title,
		})
	}

	return entries
}

// mapComments flattens upstream comments, preserving upstream order. A
// comment with no resolvable author keeps an empty userId.
func mapComments(comments []core.Comment) []CommentDTO {
	dtos := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		dto := CommentDTO{
			ID:        c.ID,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
		if c.User != nil {
			dto.UserID = c.User.ID
			dto.UserName = c.User.Name
		}
		dtos = append(dtos, dto)
	}
	return dtos
}
