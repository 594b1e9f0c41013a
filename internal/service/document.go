package service

import (
	"github.com/cosmix/linear-mcp/internal/linear/core"
	"github.com/cosmix/linear-mcp/internal/mcperr"
	"github.com/cosmix/linear-mcp/internal/text"
)

// maxPageSize caps list page sizes; defaultPageSize applies when the caller
// does not ask for a size.
const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// DocumentService implements the document CRUD surface.
type DocumentService struct {
	documents DocumentAPI
}

// NewDocumentService creates a document service over the given client.
func NewDocumentService(documents DocumentAPI) *DocumentService {
	return &DocumentService{documents: documents}
}

// DocumentListArgs are the arguments for ListDocuments.
type DocumentListArgs struct {
	Name            string
	TeamID          string
	ProjectID       string
	IncludeArchived *bool
	IncludeFull     bool
	First           int
	After           string
}

// DocumentCreateArgs are the arguments for CreateDocument.
type DocumentCreateArgs struct {
	Title     string
	Content   string
	Icon      *string
	Color     *string
	ProjectID string
}

// DocumentUpdateArgs are the sparse arguments for UpdateDocument.
type DocumentUpdateArgs struct {
	DocumentID string
	Title      *string
	Content    *string
	Icon       *string
	Color      *string
}

// ListDocuments lists documents with cursor pagination. Page size defaults
// to 50 and is capped at 100; archived documents are included unless the
// caller opts out.
func (s *DocumentService) ListDocuments(args DocumentListArgs) (*DocumentPageDTO, error) {
	page, err := s.documents.ListDocuments(&core.DocumentFilter{
		Name:            args.Name,
		TeamID:          args.TeamID,
		ProjectID:       args.ProjectID,
		IncludeArchived: args.IncludeArchived,
		First:           clampPageSize(args.First),
		After:           args.After,
	})
	if err != nil {
		return nil, mcperr.Passthrough(err)
	}

	result := &DocumentPageDTO{
		Documents:   make([]DocumentDTO, 0, len(page.Documents)),
		HasNextPage: page.PageInfo.HasNextPage,
		EndCursor:   page.PageInfo.EndCursor,
	}
	for i := range page.Documents {
		result.Documents = append(result.Documents, mapDocument(&page.Documents[i], args.IncludeFull))
	}
	return result, nil
}

// GetDocument retrieves a single document. includeFull switches between the
// full content and the cleaned 200-character preview.
func (s *DocumentService) GetDocument(documentID string, includeFull bool) (*DocumentDTO, error) {
	doc, err := s.documents.GetDocument(documentID)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, mcperr.InvalidRequestf("Document not found: %s", documentID)
		}
		return nil, mcperr.Passthrough(err)
	}
	dto := mapDocument(doc, includeFull)
	return &dto, nil
}

// CreateDocument creates a document.
func (s *DocumentService) CreateDocument(args DocumentCreateArgs) (*DocumentDTO, error) {
	if args.Title == "" {
		return nil, mcperr.InvalidParams("title is required")
	}

	doc, err := s.documents.CreateDocument(core.DocumentCreateInput{
		Title:     args.Title,
		Content:   args.Content,
		Icon:      args.Icon,
		Color:     args.Color,
		ProjectID: args.ProjectID,
	})
	if err != nil {
		return nil, mcperr.WrapInternal("Failed to create document", err)
	}

	dto := mapDocument(doc, true)
	return &dto, nil
}

// UpdateDocument verifies the document exists, then applies a sparse patch.
func (s *DocumentService) UpdateDocument(args DocumentUpdateArgs) (*DocumentDTO, error) {
	if _, err := s.documents.GetDocument(args.DocumentID); err != nil {
		if core.IsNotFoundError(err) {
			return nil, mcperr.InvalidRequestf("Document not found: %s", args.DocumentID)
		}
		return nil, mcperr.Passthrough(err)
	}

	doc, err := s.documents.UpdateDocument(args.DocumentID, core.DocumentUpdateInput{
		Title:   args.Title,
		Content: args.Content,
		Icon:    args.Icon,
		Color:   args.Color,
	})
	if err != nil {
		return nil, mcperr.WrapInternal("Failed to update document", err)
	}

	dto := mapDocument(doc, true)
	return &dto, nil
}

// DeleteDocument deletes a document. A clean unsuccessful deletion is
// reported in the result, not raised as an error.
func (s *DocumentService) DeleteDocument(documentID string) (*DeleteResultDTO, error) {
	result, err := s.documents.DeleteDocument(documentID)
	if err != nil {
		return nil, mcperr.WrapInternal("Failed to delete document", err)
	}
	return &DeleteResultDTO{Success: result.Success, Message: result.Message}, nil
}

func mapDocument(doc *core.Document, includeFull bool) DocumentDTO {
	dto := DocumentDTO{
		ID:        doc.ID,
		Title:     doc.Title,
		Icon:      doc.Icon,
		Color:     doc.Color,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		URL:       doc.URL,
	}
	if doc.Creator != nil {
		dto.CreatorName = doc.Creator.Name
	}
	if doc.Project != nil {
		dto.ProjectName = doc.Project.Name
	}
	if includeFull {
		dto.Content = doc.Content
	} else {
		dto.ContentPreview = contentPreview(doc.Content)
	}
	return dto
}

// contentPreview returns the cleaned first 200 characters of a markdown
// body.
func contentPreview(content string) string {
	cleaned := text.CleanDescription(content)
	if cleaned == nil {
		return ""
	}
	runes := []rune(*cleaned)
	if len(runes) <= 200 {
		return *cleaned
	}
	return string(runes[:200]) + "..."
}

func clampPageSize(first int) int {
	if first <= 0 {
		return defaultPageSize
	}
	if first > maxPageSize {
		return maxPageSize
	}
	return first
}
