package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmix/linear-mcp/internal/linear/core"
	"github.com/cosmix/linear-mcp/internal/mcperr"
)

func TestListDocumentsPageSize(t *testing.T) {
	docs := &fakeDocumentAPI{}
	svc := NewDocumentService(docs)

	_, err := svc.ListDocuments(DocumentListArgs{})
	require.NoError(t, err)
	_, err = svc.ListDocuments(DocumentListArgs{First: 500})
	require.NoError(t, err)
	_, err = svc.ListDocuments(DocumentListArgs{First: 10})
	require.NoError(t, err)

	require.Len(t, docs.listFilters, 3)
	assert.Equal(t, 50, docs.listFilters[0].First, "default page size")
	assert.Equal(t, 100, docs.listFilters[1].First, "capped page size")
	assert.Equal(t, 10, docs.listFilters[2].First)
}

func TestGetDocumentPreview(t *testing.T) {
	long := strings.Repeat("word ", 100)
	docs := &fakeDocumentAPI{documents: map[string]*core.Document{
		"doc-1": {ID: "doc-1", Title: "Runbook", Content: long},
	}}
	svc := NewDocumentService(docs)

	preview, err := svc.GetDocument("doc-1", false)
	require.NoError(t, err)
	assert.Empty(t, preview.Content)
	assert.Len(t, []rune(preview.ContentPreview), 203, "200 characters plus ellipsis")

	full, err := svc.GetDocument("doc-1", true)
	require.NoError(t, err)
	assert.Equal(t, long, full.Content)
	assert.Empty(t, full.ContentPreview)
}

func TestGetDocumentNotFound(t *testing.T) {
	svc := NewDocumentService(&fakeDocumentAPI{})

	_, err := svc.GetDocument("ghost", false)
	require.Error(t, err)
	typed, ok := mcperr.As(err)
	require.True(t, ok)
	assert.Equal(t, mcperr.CodeInvalidRequest, typed.Code)
	assert.Equal(t, "Document not found: ghost", typed.Message)
}

func TestUpdateDocumentVerifiesExistence(t *testing.T) {
	docs := &fakeDocumentAPI{}
	svc := NewDocumentService(docs)

	_, err := svc.UpdateDocument(DocumentUpdateArgs{DocumentID: "ghost", Title: strptr("x")})
	require.Error(t, err)
	assert.Empty(t, docs.updates, "patch must not ship for a missing document")
}

func TestDeleteDocumentSoftFailure(t *testing.T) {
	docs := &fakeDocumentAPI{deleteResult: &core.DeleteResult{Success: false, Message: "document deletion was not successful"}}
	svc := NewDocumentService(docs)

	result, err := svc.DeleteDocument("doc-1")
	require.NoError(t, err, "a clean unsuccessful deletion is a result, not an error")
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}
