package documents

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmix/linear-mcp/internal/linear/core"
)

func TestListDocumentsCombinesProjectAndTeamFilters(t *testing.T) {
	var payload struct {
		Variables struct {
			Filter map[string]interface{} `json:"filter"`
		} `json:"variables"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"data":{"documents":{"nodes":[],"pageInfo":{"hasNextPage":false,"endCursor":""}}}}`))
	}))
	defer srv.Close()

	client := NewClient(core.NewTestBaseClient("key", srv.URL, srv.Client()))
	_, err := client.ListDocuments(&core.DocumentFilter{ProjectID: "proj-1", TeamID: "team-1"})
	require.NoError(t, err)

	project, ok := payload.Variables.Filter["project"].(map[string]interface{})
	require.True(t, ok, "project and team constraints share the project key")

	id := project["id"].(map[string]interface{})
	assert.Equal(t, "proj-1", id["eq"])

	teams := project["accessibleTeams"].(map[string]interface{})
	some := teams["some"].(map[string]interface{})
	assert.Equal(t, "team-1", some["id"].(map[string]interface{})["eq"])
}

func TestListDocumentsOmitsEmptyFilter(t *testing.T) {
	var payload struct {
		Variables map[string]interface{} `json:"variables"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"data":{"documents":{"nodes":[],"pageInfo":{"hasNextPage":false,"endCursor":""}}}}`))
	}))
	defer srv.Close()

	client := NewClient(core.NewTestBaseClient("key", srv.URL, srv.Client()))
	_, err := client.ListDocuments(nil)
	require.NoError(t, err)

	assert.NotContains(t, payload.Variables, "filter")
	assert.Equal(t, float64(50), payload.Variables["first"])
}
