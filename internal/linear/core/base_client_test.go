package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *BaseClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTestBaseClient("test-key", srv.URL, srv.Client())
}

func TestExecuteRequestDecodesData(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]interface{}
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Write([]byte(`{"data":{"viewer":{"id":"u-1","name":"Ada"}}}`))
	})

	var result struct {
		Viewer User `json:"viewer"`
	}
	err := client.ExecuteRequest("query { viewer { id name } }", map[string]interface{}{"x": 1}, &result)
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotAuth, "personal API keys go into Authorization verbatim")
	assert.Contains(t, gotPayload, "query")
	assert.Contains(t, gotPayload, "variables")
	assert.Equal(t, "u-1", result.Viewer.ID)
	assert.Equal(t, "Ada", result.Viewer.Name)
}

func TestExecuteRequestGraphQLError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"Entity not found"}]}`))
	})

	err := client.ExecuteRequest("query { x }", nil, nil)
	require.Error(t, err)
	assert.True(t, IsGraphQLError(err))
	assert.Contains(t, err.Error(), "Entity not found")
}

func TestExecuteRequestHTTPError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad request"))
	})

	err := client.ExecuteRequest("query { x }", nil, nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
}

func TestExecuteRequestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		// The request body must survive across attempts.
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Contains(t, payload, "query")
		w.Write([]byte(`{"data":{}}`))
	})

	err := client.ExecuteRequest("query { x }", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestExecuteRequestRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"data":{}}`))
	})

	err := client.ExecuteRequest("query { x }", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}
