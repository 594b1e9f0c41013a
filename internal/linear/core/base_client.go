package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const linearAPIURL = "https://api.linear.app/graphql"

// BaseClient contains the shared HTTP client and common request functionality
// that all sub-clients use. A single HTTP client instance keeps TCP
// connections alive across requests.
type BaseClient struct {
	apiKey     string
	HTTPClient *http.Client
	baseURL    string
}

// NewBaseClient creates a new base client authenticated with a Linear API key.
func NewBaseClient(apiKey string) *BaseClient {
	return &BaseClient{
		apiKey: apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: linearAPIURL,
	}
}

// NewTestBaseClient creates a base client pointed at a custom URL for tests.
func NewTestBaseClient(apiKey, baseURL string, httpClient *http.Client) *BaseClient {
	return &BaseClient{
		apiKey:     apiKey,
		HTTPClient: httpClient,
		baseURL:    baseURL,
	}
}

// makeRequestWithRetry makes an HTTP request with exponential backoff for rate
// limiting, transient network failures, and 5xx responses. Linear's API has
// strict rate limits; the Retry-After header is respected when present.
func (bc *BaseClient) makeRequestWithRetry(req *http.Request) (*http.Response, error) {
	const maxRetries = 5
	const baseDelay = 100 * time.Millisecond

	// Request bodies can only be read once, so the original bytes are kept
	// and a fresh reader is installed for each attempt.
	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		req.Body.Close()
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bc.apiKey)

	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if bodyBytes != nil {
			req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		resp, err := bc.HTTPClient.Do(req)
		if err != nil {
			shouldRetry := false
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				shouldRetry = true
			} else if err == io.EOF || strings.Contains(err.Error(), "EOF") ||
				strings.Contains(err.Error(), "connection reset") ||
				strings.Contains(err.Error(), "broken pipe") {
				shouldRetry = true
			}

			if shouldRetry {
				lastErr = err
				if attempt < maxRetries {
					delay := time.Duration(math.Pow(2, float64(attempt))) * baseDelay
					time.Sleep(delay)
					continue
				}
			}
			return nil, fmt.Errorf("network error: %w", err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := resp.Header.Get("Retry-After")
			if retryAfter != "" {
				if seconds, err := strconv.Atoi(retryAfter); err == nil {
					time.Sleep(time.Duration(seconds) * time.Second)
					resp.Body.Close()
					continue
				}
			}
			if attempt < maxRetries {
				delay := time.Duration(math.Pow(2, float64(attempt))) * baseDelay * 10
				time.Sleep(delay)
				resp.Body.Close()
				continue
			}
		}

		if resp.StatusCode >= 500 && attempt < maxRetries {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))

			delay := time.Duration(math.Pow(2, float64(attempt))) * baseDelay
			time.Sleep(delay)
			continue
		}

		// 4xx errors (except 429) won't be fixed by retrying.
		return resp, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
	}
	return nil, fmt.Errorf("request failed after %d retries", maxRetries)
}

// ExecuteRequest sends a GraphQL query with variables and decodes the data
// portion of the response into result. GraphQL errors returned with a 200
// status are surfaced as *GraphQLError.
func (bc *BaseClient) ExecuteRequest(query string, variables map[string]interface{}, result interface{}) error {
	payload := map[string]interface{}{
		"query": query,
	}
	if variables != nil {
		payload["variables"] = variables
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, bc.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := bc.makeRequestWithRetry(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var graphQLResp struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}

	if err := json.Unmarshal(respBody, &graphQLResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(graphQLResp.Errors) > 0 {
		return &GraphQLError{Message: graphQLResp.Errors[0].Message}
	}

	if result != nil && graphQLResp.Data != nil {
		if err := json.Unmarshal(graphQLResp.Data, result); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}
