// Package backend implements the HTTP client for the job-board REST backend.
//
// The backend wraps every payload in a fixed envelope:
//
//	{ statusCode, error, message, data: { meta, result } }
//
// The listing always requests the full collection and filters client-side, so
// only data.result is consumed; the server's meta block is ignored in favor
// of client-computed pagination.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"jobboard/listing-service/internal/model"
)

const httpTimeout = 15 * time.Second

// Client fetches collections from the job-board backend.
type Client struct {
	baseURL string
	token   string // optional bearer token attached to every request
	client  *http.Client
}

// New constructs a Client with a shared HTTP client. baseURL is the API root,
// e.g. "http://localhost:8080/api/v1". token may be empty.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// FetchJobs retrieves the full job collection.
func (c *Client) FetchJobs(ctx context.Context) ([]model.Job, error) {
	return fetchCollection[model.Job](ctx, c, "/jobs")
}

// FetchCompanies retrieves the full company collection.
func (c *Client) FetchCompanies(ctx context.Context) ([]model.Company, error) {
	return fetchCollection[model.Company](ctx, c, "/companies")
}

// FetchSkills retrieves the full skill collection (used for filter options).
func (c *Client) FetchSkills(ctx context.Context) ([]model.Skill, error) {
	return fetchCollection[model.Skill](ctx, c, "/skills")
}

// fetchCollection issues one GET against path and unwraps the envelope.
// A transport error, a non-2xx HTTP status, or an envelope statusCode >= 400
// all surface as errors carrying the backend's message where available.
func fetchCollection[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var env model.Envelope[model.Page[T]]
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("backend returned %d for %s", resp.StatusCode, path)
		}
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	if resp.StatusCode != http.StatusOK || env.StatusCode >= 400 {
		msg := env.Message
		if msg == "" && env.Error != nil {
			msg = *env.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("backend returned %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("fetch %s: %s", path, msg)
	}

	if env.Data == nil {
		return nil, fmt.Errorf("fetch %s: envelope has no data", path)
	}
	return env.Data.Result, nil
}
