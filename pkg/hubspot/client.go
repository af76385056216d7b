// Package hubspot provides bearer-token access to the HubSpot CRM v3
// contacts search API and a cursor-following page walker over it.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-quality-cli/internal/model"
)

// Default base URL for the HubSpot API.
const defaultBaseURL = "https://api.hubapi.com"

const searchPath = "/crm/v3/objects/contacts/search"

// Client defines the CRM API operations used by the walker and the
// connectivity probe.
type Client interface {
	SearchContacts(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	Ping(ctx context.Context) error
}

// Filter is one property comparison inside a filter group.
type Filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

// FilterGroup ANDs its filters together; groups are ORed against each other.
type FilterGroup struct {
	Filters []Filter `json:"filters"`
}

// Sort orders search results by one property.
type Sort struct {
	PropertyName string `json:"propertyName"`
	Direction    string `json:"direction"`
}

// SearchRequest is the body for POST /crm/v3/objects/contacts/search.
type SearchRequest struct {
	FilterGroups []FilterGroup `json:"filterGroups"`
	Properties   []string      `json:"properties"`
	Limit        int           `json:"limit"`
	Sorts        []Sort        `json:"sorts,omitempty"`
	After        string        `json:"after,omitempty"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Total   int                `json:"total"`
	Results []model.RawContact `json:"results"`
	Paging  *Paging            `json:"paging,omitempty"`
}

// Paging carries the continuation cursor when more pages remain.
type Paging struct {
	Next *PagingNext `json:"next,omitempty"`
}

// PagingNext holds the opaque cursor for the next page.
type PagingNext struct {
	After string `json:"after"`
}

// NextAfter returns the continuation cursor, or "" when the result set is
// exhausted.
func (r *SearchResponse) NextAfter() string {
	if r.Paging == nil || r.Paging.Next == nil {
		return ""
	}
	return r.Paging.Next.After
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a new HubSpot client with the given private-app token.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchContacts executes one search page request. Rate-limit (429) and
// auth (401) responses surface as *APIError and *AuthError respectively.
func (c *httpClient) SearchContacts(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.post(ctx, searchPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ping performs a single lightweight request so the host can verify the
// credential before committing to a full fetch.
func (c *httpClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/crm/v3/objects/contacts?limit=1", nil)
	if err != nil {
		return eris.Wrap(err, "hubspot: create ping request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	return c.do(req, &struct{}{})
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "hubspot: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return eris.Wrap(err, "hubspot: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	return c.do(req, out)
}

func (c *httpClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "hubspot: execute request")
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "hubspot: read response body")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &AuthError{Message: apiMessage(data)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "hubspot: decode response")
	}
	return nil
}

// apiMessage pulls the human-readable message out of a HubSpot error body,
// falling back to the raw body.
func apiMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return string(data)
}

func parseRetryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(header)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
