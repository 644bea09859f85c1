package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultEndpoint = "http://localhost:4000/graphql"

var ErrEmptyResponse = errors.New("graphql response has no data")

type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Code returns extensions.code, or "" when the server did not set one.
func (e GraphQLError) Code() string {
	code, _ := e.Extensions["code"].(string)
	return code
}

// Errors is the errors array of a GraphQL response.
type Errors []GraphQLError

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		if c := e.Code(); c != "" {
			msgs[i] = fmt.Sprintf("%s (%s)", e.Message, c)
		} else {
			msgs[i] = e.Message
		}
	}
	return strings.Join(msgs, "; ")
}

// HasCode reports whether err carries a GraphQL error with the given code.
func HasCode(err error, code string) bool {
	var es Errors
	if !errors.As(err, &es) {
		return false
	}
	for _, e := range es {
		if e.Code() == code {
			return true
		}
	}
	return false
}

// HTTPError is returned for non-200 responses.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("graphql endpoint returned %d: %s", e.Status, e.Body)
}

type Client struct {
	endpoint string
	http     *http.Client
	token    string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors Errors          `json:"errors"`
}

// Do posts one operation and decodes data into out. A response carrying
// errors is returned as Errors even when partial data is present.
func (c *Client) Do(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: vars})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var r response
	if err := json.Unmarshal(raw, &r); err != nil {
		return fmt.Errorf("decode graphql response: %w", err)
	}
	if len(r.Errors) > 0 {
		return r.Errors
	}
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return ErrEmptyResponse
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(r.Data, out)
}
