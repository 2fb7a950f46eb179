package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is the HTTP wrapper for a PostgREST endpoint (e.g. Supabase /rest/v1).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new PostgREST HTTP client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// request describes a single PostgREST call.
type request struct {
	method string
	table  string
	query  url.Values
	body   any
	prefer string
}

// do executes req and decodes a JSON response into out (when out is non-nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, req.table)
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s request: %w", req.method, req.table, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", req.method, req.table, err)
	}
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.prefer != "" {
		httpReq.Header.Set("Prefer", req.prefer)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call postgrest %s %s: %w", req.method, req.table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
		_ = json.Unmarshal(raw, apiErr)
		return fmt.Errorf("postgrest API %s %s: %w", req.method, req.table, apiErr)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode postgrest %s %s response: %w", req.method, req.table, err)
	}
	return nil
}

// APIError is a non-2xx PostgREST answer. Code is the Postgres SQLSTATE when
// the database rejected the query.
type APIError struct {
	StatusCode int    `json:"-"`
	Body       string `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("error %d: %s", e.StatusCode, e.Body)
}

// codeInvalidText is the SQLSTATE for a value that does not parse as its
// column type, e.g. a malformed uuid.
const codeInvalidText = "22P02"

// isInvalidText reports whether err is the database rejecting a malformed value.
func isInvalidText(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest && apiErr.Code == codeInvalidText
}

// eq builds a PostgREST equality filter value.
func eq(v string) string {
	return "eq." + v
}

// ilike builds a PostgREST filter matching v anywhere in column, ignoring
// case. LIKE metacharacters in v match literally, and the pattern is double
// quoted so commas and parentheses survive the or=() grammar.
func ilike(column, v string) string {
	var pat strings.Builder
	pat.WriteByte('*')
	for _, r := range v {
		switch r {
		case '*':
			continue
		case '%', '_', '\\':
			pat.WriteByte('\\')
		}
		pat.WriteRune(r)
	}
	pat.WriteByte('*')

	quoted := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(pat.String())
	return column + `.ilike."` + quoted + `"`
}

// ---- Row types scoped to this package ----

const (
	tableTodos         = "todos"
	tableTelegramUsers = "telegram_users"

	preferRepresentation = "return=representation"
	preferUpsert         = "resolution=merge-duplicates,return=minimal"
)

// todoRow mirrors the todos table.
type todoRow struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	Priority    int       `json:"priority"`
	Deadline    time.Time `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// todoPatch is the body of a partial update; omitted fields are left untouched.
type todoPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	IsCompleted *bool      `json:"is_completed,omitempty"`
	Priority    *int       `json:"priority,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type telegramUserRow struct {
	ChatID int64  `json:"chat_id"`
	UserID string `json:"user_id"`
}
