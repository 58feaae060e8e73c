package wandb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Backland-Labs/wbpeek/internal/config"
	"github.com/Backland-Labs/wbpeek/internal/logger"
	"github.com/Backland-Labs/wbpeek/internal/runs"
	"github.com/google/uuid"
	"github.com/siderolabs/go-retry/retry"
)

const (
	// OrderNewestFirst sorts runs by creation time, newest first
	OrderNewestFirst = "-created_at"

	defaultRetryInterval = time.Second
	defaultPageSize      = 50

	// maxErrorBody caps how much of an error response is kept
	maxErrorBody = 512
)

// RunQuery selects the runs of one project
type RunQuery struct {
	Entity  string
	Project string
	Filters runs.Filters
	// Order is the service sort expression; OrderNewestFirst when empty
	Order string
}

// RunPath identifies a single run
type RunPath struct {
	Entity  string
	Project string
	RunID   string
}

func (p RunPath) String() string {
	return p.Entity + "/" + p.Project + "/" + p.RunID
}

// Client interface for W&B API operations
type Client interface {
	// Runs returns the runs matching q, one page per round trip as the
	// sequence is consumed. Stopping early stops paging.
	Runs(ctx context.Context, q RunQuery) runs.Feed
	Run(ctx context.Context, path RunPath) (*runs.Run, error)
	DeleteRun(ctx context.Context, path RunPath) error
}

// apiClient implements the Client interface
type apiClient struct {
	apiKey        string
	baseURL       string
	appURL        string
	pageSize      int
	retryTimeout  time.Duration
	retryInterval time.Duration
	httpClient    *http.Client
	log           *logger.Logger
}

// Option configures a client
type Option func(*apiClient)

// WithHTTPClient replaces the HTTP client. Its transport is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *apiClient) {
		c.httpClient = hc
	}
}

// WithRetryInterval sets the wait between retries of a failed request
func WithRetryInterval(d time.Duration) Option {
	return func(c *apiClient) {
		c.retryInterval = d
	}
}

// WithLogger sets the logger for requests and retries
func WithLogger(l *logger.Logger) Option {
	return func(c *apiClient) {
		c.log = l
	}
}

// NewClient creates a new W&B API client
func NewClient(cfg config.APIConfig, opts ...Option) (Client, error) {
	if cfg.Key == "" {
		return nil, fmt.Errorf("API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	appURL := cfg.AppURL
	if appURL == "" {
		appURL = baseURL
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	c := &apiClient{
		apiKey:        cfg.Key,
		baseURL:       baseURL,
		appURL:        appURL,
		pageSize:      pageSize,
		retryTimeout:  cfg.RetryTimeout,
		retryInterval: defaultRetryInterval,
		log:           logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: logger.NewTransport(http.DefaultTransport, c.log),
		}
	}

	return c, nil
}

// graphQLRequest represents a GraphQL request
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// graphQLResponse represents a GraphQL response
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Runs implements Client.Runs
func (c *apiClient) Runs(ctx context.Context, q RunQuery) runs.Feed {
	return func(yield func(runs.Run, error) bool) {
		order := q.Order
		if order == "" {
			order = OrderNewestFirst
		}

		vars := map[string]interface{}{
			"entity":  q.Entity,
			"project": q.Project,
			"perPage": c.pageSize,
			"order":   order,
		}
		if len(q.Filters) > 0 {
			vars["filters"] = q.Filters.String()
		}

		for page := 1; ; page++ {
			var data runsData
			if err := c.query(ctx, runsQuery, vars, &data); err != nil {
				yield(runs.Run{}, fmt.Errorf("runs page %d: %w", page, err))
				return
			}
			if data.Project == nil {
				yield(runs.Run{}, fmt.Errorf("%w: %s/%s", ErrProjectNotFound, q.Entity, q.Project))
				return
			}

			conn := data.Project.Runs
			c.log.WithFields(map[string]interface{}{
				"page": page,
				"runs": len(conn.Edges),
			}).Debug("Fetched runs page")

			for _, edge := range conn.Edges {
				run, err := c.toRun(edge.Node, q.Entity, q.Project)
				if !yield(run, err) || err != nil {
					return
				}
			}

			if !conn.PageInfo.HasNextPage || conn.PageInfo.EndCursor == "" {
				return
			}
			vars["cursor"] = conn.PageInfo.EndCursor
		}
	}
}

// Run implements Client.Run
func (c *apiClient) Run(ctx context.Context, path RunPath) (*runs.Run, error) {
	if path.RunID == "" {
		return nil, fmt.Errorf("run ID is required")
	}

	var data runData
	err := c.query(ctx, runQuery, map[string]interface{}{
		"entity":  path.Entity,
		"project": path.Project,
		"name":    path.RunID,
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run %s: %w", path, err)
	}

	if data.Project == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrProjectNotFound, path.Entity, path.Project)
	}
	if data.Project.Run == nil {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, path)
	}

	run, err := c.toRun(*data.Project.Run, path.Entity, path.Project)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// DeleteRun implements Client.DeleteRun. The run is looked up first because
// the mutation takes the storage id, not the run id.
func (c *apiClient) DeleteRun(ctx context.Context, path RunPath) error {
	run, err := c.Run(ctx, path)
	if err != nil {
		return err
	}

	var data deleteData
	err = c.query(ctx, deleteRunMutation, map[string]interface{}{
		"id": run.StorageID,
	}, &data)
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", path, err)
	}
	if data.DeleteRun == nil {
		return fmt.Errorf("failed to delete run %s: empty mutation result", path)
	}

	c.log.WithField("run", path.String()).Info("Run deleted")
	return nil
}

// query runs a GraphQL operation, retrying transient failures, and decodes
// the data field into out
func (c *apiClient) query(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	var data json.RawMessage
	attempt := func(ctx context.Context) error {
		var err error
		data, err = c.post(ctx, body)
		return err
	}

	if err := c.withRetry(ctx, attempt); err != nil {
		return err
	}

	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}
	return nil
}

// withRetry calls f until it succeeds, fails permanently or the retry timeout
// elapses. The last error from f is returned as is so callers can match it.
func (c *apiClient) withRetry(ctx context.Context, f func(context.Context) error) error {
	if c.retryTimeout <= 0 {
		return f(ctx)
	}

	var lastErr error
	attempts := 0
	err := retry.Constant(c.retryTimeout, retry.WithUnits(c.retryInterval)).
		RetryWithContext(ctx, func(ctx context.Context) error {
			attempts++
			lastErr = f(ctx)
			if IsRetryable(lastErr) {
				c.log.WithError(lastErr).WithField("attempt", attempts).Info("Retrying request")
				return retry.ExpectedError(lastErr)
			}
			return lastErr
		})
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if lastErr != nil {
		return lastErr
	}
	return err
}

// post sends one GraphQL request and returns the data field
func (c *apiClient) post(ctx context.Context, body []byte) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(logger.RequestIDHeader, uuid.NewString())
	httpReq.SetBasicAuth("api", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}

	var graphQLResp graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&graphQLResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(graphQLResp.Errors) > 0 {
		gqlErr := &GraphQLError{}
		for _, e := range graphQLResp.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
		}
		return nil, gqlErr
	}

	return graphQLResp.Data, nil
}
