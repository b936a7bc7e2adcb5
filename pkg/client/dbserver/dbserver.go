package dbserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	httppkg "github.com/trigg3rX/triggerx-go-sdk/pkg/http"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/logging"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/metrics"
)

const apiKeyHeader = "X-API-KEY"
const traceIDHeader = "X-Trace-ID"

// DBServerClient handles communication with the TriggerX API
type DBServerClient struct {
	logger      logging.Logger
	dbserverUrl string
	apiKey      string
	httpClient  httppkg.HTTPClientInterface
}

// NewDBServerClient creates a new instance of DBServerClient. A nil httpClient gets the default retrying client.
func NewDBServerClient(logger logging.Logger, dbserverUrl, apiKey string, httpClient httppkg.HTTPClientInterface) (*DBServerClient, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if dbserverUrl == "" {
		return nil, fmt.Errorf("API URL cannot be empty")
	}
	if httpClient == nil {
		c, err := httppkg.NewHTTPClient(httppkg.DefaultHTTPRetryConfig(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		httpClient = c
	}

	return &DBServerClient{
		logger:      logger,
		dbserverUrl: strings.TrimRight(dbserverUrl, "/"),
		apiKey:      apiKey,
		httpClient:  httpClient,
	}, nil
}

func (c *DBServerClient) APIKey() string { return c.apiKey }

// HealthCheck checks if the API is reachable
func (c *DBServerClient) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.do(ctx, "health", call{method: http.MethodGet, route: "/api/health"}, nil); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// Close closes the HTTP client
func (c *DBServerClient) Close() {
	c.httpClient.Close()
}

type call struct {
	method  string
	route   string
	user    string
	query   url.Values
	body    any
	failMsg string
	once    bool
}

// do sends one API request with the key and trace headers and maps failures to SDK errors
func (c *DBServerClient) do(ctx context.Context, endpoint string, cl call, out any) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveBackendRequest(endpoint, start, err) }()

	traceID := TraceID(cl.method, cl.route, cl.user)
	req := httppkg.Request{
		Method:        cl.method,
		URL:           c.dbserverUrl + cl.route,
		Query:         cl.query,
		Body:          cl.body,
		SingleAttempt: cl.once,
		Headers: map[string]string{
			apiKeyHeader:  c.apiKey,
			traceIDHeader: traceID,
		},
	}

	c.logger.Debug("API request", "method", cl.method, "route", cl.route, "trace_id", traceID)
	if err := c.httpClient.DoJSON(ctx, req, out); err != nil {
		msg := cl.failMsg
		if msg == "" {
			msg = fmt.Sprintf("%s %s failed", cl.method, cl.route)
		}
		return mapError(msg, traceID, err)
	}
	return nil
}

func mapError(msg, traceID string, err error) error {
	var httpErr *httppkg.HTTPError
	if errors.As(err, &httpErr) {
		var e *pkgErrors.Error
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			e = pkgErrors.NewAuthenticationError(msg, err).WithDetail("httpStatusCode", httpErr.StatusCode)
		default:
			e = pkgErrors.NewAPIError(msg, httpErr.StatusCode, err)
		}
		if len(httpErr.Body) > 0 {
			e.WithDetail("response", string(httpErr.Body))
		}
		return e.WithDetail("traceId", traceID)
	}
	if errors.Is(err, context.Canceled) {
		return pkgErrors.NewNetworkError(msg, err).WithDetail("traceId", traceID)
	}
	if e, ok := pkgErrors.As(err); ok {
		return e
	}
	if strings.Contains(err.Error(), "decode response") {
		return pkgErrors.NewAPIError(msg, 0, err).WithDetail("traceId", traceID)
	}
	return pkgErrors.NewNetworkError(msg, err).WithDetail("traceId", traceID)
}
