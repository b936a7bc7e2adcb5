package http

import (
	"context"
	"net/http"
)

// HTTPClientInterface is what the backend client depends on
type HTTPClientInterface interface {
	DoWithRetry(ctx context.Context, req *http.Request) (*http.Response, error)
	DoJSON(ctx context.Context, r Request, out any) error
	GetClient() *http.Client
	Close()
}

var _ HTTPClientInterface = (*HTTPClient)(nil)
