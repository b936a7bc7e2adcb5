package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/mock"
)

// MockHTTPClient is a testify mock of HTTPClientInterface
type MockHTTPClient struct {
	mock.Mock
}

var _ HTTPClientInterface = (*MockHTTPClient)(nil)

func (m *MockHTTPClient) DoWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

// DoJSON returns the configured error, or decodes the configured JSON string into out
func (m *MockHTTPClient) DoJSON(ctx context.Context, r Request, out any) error {
	args := m.Called(ctx, r, out)
	if raw, ok := args.Get(0).(string); ok && out != nil {
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func (m *MockHTTPClient) Close() {
	m.Called()
}

func (m *MockHTTPClient) GetClient() *http.Client {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*http.Client)
}
