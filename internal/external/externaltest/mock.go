// Package externaltest provides test doubles for the external package.
package externaltest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/stretchr/testify/mock"

	"agromind/internal/external"
	"agromind/internal/types"
)

// MockServiceClient is a testify mock of external.ServiceClient.
type MockServiceClient struct {
	mock.Mock
}

var _ external.ServiceClient = (*MockServiceClient)(nil)

func (m *MockServiceClient) PostMultipart(ctx context.Context, path, field string, image types.UploadedImage) (*external.Response, error) {
	args := m.Called(ctx, path, field, image)
	resp, _ := args.Get(0).(*external.Response)
	return resp, args.Error(1)
}

func (m *MockServiceClient) PostJSON(ctx context.Context, path string, payload any) (*external.Response, error) {
	args := m.Called(ctx, path, payload)
	resp, _ := args.Get(0).(*external.Response)
	return resp, args.Error(1)
}

func (m *MockServiceClient) Get(ctx context.Context, path string, query url.Values) (*external.Response, error) {
	args := m.Called(ctx, path, query)
	resp, _ := args.Get(0).(*external.Response)
	return resp, args.Error(1)
}

// JSONResponse builds a Response with the given status and raw JSON body.
func JSONResponse(status int, body string) *external.Response {
	return &external.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
	}
}

// Unavailable is a transport failure as returned by external.APIClient.
func Unavailable() error {
	return types.NewAppError(types.ErrCodeUpstreamUnavailable, "upstream request failed", nil)
}
