package external

import (
	"context"
	"net/url"

	"agromind/internal/types"
)

// ServiceClient is the narrow HTTP capability the controllers depend on.
// Paths are relative to the service base URL. A returned error is always a
// *types.AppError with an upstream code; a nil error means a response with a
// status below 500 arrived and its body was read in full.
type ServiceClient interface {
	// PostMultipart sends the image as a single multipart form file under field.
	PostMultipart(ctx context.Context, path, field string, image types.UploadedImage) (*Response, error)

	// PostJSON sends payload as a JSON request body.
	PostJSON(ctx context.Context, path string, payload any) (*Response, error)

	// Get issues a GET with the given query parameters.
	Get(ctx context.Context, path string, query url.Values) (*Response, error)
}
