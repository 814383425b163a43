package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"agromind/internal/types"
)

// ErrorResponse is the body of every error reply. The error field is a plain
// string, which is what the clients decode.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// JSON writes data as a JSON response with the given status. If marshalling
// fails it falls back to a 500 error response.
func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Error:     "failed to marshal response",
			Code:      string(types.ErrCodeInternalUnexpected),
			RequestID: types.GetRequestID(r.Context()),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Error writes err as an ErrorResponse. An *types.AppError decides the status
// and its message is shown; any other error becomes a 500 without details.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	requestID := types.GetRequestID(r.Context())

	var appErr *types.AppError
	if errors.As(err, &appErr) {
		JSON(w, r, appErr.HTTPStatus(), ErrorResponse{
			Error:     appErr.Message,
			Code:      string(appErr.Code),
			RequestID: requestID,
		})
		return
	}

	JSON(w, r, http.StatusInternalServerError, ErrorResponse{
		Error:     "an unexpected error occurred",
		Code:      string(types.ErrCodeInternalUnexpected),
		RequestID: requestID,
	})
}
