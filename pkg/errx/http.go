package errx

import "errors"

// HTTPErrorResponse is the JSON body written for a failed request.
type HTTPErrorResponse struct {
	Error     string         `json:"error"`
	Code      string         `json:"code"`
	Type      string         `json:"type"`
	Status    int            `json:"status"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// Response converts err into the response body and status. Errors that are
// not *Error are reported as an opaque internal error.
func Response(err error, requestID string) (int, HTTPErrorResponse) {
	var e *Error
	if !errors.As(err, &e) {
		return 500, HTTPErrorResponse{
			Error:     "An unexpected error occurred",
			Code:      "INTERNAL_ERROR",
			Type:      string(TypeInternal),
			Status:    500,
			RequestID: requestID,
		}
	}

	resp := HTTPErrorResponse{
		Error:     e.Message,
		Code:      e.Code,
		Type:      string(e.Type),
		Status:    e.HTTPStatus,
		RequestID: requestID,
	}
	if len(e.Details) > 0 {
		resp.Details = e.Details
	}
	return e.HTTPStatus, resp
}
