package errors

// ErrorDetail is the wire representation of a single error.
type ErrorDetail struct {
	Message      string                 `json:"message"`
	InternalCode string                 `json:"internal_code,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the standard error body returned by the API layer.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewErrorResponse builds the wire representation for an error.
func NewErrorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Message: Hint(err),
			Details: Details(err),
		},
	}

	switch {
	case IsValidation(err):
		resp.Error.InternalCode = ErrValidation.Error()
	case IsNotFound(err):
		resp.Error.InternalCode = ErrNotFound.Error()
	case IsAlreadyExists(err):
		resp.Error.InternalCode = ErrAlreadyExists.Error()
	case IsInvalidOperation(err):
		resp.Error.InternalCode = ErrInvalidOperation.Error()
	case IsHTTPClient(err):
		resp.Error.InternalCode = ErrHTTPClient.Error()
	case IsPermissionDenied(err):
		resp.Error.InternalCode = ErrPermissionDenied.Error()
	case IsDatabase(err):
		resp.Error.InternalCode = ErrDatabase.Error()
	default:
		resp.Error.InternalCode = ErrSystem.Error()
	}

	return resp
}
