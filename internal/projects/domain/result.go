package domain

// ErrorKind classifies a failed Result.
type ErrorKind string

const (
	KindAuthorizationDenied ErrorKind = "AuthorizationDenied"
	KindValidationFailed    ErrorKind = "ValidationFailed"
	KindMissingIdentifier   ErrorKind = "MissingIdentifier"
	KindStoreFailure        ErrorKind = "StoreFailure"
)

// Result is the tagged value every project operation returns. On failure
// Error is either a plain message or FieldErrors for ValidationFailed.
type Result struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   any       `json:"error,omitempty"`
	Kind    ErrorKind `json:"kind,omitempty"`
}

func OK(data any) Result {
	return Result{Success: true, Data: data}
}

func Fail(kind ErrorKind, err any) Result {
	return Result{Success: false, Kind: kind, Error: err}
}

// ErrorMessage returns Error when it is a plain string, otherwise fallback.
func (r Result) ErrorMessage(fallback string) string {
	if s, ok := r.Error.(string); ok {
		return s
	}
	return fallback
}
