package models

// GenerationRequest is the parsed body of a generation call. Optional
// fields are pointers so a missing field can fall back to the configured
// default while an explicit zero is honored.
type GenerationRequest struct {
	Prompt      string   `json:"prompt"`
	MaxTokens   *int     `json:"max_tokens,omitempty" validate:"omitempty,gt=0"`
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=1"`
	TopP        *float64 `json:"top_p,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// InvocationResult is the canonical outcome of one successful model call,
// regardless of which model family produced it.
type InvocationResult struct {
	Content   string
	ModelID   string
	Usage     map[string]any
	RequestID string
}

// InvocationError is a classified failure from the model invoker. For
// provider-reported errors Code and Message carry the provider's values
// verbatim; for anything else they are a fixed non-leaking pair.
type InvocationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *InvocationError) Error() string {
	return e.Code + ": " + e.Message
}

// Metadata is attached to every generation response.
type Metadata struct {
	ExecutionTimeMS float64 `json:"execution_time_ms"`
	Timestamp       int64   `json:"timestamp"`
	RequestID       *string `json:"request_id"`
}

// GenerationResponse is the body of a successful generation.
type GenerationResponse struct {
	Success  bool           `json:"success"`
	Content  string         `json:"content"`
	ModelID  string         `json:"model_id"`
	Usage    map[string]any `json:"usage"`
	Metadata Metadata       `json:"metadata"`
}

// ErrorResponse is the body of a failed generation.
type ErrorResponse struct {
	Success  bool             `json:"success"`
	Error    *InvocationError `json:"error"`
	Metadata Metadata         `json:"metadata"`
}

// ValidationErrorResponse is the body returned for rejected requests.
type ValidationErrorResponse struct {
	Error     bool   `json:"error"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// PreflightResponse is the body returned for CORS preflight requests.
type PreflightResponse struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}
