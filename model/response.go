package model

import "time"

// APIResponse is the envelope wrapped around every API response body
type APIResponse[T any] struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      *T        `json:"data,omitempty"`
	Errors    []string  `json:"errors,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func SuccessResponse[T any](data T, message string) *APIResponse[T] {
	if message == "" {
		message = "Success"
	}
	return &APIResponse[T]{
		Success:   true,
		Message:   message,
		Data:      &data,
		Timestamp: time.Now().UTC(),
	}
}

func ErrorResponse[T any](message string, errors []string) *APIResponse[T] {
	return &APIResponse[T]{
		Success:   false,
		Message:   message,
		Errors:    errors,
		Timestamp: time.Now().UTC(),
	}
}

// ProblemDetails is the problem document written for unrecovered failures
type ProblemDetails struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Status    int       `json:"status"`
	Detail    string    `json:"detail"`
	Instance  string    `json:"instance"`
	TraceID   string    `json:"traceId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
