package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInvalidOperation
	ErrUserNotFound
	ErrValidationFailed
	ErrMethodNotAllowed
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:          "success",
	ErrInternal:         "an unexpected error occurred",
	ErrNotFound:         "data not found",
	ErrInvalidRequest:   "invalid request",
	ErrUnauthorize:      "unauthorized request",
	ErrInvalidOperation: "invalid operation",
	ErrUserNotFound:     "user not found",
	ErrValidationFailed: "Validation failed",
	ErrMethodNotAllowed: "method not allowed",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:          http.StatusOK,
	ErrInternal:         http.StatusInternalServerError,
	ErrNotFound:         http.StatusNotFound,
	ErrInvalidRequest:   http.StatusBadRequest,
	ErrUnauthorize:      http.StatusUnauthorized,
	ErrInvalidOperation: http.StatusBadRequest,
	ErrUserNotFound:     http.StatusNotFound,
	ErrValidationFailed: http.StatusBadRequest,
	ErrMethodNotAllowed: http.StatusMethodNotAllowed,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:          "0000",
	ErrInternal:         "0001",
	ErrNotFound:         "0002",
	ErrInvalidRequest:   "0003",
	ErrUnauthorize:      "0004",
	ErrInvalidOperation: "0005",
	ErrUserNotFound:     "0006",
	ErrValidationFailed: "0007",
	ErrMethodNotAllowed: "0008",
}

// ErrorTypeTitle is the problem document title per error type.
var ErrorTypeTitle = map[ErrorType]string{
	ErrInternal:         "Internal Server Error",
	ErrNotFound:         "Not Found",
	ErrInvalidRequest:   "Bad Request",
	ErrUnauthorize:      "Unauthorized",
	ErrInvalidOperation: "Invalid Operation",
	ErrUserNotFound:     "Not Found",
	ErrValidationFailed: "Bad Request",
	ErrMethodNotAllowed: "Method Not Allowed",
}
