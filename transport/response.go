package transport

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/muhammadheryan/sample-api/constant"
	"github.com/muhammadheryan/sample-api/model"
	utilsContext "github.com/muhammadheryan/sample-api/utils/context"
	"github.com/muhammadheryan/sample-api/utils/errors"
	"github.com/muhammadheryan/sample-api/utils/logger"
	validatorx "github.com/muhammadheryan/sample-api/utils/validator"
	"go.uber.org/zap"
)

const problemContentType = "application/problem+json"

var problemTypes = map[int]string{
	http.StatusBadRequest:          "https://tools.ietf.org/html/rfc9110#section-15.5.1",
	http.StatusUnauthorized:        "https://tools.ietf.org/html/rfc9110#section-15.5.2",
	http.StatusNotFound:            "https://tools.ietf.org/html/rfc9110#section-15.5.5",
	http.StatusMethodNotAllowed:    "https://tools.ietf.org/html/rfc9110#section-15.5.6",
	http.StatusInternalServerError: "https://tools.ietf.org/html/rfc9110#section-15.6.1",
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("err encode response", zap.Error(err))
	}
}

// writeValidationError answers with the 400 envelope listing every violation.
func writeValidationError(w http.ResponseWriter, messages []string) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse[any](constant.ErrorTypeMessage[constant.ErrValidationFailed], messages))
}

func writeNotFound[T any](w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, model.ErrorResponse[T](message, nil))
}

// classify is the closed mapping from a failure to its problem status, title
// and client-facing detail. Anything unrecognized is a 500 whose detail never
// carries the underlying message.
func classify(err error) (int, string, string) {
	if ce, ok := errors.AsCustomError(err); ok {
		status := ce.ErrorHTTPCode()
		title := ce.ErrorTitle()
		if status >= http.StatusBadRequest && status < http.StatusInternalServerError && title != "" {
			return status, title, ce.Error()
		}
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		return http.StatusBadRequest, constant.ErrorTypeTitle[constant.ErrInvalidRequest], strings.Join(validatorx.Messages(err), "; ")
	}

	if stderrors.Is(err, sql.ErrNoRows) {
		return http.StatusNotFound, constant.ErrorTypeTitle[constant.ErrNotFound], constant.ErrorTypeMessage[constant.ErrNotFound]
	}

	return http.StatusInternalServerError, constant.ErrorTypeTitle[constant.ErrInternal], constant.ErrorTypeMessage[constant.ErrInternal]
}

// writeError is the error boundary: every failure a handler does not map
// itself ends up here as a problem document.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, title, detail := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error("An unhandled exception occurred",
			zap.String("path", r.URL.Path), zap.String("trace_id", utilsContext.GetTraceID(r.Context())), zap.Error(err))
	} else {
		logger.Warn("Request failed",
			zap.String("path", r.URL.Path), zap.Int("status", status), zap.String("error", err.Error()))
	}
	writeProblem(w, r, status, title, detail)
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	ce := errors.SetCustomError(constant.ErrUnauthorize)
	writeProblem(w, r, ce.ErrorHTTPCode(), ce.ErrorTitle(), ce.Error())
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	problem := model.ProblemDetails{
		Type:      problemTypes[status],
		Title:     title,
		Status:    status,
		Detail:    detail,
		Instance:  r.URL.Path,
		TraceID:   utilsContext.GetTraceID(r.Context()),
		Timestamp: time.Now().UTC(),
	}

	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem); err != nil {
		logger.Error("err encode problem", zap.Error(err))
	}
}
