package transport

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authmocks "github.com/muhammadheryan/sample-api/mocks/application/auth"
	usermocks "github.com/muhammadheryan/sample-api/mocks/application/user"
	"github.com/muhammadheryan/sample-api/constant"
	"github.com/muhammadheryan/sample-api/model"
	"github.com/muhammadheryan/sample-api/utils/errors"
	validatorx "github.com/muhammadheryan/sample-api/utils/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "good-token"

var testIdentity = &model.Identity{Subject: "1", Name: "SampleUser", Role: "User", TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func newServer(t *testing.T) (http.Handler, *usermocks.UserApp, *authmocks.TokenValidator) {
	t.Helper()
	userApp := usermocks.NewUserApp(t)
	authApp := authmocks.NewTokenValidator(t)
	authApp.On("ValidateToken", mock.Anything, testToken).Return(testIdentity, nil).Maybe()
	return NewTransport(userApp, authApp), userApp, authApp
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRestHandler_GetAllUsers(t *testing.T) {
	tests := []struct {
		name       string
		mockCall   func(m *usermocks.UserApp)
		wantStatus int
		wantCount  int
	}{
		{
			name: "success: list",
			mockCall: func(m *usermocks.UserApp) {
				m.On("GetAllUsers", mock.Anything).Return([]*model.UserResponse{{ID: 2, Username: "b"}, {ID: 1, Username: "a"}}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name: "success: empty list",
			mockCall: func(m *usermocks.UserApp) {
				m.On("GetAllUsers", mock.Anything).Return([]*model.UserResponse{}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "error: database failure is a 500 problem",
			mockCall: func(m *usermocks.UserApp) {
				m.On("GetAllUsers", mock.Anything).Return(nil, stderrors.New("dial tcp: refused")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h, userApp, _ := newServer(t)
			tt.mockCall(userApp)

			rec := do(h, http.MethodGet, "/api/v1/user", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, problemContentType, rec.Header().Get("Content-Type"))
				assert.NotContains(t, rec.Body.String(), "refused")
				return
			}

			env := decodeEnvelope(t, rec)
			assert.True(t, env.Success)
			assert.Equal(t, "Users retrieved successfully", env.Message)
			var users []model.UserResponse
			require.NoError(t, json.Unmarshal(env.Data, &users))
			assert.Len(t, users, tt.wantCount)
		})
	}
}

func TestRestHandler_GetUserByID(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		mockCall    func(m *usermocks.UserApp)
		wantStatus  int
		wantSuccess bool
		wantMessage string
	}{
		{
			name: "success: found",
			path: "/api/v1/user/7",
			mockCall: func(m *usermocks.UserApp) {
				m.On("GetUserByID", mock.Anything, int64(7)).Return(&model.UserResponse{ID: 7, Username: "abc"}, true, nil).Once()
			},
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "User retrieved successfully",
		},
		{
			name: "error: not found",
			path: "/api/v1/user/999999",
			mockCall: func(m *usermocks.UserApp) {
				m.On("GetUserByID", mock.Anything, int64(999999)).Return(nil, false, nil).Once()
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "User with ID 999999 not found",
		},
		{
			name:        "error: non numeric id",
			path:        "/api/v1/user/abc",
			mockCall:    func(m *usermocks.UserApp) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Validation failed",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h, userApp, _ := newServer(t)
			tt.mockCall(userApp)

			rec := do(h, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code)

			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantSuccess, env.Success)
			assert.Equal(t, tt.wantMessage, env.Message)
		})
	}
}

func TestRestHandler_CreateUser(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		mockCall     func(m *usermocks.UserApp)
		wantStatus   int
		wantLocation string
		wantErrors   []string
	}{
		{
			name: "success: created",
			body: `{"username":"abc","email":"a@b.com","fullName":"A B"}`,
			mockCall: func(m *usermocks.UserApp) {
				m.On("CreateUser", mock.Anything, mock.MatchedBy(func(req *model.UserRequest) bool {
					return req.Username == "abc" && req.Email == "a@b.com" && req.FullName == "A B"
				})).Return(&model.UserResponse{ID: 42, Username: "abc", Email: "a@b.com", FullName: "A B", IsActive: true}, nil).Once()
			},
			wantStatus:   http.StatusCreated,
			wantLocation: "/api/v1/user/42",
		},
		{
			name:       "error: missing username never reaches the service",
			body:       `{"email":"a@b.com","fullName":"A B"}`,
			mockCall:   func(m *usermocks.UserApp) {},
			wantStatus: http.StatusBadRequest,
			wantErrors: []string{"Username is required"},
		},
		{
			name:       "error: every violation is listed",
			body:       `{"username":"ab","email":"nope"}`,
			mockCall:   func(m *usermocks.UserApp) {},
			wantStatus: http.StatusBadRequest,
			wantErrors: []string{"Username must be at least 3 characters", "Invalid email address", "Full name is required"},
		},
		{
			name:       "error: malformed body",
			body:       `{"username":`,
			mockCall:   func(m *usermocks.UserApp) {},
			wantStatus: http.StatusBadRequest,
			wantErrors: []string{"Invalid request body"},
		},
		{
			name: "error: duplicate key is a 500 problem",
			body: `{"username":"abc","email":"a@b.com","fullName":"A B"}`,
			mockCall: func(m *usermocks.UserApp) {
				m.On("CreateUser", mock.Anything, mock.Anything).Return(nil, stderrors.New("Error 1062: Duplicate entry")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h, userApp, _ := newServer(t)
			tt.mockCall(userApp)

			rec := do(h, http.MethodPost, "/api/v1/user", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "Duplicate")
				return
			}

			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantErrors, env.Errors)
			if tt.wantStatus != http.StatusCreated {
				assert.False(t, env.Success)
				assert.Equal(t, "Validation failed", env.Message)
				return
			}

			assert.True(t, env.Success)
			assert.Equal(t, "User created successfully", env.Message)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			var user model.UserResponse
			require.NoError(t, json.Unmarshal(env.Data, &user))
			assert.Positive(t, user.ID)
			assert.Equal(t, "abc", user.Username)
		})
	}
}

func TestRestHandler_UpdateUser(t *testing.T) {
	body := `{"username":"abc","email":"a@b.com","fullName":"A B"}`

	tests := []struct {
		name        string
		path        string
		body        string
		mockCall    func(m *usermocks.UserApp)
		wantStatus  int
		wantMessage string
	}{
		{
			name: "success: updated",
			path: "/api/v1/user/3",
			body: body,
			mockCall: func(m *usermocks.UserApp) {
				m.On("UpdateUser", mock.Anything, int64(3), mock.Anything).Return(&model.UserResponse{ID: 3, Username: "abc"}, nil).Once()
			},
			wantStatus:  http.StatusOK,
			wantMessage: "User updated successfully",
		},
		{
			name: "error: not found",
			path: "/api/v1/user/3",
			body: body,
			mockCall: func(m *usermocks.UserApp) {
				m.On("UpdateUser", mock.Anything, int64(3), mock.Anything).
					Return(nil, errors.SetCustomErrorMessage(constant.ErrUserNotFound, "User with ID 3 not found")).Once()
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "User with ID 3 not found",
		},
		{
			name:        "error: invalid body",
			path:        "/api/v1/user/3",
			body:        `{"username":"abc"}`,
			mockCall:    func(m *usermocks.UserApp) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Validation failed",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h, userApp, _ := newServer(t)
			tt.mockCall(userApp)

			rec := do(h, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantStatus == http.StatusOK, env.Success)
			assert.Equal(t, tt.wantMessage, env.Message)
		})
	}
}

func TestRestHandler_DeleteUser(t *testing.T) {
	tests := []struct {
		name        string
		mockCall    func(m *usermocks.UserApp)
		wantStatus  int
		wantMessage string
		wantData    string
	}{
		{
			name: "success: deleted",
			mockCall: func(m *usermocks.UserApp) {
				m.On("DeleteUser", mock.Anything, int64(5)).Return(true, nil).Once()
			},
			wantStatus:  http.StatusOK,
			wantMessage: "User deleted successfully",
			wantData:    "true",
		},
		{
			name: "error: not found",
			mockCall: func(m *usermocks.UserApp) {
				m.On("DeleteUser", mock.Anything, int64(5)).Return(false, nil).Once()
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "User with ID 5 not found",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h, userApp, _ := newServer(t)
			tt.mockCall(userApp)

			rec := do(h, http.MethodDelete, "/api/v1/user/5", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantMessage, env.Message)
			assert.Equal(t, tt.wantData, string(env.Data))
		})
	}
}

func TestRestHandler_RevokeToken(t *testing.T) {
	h, _, authApp := newServer(t)
	authApp.On("RevokeToken", mock.Anything, testIdentity).Return(nil).Once()

	rec := do(h, http.MethodPost, "/api/v1/auth/revoke", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"revoked":true}`, string(env.Data))
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		mockCall   func(m *authmocks.TokenValidator)
		wantStatus int
	}{
		{
			name:       "error: missing header",
			mockCall:   func(m *authmocks.TokenValidator) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "error: wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			mockCall:   func(m *authmocks.TokenValidator) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "error: empty bearer",
			header:     "Bearer   ",
			mockCall:   func(m *authmocks.TokenValidator) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "error: invalid token",
			header: "Bearer bad",
			mockCall: func(m *authmocks.TokenValidator) {
				m.On("ValidateToken", mock.Anything, "bad").Return(nil, stderrors.New("token is expired")).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "success: scheme is case insensitive",
			header: "bearer  ok ",
			mockCall: func(m *authmocks.TokenValidator) {
				m.On("ValidateToken", mock.Anything, "ok").Return(testIdentity, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			userApp := usermocks.NewUserApp(t)
			authApp := authmocks.NewTokenValidator(t)
			tt.mockCall(authApp)
			if tt.wantStatus == http.StatusOK {
				userApp.On("GetAllUsers", mock.Anything).Return([]*model.UserResponse{}, nil).Once()
			}
			h := NewTransport(userApp, authApp)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusUnauthorized {
				return
			}
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			assert.Equal(t, problemContentType, rec.Header().Get("Content-Type"))

			var problem model.ProblemDetails
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, http.StatusUnauthorized, problem.Status)
			assert.Equal(t, "/api/v1/user", problem.Instance)
			assert.NotEmpty(t, problem.TraceID)
		})
	}
}

func TestAuthMiddleware_SwaggerIsPublic(t *testing.T) {
	h := NewTransport(usermocks.NewUserApp(t), authmocks.NewTokenValidator(t))

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
}

func TestTraceMiddleware(t *testing.T) {
	h, userApp, _ := newServer(t)
	userApp.On("GetAllUsers", mock.Anything).Return(nil, stderrors.New("boom")).Twice()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set(TraceHeader, "trace-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get(TraceHeader))
	var problem model.ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "trace-123", problem.TraceID)

	rec = do(h, http.MethodGet, "/api/v1/user", "")
	assert.NotEmpty(t, rec.Header().Get(TraceHeader))
}

func TestRecoveryMiddleware(t *testing.T) {
	h, userApp, _ := newServer(t)
	userApp.On("GetAllUsers", mock.Anything).Run(func(args mock.Arguments) {
		panic("kaboom")
	}).Return(nil, nil).Once()

	rec := do(h, http.MethodGet, "/api/v1/user", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var problem model.ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "Internal Server Error", problem.Title)
	assert.NotContains(t, problem.Detail, "kaboom")
}

func TestClassify(t *testing.T) {
	validationErr := validatorx.ValidateStruct(&model.UserRequest{Email: "a@b.com", FullName: "A B"})
	require.Error(t, validationErr)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
		wantDetail string
	}{
		{
			name:       "invalid request",
			err:        errors.SetCustomError(constant.ErrInvalidRequest),
			wantStatus: http.StatusBadRequest,
			wantTitle:  "Bad Request",
			wantDetail: "invalid request",
		},
		{
			name:       "invalid operation",
			err:        errors.SetCustomError(constant.ErrInvalidOperation),
			wantStatus: http.StatusBadRequest,
			wantTitle:  "Invalid Operation",
			wantDetail: "invalid operation",
		},
		{
			name:       "validation errors",
			err:        validationErr,
			wantStatus: http.StatusBadRequest,
			wantTitle:  "Bad Request",
			wantDetail: "Username is required",
		},
		{
			name:       "unauthorized",
			err:        errors.SetCustomError(constant.ErrUnauthorize),
			wantStatus: http.StatusUnauthorized,
			wantTitle:  "Unauthorized",
			wantDetail: "unauthorized request",
		},
		{
			name:       "not found",
			err:        errors.SetCustomError(constant.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantTitle:  "Not Found",
			wantDetail: "data not found",
		},
		{
			name:       "wrapped user not found keeps its message",
			err:        fmt.Errorf("update: %w", errors.SetCustomErrorMessage(constant.ErrUserNotFound, "User with ID 1 not found")),
			wantStatus: http.StatusNotFound,
			wantTitle:  "Not Found",
			wantDetail: "User with ID 1 not found",
		},
		{
			name:       "method not allowed",
			err:        errors.SetCustomError(constant.ErrMethodNotAllowed),
			wantStatus: http.StatusMethodNotAllowed,
			wantTitle:  "Method Not Allowed",
			wantDetail: "method not allowed",
		},
		{
			name:       "no rows",
			err:        fmt.Errorf("get: %w", sql.ErrNoRows),
			wantStatus: http.StatusNotFound,
			wantTitle:  "Not Found",
			wantDetail: "data not found",
		},
		{
			name:       "internal custom error",
			err:        errors.SetCustomError(constant.ErrInternal),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Internal Server Error",
			wantDetail: "an unexpected error occurred",
		},
		{
			name:       "unknown error never leaks",
			err:        stderrors.New("Error 1045: Access denied for user 'root'"),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Internal Server Error",
			wantDetail: "an unexpected error occurred",
		},
		{
			name:       "context cancelled",
			err:        context.Canceled,
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Internal Server Error",
			wantDetail: "an unexpected error occurred",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			status, title, detail := classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantDetail, detail)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header    string
		wantToken string
		wantOK    bool
	}{
		{header: "Bearer abc", wantToken: "abc", wantOK: true},
		{header: "BEARER abc ", wantToken: "abc", wantOK: true},
		{header: "Bearer", wantOK: false},
		{header: "Bearer ", wantOK: false},
		{header: "Token abc", wantOK: false},
		{header: "", wantOK: false},
	}
	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.wantOK, ok, tt.header)
		assert.Equal(t, tt.wantToken, token, tt.header)
	}
}

func TestRestHandler_RevokeToken_StoreDisabled(t *testing.T) {
	h, _, authApp := newServer(t)
	authApp.On("RevokeToken", mock.Anything, testIdentity).
		Return(errors.SetCustomErrorMessage(constant.ErrInvalidOperation, "token revocation is not configured")).Once()

	rec := do(h, http.MethodPost, "/api/v1/auth/revoke", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var problem model.ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "Invalid Operation", problem.Title)
	assert.Equal(t, "token revocation is not configured", problem.Detail)
}

func TestRouter_UnmatchedRequests(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		withToken  bool
		wantStatus int
	}{
		{name: "unknown path without token", method: http.MethodGet, path: "/api/v1/users", wantStatus: http.StatusUnauthorized},
		{name: "trailing slash without token", method: http.MethodGet, path: "/api/v1/user/", wantStatus: http.StatusUnauthorized},
		{name: "wrong method without token", method: http.MethodPatch, path: "/api/v1/user/1", wantStatus: http.StatusUnauthorized},
		{name: "unknown path", method: http.MethodGet, path: "/api/v1/users", withToken: true, wantStatus: http.StatusNotFound},
		{name: "trailing slash", method: http.MethodGet, path: "/api/v1/user/", withToken: true, wantStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodPatch, path: "/api/v1/user/1", withToken: true, wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := newServer(t)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.withToken {
				req.Header.Set("Authorization", "Bearer "+testToken)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, problemContentType, rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, rec.Header().Get(TraceHeader))
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}

			var problem model.ProblemDetails
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.path, problem.Instance)
			assert.NotEmpty(t, problem.TraceID)
		})
	}
}
