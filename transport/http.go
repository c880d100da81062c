package transport

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/sample-api/application/auth"
	userapp "github.com/muhammadheryan/sample-api/application/user"
	"github.com/muhammadheryan/sample-api/constant"
	"github.com/muhammadheryan/sample-api/model"
	utilsContext "github.com/muhammadheryan/sample-api/utils/context"
	"github.com/muhammadheryan/sample-api/utils/errors"
	"github.com/muhammadheryan/sample-api/utils/logger"
	validatorx "github.com/muhammadheryan/sample-api/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const routeGetUserByID = "GetUserByID"

type RestHandler struct {
	UserApp userapp.UserApp
	AuthApp auth.TokenValidator
	router  *mux.Router
}

func NewTransport(UserApp userapp.UserApp, AuthApp auth.TokenValidator) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		UserApp: UserApp,
		AuthApp: AuthApp,
		router:  router,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	v1 := router.PathPrefix("/api/v1").Subrouter()

	// user routes
	v1.HandleFunc("/user", rh.GetAllUsers).Methods(http.MethodGet)
	v1.HandleFunc("/user/{id}", rh.GetUserByID).Methods(http.MethodGet).Name(routeGetUserByID)
	v1.HandleFunc("/user", rh.CreateUser).Methods(http.MethodPost)
	v1.HandleFunc("/user/{id}", rh.UpdateUser).Methods(http.MethodPut)
	v1.HandleFunc("/user/{id}", rh.DeleteUser).Methods(http.MethodDelete)

	// auth routes
	v1.HandleFunc("/auth/revoke", rh.RevokeToken).Methods(http.MethodPost)

	// middleware
	middlewares := []mux.MiddlewareFunc{
		TraceMiddleware(),
		LoggingMiddleware(),
		RecoveryMiddleware(),
		AuthMiddleware(AuthApp),
	}
	router.Use(middlewares...)

	// unmatched requests skip Use, so they get the chain explicitly
	router.NotFoundHandler = chain(http.HandlerFunc(routeNotFound), middlewares)
	router.MethodNotAllowedHandler = chain(http.HandlerFunc(methodNotAllowed), middlewares)

	return router
}

func chain(h http.Handler, middlewares []mux.MiddlewareFunc) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i].Middleware(h)
	}
	return h
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errors.SetCustomErrorMessage(constant.ErrNotFound, "resource not found"))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errors.SetCustomError(constant.ErrMethodNotAllowed))
}

// GetAllUsers handler
// @Summary List users
// @Description Get every user that has not been deleted, newest first
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.APIResponse[[]model.UserResponse]
// @Failure 401 {object} model.ProblemDetails
// @Router /api/v1/user [get]
func (s *RestHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.UserApp.GetAllUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SuccessResponse(users, "Users retrieved successfully"))
}

// GetUserByID handler
// @Summary Get user
// @Description Get a single user by id
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.APIResponse[model.UserResponse]
// @Failure 400 {object} model.APIResponse[any]
// @Failure 401 {object} model.ProblemDetails
// @Failure 404 {object} model.APIResponse[model.UserResponse]
// @Router /api/v1/user/{id} [get]
func (s *RestHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, found, err := s.UserApp.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		writeNotFound[model.UserResponse](w, userNotFound(id))
		return
	}

	writeJSON(w, http.StatusOK, model.SuccessResponse(user, "User retrieved successfully"))
}

// CreateUser handler
// @Summary Create user
// @Description Create a new user
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UserRequest true "User Request"
// @Success 201 {object} model.APIResponse[model.UserResponse]
// @Failure 400 {object} model.APIResponse[any]
// @Failure 401 {object} model.ProblemDetails
// @Router /api/v1/user [post]
func (s *RestHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	user, err := s.UserApp.CreateUser(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if location, err := s.router.Get(routeGetUserByID).URL("id", strconv.FormatInt(user.ID, 10)); err == nil {
		w.Header().Set("Location", location.String())
	} else {
		logger.Warn("err build location", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	writeJSON(w, http.StatusCreated, model.SuccessResponse(user, "User created successfully"))
}

// UpdateUser handler
// @Summary Update user
// @Description Replace the mutable fields of an existing user
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body model.UserRequest true "User Request"
// @Success 200 {object} model.APIResponse[model.UserResponse]
// @Failure 400 {object} model.APIResponse[any]
// @Failure 401 {object} model.ProblemDetails
// @Failure 404 {object} model.APIResponse[model.UserResponse]
// @Router /api/v1/user/{id} [put]
func (s *RestHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	user, err := s.UserApp.UpdateUser(r.Context(), id, req)
	if err != nil {
		if stderrors.Is(err, errors.SetCustomError(constant.ErrUserNotFound)) {
			writeNotFound[model.UserResponse](w, err.Error())
			return
		}
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SuccessResponse(user, "User updated successfully"))
}

// DeleteUser handler
// @Summary Delete user
// @Description Soft delete a user
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.APIResponse[bool]
// @Failure 400 {object} model.APIResponse[any]
// @Failure 401 {object} model.ProblemDetails
// @Failure 404 {object} model.APIResponse[bool]
// @Router /api/v1/user/{id} [delete]
func (s *RestHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	deleted, err := s.UserApp.DeleteUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !deleted {
		writeNotFound[bool](w, userNotFound(id))
		return
	}

	writeJSON(w, http.StatusOK, model.SuccessResponse(true, "User deleted successfully"))
}

// RevokeToken handler
// @Summary Revoke token
// @Description Revoke the bearer token used for this request
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.APIResponse[model.RevokeResponse]
// @Failure 400 {object} model.ProblemDetails
// @Failure 401 {object} model.ProblemDetails
// @Router /api/v1/auth/revoke [post]
func (s *RestHandler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	identity, ok := utilsContext.GetIdentity(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}

	if err := s.AuthApp.RevokeToken(r.Context(), identity); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SuccessResponse(model.RevokeResponse{Revoked: true}, "Token revoked successfully"))
}

// pathID parses the {id} route variable, answering 400 itself when it is not a number.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeValidationError(w, []string{"Invalid user id"})
		return 0, false
	}
	return id, true
}

func decodeUserRequest(w http.ResponseWriter, r *http.Request) (*model.UserRequest, bool) {
	var req model.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"Invalid request body"})
		return nil, false
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, validatorx.Messages(err))
		return nil, false
	}
	return &req, true
}

func userNotFound(id int64) string {
	return fmt.Sprintf("User with ID %d not found", id)
}
