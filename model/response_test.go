package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/muhammadheryan/sample-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessResponse(t *testing.T) {
	res := model.SuccessResponse(true, "")
	assert.True(t, res.Success)
	assert.Equal(t, "Success", res.Message)
	require.NotNil(t, res.Data)
	assert.True(t, *res.Data)
	assert.Nil(t, res.Errors)
	assert.WithinDuration(t, time.Now().UTC(), res.Timestamp, time.Second)
}

func TestErrorResponse_JSONShape(t *testing.T) {
	res := model.ErrorResponse[model.UserResponse]("Validation failed", []string{"Username is required"})

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, false, m["success"])
	assert.Equal(t, "Validation failed", m["message"])
	assert.Equal(t, []any{"Username is required"}, m["errors"])
	assert.NotContains(t, m, "data")
	assert.Contains(t, m, "timestamp")
}

func TestNewUserResponse_HidesSecrets(t *testing.T) {
	phone := "+1 555 0100"
	entity := &model.UserEntity{
		ID:           3,
		Username:     "abc",
		Email:        "a@b.com",
		FullName:     "A B",
		PhoneNumber:  &phone,
		PasswordHash: "$2a$10$secret",
		IsActive:     true,
		IsDeleted:    true,
	}

	raw, err := json.Marshal(model.NewUserResponse(entity))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "isDeleted")
	assert.NotContains(t, string(raw), "password")
	assert.Contains(t, string(raw), `"fullName":"A B"`)
	assert.Contains(t, string(raw), `"phoneNumber":"+1 555 0100"`)
}
