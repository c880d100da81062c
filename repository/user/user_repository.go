package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/muhammadheryan/sample-api/model"
	"github.com/muhammadheryan/sample-api/repository/dbhelper"
	"github.com/muhammadheryan/sample-api/utils/logger"
	"go.uber.org/zap"
)

type SQL struct {
	helper     dbhelper.Helper
	procedures dbhelper.ProcedureHelper
}

// UserRepository reads exclude soft-deleted rows. Get* report absence through
// the found flag, never through an error.
type UserRepository interface {
	GetAll(ctx context.Context) ([]model.UserEntity, error)
	GetByID(ctx context.Context, id int64) (*model.UserEntity, bool, error)
	GetByUsername(ctx context.Context, username string) (*model.UserEntity, bool, error)
	GetByEmail(ctx context.Context, email string) (*model.UserEntity, bool, error)
	Create(ctx context.Context, user *model.UserEntity) (*model.UserEntity, error)
	Update(ctx context.Context, user *model.UserEntity) (*model.UserEntity, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

func NewUserRepository(helper dbhelper.Helper, procedures dbhelper.ProcedureHelper) UserRepository {
	return &SQL{helper: helper, procedures: procedures}
}

const (
	ProcCreateUser = "sp_CreateUser"
	ProcUpdateUser = "sp_UpdateUser"
	ProcDeleteUser = "sp_DeleteUser"

	OutNewUserID = "NewUserId"

	selectUserBase = `SELECT id, username, email, full_name, phone_number, created_at, updated_at, last_login_at, is_active, is_deleted FROM users`

	getAllUsersQuery       = selectUserBase + ` WHERE is_deleted = 0 ORDER BY created_at DESC`
	getUserByIDQuery       = selectUserBase + ` WHERE id = :id AND is_deleted = 0`
	getUserByUsernameQuery = selectUserBase + ` WHERE username = :username AND is_deleted = 0`
	getUserByEmailQuery    = selectUserBase + ` WHERE email = :email AND is_deleted = 0`
	countUserByIDQuery     = `SELECT COUNT(1) FROM users WHERE id = :id AND is_deleted = 0`
)

type idParams struct {
	ID int64 `db:"id"`
}

type usernameParams struct {
	Username string `db:"username"`
}

type emailParams struct {
	Email string `db:"email"`
}

// createUserParams binds sp_CreateUser. NewUserID is filled from the
// procedure's output parameter.
type createUserParams struct {
	Username     string
	Email        string
	FullName     string
	PhoneNumber  *string
	PasswordHash string
	CreatedAt    time.Time
	IsActive     bool

	NewUserID sql.NullInt64
}

func (p *createUserParams) binding() dbhelper.Binding {
	return dbhelper.Binding{
		In:  []any{p.Username, p.Email, p.FullName, p.PhoneNumber, p.PasswordHash, p.CreatedAt, p.IsActive},
		Out: []dbhelper.Output{{Name: OutNewUserID, Dest: &p.NewUserID}},
	}
}

func (s *SQL) GetAll(ctx context.Context) ([]model.UserEntity, error) {
	users := make([]model.UserEntity, 0)
	if err := s.helper.Query(ctx, &users, getAllUsersQuery, nil, dbhelper.CommandText); err != nil {
		logger.Error("[GetAll] err helper.Query", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (s *SQL) GetByID(ctx context.Context, id int64) (*model.UserEntity, bool, error) {
	return s.getOne(ctx, "GetByID", getUserByIDQuery, idParams{ID: id}, zap.Int64("user_id", id))
}

func (s *SQL) GetByUsername(ctx context.Context, username string) (*model.UserEntity, bool, error) {
	return s.getOne(ctx, "GetByUsername", getUserByUsernameQuery, usernameParams{Username: username}, zap.String("username", username))
}

func (s *SQL) GetByEmail(ctx context.Context, email string) (*model.UserEntity, bool, error) {
	return s.getOne(ctx, "GetByEmail", getUserByEmailQuery, emailParams{Email: email}, zap.String("email", email))
}

func (s *SQL) getOne(ctx context.Context, op, query string, params any, key zap.Field) (*model.UserEntity, bool, error) {
	var entity model.UserEntity
	found, err := s.helper.QueryFirstOrDefault(ctx, &entity, query, params, dbhelper.CommandText)
	if err != nil {
		logger.Error("["+op+"] err helper.QueryFirstOrDefault", key, zap.Error(err))
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return &entity, true, nil
}

func (s *SQL) Create(ctx context.Context, user *model.UserEntity) (*model.UserEntity, error) {
	params := &createUserParams{
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		PhoneNumber:  user.PhoneNumber,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		IsActive:     user.IsActive,
	}

	if _, err := s.procedures.ExecuteProcedureWithOutput(ctx, ProcCreateUser, params.binding()); err != nil {
		logger.Error("[Create] err procedures.ExecuteProcedureWithOutput", zap.String("username", user.Username), zap.Error(err))
		return nil, err
	}

	user.ID = params.NewUserID.Int64
	logger.Info("[Create] user created", zap.Int64("user_id", user.ID))
	return user, nil
}

// Update replaces every mutable column. Existence is the caller's concern.
func (s *SQL) Update(ctx context.Context, user *model.UserEntity) (*model.UserEntity, error) {
	_, err := s.procedures.ExecuteProcedure(ctx, ProcUpdateUser,
		user.ID, user.Username, user.Email, user.FullName, user.PhoneNumber, user.IsActive)
	if err != nil {
		logger.Error("[Update] err procedures.ExecuteProcedure", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	logger.Info("[Update] user updated", zap.Int64("user_id", user.ID))
	return user, nil
}

func (s *SQL) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := s.procedures.ExecuteProcedure(ctx, ProcDeleteUser, id)
	if err != nil {
		logger.Error("[Delete] err procedures.ExecuteProcedure", zap.Int64("user_id", id), zap.Error(err))
		return false, err
	}

	deleted := affected > 0
	if deleted {
		logger.Info("[Delete] user deleted", zap.Int64("user_id", id))
	}
	return deleted, nil
}

func (s *SQL) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.helper.ExecuteScalar(ctx, &count, countUserByIDQuery, idParams{ID: id}, dbhelper.CommandText); err != nil {
		logger.Error("[Exists] err helper.ExecuteScalar", zap.Int64("user_id", id), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}
