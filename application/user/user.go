package user

import (
	"context"
	"fmt"
	"time"

	"github.com/muhammadheryan/sample-api/constant"
	"github.com/muhammadheryan/sample-api/model"
	userrepo "github.com/muhammadheryan/sample-api/repository/user"
	"github.com/muhammadheryan/sample-api/thirdparty/rabbitmq"
	utilsContext "github.com/muhammadheryan/sample-api/utils/context"
	"github.com/muhammadheryan/sample-api/utils/errors"
	"github.com/muhammadheryan/sample-api/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserApp interface {
	GetAllUsers(ctx context.Context) ([]*model.UserResponse, error)
	GetUserByID(ctx context.Context, id int64) (*model.UserResponse, bool, error)
	CreateUser(ctx context.Context, req *model.UserRequest) (*model.UserResponse, error)
	UpdateUser(ctx context.Context, id int64, req *model.UserRequest) (*model.UserResponse, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

type UserAppImpl struct {
	userRepo  userrepo.UserRepository
	publisher rabbitmq.EventPublisher
}

// NewUserApp builds the user service. publisher may be nil, in which case no
// lifecycle events are emitted.
func NewUserApp(userRepo userrepo.UserRepository, publisher rabbitmq.EventPublisher) UserApp {
	return &UserAppImpl{
		userRepo:  userRepo,
		publisher: publisher,
	}
}

func (s *UserAppImpl) GetAllUsers(ctx context.Context) ([]*model.UserResponse, error) {
	logger.Info("[GetAllUsers] getting all users")

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		logger.Error("[GetAllUsers] err userRepo.GetAll", zap.String("error", err.Error()))
		return nil, err
	}

	res := make([]*model.UserResponse, 0, len(users))
	for i := range users {
		res = append(res, model.NewUserResponse(&users[i]))
	}
	return res, nil
}

func (s *UserAppImpl) GetUserByID(ctx context.Context, id int64) (*model.UserResponse, bool, error) {
	logger.Info("[GetUserByID] getting user", zap.Int64("user_id", id))

	user, found, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetUserByID] err userRepo.GetByID", zap.Int64("user_id", id), zap.String("error", err.Error()))
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return model.NewUserResponse(user), true, nil
}

func (s *UserAppImpl) CreateUser(ctx context.Context, req *model.UserRequest) (*model.UserResponse, error) {
	logger.Info("[CreateUser] creating user", zap.String("username", req.Username))

	userEntity := &model.UserEntity{
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		IsActive:    true,
	}

	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("[CreateUser] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
			return nil, err
		}
		userEntity.PasswordHash = string(hashedPassword)
	}

	created, err := s.userRepo.Create(ctx, userEntity)
	if err != nil {
		logger.Error("[CreateUser] err userRepo.Create", zap.String("username", req.Username), zap.String("error", err.Error()))
		return nil, err
	}

	logger.Info("[CreateUser] user created successfully", zap.Int64("user_id", created.ID))
	s.publish(ctx, constant.EventUserCreated, created)
	return model.NewUserResponse(created), nil
}

func (s *UserAppImpl) UpdateUser(ctx context.Context, id int64, req *model.UserRequest) (*model.UserResponse, error) {
	logger.Info("[UpdateUser] updating user", zap.Int64("user_id", id))

	existing, found, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[UpdateUser] err userRepo.GetByID", zap.Int64("user_id", id), zap.String("error", err.Error()))
		return nil, err
	}
	if !found {
		return nil, errors.SetCustomErrorMessage(constant.ErrUserNotFound, fmt.Sprintf("User with ID %d not found", id))
	}

	now := time.Now().UTC()
	existing.Username = req.Username
	existing.Email = req.Email
	existing.FullName = req.FullName
	existing.PhoneNumber = req.PhoneNumber
	existing.UpdatedAt = &now

	updated, err := s.userRepo.Update(ctx, existing)
	if err != nil {
		logger.Error("[UpdateUser] err userRepo.Update", zap.Int64("user_id", id), zap.String("error", err.Error()))
		return nil, err
	}

	logger.Info("[UpdateUser] user updated successfully", zap.Int64("user_id", id))
	s.publish(ctx, constant.EventUserUpdated, updated)
	return model.NewUserResponse(updated), nil
}

func (s *UserAppImpl) DeleteUser(ctx context.Context, id int64) (bool, error) {
	logger.Info("[DeleteUser] deleting user", zap.Int64("user_id", id))

	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("[DeleteUser] err userRepo.Delete", zap.Int64("user_id", id), zap.String("error", err.Error()))
		return false, err
	}

	if !deleted {
		logger.Warn("[DeleteUser] user not found for deletion", zap.Int64("user_id", id))
		return false, nil
	}

	logger.Info("[DeleteUser] user deleted successfully", zap.Int64("user_id", id))
	s.publish(ctx, constant.EventUserDeleted, &model.UserEntity{ID: id})
	return true, nil
}

// publish never fails the operation that triggered it.
func (s *UserAppImpl) publish(ctx context.Context, event string, user *model.UserEntity) {
	if s.publisher == nil {
		return
	}

	msg := rabbitmq.UserEventMessage{
		Event:      event,
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
		TraceID:    utilsContext.GetTraceID(ctx),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishUserEvent(ctx, msg); err != nil {
		logger.Error("[publish] err publisher.PublishUserEvent",
			zap.String("event", event), zap.Int64("user_id", user.ID), zap.String("error", err.Error()))
	}
}
