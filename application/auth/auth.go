package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muhammadheryan/sample-api/cmd/config"
	"github.com/muhammadheryan/sample-api/constant"
	"github.com/muhammadheryan/sample-api/model"
	redisrepo "github.com/muhammadheryan/sample-api/repository/redis"
	cerr "github.com/muhammadheryan/sample-api/utils/errors"
	"github.com/muhammadheryan/sample-api/utils/logger"
	"go.uber.org/zap"
)

const DefaultRole = "User"

var (
	ErrTokenRevoked    = errors.New("token has been revoked")
	ErrMissingJTI      = errors.New("token missing jti")
	ErrEmptySigningKey = errors.New("jwt signing key is not configured")
)

type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*model.Identity, error)
	RevokeToken(ctx context.Context, identity *model.Identity) error
	IssueToken(subject, name, role string) (string, error)
}

// Claims are the registered claims plus the caller's display name and role.
type Claims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type AuthAppImpl struct {
	config    *config.Config
	redisRepo redisrepo.Repository
}

// NewAuthApp builds the token validator. redisRepo may be nil, which disables
// the revocation check. An empty signing key is refused.
func NewAuthApp(config *config.Config, redisRepo redisrepo.Repository) (TokenValidator, error) {
	if config == nil || config.Auth.JWTSecret == "" {
		return nil, ErrEmptySigningKey
	}
	return &AuthAppImpl{
		config:    config,
		redisRepo: redisRepo,
	}, nil
}

func (s *AuthAppImpl) ValidateToken(ctx context.Context, tokenString string) (*model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if s.config.Auth.JWTSecret == "" {
			return nil, ErrEmptySigningKey
		}
		return []byte(s.config.Auth.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.config.Auth.Issuer),
		jwt.WithAudience(s.config.Auth.Audience),
		jwt.WithLeeway(s.config.Auth.Leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}

	if claims.ID == "" {
		return nil, ErrMissingJTI
	}

	if s.redisRepo != nil {
		revoked, err := s.redisRepo.IsRevoked(ctx, claims.ID)
		if err != nil {
			logger.Error("[ValidateToken] err redisRepo.IsRevoked", zap.String("jti", claims.ID), zap.String("error", err.Error()))
			return nil, fmt.Errorf("revocation check failed: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	identity := &model.Identity{
		Subject: claims.Subject,
		Name:    claims.Name,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// RevokeToken blacklists the identity's token for the rest of its lifetime.
func (s *AuthAppImpl) RevokeToken(ctx context.Context, identity *model.Identity) error {
	if s.redisRepo == nil {
		return cerr.SetCustomErrorMessage(constant.ErrInvalidOperation, "token revocation is not configured")
	}

	ttl := time.Until(identity.ExpiresAt) + s.config.Auth.Leeway
	if err := s.redisRepo.RevokeToken(ctx, identity.TokenID, ttl); err != nil {
		logger.Error("[RevokeToken] err redisRepo.RevokeToken", zap.String("jti", identity.TokenID), zap.String("error", err.Error()))
		return err
	}

	logger.Info("[RevokeToken] token revoked", zap.String("subject", identity.Subject), zap.String("jti", identity.TokenID))
	return nil
}

// IssueToken signs a token accepted by ValidateToken.
func (s *AuthAppImpl) IssueToken(subject, name, role string) (string, error) {
	if s.config.Auth.JWTSecret == "" {
		return "", ErrEmptySigningKey
	}
	if role == "" {
		role = DefaultRole
	}

	now := time.Now()
	claims := Claims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.config.Auth.Issuer,
			Audience:  jwt.ClaimStrings{s.config.Auth.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Auth.JWTExpiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
