package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/internal/service"
	"github.com/playmaker86/activity-booking/pkg/errors"
	"github.com/playmaker86/activity-booking/pkg/logger"
)

// Service implements the AuthService interface: WeChat code exchange on the
// way in, HS256 session tokens afterwards.
type Service struct {
	secret      []byte
	expiry      time.Duration
	wechat      service.WeChatService
	userService *service.UserService
	logger      *logger.Logger
}

// sessionClaims are the registered+custom claims carried by session tokens
type sessionClaims struct {
	UserID int64  `json:"user_id"`
	OpenID string `json:"openid"`
	jwt.RegisteredClaims
}

// NewService creates a new auth service
func NewService(secret string, expiry time.Duration, wechat service.WeChatService, userService *service.UserService, logger *logger.Logger) service.AuthService {
	return &Service{
		secret:      []byte(secret),
		expiry:      expiry,
		wechat:      wechat,
		userService: userService,
		logger:      logger,
	}
}

// Login exchanges a WeChat login code for a session token, creating the user
// on first login. The openid never leaves the backend except inside the
// signed token.
func (s *Service) Login(ctx context.Context, code string) (*domain.TokenResponse, error) {
	session, err := s.wechat.CodeToSession(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.userService.FindOrCreateByOpenID(ctx, session)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve user for WeChat session")
		return nil, errors.NewInternalError("login failed", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.WithError(err).Error("failed to sign session token")
		return nil, errors.NewInternalError("login failed", err)
	}

	s.logger.WithField("user_id", user.ID).Info("user logged in")

	return &domain.TokenResponse{Token: token}, nil
}

// ValidateToken validates a session token and returns its claims
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*domain.AuthClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAuthenticationError("invalid or expired token")
	}
	if claims.UserID <= 0 {
		return nil, errors.NewAuthenticationError("token carries no user identity")
	}

	return &domain.AuthClaims{
		UserID: claims.UserID,
		OpenID: claims.OpenID,
	}, nil
}

func (s *Service) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		UserID: user.ID,
		OpenID: user.OpenID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
