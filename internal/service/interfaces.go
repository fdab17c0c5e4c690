package service

import (
	"context"

	"github.com/playmaker86/activity-booking/internal/domain"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Login exchanges a WeChat login code for a session token, creating the
	// user on first login
	Login(ctx context.Context, code string) (*domain.TokenResponse, error)

	// ValidateToken validates a session token and returns its claims
	ValidateToken(ctx context.Context, token string) (*domain.AuthClaims, error)
}

// WeChatService defines the identity-provider adapter. The rest of the
// system only ever sees the stable openid it returns.
type WeChatService interface {
	// CodeToSession exchanges a mini-program login code for a WeChat session
	CodeToSession(ctx context.Context, code string) (*domain.WxSession, error)
}

// Services aggregates the externally-wired services for the container
type Services struct {
	Auth   AuthService
	WeChat WeChatService
}
