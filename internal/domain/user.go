package domain

import (
	"time"
)

// User represents an authenticated WeChat user
type User struct {
	ID        int64     `json:"id"`
	OpenID    string    `json:"openid"`
	UnionID   *string   `json:"unionid,omitempty"`
	Nickname  *string   `json:"nickname,omitempty"`
	Avatar    *string   `json:"avatar,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Gender    int       `json:"gender"` // 0 unknown, 1 male, 2 female
	Country   *string   `json:"country,omitempty"`
	Province  *string   `json:"province,omitempty"`
	City      *string   `json:"city,omitempty"`
	Language  *string   `json:"language,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateUserRequest carries a sparse profile update. Only fields present in
// the request body are applied; nil means "leave unchanged".
type UpdateUserRequest struct {
	Nickname *string `json:"nickname,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Gender   *int    `json:"gender,omitempty"`
	Country  *string `json:"country,omitempty"`
	Province *string `json:"province,omitempty"`
	City     *string `json:"city,omitempty"`
	Language *string `json:"language,omitempty"`
}

// AuthClaims represents the identity carried by a session token
type AuthClaims struct {
	UserID int64  `json:"user_id"`
	OpenID string `json:"openid"`
}

// WxLoginRequest represents a WeChat mini-program login request
type WxLoginRequest struct {
	Code string `json:"code"`
}

// TokenResponse is returned after a successful login
type TokenResponse struct {
	Token string `json:"token"`
}

// WxSession is the result of exchanging a login code with WeChat
type WxSession struct {
	OpenID  string `json:"openid"`
	UnionID string `json:"unionid,omitempty"`
}
