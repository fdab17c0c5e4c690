package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/internal/service"
	"github.com/playmaker86/activity-booking/pkg/errors"
	"github.com/playmaker86/activity-booking/pkg/logger"
)

// DefaultBaseURL is WeChat's api host
const DefaultBaseURL = "https://api.weixin.qq.com"

// Service implements the WeChatService interface against the mini-program
// jscode2session endpoint
type Service struct {
	appID      string
	secret     string
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewService creates a new WeChat identity adapter
func NewService(appID, secret string, logger *logger.Logger) service.WeChatService {
	return &Service{
		appID:   appID,
		secret:  secret,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// NewServiceWithBaseURL creates an adapter pointed at a custom host. Used by
// tests to stand in a local server for api.weixin.qq.com.
func NewServiceWithBaseURL(appID, secret, baseURL string, logger *logger.Logger) service.WeChatService {
	svc := NewService(appID, secret, logger).(*Service)
	svc.baseURL = baseURL
	return svc
}

// sessionResponse is the jscode2session wire format. WeChat returns 200 for
// failures too, signalled by a non-zero errcode.
type sessionResponse struct {
	OpenID     string `json:"openid"`
	SessionKey string `json:"session_key"`
	UnionID    string `json:"unionid"`
	ErrCode    int    `json:"errcode"`
	ErrMsg     string `json:"errmsg"`
}

// CodeToSession exchanges a mini-program login code for a stable openid
func (s *Service) CodeToSession(ctx context.Context, code string) (*domain.WxSession, error) {
	if code == "" {
		return nil, errors.NewValidationError("login code is required", nil)
	}

	params := url.Values{}
	params.Set("appid", s.appID)
	params.Set("secret", s.secret)
	params.Set("js_code", code)
	params.Set("grant_type", "authorization_code")

	endpoint := fmt.Sprintf("%s/sns/jscode2session?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewInternalError("failed to build WeChat request", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("WeChat code exchange request failed")
		return nil, errors.NewExternalError("failed to reach WeChat", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.WithField("status_code", resp.StatusCode).Error("WeChat code exchange returned non-200")
		return nil, errors.NewExternalError("WeChat login failed", fmt.Errorf("status %d", resp.StatusCode))
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, errors.NewExternalError("failed to decode WeChat response", err)
	}

	if session.ErrCode != 0 || session.OpenID == "" {
		s.logger.WithFields(map[string]interface{}{
			"errcode": session.ErrCode,
			"errmsg":  session.ErrMsg,
		}).Warn("WeChat rejected login code")
		return nil, errors.NewAuthenticationError("WeChat login failed, please retry")
	}

	return &domain.WxSession{
		OpenID:  session.OpenID,
		UnionID: session.UnionID,
	}, nil
}
