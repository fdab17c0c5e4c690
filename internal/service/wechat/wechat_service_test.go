package wechat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/playmaker86/activity-booking/pkg/errors"
	"github.com/playmaker86/activity-booking/pkg/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func TestCodeToSession(t *testing.T) {
	ctx := context.Background()

	t.Run("successful exchange", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/sns/jscode2session", r.URL.Path)
			q := r.URL.Query()
			gotQuery = map[string]string{
				"appid":      q.Get("appid"),
				"secret":     q.Get("secret"),
				"js_code":    q.Get("js_code"),
				"grant_type": q.Get("grant_type"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"openid":"oX7f-abc123","session_key":"sk","unionid":"uN9q-xyz"}`))
		}))
		defer server.Close()

		svc := NewServiceWithBaseURL("wx-app-id", "wx-secret", server.URL, testLogger())

		session, err := svc.CodeToSession(ctx, "061xYz000abc")
		require.NoError(t, err)
		assert.Equal(t, "oX7f-abc123", session.OpenID)
		assert.Equal(t, "uN9q-xyz", session.UnionID)

		assert.Equal(t, map[string]string{
			"appid":      "wx-app-id",
			"secret":     "wx-secret",
			"js_code":    "061xYz000abc",
			"grant_type": "authorization_code",
		}, gotQuery)
	})

	t.Run("errcode in 200 body is a rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"errcode":40029,"errmsg":"invalid code"}`))
		}))
		defer server.Close()

		svc := NewServiceWithBaseURL("wx-app-id", "wx-secret", server.URL, testLogger())

		_, err := svc.CodeToSession(ctx, "bad-code")
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeAuthentication, appErr.Type)
	})

	t.Run("empty openid is a rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		svc := NewServiceWithBaseURL("wx-app-id", "wx-secret", server.URL, testLogger())

		_, err := svc.CodeToSession(ctx, "some-code")
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeAuthentication, appErr.Type)
	})

	t.Run("non-200 response is an external error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		svc := NewServiceWithBaseURL("wx-app-id", "wx-secret", server.URL, testLogger())

		_, err := svc.CodeToSession(ctx, "some-code")
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeExternal, appErr.Type)
	})

	t.Run("empty code never leaves the process", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		svc := NewServiceWithBaseURL("wx-app-id", "wx-secret", server.URL, testLogger())

		_, err := svc.CodeToSession(ctx, "")
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		assert.False(t, called)
	})
}
