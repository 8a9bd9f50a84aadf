package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"eduxchange/internal/infrastructure/jwt"
	"eduxchange/internal/infrastructure/metrics"
)

type fakeVerifier struct {
	svc     *jwt.Service
	revoked map[string]bool
}

func (f *fakeVerifier) Authenticate(_ context.Context, token string) (*jwt.Claims, error) {
	claims, err := f.svc.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if f.revoked[claims.ID] {
		return nil, errors.New("revoked")
	}
	return claims, nil
}

func setup(t *testing.T) (*gin.Engine, *fakeVerifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := &fakeVerifier{svc: jwt.New("test-secret"), revoked: map[string]bool{}}
	r := gin.New()
	r.GET("/private", AuthMiddleware(v, "edx_session"), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c).String())
	})
	r.GET("/public", OptionalAuth(v, "edx_session"), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c).String())
	})
	return r, v
}

func TestAuthMiddleware(t *testing.T) {
	r, v := setup(t)
	uid := uuid.New()
	token, err := v.svc.GenerateJWT(uid.String(), "ada@uni.test", time.Hour)
	require.NoError(t, err)
	other, err := jwt.New("other").GenerateJWT(uid.String(), "ada@uni.test", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"missing Authorization header"}`},
		{name: "bad format", header: "Token abc", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"invalid token format"}`},
		{name: "bad signature", header: "Bearer " + other, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"invalid token"}`},
		{name: "bearer", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: uid.String()},
		{name: "cookie", cookie: token, wantStatus: http.StatusOK, wantBody: uid.String()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "edx_session", Value: tt.cookie})
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			} else {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_Revoked(t *testing.T) {
	r, v := setup(t)
	token, err := v.svc.GenerateJWT(uuid.NewString(), "ada@uni.test", time.Hour)
	require.NoError(t, err)
	claims, err := v.svc.ValidateToken(token)
	require.NoError(t, err)
	v.revoked[claims.ID] = true

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestOptionalAuth(t *testing.T) {
	r, v := setup(t)
	uid := uuid.New()
	token, err := v.svc.GenerateJWT(uid.String(), "ada@uni.test", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "anonymous", want: uuid.Nil.String()},
		{name: "garbage token", header: "Bearer nope", want: uuid.Nil.String()},
		{name: "valid", header: "Bearer " + token, want: uid.String()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/public", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.want, rr.Body.String())
		})
	}
}

func TestMaskSecrets(t *testing.T) {
	in := `{"email":"a@b.test","password":"p\"ss word","full_name":"Ada"}`
	assert.Equal(t, `{"email":"a@b.test","password":"***","full_name":"Ada"}`, maskSecrets(in))
	assert.Equal(t, `{"title":"x"}`, maskSecrets(`{"title":"x"}`))
}

func TestRequestLogGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	counter := metrics.NewUnregistered()

	r := gin.New()
	r.Use(RequestLogGin(zap.New(core), counter))
	var seen []byte
	r.POST("/login", func(c *gin.Context) {
		seen, _ = io.ReadAll(c.Request.Body)
		c.Status(http.StatusNoContent)
	})

	body := `{"email":"a@b.test","password":"hunter22"}` + string(bytes.Repeat([]byte(" "), maxLogBodySize))
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, body, string(seen), "handler must see the full body")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "HTTP request", entry.Message)
	assert.NotContains(t, entry.ContextMap()["body"], "hunter22")
	assert.Equal(t, int64(http.StatusNoContent), entry.ContextMap()["status"])
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues(metrics.AppRequests)))
}

func TestCORS_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://app.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://app.test", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}
