package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"eduxchange/internal/domain/account"
	"eduxchange/internal/domain/profile"
	domain "eduxchange/internal/domain/resource"
	jwtSvc "eduxchange/internal/infrastructure/jwt"
)

const (
	testSecret = "test-secret"
	testCookie = "edx_session"
)

// jwtVerifier checks signatures only; revocation is covered by the service tests.
type jwtVerifier struct{}

func (jwtVerifier) Authenticate(_ context.Context, token string) (*jwtSvc.Claims, error) {
	return jwtSvc.New(testSecret).ValidateToken(token)
}

type FakeAuthService struct {
	jwtVerifier
	SignUpFunc  func(ctx context.Context, email, password, fullName string) (*account.Account, error)
	SignInFunc  func(ctx context.Context, email, password string) (string, error)
	SignOutFunc func(ctx context.Context, claims *jwtSvc.Claims) error
}

func (f *FakeAuthService) SignUp(ctx context.Context, email, password, fullName string) (*account.Account, error) {
	if f.SignUpFunc == nil {
		return nil, errors.New("not used")
	}
	return f.SignUpFunc(ctx, email, password, fullName)
}
func (f *FakeAuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	if f.SignInFunc == nil {
		return "", errors.New("not used")
	}
	return f.SignInFunc(ctx, email, password)
}
func (f *FakeAuthService) SignOut(ctx context.Context, claims *jwtSvc.Claims) error {
	if f.SignOutFunc == nil {
		return errors.New("not used")
	}
	return f.SignOutFunc(ctx, claims)
}

type FakeProfileService struct {
	FindSummaryFunc func(ctx context.Context, id profile.ID) (*profile.Summary, error)
}

func (f *FakeProfileService) FindSummary(ctx context.Context, id profile.ID) (*profile.Summary, error) {
	if f.FindSummaryFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindSummaryFunc(ctx, id)
}

type FakeResourceService struct {
	CreateResourceFunc    func(ctx context.Context, userID uuid.UUID, in domain.Resource, file *multipart.FileHeader) (*domain.Resource, error)
	UpdateResourceFunc    func(ctx context.Context, userID uuid.UUID, id domain.ID, edit domain.Edit) (*domain.Resource, error)
	FindUserResourcesFunc func(ctx context.Context, userID uuid.UUID, typ *domain.Type) (domain.Resources, error)
	ViewResourceFunc      func(ctx context.Context, id domain.ID, viewer uuid.UUID) (*domain.Resource, error)
	DownloadResourceFunc  func(ctx context.Context, id domain.ID, viewer uuid.UUID) (string, error)
	DeleteResourceFunc    func(ctx context.Context, userID uuid.UUID, id domain.ID) error
}

func (f *FakeResourceService) CreateResource(ctx context.Context, userID uuid.UUID, in domain.Resource, file *multipart.FileHeader) (*domain.Resource, error) {
	if f.CreateResourceFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateResourceFunc(ctx, userID, in, file)
}
func (f *FakeResourceService) UpdateResource(ctx context.Context, userID uuid.UUID, id domain.ID, edit domain.Edit) (*domain.Resource, error) {
	if f.UpdateResourceFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateResourceFunc(ctx, userID, id, edit)
}
func (f *FakeResourceService) FindUserResources(ctx context.Context, userID uuid.UUID, typ *domain.Type) (domain.Resources, error) {
	if f.FindUserResourcesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUserResourcesFunc(ctx, userID, typ)
}
func (f *FakeResourceService) ViewResource(ctx context.Context, id domain.ID, viewer uuid.UUID) (*domain.Resource, error) {
	if f.ViewResourceFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ViewResourceFunc(ctx, id, viewer)
}
func (f *FakeResourceService) DownloadResource(ctx context.Context, id domain.ID, viewer uuid.UUID) (string, error) {
	if f.DownloadResourceFunc == nil {
		return "", errors.New("not used")
	}
	return f.DownloadResourceFunc(ctx, id, viewer)
}
func (f *FakeResourceService) DeleteResource(ctx context.Context, userID uuid.UUID, id domain.ID) error {
	if f.DeleteResourceFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteResourceFunc(ctx, userID, id)
}

func SignJWT(secret, userID, email string, exp time.Duration) (string, error) {
	claims := jwtSvc.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(exp)),
		},
	}
	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func bearer(t *testing.T, secret string, userID uuid.UUID) map[string]string {
	t.Helper()
	tok, err := SignJWT(secret, userID.String(), "ada@uni.test", time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type formFile struct {
	name    string
	content []byte
}

func doMultipartReq(t *testing.T, r *gin.Engine, path string, fields map[string][]string, file *formFile, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for k, vs := range fields {
		for _, v := range vs {
			require.NoError(t, w.WriteField(k, v))
		}
	}

	if file != nil {
		fw, err := w.CreateFormFile("file", file.name)
		require.NoError(t, err)
		_, _ = fw.Write(file.content)
	}

	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, path, &b)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) (string, map[string]any) {
	t.Helper()
	var resp struct {
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error, resp.Details
}
