package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eduxchange/internal/application/ports"
	"eduxchange/internal/application/services"
	accountDB "eduxchange/internal/infrastructure/db/postgres/account"
	"eduxchange/internal/interface/api/rest/dto/auth"
	"eduxchange/internal/interface/api/rest/dto/profile"
	"eduxchange/internal/interface/api/rest/middleware"
	"eduxchange/internal/interface/api/rest/validator"
)

// SessionCookie describes the cookie that mirrors the bearer token for
// browser clients.
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthController struct {
	logger         *zap.Logger
	authService    ports.Auth
	profileService ports.ProfileService
	cookie         SessionCookie
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.Auth,
	profileService ports.ProfileService,
	cookie SessionCookie,
) *AuthController {
	ac := &AuthController{
		logger:         logger,
		authService:    authService,
		profileService: profileService,
		cookie:         cookie,
	}

	auth := middleware.AuthMiddleware(authService, cookie.Name)

	r.POST(RouteSignUp, ac.SignUpHandler)
	r.POST(RouteLogin, ac.LoginHandler)
	r.POST(RouteLogout, auth, ac.LogoutHandler)
	r.GET(RouteMe, auth, ac.MeHandler)

	return ac
}

func (ac *AuthController) SignUpHandler(c *gin.Context) {
	var req auth.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateSignUp(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	a, err := ac.authService.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, accountDB.ErrEmailAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create account"},
		)
		ac.logger.Error("SignUp() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, auth.Account{ID: a.ID, Email: a.Email})
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	token, err := ac.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to login"},
		)
		ac.logger.Error("SignIn() error", zap.Error(err))
		return
	}

	ac.setSessionCookie(c, token, int(ac.cookie.TTL.Seconds()))

	c.JSON(http.StatusOK, auth.Token{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ac.cookie.TTL.Seconds()),
	})
}

func (ac *AuthController) LogoutHandler(c *gin.Context) {
	if err := ac.authService.SignOut(c.Request.Context(), middleware.Claims(c)); err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to logout"},
		)
		ac.logger.Error("SignOut() error", zap.Error(err))
		return
	}

	ac.setSessionCookie(c, "", -1)

	c.Status(http.StatusNoContent)
}

func (ac *AuthController) MeHandler(c *gin.Context) {
	s, err := ac.profileService.FindSummary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get profile"},
		)
		ac.logger.Error("FindSummary() error", zap.Error(err))
		return
	}
	if s == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "account not found"},
		)
		return
	}

	c.JSON(http.StatusOK, profile.ToResponseMe(*s))
}

func (ac *AuthController) setSessionCookie(c *gin.Context, value string, maxAge int) {
	if ac.cookie.Name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.cookie.Name, value, maxAge, "/", "", ac.cookie.Secure, true)
}
