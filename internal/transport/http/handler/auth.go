package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recordhub/internal/app"
	"recordhub/internal/model"
	"recordhub/internal/transport/http/middleware"
	"recordhub/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
	cookie      CookieConfig
	log         *zap.Logger
}

// CookieConfig controls the browser session cookie that carries the token.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=255"`
	Email    string `json:"email" form:"email" binding:"required,email,max=255"`
	Password string `json:"password" form:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// HomePath is where a browser lands after signing in.
const HomePath = "/chirps"

func NewAuthHandler(authService *app.AuthService, cookie CookieConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	html := middleware.WantsHTML(c)
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, html, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload", req.Email)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			h.fail(c, html, http.StatusBadRequest, response.CodeBadRequest, err.Error(), req.Email)
		case errors.Is(err, app.ErrEmailExists):
			h.fail(c, html, http.StatusBadRequest, response.CodeEmailExists, err.Error(), req.Email)
		default:
			h.log.Error("register failed", zap.Error(err))
			h.fail(c, html, http.StatusInternalServerError, response.CodeInternalServer, "register failed", req.Email)
		}
		return
	}
	h.signedIn(c, html, result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	html := middleware.WantsHTML(c)
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, html, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload", req.Email)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			h.fail(c, html, http.StatusBadRequest, response.CodeBadRequest, err.Error(), req.Email)
		case errors.Is(err, app.ErrInvalidCredential):
			h.fail(c, html, http.StatusUnauthorized, response.CodeInvalidCredentials, err.Error(), req.Email)
		default:
			h.log.Error("login failed", zap.Error(err))
			h.fail(c, html, http.StatusInternalServerError, response.CodeInternalServer, "login failed", req.Email)
		}
		return
	}
	h.signedIn(c, html, result)
}

// LoginPage shows the sign-in and registration forms, or the current user
// when the cookie is still valid.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", loginView(h.cookieUser(c), "", ""))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.log.Error("logout failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "logout failed")
		return
	}
	h.clearCookie(c)
	if middleware.WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		return
	}
	response.OK(c, nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("fetch current user failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch current user failed")
		return
	}
	if user == nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found")
		return
	}
	response.OK(c, userPayload(user))
}

// DeleteMe removes the caller's account and every chirp it wrote.
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), userID); err != nil {
		switch {
		case errors.Is(err, app.ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "user not found")
		default:
			h.log.Error("delete account failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete account failed")
		}
		return
	}
	if claims, ok := middleware.ClaimsFrom(c); ok {
		if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
			h.log.Warn("revoke token after account deletion failed", zap.Error(err))
		}
	}
	h.clearCookie(c)
	response.OK(c, gin.H{"id": userID})
}

func (h *AuthHandler) signedIn(c *gin.Context, html bool, result *app.AuthResult) {
	h.setCookie(c, result.Token)
	if html {
		c.Redirect(http.StatusSeeOther, HomePath)
		return
	}
	response.OK(c, gin.H{
		"token": result.Token,
		"user":  userPayload(result.User),
	})
}

func (h *AuthHandler) fail(c *gin.Context, html bool, status, code int, message, email string) {
	if html {
		c.HTML(status, "login.tmpl", loginView(nil, message, email))
		return
	}
	response.Error(c, status, code, message)
}

// cookieUser resolves the cookie token for pages outside the auth
// middleware. Any problem means "not signed in".
func (h *AuthHandler) cookieUser(c *gin.Context) *model.User {
	raw, err := c.Cookie(h.cookie.Name)
	if err != nil || raw == "" {
		return nil
	}
	claims, err := h.authService.ParseToken(c.Request.Context(), raw)
	if err != nil {
		return nil
	}
	user, err := h.authService.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil
	}
	return user
}

func (h *AuthHandler) setCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}

func loginView(user *model.User, errMsg, email string) gin.H {
	return gin.H{"User": user, "Error": errMsg, "Email": email}
}

func userPayload(user *model.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}
}
