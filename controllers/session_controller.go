package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/phanto-shop/storefront/models"
	"github.com/phanto-shop/storefront/pkg/apperrors"
	"github.com/phanto-shop/storefront/pkg/logger"
	"github.com/phanto-shop/storefront/session"
)

// SessionAPI is the slice of the session store the controller needs.
type SessionAPI interface {
	Login(ctx context.Context, email, password string) (session.Result, error)
	Register(ctx context.Context, displayName, email, password string) (session.Result, error)
	Logout(ctx context.Context) error
	Current() *models.User
	IsAuthenticated() bool
}

type SessionController struct {
	store SessionAPI
}

func NewSessionController(store SessionAPI) *SessionController {
	return &SessionController{store: store}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	DisplayName     string `json:"display_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

// Login handles POST /api/auth/login.
func (sc *SessionController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": validationDetails(err)})
		return
	}

	result, err := sc.store.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn(c, "Login rejected", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Register handles POST /api/auth/register.
func (sc *SessionController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": validationDetails(err)})
		return
	}

	result, err := sc.store.Register(c.Request.Context(), req.DisplayName, req.Email, req.Password)
	if err != nil {
		logger.Error(c, "Registration failed", err, zap.String("email", req.Email))
		c.Error(apperrors.New(http.StatusInternalServerError, "registration failed", err))
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Logout handles POST /api/auth/logout. Idempotent.
func (sc *SessionController) Logout(c *gin.Context) {
	if err := sc.store.Logout(c.Request.Context()); err != nil {
		logger.Error(c, "Logout failed", err)
		c.Error(apperrors.New(http.StatusInternalServerError, "logout failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me handles GET /api/auth/me.
func (sc *SessionController) Me(c *gin.Context) {
	user := sc.store.Current()
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": user})
}

// validationDetails flattens validator errors into field→message pairs so the
// form can report them inline.
func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			details[fe.Field()] = "is required"
		case "email":
			details[fe.Field()] = "must be a valid email"
		case "min":
			details[fe.Field()] = "must be at least " + fe.Param() + " characters"
		case "eqfield":
			details[fe.Field()] = "does not match " + fe.Param()
		default:
			details[fe.Field()] = "is invalid"
		}
	}
	return details
}
