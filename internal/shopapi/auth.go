package shopapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lavendersgloss/glossd/internal/domain"
	"github.com/lavendersgloss/glossd/internal/webserver"
	"github.com/lavendersgloss/glossd/pkg/common"
)

type registerPayload struct {
	Name     string `json:"name" form:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	Phone    string `json:"phone" form:"phone"`
}

type loginPayload struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func registerAuthRoutes() {
	webserver.ApiPOST("/register", registerUser)
	webserver.ApiPOST("/login", login)
	webserver.ApiGET("/logout", logout)
	webserver.ApiGET("/session", currentSession)
}

func registerUser(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name, email and password are required", nil)
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	hash, err := common.HashPassword(payload.Password)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process registration", nil)
	}

	now := time.Now()
	user := domain.User{
		ID:        common.UUIDint64(),
		Name:      strings.TrimSpace(payload.Name),
		Email:     email,
		Password:  hash,
		Phone:     strings.TrimSpace(payload.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return fail(c, http.StatusConflict, "DUPLICATE_EMAIL", "Email already exists", nil)
		}
		zap.L().Error("failed to create user", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create account", nil)
	}
	return ok(c, map[string]interface{}{"id": user.ID})
}

// isUniqueViolation matches driver-specific unique constraint errors that
// gorm does not translate on every dialect.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required", nil)
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	var user domain.User
	err := GetDB(c).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !common.CheckPassword(user.Password, payload.Password)) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
	}
	if err != nil {
		zap.L().Error("failed to query user", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to process login", nil)
	}

	if err := webserver.SetLoginSession(c, &user); err != nil {
		zap.L().Error("failed to save session", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create session", nil)
	}
	return ok(c, map[string]interface{}{
		"id":       user.ID,
		"name":     user.Name,
		"is_admin": user.IsAdmin,
	})
}

func logout(c echo.Context) error {
	if err := webserver.ClearSession(c); err != nil {
		zap.L().Warn("failed to clear session", zap.Error(err))
	}
	return ok(c, nil)
}

func currentSession(c echo.Context) error {
	user := webserver.CurrentUser(c)
	if user == nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Login required", nil)
	}
	return ok(c, user)
}
