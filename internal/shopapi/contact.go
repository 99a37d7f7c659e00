package shopapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lavendersgloss/glossd/internal/domain"
	"github.com/lavendersgloss/glossd/internal/webserver"
)

type contactPayload struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Phone     string `json:"phone" form:"phone"`
	Subject   string `json:"subject" form:"subject"`
	Message   string `json:"message" form:"message" validate:"required"`
}

func registerContactRoutes() {
	webserver.ApiPOST("/contact", createContactMessage)
}

func createContactMessage(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse message", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name, email and message are required", nil)
	}

	msg := domain.ContactMessage{
		FirstName: strings.TrimSpace(payload.FirstName),
		LastName:  strings.TrimSpace(payload.LastName),
		Email:     strings.TrimSpace(payload.Email),
		Phone:     strings.TrimSpace(payload.Phone),
		Subject:   strings.TrimSpace(payload.Subject),
		Message:   payload.Message,
		CreatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&msg).Error; err != nil {
		zap.L().Error("failed to save contact message", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to send message. Please try again.", nil)
	}
	return ok(c, map[string]interface{}{"id": msg.ID})
}
