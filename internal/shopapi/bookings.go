package shopapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lavendersgloss/glossd/internal/booking"
	"github.com/lavendersgloss/glossd/internal/catalog"
	"github.com/lavendersgloss/glossd/internal/webserver"
)

type bookingPayload struct {
	ServiceID int64  `json:"service_id" form:"service_id" validate:"required"`
	Date      string `json:"date" form:"date" validate:"required"`
	Time      string `json:"time" form:"time" validate:"required"`
	SkinType  string `json:"skin_type" form:"skin_type"`
	Notes     string `json:"notes" form:"notes"`
}

func registerBookingRoutes() {
	webserver.ApiGET("/book/:serviceId", bookingForm, webserver.RequireUser)
	webserver.ApiPOST("/book", createBooking, webserver.RequireUser)
	webserver.ApiGET("/recommendations/:bookingId", bookingRecommendations, webserver.RequireUser)
}

// bookingForm returns the service being booked, mirroring the booking page.
func bookingForm(c echo.Context) error {
	id, err := parseIDParam(c, "serviceId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	svc := catalog.ServiceByID(id)
	if svc == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	}
	return ok(c, svc)
}

func createBooking(c echo.Context) error {
	user := webserver.CurrentUser(c)

	var payload bookingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse booking", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Service, date and time are required", nil)
	}

	// Snapshot the service name and price from the catalog; the client is
	// never trusted with the price.
	svc := catalog.ServiceByID(payload.ServiceID)
	if svc == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	}

	mgr := booking.NewManager(GetDB(c))
	b, err := mgr.Create(c.Request().Context(), booking.CreateInput{
		UserID:          user.ID,
		ServiceName:     svc.Name,
		ServicePrice:    svc.Price,
		AppointmentDate: payload.Date,
		AppointmentTime: payload.Time,
		SkinType:        payload.SkinType,
		Notes:           payload.Notes,
	})
	if err != nil {
		zap.L().Error("failed to create booking", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create booking", nil)
	}
	return ok(c, b)
}

// bookingRecommendations returns the skin-type product suggestions shown
// after booking.
func bookingRecommendations(c echo.Context) error {
	user := webserver.CurrentUser(c)

	id, err := parseIDParam(c, "bookingId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}

	mgr := booking.NewManager(GetDB(c))
	b, err := mgr.ByIDForUser(c.Request().Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query booking", nil)
	}

	return ok(c, map[string]interface{}{
		"booking":         b,
		"recommendations": catalog.Recommendations(b.SkinType),
	})
}
