package shopapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lavendersgloss/glossd/internal/booking"
	"github.com/lavendersgloss/glossd/internal/cart"
	"github.com/lavendersgloss/glossd/internal/checkout"
	"github.com/lavendersgloss/glossd/internal/webserver"
)

type paymentPayload struct {
	Type      string `json:"type" form:"type" validate:"required,oneof=service cart"`
	BookingID int64  `json:"booking_id" form:"booking_id"`
	Phone     string `json:"phone" form:"phone"`
}

func registerPaymentRoutes() {
	webserver.ApiGET("/payment/service/:bookingId", servicePaymentPage, webserver.RequireUser)
	webserver.ApiGET("/payment/cart", cartPaymentPage, webserver.RequireUser)
	webserver.ApiPOST("/process-payment", processPayment, webserver.RequireUser)
}

// servicePaymentPage returns the booking the customer is about to pay for.
func servicePaymentPage(c echo.Context) error {
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
	return ok(c, map[string]interface{}{"type": "service", "item": b, "total": b.ServicePrice})
}

// cartPaymentPage returns the cart at current prices for the payment page.
func cartPaymentPage(c echo.Context) error {
	user := webserver.CurrentUser(c)

	repo := cart.NewRepository(GetDB(c))
	lines, err := repo.List(c.Request().Context(), user.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query cart", nil)
	}
	return ok(c, map[string]interface{}{"type": "cart", "items": lines, "total": cart.Total(lines)})
}

// processPayment runs one of the two checkout paths. The "payment" itself
// is a local status transition; no gateway is involved.
func processPayment(c echo.Context) error {
	user := webserver.CurrentUser(c)

	var payload paymentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse payment", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Payment type must be 'service' or 'cart'", nil)
	}

	svc := checkout.NewService(GetDB(c))

	if payload.Type == "service" {
		if payload.BookingID == 0 {
			return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Booking ID is required", nil)
		}
		receipt, err := svc.FinalizeServicePayment(c.Request().Context(), payload.BookingID, user.ID)
		if err != nil {
			if errors.Is(err, checkout.ErrNotFound) {
				return fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found", nil)
			}
			zap.L().Error("service payment failed", zap.Error(err))
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to process payment", nil)
		}
		return ok(c, map[string]interface{}{
			"type":  "service",
			"item":  receipt.Booking,
			"total": receipt.Total,
		})
	}

	receipt, err := svc.FinalizeCartPayment(c.Request().Context(), user.ID)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			return fail(c, http.StatusBadRequest, "EMPTY_CART", "Your cart is empty", nil)
		}
		if ise, isStock := checkout.AsInsufficientStock(err); isStock {
			return fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", "Not enough stock for one of the items",
				map[string]interface{}{
					"product_id": ise.ProductID,
					"requested":  ise.Requested,
					"available":  ise.Available,
				})
		}
		zap.L().Error("cart checkout failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to process payment", nil)
	}
	return ok(c, map[string]interface{}{
		"type":     "cart",
		"order_id": receipt.OrderID,
		"items":    receipt.Items,
		"total":    receipt.Total,
	})
}
