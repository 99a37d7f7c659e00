package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lavendersgloss/glossd/internal/booking"
	"github.com/lavendersgloss/glossd/internal/domain"
	"github.com/lavendersgloss/glossd/internal/webserver"
)

func registerAdminRoutes() {
	webserver.ApiGET("/admin", adminDashboard, webserver.RequireAdmin)
	webserver.ApiPOST("/admin/approve-booking/:id", approveBooking, webserver.RequireAdmin)
	webserver.ApiPOST("/admin/reject-booking/:id", rejectBooking, webserver.RequireAdmin)
	webserver.ApiGET("/admin/orders", listOrders, webserver.RequireAdmin)
}

// listOrders returns the paginated order history with buyer names.
func listOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)

	base := GetDB(c).Model(&domain.Order{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}

	var rows []domain.OrderWithUser
	if err := base.
		Select("orders.*, users.name AS user_name").
		Joins("JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Scan(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}
	return paged(c, rows, total, page, pageSize)
}

// adminDashboard bundles bookings, products and orders the way the
// dashboard page consumes them.
func adminDashboard(c echo.Context) error {
	db := GetDB(c)

	mgr := booking.NewManager(db)
	bookings, err := mgr.ListWithUsers(c.Request().Context())
	if err != nil {
		zap.L().Error("failed to query bookings", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bookings", nil)
	}

	var products []domain.Product
	if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}

	var orders []domain.OrderWithUser
	if err := db.Model(&domain.Order{}).
		Select("orders.*, users.name AS user_name").
		Joins("JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC").
		Scan(&orders).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}

	return ok(c, map[string]interface{}{
		"bookings": bookings,
		"products": products,
		"orders":   orders,
	})
}

func approveBooking(c echo.Context) error {
	return setBookingStatus(c, domain.BookingApproved)
}

func rejectBooking(c echo.Context) error {
	return setBookingStatus(c, domain.BookingRejected)
}

func setBookingStatus(c echo.Context, status string) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}

	mgr := booking.NewManager(GetDB(c))
	if err := mgr.SetWorkflowStatus(c.Request().Context(), id, status); err != nil {
		if err == booking.ErrNotFound {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found", nil)
		}
		zap.L().Error("failed to update booking status", zap.Int64("id", id), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update booking", nil)
	}
	return ok(c, map[string]interface{}{"id": id, "status": status})
}
