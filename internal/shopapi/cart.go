package shopapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lavendersgloss/glossd/internal/cart"
	"github.com/lavendersgloss/glossd/internal/domain"
	"github.com/lavendersgloss/glossd/internal/webserver"
)

// maxLineQuantity caps a single cart line; the storage layer itself stays
// unbounded.
const maxLineQuantity = 999

type cartPayload struct {
	ProductID int64 `json:"product_id" form:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" form:"quantity"`
}

func registerCartRoutes() {
	webserver.ApiGET("/cart", getCart, webserver.RequireUser)
	webserver.ApiPOST("/add-to-cart", addToCart, webserver.RequireUser)
	webserver.ApiPOST("/update-cart", updateCart, webserver.RequireUser)
}

func getCart(c echo.Context) error {
	user := webserver.CurrentUser(c)
	repo := cart.NewRepository(GetDB(c))
	lines, err := repo.List(c.Request().Context(), user.ID)
	if err != nil {
		zap.L().Error("failed to list cart", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query cart", nil)
	}
	return ok(c, map[string]interface{}{
		"items": lines,
		"total": cart.Total(lines),
	})
}

func addToCart(c echo.Context) error {
	user := webserver.CurrentUser(c)

	var payload cartPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	if payload.Quantity <= 0 || payload.Quantity > maxLineQuantity {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Quantity must be a positive integer", nil)
	}

	// The product must exist before a line can reference it.
	var product domain.Product
	if err := GetDB(c).Where("id = ?", payload.ProductID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}

	repo := cart.NewRepository(GetDB(c))
	if err := repo.AddOrIncrement(c.Request().Context(), user.ID, payload.ProductID, payload.Quantity); err != nil {
		zap.L().Error("failed to add to cart", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update cart", nil)
	}
	return ok(c, nil)
}

func updateCart(c echo.Context) error {
	user := webserver.CurrentUser(c)

	var payload cartPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	if payload.Quantity > maxLineQuantity {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Quantity is too large", nil)
	}

	repo := cart.NewRepository(GetDB(c))
	if err := repo.SetQuantity(c.Request().Context(), user.ID, payload.ProductID, payload.Quantity); err != nil {
		zap.L().Error("failed to update cart", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update cart", nil)
	}
	return ok(c, nil)
}
