package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lavendersgloss/glossd/internal/catalog"
	"github.com/lavendersgloss/glossd/internal/domain"
	"github.com/lavendersgloss/glossd/internal/webserver"
)

func registerCatalogRoutes() {
	webserver.ApiGET("/", homeProducts)
	webserver.ApiGET("/shop", shopProducts)
	webserver.ApiGET("/services", listServices)
	webserver.ApiGET("/services/:slug", serviceDetail)
}

// homeProducts returns the six newest in-stock products for the home page.
func homeProducts(c echo.Context) error {
	var products []domain.Product
	if err := GetDB(c).
		Where("stock > 0").
		Order("created_at DESC").
		Limit(6).
		Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	return ok(c, products)
}

// shopProducts returns every in-stock product, newest first.
func shopProducts(c echo.Context) error {
	var products []domain.Product
	if err := GetDB(c).
		Where("stock > 0").
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	return ok(c, products)
}

func listServices(c echo.Context) error {
	return ok(c, catalog.Services())
}

func serviceDetail(c echo.Context) error {
	svc := catalog.ServiceBySlug(c.Param("slug"))
	if svc == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	}
	return ok(c, svc)
}
