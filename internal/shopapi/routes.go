package shopapi

import (
	"path/filepath"

	"github.com/lavendersgloss/glossd/config"
	"github.com/lavendersgloss/glossd/internal/webserver"
)

// AppContext is the slice of the application container the handlers need.
type AppContext interface {
	Config() *config.AppConfig
	GetSettingsStringValue(category, key string) string
}

var app AppContext

// RegisterRoutes wires every shop endpoint onto the web server.
func RegisterRoutes(actx AppContext) {
	app = actx

	registerCatalogRoutes()
	registerAuthRoutes()
	registerCartRoutes()
	registerBookingRoutes()
	registerPaymentRoutes()
	registerContactRoutes()
	registerAdminRoutes()
	registerProductRoutes()

	webserver.Static("/images", filepath.Join(actx.Config().System.Workdir, "public/images"))
}
