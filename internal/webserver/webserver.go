package webserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lavendersgloss/glossd/config"
)

const dbContextKey = "glossd_db"

var server *WebServer

// WebServer wraps the echo instance with the application configuration and
// database handle that handlers pull from the request context.
type WebServer struct {
	root   *echo.Echo
	config *config.AppConfig
	db     *gorm.DB
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Init builds the global web server: session middleware backed by a
// gorilla cookie store, request logging, recovery and the DB injector.
func Init(cfg *config.AppConfig, db *gorm.DB) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)))
			return err
		}
	})
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Web.SessionSecret))))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(dbContextKey, db)
			return next(c)
		}
	})
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		message := "Internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			message = fmt.Sprintf("%v", he.Message)
		} else {
			zap.L().Error("unhandled request error",
				zap.String("path", c.Path()), zap.Error(err))
		}
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{
				"success": false,
				"error":   map[string]string{"code": "INTERNAL_ERROR", "message": message},
			})
		}
	}

	server = &WebServer{root: e, config: cfg, db: db}
	return server
}

// Instance returns the global web server.
func Instance() *WebServer {
	return server
}

// Echo exposes the underlying echo instance (used in handler tests).
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

// Listen starts serving on the configured host and port.
func (ws *WebServer) Listen() error {
	addr := fmt.Sprintf("%s:%d", ws.config.Web.Host, ws.config.Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	return ws.root.Start(addr)
}

// DB returns the request-scoped database handle.
func DB(c echo.Context) *gorm.DB {
	return c.Get(dbContextKey).(*gorm.DB)
}

// Route registration helpers mirroring the HTTP verbs.

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.PUT(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.DELETE(path, h, m...)
}

// Static serves the public asset tree (product images).
func Static(prefix, root string) {
	server.root.Static(prefix, root)
}
