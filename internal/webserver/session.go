package webserver

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/lavendersgloss/glossd/internal/domain"
)

const (
	sessionName      = "glossd_session"
	sessionKeyUserID = "uid"
	sessionKeyName   = "name"
	sessionKeyAdmin  = "is_admin"
)

// SessionUser is the identity attached to a request by the session gate.
type SessionUser struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// SetLoginSession writes the user identity into the session cookie.
func SetLoginSession(c echo.Context, user *domain.User) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Options.Path = "/"
	sess.Options.HttpOnly = true
	sess.Options.MaxAge = 86400 * 7
	sess.Values[sessionKeyUserID] = user.ID
	sess.Values[sessionKeyName] = user.Name
	sess.Values[sessionKeyAdmin] = user.IsAdmin
	return sess.Save(c.Request(), c.Response())
}

// ClearSession destroys the caller's session.
func ClearSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	sess.Values = map[interface{}]interface{}{}
	return sess.Save(c.Request(), c.Response())
}

// CurrentUser resolves the caller's identity from the session, or nil for
// anonymous requests.
func CurrentUser(c echo.Context) *SessionUser {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil
	}
	uid, ok := sess.Values[sessionKeyUserID].(int64)
	if !ok || uid == 0 {
		return nil
	}
	name, _ := sess.Values[sessionKeyName].(string)
	isAdmin, _ := sess.Values[sessionKeyAdmin].(bool)
	return &SessionUser{ID: uid, Name: name, IsAdmin: isAdmin}
}

// RequireUser short-circuits anonymous requests with a 401 envelope.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"error":   map[string]string{"code": "UNAUTHORIZED", "message": "Login required"},
			})
		}
		return next(c)
	}
}

// RequireAdmin short-circuits non-admin callers with a 403 envelope.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"error":   map[string]string{"code": "UNAUTHORIZED", "message": "Login required"},
			})
		}
		if !user.IsAdmin {
			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"success": false,
				"error":   map[string]string{"code": "FORBIDDEN", "message": "Admin access required"},
			})
		}
		return next(c)
	}
}
