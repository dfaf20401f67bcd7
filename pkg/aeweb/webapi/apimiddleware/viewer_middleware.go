// Package apimiddleware resolves the requesting viewer. Requests can
// authenticate with an API token header or basic auth; everything else is
// served as anonymous. Authentication never fails a request here, it only
// decides how much the viewer is allowed to see.
package apimiddleware

import (
	"net/http"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/visibility"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// TokenHeader carries the API token of an editorial account.
const TokenHeader = "X-API-Token"

type GetUserByAPITokenFN func(token string) (*aemodel.User, error)
type GetUserByEmailFN func(email string) (*aemodel.User, error)

type ViewerConfig struct {
	GetUserByAPIToken GetUserByAPITokenFN
	GetUserByEmail    GetUserByEmailFN
}

// ResolveViewer stores the authenticated user and the derived viewer on
// the request context. Bad credentials are rejected; absent credentials
// resolve to the anonymous viewer.
func ResolveViewer(config ViewerConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := resolveUser(config, c)
			if err != nil {
				return echo.ErrUnauthorized
			}

			if user != nil {
				c.Set("User", *user)
				if user.IsStaff {
					c.Set("Viewer", visibility.StaffViewer)
					return next(c)
				}
			}

			c.Set("Viewer", visibility.Anonymous)
			return next(c)
		}
	}
}

func resolveUser(config ViewerConfig, c echo.Context) (*aemodel.User, error) {
	if token := c.Request().Header.Get(TokenHeader); token != "" {
		return config.GetUserByAPIToken(token)
	}

	email, password, ok := c.Request().BasicAuth()
	if !ok {
		return nil, nil
	}

	user, err := config.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, err
	}

	return user, nil
}

// GetViewer returns the viewer resolved for the request, anonymous when
// the middleware did not run.
func GetViewer(c echo.Context) visibility.Viewer {
	if v, ok := c.Get("Viewer").(visibility.Viewer); ok {
		return v
	}
	return visibility.Anonymous
}

// GetUser returns the authenticated user, or nil for anonymous requests.
func GetUser(c echo.Context) *aemodel.User {
	if u, ok := c.Get("User").(aemodel.User); ok {
		return &u
	}
	return nil
}

// RequireStaff rejects requests whose resolved user is not staff.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := GetUser(c)
		if user == nil {
			return echo.ErrUnauthorized
		}
		if !user.IsStaff {
			return echo.NewHTTPError(http.StatusForbidden, "staff only")
		}
		return next(c)
	}
}
