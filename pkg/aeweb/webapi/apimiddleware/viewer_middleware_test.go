package apimiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/aedb/stor"
	"github.com/astroedu/astroedu/pkg/visibility"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewerFixture(t *testing.T) (ViewerConfig, *aemodel.User) {
	userStor := stor.NewInMemoryUserStor(nil)
	staff, err := userStor.CreateUser(&aemodel.User{Email: "editor@astroedu.test", Password: "s3cret", IsStaff: true})
	require.NoError(t, err)

	return ViewerConfig{
		GetUserByAPIToken: userStor.GetUserByAPIToken,
		GetUserByEmail:    userStor.GetUserByEmail,
	}, staff
}

func runResolveViewer(config ViewerConfig, decorate func(*http.Request)) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/activities/", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := ResolveViewer(config)(func(c echo.Context) error { return nil })
	return c, handler(c)
}

func TestResolveViewer(t *testing.T) {
	t.Run("NoCredentialsIsAnonymous", func(t *testing.T) {
		config, _ := newViewerFixture(t)

		c, err := runResolveViewer(config, nil)
		require.NoError(t, err)
		assert.Equal(t, visibility.Anonymous, GetViewer(c))
		assert.Nil(t, GetUser(c))
	})

	t.Run("APITokenResolvesStaff", func(t *testing.T) {
		config, staff := newViewerFixture(t)

		c, err := runResolveViewer(config, func(req *http.Request) {
			req.Header.Set(TokenHeader, staff.APIToken)
		})
		require.NoError(t, err)
		assert.Equal(t, visibility.StaffViewer, GetViewer(c))
		require.NotNil(t, GetUser(c))
		assert.Equal(t, staff.Email, GetUser(c).Email)
	})

	t.Run("BadTokenIsUnauthorized", func(t *testing.T) {
		config, _ := newViewerFixture(t)

		_, err := runResolveViewer(config, func(req *http.Request) {
			req.Header.Set(TokenHeader, "no-such-token")
		})
		assert.ErrorIs(t, err, echo.ErrUnauthorized)
	})

	t.Run("BasicAuthResolvesStaff", func(t *testing.T) {
		config, staff := newViewerFixture(t)

		c, err := runResolveViewer(config, func(req *http.Request) {
			req.SetBasicAuth(staff.Email, "s3cret")
		})
		require.NoError(t, err)
		assert.Equal(t, visibility.StaffViewer, GetViewer(c))
	})

	t.Run("WrongPasswordIsUnauthorized", func(t *testing.T) {
		config, staff := newViewerFixture(t)

		_, err := runResolveViewer(config, func(req *http.Request) {
			req.SetBasicAuth(staff.Email, "wrong")
		})
		assert.ErrorIs(t, err, echo.ErrUnauthorized)
	})
}

func TestRequireStaff(t *testing.T) {
	handler := RequireStaff(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	newCtx := func() echo.Context {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/uploader/", nil)
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("AnonymousIsUnauthorized", func(t *testing.T) {
		assert.ErrorIs(t, handler(newCtx()), echo.ErrUnauthorized)
	})

	t.Run("NonStaffIsForbidden", func(t *testing.T) {
		c := newCtx()
		c.Set("User", aemodel.User{Email: "reader@astroedu.test"})

		err := handler(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("StaffPasses", func(t *testing.T) {
		c := newCtx()
		c.Set("User", aemodel.User{Email: "editor@astroedu.test", IsStaff: true})

		assert.NoError(t, handler(c))
	})
}
