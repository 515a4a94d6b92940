package weblog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) handleLoginPage(c echo.Context) error {
	if IsAuthenticated(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.Login(a.Config.SignupEnabled, "", CsrfToken(c)))
}

func (a *App) handleLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}

	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")

	user, err := a.Store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.loginLimiter.Record(c.RealIP())
			return Render(c, a.Views.Login(a.Config.SignupEnabled, "Invalid email or password", CsrfToken(c)))
		}
		return err
	}
	if !user.CheckPassword(password) {
		a.loginLimiter.Record(c.RealIP())
		return Render(c, a.Views.Login(a.Config.SignupEnabled, "Invalid email or password", CsrfToken(c)))
	}

	if err := setUserSession(c, user.ID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleSignup(c echo.Context) error {
	if !a.Config.SignupEnabled {
		return c.NoContent(http.StatusNotFound)
	}

	email := c.FormValue("email")
	fullName := strings.TrimSpace(c.FormValue("full_name"))
	password := c.FormValue("password")

	user, err := a.Store.CreateUser(email, fullName, password)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return Render(c, a.Views.Login(true, "An account with that email already exists", CsrfToken(c)))
		}
		if IsValidation(err) {
			return Render(c, a.Views.Login(true, err.Error(), CsrfToken(c)))
		}
		return err
	}

	if err := setUserSession(c, user.ID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func handleLogout(c echo.Context) error {
	if err := clearUserSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// requireAuth guards the admin group. Unauthenticated requests are sent to
// the login page.
func (a *App) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAuthenticated(c) {
			return c.Redirect(http.StatusSeeOther, "/login/")
		}
		return next(c)
	}
}
