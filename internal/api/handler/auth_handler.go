package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/core/ports"
)

type AuthHandler struct {
	session ports.SessionService
}

func NewAuthHandler(session ports.SessionService) *AuthHandler {
	return &AuthHandler{session: session}
}

type loginForm struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type registerForm struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" validate:"max=100"`
}

type authPageView struct {
	View     string `json:"view"`
	Login    string `json:"login"`
	Register string `json:"register"`
}

// Page renders the sign-in view for anonymous users.
//
// @Summary      Sign-in view
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authPageView
// @Success      302  "Already signed in, redirected to /dashboard"
// @Router       /auth [get]
func (h *AuthHandler) Page(c echo.Context) error {
	return c.JSON(http.StatusOK, authPageView{
		View:     "auth",
		Login:    "/auth/login",
		Register: "/auth/register",
	})
}

// Login signs the shell in and continues to the landing route.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginForm  true  "Credentials"
// @Success      303   "Signed in, redirected to /dashboard"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	res := h.session.Login(c.Request().Context(), form.Email, form.Password)
	if !res.Success {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": res.Error})
	}
	return c.Redirect(http.StatusSeeOther, domain.LandingRoute)
}

// Register creates an account, signs it in and continues to the landing route.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerForm  true  "Account details"
// @Success      303   "Registered, redirected to /dashboard"
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	res := h.session.Register(c.Request().Context(), form.Email, form.Password, form.FullName)
	if !res.Success {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": res.Error})
	}
	return c.Redirect(http.StatusSeeOther, domain.LandingRoute)
}

// Logout ends the session and returns to the sign-in view.
//
// @Summary      Sign out
// @Tags         auth
// @Success      303  "Signed out, redirected to /auth"
// @Failure      500  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.session.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, domain.LoginRoute)
}
