package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/CWN221/Flask-To-Do-List/internal/auth"
	apperrors "github.com/CWN221/Flask-To-Do-List/internal/errors"
	"github.com/CWN221/Flask-To-Do-List/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a registration form submission.
type RegisterRequest struct {
	Username        string `form:"username" validate:"required,min=2,max=30"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginRequest represents a login form submission.
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// RegisterErrorResponse carries field-level validation errors keyed by form
// field name.
type RegisterErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "Username (2-30 chars)"
// @Param email formData string true "Email address"
// @Param password formData string true "Password (min 6 chars)"
// @Param confirm_password formData string true "Password confirmation"
// @Success 303 {string} string "redirects to /login"
// @Failure 400 {object} RegisterErrorResponse
// @Failure 409 {object} RegisterErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, RegisterErrorResponse{Errors: fieldErrors(err)})
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			return c.JSON(http.StatusConflict, RegisterErrorResponse{
				Errors: map[string]string{"username": "username already taken"},
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to register user",
			Code:  "REGISTRATION_FAILED",
		})
	}

	setFlash(c, flashSuccess, "Account created. Please log in.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// LoginForm godoc
// @Summary Fetch the login view state
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"flash": popFlash(c)})
}

// Login godoc
// @Summary Log in and establish a session
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email address"
// @Param password formData string true "Password"
// @Success 303 {string} string "redirects to /"
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	// Validation failures get the same generic message as bad credentials so
	// the response never hints which part was wrong.
	if err := c.Validate(&req); err != nil {
		return h.loginFailed(c)
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return h.loginFailed(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to login",
			Code:  "LOGIN_FAILED",
		})
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(auth.SessionExpiry),
	})

	setFlash(c, flashSuccess, "Logged in successfully.")
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout godoc
// @Summary End the current session
// @Tags auth
// @Success 303 {string} string "redirects to /login"
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		_ = h.authService.Logout(c.Request().Context(), cookie.Value)
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	setFlash(c, flashSuccess, "Logged out.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) loginFailed(c echo.Context) error {
	setFlash(c, flashError, "Invalid email or password.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// fieldErrors flattens validator errors into a form-field -> message map.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "invalid form data"
		return out
	}
	for _, fe := range verrs {
		out[formField(fe.Field())] = validationMessage(fe)
	}
	return out
}

func formField(name string) string {
	if name == "ConfirmPassword" {
		return "confirm_password"
	}
	return strings.ToLower(name)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "eqfield":
		return "passwords do not match"
	default:
		return "invalid value"
	}
}
