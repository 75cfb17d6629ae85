package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/CWN221/Flask-To-Do-List/internal/auth"
	"github.com/CWN221/Flask-To-Do-List/internal/config"
	"github.com/CWN221/Flask-To-Do-List/internal/handler"
	"github.com/CWN221/Flask-To-Do-List/internal/service"
)

// Register wires routes and middleware. With auth disabled the task routes
// are served openly and no auth routes are mounted.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	taskHandler *handler.TaskHandler,
	authHandler *handler.AuthHandler,
	authService service.AuthService,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if !cfg.AuthEnabled {
		registerTaskRoutes(e.Group(""), taskHandler)
		return
	}

	// Public routes
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)

	// Gated routes: a missing, invalid or revoked session cookie redirects
	// to the login view instead of answering 401.
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.SessionSecret),
		TokenLookup: "cookie:" + auth.SessionCookieName,
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusFound, "/login")
		},
	}), sessionGuard(authService))

	secured.GET("/logout", authHandler.Logout)
	registerTaskRoutes(secured, taskHandler)
}

func registerTaskRoutes(g *echo.Group, h *handler.TaskHandler) {
	g.GET("/", h.List)
	g.POST("/", h.Create)
	g.GET("/delete/:id", h.Delete)
	g.GET("/complete/:id", h.ToggleComplete)
	g.GET("/edit/:id", h.EditForm)
	g.POST("/edit/:id", h.Edit)
}

// sessionGuard rejects revoked sessions and exposes the signed-in identity
// to downstream handlers.
func sessionGuard(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(auth.SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}

			claims, err := authService.Authenticate(c.Request().Context(), cookie.Value)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set("session_user", claims)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator used by all handlers.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
