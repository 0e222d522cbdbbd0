package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/session"
)

// Register wires the blog routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *session.Manager,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	profileHandler *handler.ProfileHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Validator = &CustomValidator{validator: validator.New()}

	e.Static("/uploads", cfg.UploadDir)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Public routes
	e.GET("/post/:id", postHandler.Detail)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// Gated routes: echo-jwt validates the cookie signature, then the
	// session middleware loads the server-side snapshot. Either failure
	// redirects to the login view before any mutation runs.
	gated := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.SessionSecret),
		TokenLookup: "cookie:" + session.CookieName,
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusSeeOther, "/login")
		},
	}), sessions.Middleware())

	gated.GET("/", postHandler.List)
	gated.GET("/add", postHandler.AddForm)
	gated.POST("/add", postHandler.Add)
	gated.GET("/edit/:id", postHandler.EditForm)
	gated.POST("/edit/:id", postHandler.Edit)
	gated.POST("/delete/:id", postHandler.Delete)

	gated.GET("/profile", profileHandler.Show)
	gated.GET("/edit_profile", profileHandler.EditForm)
	gated.POST("/edit_profile", profileHandler.Edit)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
