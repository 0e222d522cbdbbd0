package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
)

// ContextKey is where the middleware stores the loaded snapshot on the
// echo context.
const ContextKey = "session"

// Manager ties the cookie token to the server-side snapshot store.
type Manager struct {
	store  Store
	signer *TokenSigner
	ttl    time.Duration
}

// NewManager creates a session manager.
func NewManager(store Store, signer *TokenSigner) *Manager {
	return &Manager{store: store, signer: signer, ttl: TTL}
}

// Login creates a fresh session for user and sets the cookie, overwriting
// any prior session on the client.
func (m *Manager) Login(c echo.Context, user *model.User) error {
	sessionID := uuid.NewString()
	data := &Data{
		UserID:     user.ID,
		Username:   user.Username,
		FullName:   user.FullName,
		AvatarPath: user.AvatarPath,
	}
	ctx := c.Request().Context()
	if err := m.store.Save(ctx, sessionID, data, m.ttl); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	token, err := m.signer.Mint(sessionID, m.ttl)
	if err != nil {
		return fmt.Errorf("mint session token: %w", err)
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Logout removes the server-side snapshot and expires the cookie. It is a
// no-op for requests without a valid session.
func (m *Manager) Logout(c echo.Context) {
	if sessionID, err := m.sessionID(c); err == nil {
		_ = m.store.Delete(c.Request().Context(), sessionID)
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Current returns the session snapshot for the request, or
// ErrUnauthenticated when no valid session exists.
func (m *Manager) Current(c echo.Context) (*Data, error) {
	sessionID, err := m.sessionID(c)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}
	data, err := m.store.Get(c.Request().Context(), sessionID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return data, nil
}

// Refresh rewrites the stored snapshot for the current session. Used after
// a profile edit so the avatar shown in the navbar stays in sync.
func (m *Manager) Refresh(c echo.Context, data *Data) error {
	sessionID, err := m.sessionID(c)
	if err != nil {
		return apperrors.ErrUnauthenticated
	}
	return m.store.Save(c.Request().Context(), sessionID, data, m.ttl)
}

// Middleware loads the snapshot for gated routes and redirects to the
// login view before any handler logic runs when the session is missing.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data, err := m.Current(c)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			c.Set(ContextKey, data)
			return next(c)
		}
	}
}

// FromContext returns the snapshot stored by Middleware, or nil on
// ungated routes.
func FromContext(c echo.Context) *Data {
	data, _ := c.Get(ContextKey).(*Data)
	return data
}

func (m *Manager) sessionID(c echo.Context) (string, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", apperrors.ErrUnauthenticated
	}
	return m.signer.Parse(cookie.Value)
}
