package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inkwell/internal/service"
	"inkwell/internal/session"
)

// ProfileHandler handles the current user's profile routes.
type ProfileHandler struct {
	profileService service.ProfileService
	sessions       *session.Manager
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService, sessions *session.Manager) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, sessions: sessions}
}

// ProfileRequest represents the profile edit form.
type ProfileRequest struct {
	FullName string `form:"full_name" validate:"max=255"`
	Email    string `form:"email" validate:"omitempty,email"`
}

// Show renders the current user's profile.
func (h *ProfileHandler) Show(c echo.Context) error {
	sess := session.FromContext(c)
	user, err := h.profileService.Get(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "profile.html", page(c, echo.Map{"User": user}))
}

// EditForm renders the profile form pre-filled with the stored fields.
func (h *ProfileHandler) EditForm(c echo.Context) error {
	sess := session.FromContext(c)
	user, err := h.profileService.Get(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "profile_form.html", page(c, echo.Map{"User": user}))
}

// Edit updates the profile. A new avatar re-syncs the session snapshot so
// the navbar picks it up immediately; other fields stay session-stale
// until the next login.
func (h *ProfileHandler) Edit(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&req); err != nil {
		setFlash(c, "please check the form values")
		return c.Redirect(http.StatusSeeOther, "/edit_profile")
	}
	avatar, err := c.FormFile("avatar")
	if err != nil {
		avatar = nil
	}

	sess := session.FromContext(c)
	user, err := h.profileService.Update(c.Request().Context(), sess.UserID, req.FullName, req.Email, avatar)
	if err != nil {
		return err
	}

	if user.AvatarPath != sess.AvatarPath {
		updated := *sess
		updated.AvatarPath = user.AvatarPath
		if err := h.sessions.Refresh(c, &updated); err != nil {
			return err
		}
	}

	setFlash(c, "profile updated")
	return c.Redirect(http.StatusSeeOther, "/profile")
}
