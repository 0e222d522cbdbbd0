package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"inkwell/internal/service"
)

// PostHandler handles the blog CRUD routes. Create and edit each serve
// both methods on one path: GET renders the form, POST applies the
// mutation.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRequest represents the add/edit post form.
type PostRequest struct {
	Title   string `form:"title" validate:"required"`
	Content string `form:"content" validate:"required"`
}

// List renders the index with all posts.
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "index.html", page(c, echo.Map{"Posts": posts}))
}

// Detail renders a single post, 404 when absent.
func (h *PostHandler) Detail(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "post_detail.html", page(c, echo.Map{"Post": post}))
}

// AddForm renders the empty post form.
func (h *PostHandler) AddForm(c echo.Context) error {
	return c.Render(http.StatusOK, "post_form.html", page(c, echo.Map{
		"Heading": "New post",
		"Action":  "/add",
	}))
}

// Add creates a post, storing the optional image first.
func (h *PostHandler) Add(c echo.Context) error {
	req, image, err := bindPostForm(c)
	if err != nil {
		return err
	}
	if _, err := h.postService.Create(c.Request().Context(), req.Title, req.Content, image); err != nil {
		return err
	}
	setFlash(c, "post created")
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditForm renders the form pre-filled with the existing post.
func (h *PostHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "post_form.html", page(c, echo.Map{
		"Heading": "Edit post",
		"Action":  fmt.Sprintf("/edit/%d", post.ID),
		"Post":    post,
	}))
}

// Edit replaces title and content; an empty file input preserves the
// stored image.
func (h *PostHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, image, err := bindPostForm(c)
	if err != nil {
		return err
	}
	if _, err := h.postService.Update(c.Request().Context(), id, req.Title, req.Content, image); err != nil {
		return err
	}
	setFlash(c, "post updated")
	return c.Redirect(http.StatusSeeOther, "/")
}

// Delete removes a post.
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.postService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	setFlash(c, "post deleted")
	return c.Redirect(http.StatusSeeOther, "/")
}

func bindPostForm(c echo.Context) (*PostRequest, *multipart.FileHeader, error) {
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&req); err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	image, err := c.FormFile("image")
	if err != nil {
		// Missing file means "no image", not an error.
		image = nil
	}
	return &req, image, nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
