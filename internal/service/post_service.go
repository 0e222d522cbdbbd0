package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"inkwell/internal/cache"
	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
	"inkwell/internal/upload"
)

const postCacheTTL = 5 * time.Minute

// PostService exposes blog post operations.
type PostService interface {
	List(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	Create(ctx context.Context, title, content string, image *multipart.FileHeader) (*model.Post, error)
	Update(ctx context.Context, id uint, title, content string, image *multipart.FileHeader) (*model.Post, error)
	Delete(ctx context.Context, id uint) error
}

type postService struct {
	posts   repository.PostRepository
	uploads *upload.Saver
	cache   *cache.Client
}

// NewPostService builds a PostService with repository, upload saver and cache.
func NewPostService(posts repository.PostRepository, uploads *upload.Saver, cache *cache.Client) PostService {
	return &postService{posts: posts, uploads: uploads, cache: cache}
}

func (s *postService) cacheKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	return s.posts.List(ctx)
}

func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	if payload, err := json.Marshal(post); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, postCacheTTL)
	}
	return post, nil
}

// Create stores the image before the row so a failed upload never leaves a
// post behind without its image.
func (s *postService) Create(ctx context.Context, title, content string, image *multipart.FileHeader) (*model.Post, error) {
	imagePath, err := s.uploads.Store(image)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:     title,
		Content:   content,
		ImagePath: imagePath,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Update replaces title and content. An edit without a new image keeps the
// previously stored path; there is no way to remove an image.
func (s *postService) Update(ctx context.Context, id uint, title, content string, image *multipart.FileHeader) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	imagePath, err := s.uploads.Store(image)
	if err != nil {
		return nil, err
	}
	if imagePath != "" {
		post.ImagePath = imagePath
	}
	post.Title = title
	post.Content = content

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id uint) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("find post: %w", err)
	}
	if err := s.posts.Delete(ctx, post); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
