package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/upload"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) List(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["image"][0]
}

func TestPostService_GetNotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewPostService(mockRepo, upload.NewSaver(t.TempDir()), nil)
	post, err := svc.Get(context.Background(), 42)

	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	assert.Nil(t, post)
	mockRepo.AssertExpectations(t)
}

func TestPostService_CreateWithoutImage(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

	svc := NewPostService(mockRepo, upload.NewSaver(t.TempDir()), nil)
	post, err := svc.Create(context.Background(), "T", "C", nil)

	assert.NoError(t, err)
	assert.Equal(t, "T", post.Title)
	assert.Equal(t, "C", post.Content)
	assert.Empty(t, post.ImagePath)
	mockRepo.AssertExpectations(t)
}

func TestPostService_CreateWithImage(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

	svc := NewPostService(mockRepo, upload.NewSaver(t.TempDir()), nil)
	post, err := svc.Create(context.Background(), "T", "C", uploadHeader(t, "pic.png", []byte("png")))

	assert.NoError(t, err)
	assert.Equal(t, "pic.png", post.ImagePath)
	mockRepo.AssertExpectations(t)
}

func TestPostService_CreateUploadFailureWritesNoRow(t *testing.T) {
	mockRepo := new(MockPostRepository)

	// Saver pointed at a missing directory: the upload fails before the
	// store write, so no row may be created.
	saver := upload.NewSaver(filepath.Join(t.TempDir(), "missing"))
	svc := NewPostService(mockRepo, saver, nil)

	post, err := svc.Create(context.Background(), "T", "C", uploadHeader(t, "pic.png", []byte("png")))

	assert.ErrorIs(t, err, apperrors.ErrStorageWrite)
	assert.Nil(t, post)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPostService_UpdatePreservesImageWithoutNewFile(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Post{
		ID:        1,
		Title:     "old title",
		Content:   "old content",
		ImagePath: "existing.png",
	}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
		return p.ImagePath == "existing.png" && p.Title == "new title" && p.Content == "new content"
	})).Return(nil)

	svc := NewPostService(mockRepo, upload.NewSaver(t.TempDir()), nil)
	post, err := svc.Update(context.Background(), 1, "new title", "new content", nil)

	assert.NoError(t, err)
	assert.Equal(t, "existing.png", post.ImagePath)
	mockRepo.AssertExpectations(t)
}

func TestPostService_UpdateReplacesImageWithNewFile(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Post{
		ID:        1,
		ImagePath: "old.png",
	}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

	svc := NewPostService(mockRepo, upload.NewSaver(t.TempDir()), nil)
	post, err := svc.Update(context.Background(), 1, "T", "C", uploadHeader(t, "pic.png", []byte("png")))

	assert.NoError(t, err)
	assert.Equal(t, "pic.png", post.ImagePath)
	mockRepo.AssertExpectations(t)
}

func TestPostService_UpdateNotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewPostService(mockRepo, upload.NewSaver(t.TempDir()), nil)
	post, err := svc.Update(context.Background(), 9, "T", "C", nil)

	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	assert.Nil(t, post)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPostService_DeleteThenGetNotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	existing := &model.Post{ID: 7, Title: "T"}
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(existing, nil).Once()
	mockRepo.On("Delete", mock.Anything, existing).Return(nil).Once()
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound).Once()

	svc := NewPostService(mockRepo, upload.NewSaver(t.TempDir()), nil)

	assert.NoError(t, svc.Delete(context.Background(), 7))

	post, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	assert.Nil(t, post)
	mockRepo.AssertExpectations(t)
}
