package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"campushub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn          func(context.Context, *models.User) error
	getByIDFn         func(context.Context, string) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	updateLastLoginFn func(context.Context, string, time.Time) error
	addSavedPostFn    func(context.Context, string, string) error
	savedPostIDsFn    func(context.Context, string) ([]string, error)
	setSavedPostsFn   func(context.Context, string, []string) error
	listSavedSetsFn   func(context.Context) ([]models.SavedSet, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	return s.updateLastLoginFn(ctx, email, at)
}
func (s *userRepoStub) AddSavedPost(ctx context.Context, email, postID string) error {
	return s.addSavedPostFn(ctx, email, postID)
}
func (s *userRepoStub) SavedPostIDs(ctx context.Context, email string) ([]string, error) {
	return s.savedPostIDsFn(ctx, email)
}
func (s *userRepoStub) SetSavedPosts(ctx context.Context, userID string, postIDs []string) error {
	return s.setSavedPostsFn(ctx, userID, postIDs)
}
func (s *userRepoStub) ListSavedSets(ctx context.Context) ([]models.SavedSet, error) {
	return s.listSavedSetsFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = models.NewID()
			return nil
		},
		getByIDFn:         func(_ context.Context, _ string) (*models.User, error) { return nil, models.NewNotFoundError("User not found") },
		getByEmailFn:      func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		updateLastLoginFn: func(_ context.Context, _ string, _ time.Time) error { return nil },
		addSavedPostFn:    func(_ context.Context, _, _ string) error { return nil },
		savedPostIDsFn:    func(_ context.Context, _ string) ([]string, error) { return []string{}, nil },
		setSavedPostsFn:   func(_ context.Context, _ string, _ []string) error { return nil },
		listSavedSetsFn:   func(_ context.Context) ([]models.SavedSet, error) { return nil, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, string) (*models.Post, error)
	getByIDsFn    func(context.Context, []string) ([]*models.Post, error)
	existingIDsFn func(context.Context, []string) ([]string, error)
	listFn        func(context.Context, models.PostFilter) ([]*models.Post, error)
	updateFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, string) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByIDs(ctx context.Context, ids []string) ([]*models.Post, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *postRepoStub) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	return s.existingIDsFn(ctx, ids)
}
func (s *postRepoStub) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	return s.listFn(ctx, filter)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = models.NewID()
			return nil
		},
		getByIDFn:     func(_ context.Context, _ string) (*models.Post, error) { return nil, models.NewNotFoundError("Post not found") },
		getByIDsFn:    func(_ context.Context, _ []string) ([]*models.Post, error) { return []*models.Post{}, nil },
		existingIDsFn: func(_ context.Context, _ []string) ([]string, error) { return []string{}, nil },
		listFn:        func(_ context.Context, _ models.PostFilter) ([]*models.Post, error) { return []*models.Post{}, nil },
		updateFn:      func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:      func(_ context.Context, _ string) error { return nil },
	}
}

// assertCode asserts that err is an AppError carrying code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func ptr[T any](v T) *T { return &v }
