package repository

import (
	"context"
	"errors"
	"time"

	"campushub/internal/models"

	"gorm.io/gorm"
)

var errPostNotFound = models.NewNotFoundError("Post not found")

// PostRepository persists posts. Listings are newest first.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// GetByIDs returns the posts that still exist among ids, newest first.
	GetByIDs(ctx context.Context, ids []string) ([]*models.Post, error)
	// ExistingIDs returns the subset of ids that resolve to a post.
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
	List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	// Update writes the mutable fields of post. The ownership stamp is never written.
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a GORM-backed PostRepository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPostNotFound
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Post, error) {
	posts := []*models.Post{}
	if len(ids) == 0 {
		return posts, nil
	}
	if err := r.db.WithContext(ctx).Scopes(newestFirst).Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	existing := []string{}
	if len(ids) == 0 {
		return existing, nil
	}
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return existing, nil
}

func (r *postRepository) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	posts := []*models.Post{}
	query := r.db.WithContext(ctx).Scopes(newestFirst)
	if filter.CreatedByEmail != "" {
		query = query.Where("created_by_email = ?", filter.CreatedByEmail)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(post).
		Select(models.PostMutableFields).
		Updates(post)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return errPostNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return errPostNotFound
	}
	return nil
}
