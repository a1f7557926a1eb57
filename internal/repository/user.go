// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"campushub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errUserNotFound = models.NewNotFoundError("User not found")

// UserRepository persists users and their saved-post references.
// Every email-keyed method normalizes the email before use.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns nil, nil when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, email string, at time.Time) error
	// AddSavedPost adds postID to the user's saved set if absent. Concurrent calls are safe.
	AddSavedPost(ctx context.Context, email, postID string) error
	// SavedPostIDs returns the raw stored references, oldest first.
	SavedPostIDs(ctx context.Context, email string) ([]string, error)
	// SetSavedPosts replaces the user's saved set.
	SetSavedPosts(ctx context.Context, userID string, postIDs []string) error
	// ListSavedSets returns every non-empty saved set.
	ListSavedSets(ctx context.Context) ([]models.SavedSet, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a GORM-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateEmailError("Email already registered")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Update("last_login_at", at)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return errUserNotFound
	}
	return nil
}

func (r *userRepository) userID(ctx context.Context, email string) (string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if len(ids) == 0 {
		return "", errUserNotFound
	}
	return ids[0], nil
}

func (r *userRepository) AddSavedPost(ctx context.Context, email, postID string) error {
	userID, err := r.userID(ctx, email)
	if err != nil {
		return err
	}

	entry := models.SavedPost{UserID: userID, PostID: postID, CreatedAt: time.Now()}
	// The composite primary key turns a repeated save into a no-op.
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) SavedPostIDs(ctx context.Context, email string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.SavedPost{}).
		Joins("JOIN users ON users.id = saved_posts.user_id").
		Where("users.email = ?", models.NormalizeEmail(email)).
		Order("saved_posts.created_at ASC").
		Pluck("saved_posts.post_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *userRepository) SetSavedPosts(ctx context.Context, userID string, postIDs []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		drop := tx.Where("user_id = ?", userID)
		if len(postIDs) > 0 {
			drop = drop.Where("post_id NOT IN ?", postIDs)
		}
		if err := drop.Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}

		now := time.Now()
		for _, postID := range postIDs {
			entry := models.SavedPost{UserID: userID, PostID: postID, CreatedAt: now}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) ListSavedSets(ctx context.Context) ([]models.SavedSet, error) {
	var entries []models.SavedPost
	err := r.db.WithContext(ctx).
		Order("user_id ASC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var sets []models.SavedSet
	for _, e := range entries {
		if n := len(sets); n > 0 && sets[n-1].UserID == e.UserID {
			sets[n-1].PostIDs = append(sets[n-1].PostIDs, e.PostID)
			continue
		}
		sets = append(sets, models.SavedSet{UserID: e.UserID, PostIDs: []string{e.PostID}})
	}
	return sets, nil
}
