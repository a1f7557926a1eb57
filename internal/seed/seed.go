package seed

import (
	"context"
	"errors"
	"log/slog"

	"campushub/internal/auth"
	"campushub/internal/middleware"
	"campushub/internal/models"
	"campushub/internal/repository"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers int
	NumPosts int
	// SavesPerUser is how many posts each user bookmarks.
	SavesPerUser int
	// RandSeed makes runs reproducible when non-zero.
	RandSeed int64
	Catalog  *Catalog
}

// Summary reports what a seed run wrote.
type Summary struct {
	Users int `json:"users"`
	Posts int `json:"posts"`
	Saved int `json:"saved"`
}

// Seed creates users, posts spread across those users, and saved-post references.
func Seed(ctx context.Context, users repository.UserRepository, posts repository.PostRepository, hasher auth.PasswordHasher, opts Options) (*Summary, error) {
	if opts.NumUsers <= 0 {
		return nil, errors.New("seed: at least one user is required")
	}
	logger := middleware.Logger.With("component", "seed")
	logger.Info("seeding started", slog.Int("users", opts.NumUsers), slog.Int("posts", opts.NumPosts))

	f := NewFactory(users, posts, hasher, opts.Catalog, opts.RandSeed)
	summary := &Summary{}

	created := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser(ctx)
		if err != nil {
			return summary, err
		}
		created = append(created, user)
		summary.Users++
	}
	logger.Info("users created", slog.Int("count", summary.Users))

	postIDs := make([]string, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := created[f.faker.Number(0, len(created)-1)]
		post, err := f.CreatePost(ctx, author)
		if err != nil {
			return summary, err
		}
		postIDs = append(postIDs, post.ID)
		summary.Posts++
	}
	logger.Info("posts created", slog.Int("count", summary.Posts))

	if len(postIDs) > 0 {
		for _, user := range created {
			for _, id := range f.pick(postIDs, opts.SavesPerUser) {
				if err := users.AddSavedPost(ctx, user.Email, id); err != nil {
					return summary, err
				}
				summary.Saved++
			}
		}
	}

	logger.Info("seeding completed", slog.Int("users", summary.Users), slog.Int("posts", summary.Posts), slog.Int("saved", summary.Saved))
	return summary, nil
}

// ClearSQL removes all rows written by Seed from a SQL store, children first.
func ClearSQL(ctx context.Context, db *gorm.DB) error {
	middleware.Logger.Info("clearing existing data", slog.String("component", "seed"))
	tables := []interface{}{&models.SavedPost{}, &models.Post{}, &models.User{}}
	for _, model := range tables {
		if err := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
