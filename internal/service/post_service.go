package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"campushub/internal/cache"
	"campushub/internal/middleware"
	"campushub/internal/models"
	"campushub/internal/observability"
	"campushub/internal/repository"
	"campushub/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

var errPostNotFound = models.NewNotFoundError("Post not found")

// AuthorizeOwner is the ownership gate for post mutations. A post with an ownership stamp may
// only be changed by that owner. Unstamped posts are closed unless openLegacy is set.
func AuthorizeOwner(post *models.Post, actor models.Identity, openLegacy bool, action string) error {
	if post.CreatedByEmail == "" {
		if openLegacy {
			return nil
		}
		return models.NewForbiddenError("Not allowed to " + action + " this post")
	}
	if !post.OwnedBy(actor.Email) {
		return models.NewForbiddenError("Not allowed to " + action + " this post")
	}
	return nil
}

// PostService manages interview-experience posts.
type PostService struct {
	posts repository.PostRepository
	cache *cache.Store
	// openLegacy decides whether unstamped posts may be edited by the given actor.
	openLegacy func(actor models.Identity) bool
	now        func() time.Time
}

// NewPostService builds a PostService. A nil store disables caching and a nil openLegacy keeps
// unstamped posts closed.
func NewPostService(posts repository.PostRepository, store *cache.Store, openLegacy func(models.Identity) bool) *PostService {
	if openLegacy == nil {
		openLegacy = func(models.Identity) bool { return false }
	}
	return &PostService{posts: posts, cache: store, openLegacy: openLegacy, now: time.Now}
}

func (s *PostService) CreatePost(ctx context.Context, owner models.Identity, fields models.PostFields) (*models.Post, error) {
	if err := validation.ValidatePostFields(fields, true); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{}
	fields.ApplyTo(post)
	post.Title = strings.TrimSpace(post.Title)
	post.Description = strings.TrimSpace(post.Description)
	post.CreatedByEmail = models.NormalizeEmail(owner.Email)
	post.CreatedByName = owner.Name

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostMutations.WithLabelValues("create").Inc()
	middleware.Logger.InfoContext(ctx, "post created", slog.String("post_id", post.ID))
	return post, nil
}

// GetPost returns one post. Malformed ids are reported as not found.
func (s *PostService) GetPost(ctx context.Context, rawID string) (*models.Post, error) {
	id, ok := models.NormalizeID(rawID)
	if !ok {
		return nil, errPostNotFound
	}

	ctx, span := observability.StartSpan(ctx, "PostService.GetPost", attribute.String("post.id", id))
	var post models.Post
	hit, err := s.cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		found, err := s.posts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		post = *found
		return nil
	})
	observability.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	if s.cache.Enabled() {
		if hit {
			observability.CacheLookups.WithLabelValues("hit").Inc()
		} else {
			observability.CacheLookups.WithLabelValues("miss").Inc()
		}
	}
	return &post, nil
}

// ListPosts returns posts newest first, optionally limited to one author.
func (s *PostService) ListPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	filter.CreatedByEmail = strings.TrimSpace(filter.CreatedByEmail)
	return s.posts.List(ctx, filter)
}

// UpdatePost applies the fields present in patch. Ownership stamps never change.
func (s *PostService) UpdatePost(ctx context.Context, actor models.Identity, rawID string, patch models.PostFields) (*models.Post, error) {
	id, ok := models.NormalizeID(rawID)
	if !ok {
		return nil, errPostNotFound
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(post, actor, s.openLegacy(actor), "edit"); err != nil {
		return nil, err
	}
	if err := validation.ValidatePostFields(patch, false); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	patch.ApplyTo(post)
	post.Title = strings.TrimSpace(post.Title)
	post.Description = strings.TrimSpace(post.Description)
	post.UpdatedAt = s.now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cache.PostKey(id))

	observability.PostMutations.WithLabelValues("update").Inc()
	return post, nil
}

// DeletePost removes a post. Saved references to it are left for reconciliation.
func (s *PostService) DeletePost(ctx context.Context, actor models.Identity, rawID string) error {
	id, ok := models.NormalizeID(rawID)
	if !ok {
		return errPostNotFound
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeOwner(post, actor, s.openLegacy(actor), "delete"); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.PostKey(id))

	observability.PostMutations.WithLabelValues("delete").Inc()
	middleware.Logger.InfoContext(ctx, "post deleted", slog.String("post_id", id))
	return nil
}
