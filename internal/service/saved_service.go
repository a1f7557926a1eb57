package service

import (
	"context"
	"log/slog"

	"campushub/internal/middleware"
	"campushub/internal/models"
	"campushub/internal/observability"
	"campushub/internal/repository"
)

// ReconcileReport summarizes one reconciliation sweep.
type ReconcileReport struct {
	UsersUpdated   int `json:"usersUpdated"`
	EntriesRemoved int `json:"entriesRemoved"`
	UsersFailed    int `json:"usersFailed"`
}

// DanglingSet lists the saved references of one user that no longer resolve.
type DanglingSet struct {
	UserID  string   `json:"userId"`
	PostIDs []string `json:"postIds"`
}

// SavedService maintains users' saved-post references. References are weak: deleting a post
// leaves them in place, reads skip them and ReconcileAll prunes them.
type SavedService struct {
	users repository.UserRepository
	posts repository.PostRepository
}

func NewSavedService(users repository.UserRepository, posts repository.PostRepository) *SavedService {
	return &SavedService{users: users, posts: posts}
}

// Save adds postID to the actor's saved set. Saving twice is a no-op.
func (s *SavedService) Save(ctx context.Context, actor models.Identity, rawPostID string) error {
	postID, ok := models.NormalizeID(rawPostID)
	if !ok {
		return models.NewValidationError("Invalid postId")
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return err
	}
	if err := s.users.AddSavedPost(ctx, actor.Email, postID); err != nil {
		return err
	}
	observability.SavedReferencesAdded.Inc()
	return nil
}

// ListSaved resolves the actor's saved set to posts, newest first. Malformed and dangling
// references are skipped.
func (s *SavedService) ListSaved(ctx context.Context, actor models.Identity) ([]*models.Post, error) {
	raw, err := s.users.SavedPostIDs(ctx, actor.Email)
	if err != nil {
		return nil, err
	}
	ids, _ := partitionIDs(raw)
	return s.posts.GetByIDs(ctx, ids)
}

// ReconcileAll prunes malformed and dangling references from every saved set. A failure on one
// user is logged and counted but does not stop the sweep. Running it twice changes nothing.
func (s *SavedService) ReconcileAll(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	sets, err := s.users.ListSavedSets(ctx)
	if err != nil {
		return report, err
	}

	for _, set := range sets {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		keep, removed, err := s.resolve(ctx, set.PostIDs)
		if err == nil && len(removed) > 0 {
			err = s.users.SetSavedPosts(ctx, set.UserID, keep)
		}
		if err != nil {
			report.UsersFailed++
			observability.ReconcileUserFailures.Inc()
			middleware.Logger.WarnContext(ctx, "reconcile saved posts failed",
				slog.String("user_id", set.UserID), slog.String("error", err.Error()))
			continue
		}
		if len(removed) == 0 {
			continue
		}

		report.UsersUpdated++
		report.EntriesRemoved += len(removed)
		observability.ReconcileEntriesRemoved.Add(float64(len(removed)))
	}

	middleware.Logger.InfoContext(ctx, "reconcile saved posts finished",
		slog.Int("users_updated", report.UsersUpdated),
		slog.Int("entries_removed", report.EntriesRemoved),
		slog.Int("users_failed", report.UsersFailed))
	return report, nil
}

// Dangling reports what ReconcileAll would remove without writing anything.
func (s *SavedService) Dangling(ctx context.Context) ([]DanglingSet, error) {
	sets, err := s.users.ListSavedSets(ctx)
	if err != nil {
		return nil, err
	}

	out := []DanglingSet{}
	for _, set := range sets {
		_, removed, err := s.resolve(ctx, set.PostIDs)
		if err != nil {
			return nil, err
		}
		if len(removed) > 0 {
			out = append(out, DanglingSet{UserID: set.UserID, PostIDs: removed})
		}
	}
	return out, nil
}

// resolve splits stored references into those still pointing at a post and the rest.
// Kept ids are normalized and keep their stored order.
func (s *SavedService) resolve(ctx context.Context, stored []string) (keep, removed []string, err error) {
	valid, malformed := partitionIDs(stored)

	existing, err := s.posts.ExistingIDs(ctx, valid)
	if err != nil {
		return nil, nil, err
	}
	live := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		live[id] = struct{}{}
	}

	keep = []string{}
	removed = malformed
	seen := make(map[string]struct{}, len(valid))
	for _, id := range valid {
		if _, dup := seen[id]; dup {
			removed = append(removed, id)
			continue
		}
		seen[id] = struct{}{}
		if _, ok := live[id]; ok {
			keep = append(keep, id)
			continue
		}
		removed = append(removed, id)
	}
	return keep, removed, nil
}

// partitionIDs normalizes well-formed ids and separates out the malformed ones.
func partitionIDs(raw []string) (valid, malformed []string) {
	valid = make([]string, 0, len(raw))
	for _, r := range raw {
		if id, ok := models.NormalizeID(r); ok {
			valid = append(valid, id)
			continue
		}
		malformed = append(malformed, r)
	}
	return valid, malformed
}
