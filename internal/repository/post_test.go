package repository

import (
	"context"
	"testing"
	"time"

	"campushub/internal/models"
	"campushub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPost(t *testing.T, repo PostRepository, title, owner string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:          title,
		Description:    "desc",
		CreatedByEmail: owner,
		CreatedByName:  "Owner",
		CreatedAt:      createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	repo := NewPostRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	rounds := 3
	post := &models.Post{
		Title:          "SDE Intern",
		Description:    "Online assessment then two interviews",
		Company:        "Acme",
		QuestionsAsked: []string{"Two sum", "LRU cache"},
		Difficulty:     models.DifficultyMediumHard,
		NumberOfRounds: &rounds,
		CreatedByEmail: "alice@example.com",
	}
	require.NoError(t, repo.Create(ctx, post))
	require.Len(t, post.ID, 24)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, []string{"Two sum", "LRU cache"}, got.QuestionsAsked)
	assert.Equal(t, []string{}, got.Tags)
	assert.Equal(t, models.DifficultyMediumHard, got.Difficulty)
	require.NotNil(t, got.NumberOfRounds)
	assert.Equal(t, 3, *got.NumberOfRounds)
	assert.Nil(t, got.NumberOfProblems)

	_, err = repo.GetByID(ctx, models.NewID())
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	repo := NewPostRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	oldest := seedPost(t, repo, "oldest", "alice@example.com", base)
	middle := seedPost(t, repo, "middle", "bob@example.com", base.Add(time.Hour))
	newest := seedPost(t, repo, "newest", "alice@example.com", base.Add(2*time.Hour))

	all, err := repo.List(ctx, models.PostFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{newest.ID, middle.ID, oldest.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	mine, err := repo.List(ctx, models.PostFilter{CreatedByEmail: "alice@example.com"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newest.ID, mine[0].ID)
	assert.Equal(t, oldest.ID, mine[1].ID)

	none, err := repo.List(ctx, models.PostFilter{CreatedByEmail: "nobody@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestPostRepository_GetByIDsAndExisting(t *testing.T) {
	repo := NewPostRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	a := seedPost(t, repo, "a", "alice@example.com", base)
	b := seedPost(t, repo, "b", "alice@example.com", base.Add(time.Minute))
	ghost := models.NewID()

	posts, err := repo.GetByIDs(ctx, []string{a.ID, ghost, b.ID})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, b.ID, posts[0].ID)
	assert.Equal(t, a.ID, posts[1].ID)

	existing, err := repo.ExistingIDs(ctx, []string{a.ID, ghost})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, existing)

	empty, err := repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostRepository_UpdateKeepsOwnership(t *testing.T) {
	repo := NewPostRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()
	post := seedPost(t, repo, "before", "alice@example.com", time.Now())

	post.Title = "after"
	post.Tags = []string{"graphs"}
	post.CreatedByEmail = "mallory@example.com"
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, []string{"graphs"}, got.Tags)
	assert.Equal(t, "alice@example.com", got.CreatedByEmail)

	err = repo.Update(ctx, &models.Post{ID: models.NewID(), Title: "x", Description: "y"})
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestPostRepository_Delete(t *testing.T) {
	repo := NewPostRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()
	post := seedPost(t, repo, "doomed", "alice@example.com", time.Now())

	require.NoError(t, repo.Delete(ctx, post.ID))
	_, err := repo.GetByID(ctx, post.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	err = repo.Delete(ctx, post.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
