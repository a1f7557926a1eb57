package seed

import (
	"context"
	"testing"

	"campushub/internal/auth"
	"campushub/internal/models"
	"campushub/internal/repository"
	"campushub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()
	assert.NotEmpty(t, c.Companies)
	assert.NotEmpty(t, c.Questions)

	_, err := LoadCatalog([]byte("companies: [unterminated"))
	assert.Error(t, err)

	_, err = LoadCatalog([]byte("companies: [Acme]\nroles: [SDE]\n"))
	assert.ErrorContains(t, err, "is empty")
}

func TestFactory_Reproducible(t *testing.T) {
	t.Parallel()

	a := NewFactory(nil, nil, nil, nil, 42).BuildUser()
	b := NewFactory(nil, nil, nil, nil, 42).BuildUser()
	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, a.Email, b.Email)
}

func TestFactory_BuildPost(t *testing.T) {
	t.Parallel()

	f := NewFactory(nil, nil, nil, nil, 7)
	author := &models.User{Name: "Asha Rao", Email: " Asha@Campus.Test "}

	for i := 0; i < 20; i++ {
		post := f.BuildPost(author)
		assert.Equal(t, "asha@campus.test", post.CreatedByEmail)
		assert.Equal(t, "Asha Rao", post.CreatedByName)
		assert.NotEmpty(t, post.Title)
		assert.NotEmpty(t, post.Description)
		assert.True(t, post.Difficulty.Valid())
		assert.NotEmpty(t, post.QuestionsAsked)
		assert.Subset(t, f.catalog.Questions, post.QuestionsAsked)
		assert.LessOrEqual(t, *post.NumberOfRounds, *post.NumberOfProblems)
	}

	post := f.BuildPost(author, func(p *models.Post) { p.Company = "Acme" })
	assert.Equal(t, "Acme", post.Company)
}

func TestSeed_RequiresUsers(t *testing.T) {
	t.Parallel()

	_, err := Seed(context.Background(), nil, nil, nil, Options{})
	assert.Error(t, err)
}

func TestSeed_SQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	ctx := context.Background()

	summary, err := Seed(ctx, users, posts, hasher, Options{NumUsers: 3, NumPosts: 5, SavesPerUser: 2, RandSeed: 1})
	require.NoError(t, err)
	assert.Equal(t, &Summary{Users: 3, Posts: 5, Saved: 6}, summary)

	all, err := posts.List(ctx, models.PostFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt), "listing must be newest first")
	}

	author, err := users.GetByEmail(ctx, all[0].CreatedByEmail)
	require.NoError(t, err)
	require.NotNil(t, author)
	assert.True(t, hasher.Verify(DefaultPassword, author.Password))

	saved, err := users.SavedPostIDs(ctx, author.Email)
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	require.NoError(t, ClearSQL(ctx, db))
	all, err = posts.List(ctx, models.PostFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
	sets, err := users.ListSavedSets(ctx)
	require.NoError(t, err)
	assert.Empty(t, sets)
}
