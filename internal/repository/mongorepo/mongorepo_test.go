package mongorepo

import (
	"context"
	"testing"
	"time"

	"campushub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &models.User{Name: "Alice", Email: " Alice@Example.com ", Password: "hash"}
		require.NoError(mt, repo.Create(ctx, user))
		assert.Len(mt, user.ID, 24)
		assert.Equal(mt, "alice@example.com", user.Email)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: campushub.users index: email_1",
		}))

		err := repo.Create(ctx, &models.User{Name: "Alice", Email: "alice@example.com", Password: "hash"})
		assert.True(mt, models.IsCode(err, models.CodeDuplicateEmail), "got %v", err)
	})

	mt.Run("get by email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "campushub.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "Alice"},
			{Key: "email", Value: "alice@example.com"},
			{Key: "password", Value: "hash"},
		}))

		user, err := repo.GetByEmail(ctx, "ALICE@example.com")
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, oid.Hex(), user.ID)
		assert.Equal(mt, "Alice", user.Name)
	})

	mt.Run("get by email missing", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "campushub.users", mtest.FirstBatch))

		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("get by malformed id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		_, err := repo.GetByID(ctx, "not-an-id")
		assert.True(mt, models.IsCode(err, models.CodeNotFound))
	})

	mt.Run("add saved post", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))

		assert.NoError(mt, repo.AddSavedPost(ctx, "alice@example.com", primitive.NewObjectID().Hex()))
	})

	mt.Run("add saved post unknown user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.AddSavedPost(ctx, "nobody@example.com", primitive.NewObjectID().Hex())
		assert.True(mt, models.IsCode(err, models.CodeNotFound))
	})

	mt.Run("saved post ids keep legacy entries", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		valid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "campushub.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "savedPosts", Value: bson.A{valid, "not-an-object-id"}},
		}))

		ids, err := repo.SavedPostIDs(ctx, "alice@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, []string{valid.Hex(), "not-an-object-id"}, ids)
	})

	mt.Run("list saved sets", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
		p1, p2 := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "campushub.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: alice}, {Key: "savedPosts", Value: bson.A{p1, p2}}},
			bson.D{{Key: "_id", Value: bob}, {Key: "savedPosts", Value: bson.A{p2}}},
		))

		sets, err := repo.ListSavedSets(ctx)
		require.NoError(mt, err)
		require.Len(mt, sets, 2)
		assert.Equal(mt, models.SavedSet{UserID: alice.Hex(), PostIDs: []string{p1.Hex(), p2.Hex()}}, sets[0])
		assert.Equal(mt, models.SavedSet{UserID: bob.Hex(), PostIDs: []string{p2.Hex()}}, sets[1])
	})
}

func TestPostRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		post := &models.Post{Title: "SDE", Description: "desc", CreatedByEmail: "alice@example.com"}
		require.NoError(mt, repo.Create(ctx, post))
		assert.Len(mt, post.ID, 24)
		assert.False(mt, post.CreatedAt.IsZero())
		assert.Equal(mt, []string{}, post.Tags)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "campushub.posts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "title", Value: "SDE"},
			{Key: "description", Value: "desc"},
			{Key: "difficulty", Value: "Hard"},
			{Key: "createdByEmail", Value: "alice@example.com"},
			{Key: "createdAt", Value: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		}))

		post, err := repo.GetByID(ctx, oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, models.DifficultyHard, post.Difficulty)
		assert.Equal(mt, []string{}, post.QuestionsAsked)
	})

	mt.Run("get by id missing", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "campushub.posts", mtest.FirstBatch))

		_, err := repo.GetByID(ctx, primitive.NewObjectID().Hex())
		assert.True(mt, models.IsCode(err, models.CodeNotFound))

		_, err = repo.GetByID(ctx, "xyz")
		assert.True(mt, models.IsCode(err, models.CodeNotFound))
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		newer, older := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "campushub.posts", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: newer}, {Key: "title", Value: "new"}},
			bson.D{{Key: "_id", Value: older}, {Key: "title", Value: "old"}},
		))

		posts, err := repo.List(ctx, models.PostFilter{CreatedByEmail: "alice@example.com"})
		require.NoError(mt, err)
		require.Len(mt, posts, 2)
		assert.Equal(mt, newer.Hex(), posts[0].ID)
	})

	mt.Run("existing ids skip malformed input", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		kept := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "campushub.posts", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: kept}},
		))

		ids, err := repo.ExistingIDs(ctx, []string{kept.Hex(), primitive.NewObjectID().Hex(), "junk"})
		require.NoError(mt, err)
		assert.Equal(mt, []string{kept.Hex()}, ids)

		none, err := repo.ExistingIDs(ctx, []string{"junk"})
		require.NoError(mt, err)
		assert.Empty(mt, none)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(ctx, &models.Post{ID: primitive.NewObjectID().Hex(), Title: "t", Description: "d"})
		assert.True(mt, models.IsCode(err, models.CodeNotFound))
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		id := primitive.NewObjectID().Hex()
		assert.NoError(mt, repo.Delete(ctx, id))
		err := repo.Delete(ctx, id)
		assert.True(mt, models.IsCode(err, models.CodeNotFound))
	})
}
