package mongorepo

import (
	"context"
	"errors"
	"time"

	"campushub/internal/models"
	"campushub/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errPostNotFound = models.NewNotFoundError("Post not found")

type postRepository struct {
	posts *mongo.Collection
}

// NewPostRepository returns a MongoDB-backed repository.PostRepository.
func NewPostRepository(db *mongo.Database) repository.PostRepository {
	return &postRepository{posts: db.Collection(postsCollection)}
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = models.NewID()
	}
	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	doc, err := postFromModel(post)
	if err != nil {
		return err
	}
	if _, err := r.posts.InsertOne(ctx, doc); err != nil {
		return models.NewInternalError(err)
	}
	if post.QuestionsAsked == nil {
		post.QuestionsAsked = []string{}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errPostNotFound
	}
	var doc postDocument
	err = r.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errPostNotFound
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return doc.toModel(), nil
}

func (r *postRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Post, error) {
	cursor, err := r.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, models.NewInternalError(err)
	}

	posts := make([]*models.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toModel())
	}
	return posts, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Post, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*models.Post{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, newestFirst())
}

func (r *postRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []string{}, nil
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.posts.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, models.NewInternalError(err)
	}

	existing := make([]string, 0, len(docs))
	for _, d := range docs {
		existing = append(existing, d.ID.Hex())
	}
	return existing, nil
}

func (r *postRepository) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	query := bson.M{}
	if filter.CreatedByEmail != "" {
		query["createdByEmail"] = filter.CreatedByEmail
	}
	return r.find(ctx, query, newestFirst())
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	oid, err := primitive.ObjectIDFromHex(post.ID)
	if err != nil {
		return errPostNotFound
	}
	post.UpdatedAt = time.Now().UTC()
	doc, err := postFromModel(post)
	if err != nil {
		return err
	}

	set := bson.M{
		"title":            doc.Title,
		"description":      doc.Description,
		"company":          doc.Company,
		"role":             doc.Role,
		"interviewType":    doc.InterviewType,
		"questionsAsked":   doc.QuestionsAsked,
		"preparationTips":  doc.PreparationTips,
		"personalInsights": doc.PersonalInsights,
		"difficulty":       doc.Difficulty,
		"experience":       doc.Experience,
		"numberOfRounds":   doc.NumberOfRounds,
		"numberOfProblems": doc.NumberOfProblems,
		"tags":             doc.Tags,
		"updatedAt":        doc.UpdatedAt,
	}
	res, err := r.posts.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return errPostNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errPostNotFound
	}
	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.DeletedCount == 0 {
		return errPostNotFound
	}
	return nil
}
