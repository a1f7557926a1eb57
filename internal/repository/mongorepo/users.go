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

var errUserNotFound = models.NewNotFoundError("User not found")

type userRepository struct {
	users *mongo.Collection
}

// NewUserRepository returns a MongoDB-backed repository.UserRepository.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{users: db.Collection(usersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.Email = models.NormalizeEmail(user.Email)
	if user.ID == "" {
		user.ID = models.NewID()
	}
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return models.NewValidationError("Invalid user id")
	}
	user.CreatedAt, user.UpdatedAt = now, now

	doc := userDocument{
		ID:          oid,
		Name:        user.Name,
		Email:       user.Email,
		Password:    user.Password,
		AvatarURL:   user.AvatarURL,
		StartYear:   user.StartYear,
		PassOutYear: user.PassOutYear,
		Department:  user.Department,
		RollNumber:  user.RollNumber,
		SavedPosts:  []interface{}{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewDuplicateEmailError("Email already registered")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return doc.toModel(), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errUserNotFound
	}
	user, err := r.findOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserNotFound
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": models.NormalizeEmail(email)})
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	res, err := r.users.UpdateOne(ctx,
		bson.M{"email": models.NormalizeEmail(email)},
		bson.M{"$set": bson.M{"lastLoginAt": at, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return errUserNotFound
	}
	return nil
}

func (r *userRepository) AddSavedPost(ctx context.Context, email, postID string) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return models.NewValidationError("Invalid postId")
	}
	res, err := r.users.UpdateOne(ctx,
		bson.M{"email": models.NormalizeEmail(email)},
		bson.M{"$addToSet": bson.M{"savedPosts": oid}},
	)
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return errUserNotFound
	}
	return nil
}

func (r *userRepository) SavedPostIDs(ctx context.Context, email string) ([]string, error) {
	var doc userDocument
	opts := options.FindOne().SetProjection(bson.M{"savedPosts": 1})
	err := r.users.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []string{}, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return refStrings(doc.SavedPosts), nil
}

func (r *userRepository) SetSavedPosts(ctx context.Context, userID string, postIDs []string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errUserNotFound
	}
	res, err := r.users.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"savedPosts": objectIDs(postIDs), "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return errUserNotFound
	}
	return nil
}

func (r *userRepository) ListSavedSets(ctx context.Context) ([]models.SavedSet, error) {
	opts := options.Find().SetProjection(bson.M{"savedPosts": 1})
	cursor, err := r.users.Find(ctx, bson.M{"savedPosts.0": bson.M{"$exists": true}}, opts)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var sets []models.SavedSet
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, models.NewInternalError(err)
		}
		sets = append(sets, models.SavedSet{UserID: doc.ID.Hex(), PostIDs: refStrings(doc.SavedPosts)})
	}
	if err := cursor.Err(); err != nil {
		return nil, models.NewInternalError(err)
	}
	return sets, nil
}
