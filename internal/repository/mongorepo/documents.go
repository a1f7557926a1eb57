// Package mongorepo implements the repository interfaces on MongoDB.
// Documents keep ObjectID keys and camelCase fields so existing collections load unchanged.
package mongorepo

import (
	"fmt"
	"time"

	"campushub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	usersCollection = "users"
	postsCollection = "posts"
)

type userDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Password    string             `bson:"password"`
	AvatarURL   string             `bson:"avatarUrl,omitempty"`
	StartYear   *int               `bson:"startYear,omitempty"`
	PassOutYear *int               `bson:"passOutYear,omitempty"`
	Department  string             `bson:"department,omitempty"`
	RollNumber  string             `bson:"rollNumber,omitempty"`
	LastLoginAt *time.Time         `bson:"lastLoginAt,omitempty"`
	SavedPosts  []interface{}      `bson:"savedPosts"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d userDocument) toModel() *models.User {
	return &models.User{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Email:       d.Email,
		Password:    d.Password,
		AvatarURL:   d.AvatarURL,
		StartYear:   d.StartYear,
		PassOutYear: d.PassOutYear,
		Department:  d.Department,
		RollNumber:  d.RollNumber,
		LastLoginAt: d.LastLoginAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// refString renders a stored saved-post entry. Legacy data may hold strings or other values;
// they are passed through so reconciliation can discard them.
func refString(v interface{}) string {
	switch ref := v.(type) {
	case primitive.ObjectID:
		return ref.Hex()
	case string:
		return ref
	default:
		return fmt.Sprint(ref)
	}
}

func refStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, refString(v))
	}
	return out
}

type postDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Title            string             `bson:"title"`
	Description      string             `bson:"description"`
	Company          string             `bson:"company,omitempty"`
	Role             string             `bson:"role,omitempty"`
	InterviewType    string             `bson:"interviewType,omitempty"`
	QuestionsAsked   []string           `bson:"questionsAsked"`
	PreparationTips  string             `bson:"preparationTips,omitempty"`
	PersonalInsights string             `bson:"personalInsights,omitempty"`
	Difficulty       string             `bson:"difficulty,omitempty"`
	Experience       string             `bson:"experience,omitempty"`
	NumberOfRounds   *int               `bson:"numberOfRounds,omitempty"`
	NumberOfProblems *int               `bson:"numberOfProblems,omitempty"`
	Tags             []string           `bson:"tags"`
	CreatedByEmail   string             `bson:"createdByEmail,omitempty"`
	CreatedByName    string             `bson:"createdByName,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func postFromModel(p *models.Post) (postDocument, error) {
	doc := postDocument{
		Title:            p.Title,
		Description:      p.Description,
		Company:          p.Company,
		Role:             p.Role,
		InterviewType:    p.InterviewType,
		QuestionsAsked:   p.QuestionsAsked,
		PreparationTips:  p.PreparationTips,
		PersonalInsights: p.PersonalInsights,
		Difficulty:       string(p.Difficulty),
		Experience:       p.Experience,
		NumberOfRounds:   p.NumberOfRounds,
		NumberOfProblems: p.NumberOfProblems,
		Tags:             p.Tags,
		CreatedByEmail:   p.CreatedByEmail,
		CreatedByName:    p.CreatedByName,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if doc.QuestionsAsked == nil {
		doc.QuestionsAsked = []string{}
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if p.ID != "" {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return postDocument{}, models.NewValidationError("Invalid post id")
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d postDocument) toModel() *models.Post {
	post := &models.Post{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		Description:      d.Description,
		Company:          d.Company,
		Role:             d.Role,
		InterviewType:    d.InterviewType,
		QuestionsAsked:   d.QuestionsAsked,
		PreparationTips:  d.PreparationTips,
		PersonalInsights: d.PersonalInsights,
		Difficulty:       models.Difficulty(d.Difficulty),
		Experience:       d.Experience,
		NumberOfRounds:   d.NumberOfRounds,
		NumberOfProblems: d.NumberOfProblems,
		Tags:             d.Tags,
		CreatedByEmail:   d.CreatedByEmail,
		CreatedByName:    d.CreatedByName,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if post.QuestionsAsked == nil {
		post.QuestionsAsked = []string{}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return post
}

// objectIDs converts valid hex ids, silently skipping malformed ones.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
