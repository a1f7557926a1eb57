// Package seed provides helpers to create demo data for development and tests.
// Entities are written through the repositories so the same seeder serves every store driver.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campushub/internal/auth"
	"campushub/internal/models"
	"campushub/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
)

// DefaultPassword is the plaintext password of every seeded user.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them through the repositories.
type Factory struct {
	users   repository.UserRepository
	posts   repository.PostRepository
	hasher  auth.PasswordHasher
	catalog *Catalog
	faker   *gofakeit.Faker
	now     func() time.Time
	// password hash shared by generated users; bcrypt is slow enough to matter for large seeds
	passwordHash string
	nextUser     int
}

// NewFactory creates a Factory. A zero randSeed picks a random seed.
func NewFactory(users repository.UserRepository, posts repository.PostRepository, hasher auth.PasswordHasher, catalog *Catalog, randSeed int64) *Factory {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Factory{
		users:   users,
		posts:   posts,
		hasher:  hasher,
		catalog: catalog,
		faker:   gofakeit.New(randSeed),
		now:     time.Now,
	}
}

// BuildUser constructs a sample user without persisting it. The password field is left empty.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	f.nextUser++
	first, last := f.faker.FirstName(), f.faker.LastName()
	startYear := f.faker.Number(2016, 2024)
	passOut := startYear + 4

	user := &models.User{
		Name:        first + " " + last,
		Email:       fmt.Sprintf("%s.%s.%d@campus.test", strings.ToLower(first), strings.ToLower(last), f.nextUser),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID()),
		StartYear:   &startYear,
		PassOutYear: &passOut,
		Department:  f.faker.RandomString(f.catalog.Departments),
		RollNumber:  fmt.Sprintf("%02d%s%04d", startYear%100, strings.ToUpper(f.faker.LetterN(2)), f.faker.Number(1, 9999)),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser builds a user with DefaultPassword and persists it.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if user.Password == "" {
		hash, err := f.defaultHash()
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (f *Factory) defaultHash() (string, error) {
	if f.passwordHash != "" {
		return f.passwordHash, nil
	}
	hash, err := f.hasher.Hash(DefaultPassword)
	if err != nil {
		return "", err
	}
	f.passwordHash = hash
	return hash, nil
}

// BuildPost constructs a sample post stamped with author's email and name without persisting it.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	company := f.faker.RandomString(f.catalog.Companies)
	role := f.faker.RandomString(f.catalog.Roles)
	rounds := f.faker.Number(1, 5)
	problems := f.faker.Number(rounds, rounds*3)
	difficulties := []string{
		string(models.DifficultyEasy), string(models.DifficultyMedium),
		string(models.DifficultyHard), string(models.DifficultyMediumHard),
	}

	// spread creation times over the last 90 days
	createdAt := f.now().UTC().Add(-time.Duration(f.faker.Number(0, 90*24*60)) * time.Minute)

	post := &models.Post{
		Title:            fmt.Sprintf("%s %s interview experience", company, role),
		Description:      f.faker.Paragraph(1, 3, 12, " "),
		Company:          company,
		Role:             role,
		InterviewType:    f.faker.RandomString(f.catalog.InterviewTypes),
		QuestionsAsked:   f.pick(f.catalog.Questions, f.faker.Number(1, 4)),
		PreparationTips:  f.faker.Sentence(12),
		PersonalInsights: f.faker.Sentence(10),
		Difficulty:       models.Difficulty(f.faker.RandomString(difficulties)),
		Experience:       f.faker.Paragraph(2, 3, 10, "\n\n"),
		NumberOfRounds:   &rounds,
		NumberOfProblems: &problems,
		Tags:             f.pick(f.catalog.Tags, f.faker.Number(1, 3)),
		CreatedByEmail:   models.NormalizeEmail(author.Email),
		CreatedByName:    author.Name,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost builds a post for author and persists it.
func (f *Factory) CreatePost(ctx context.Context, author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, overrides...)
	if err := f.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// pick returns n distinct entries of list in random order.
func (f *Factory) pick(list []string, n int) []string {
	shuffled := append([]string{}, list...)
	f.faker.ShuffleStrings(shuffled)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
