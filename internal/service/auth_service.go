// Package service implements the application's use cases on top of the repositories.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"campushub/internal/auth"
	"campushub/internal/middleware"
	"campushub/internal/models"
	"campushub/internal/observability"
	"campushub/internal/repository"
	"campushub/internal/validation"
)

// SignupInput carries the fields accepted on registration.
type SignupInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AvatarURL   string `json:"avatarUrl"`
	StartYear   *int   `json:"startYear"`
	PassOutYear *int   `json:"passOutYear"`
	Department  string `json:"department"`
	RollNumber  string `json:"rollNumber"`
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is a fresh token with the user it was issued for.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Ready() error
	Issue(identity models.Identity) (string, error)
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	hasher auth.PasswordHasher
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer, hasher auth.PasswordHasher) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, now: time.Now}
}

func identityOf(u *models.User) models.Identity {
	return models.Identity{ID: u.ID, Email: u.Email, Name: u.Name}
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	result, err := s.signup(ctx, in)
	observability.AuthAttempts.WithLabelValues("signup", outcome(err)).Inc()
	return result, err
}

func (s *AuthService) signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := models.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, models.NewValidationError("Name, email and password are required")
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateYears(in.StartYear, in.PassOutYear); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	// No user is created while tokens cannot be issued.
	if err := s.tokens.Ready(); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateEmailError("Email already registered")
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:        name,
		Email:       email,
		Password:    hashed,
		AvatarURL:   strings.TrimSpace(in.AvatarURL),
		StartYear:   in.StartYear,
		PassOutYear: in.PassOutYear,
		Department:  strings.TrimSpace(in.Department),
		RollNumber:  strings.TrimSpace(in.RollNumber),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(identityOf(user))
	if err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	result, err := s.login(ctx, in)
	observability.AuthAttempts.WithLabelValues("login", outcome(err)).Inc()
	return result, err
}

func (s *AuthService) login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := models.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}
	if !s.hasher.Verify(in.Password, user.Password) {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := s.tokens.Ready(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, email, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	token, err := s.tokens.Issue(identityOf(user))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Me returns the profile of the authenticated identity.
func (s *AuthService) Me(ctx context.Context, identity models.Identity) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}
	return user, nil
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if code := errorCode(err); code != "" {
		return strings.ToLower(code)
	}
	return "error"
}

func errorCode(err error) string {
	for _, code := range []string{
		models.CodeValidation, models.CodeDuplicateEmail, models.CodeUnauthorized,
		models.CodeNotFound, models.CodeMisconfigured, models.CodeInternal,
	} {
		if models.IsCode(err, code) {
			return code
		}
	}
	return ""
}
