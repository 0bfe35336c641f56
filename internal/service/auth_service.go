package service

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/devconnect/devconnect-api/internal/domain"
	"github.com/devconnect/devconnect-api/internal/gravatar"
	"github.com/devconnect/devconnect-api/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is deliberately shared between unknown-email and
	// wrong-password so a response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const minPasswordLength = 6

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

func NewAuthService(userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Register creates a user and returns a token bound to the new id. The email
// must be globally unique; a duplicate registration makes no change at all.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	if err := validateRegister(input); err != nil {
		return "", err
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return "", ErrUserExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		AvatarURL:    gravatar.URL(input.Email),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	return s.tokens.Issue(user.ID)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	if err := validateLogin(input); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

// GetAuthenticated resolves a verified token subject back to its user record.
// The password hash is excluded from serialization at the model level.
func (s *AuthService) GetAuthenticated(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func validateRegister(input RegisterInput) error {
	var fields []FieldError
	if input.Name == "" {
		fields = append(fields, FieldError{Param: "name", Message: "Name is required"})
	}
	if !validEmail(input.Email) {
		fields = append(fields, FieldError{Param: "email", Message: "Please include a valid email"})
	}
	if len(input.Password) < minPasswordLength {
		fields = append(fields, FieldError{Param: "password", Message: "Please enter a password with 6 or more characters"})
	}
	if len(fields) > 0 {
		return newValidationError(fields)
	}
	return nil
}

func validateLogin(input LoginInput) error {
	var fields []FieldError
	if !validEmail(input.Email) {
		fields = append(fields, FieldError{Param: "email", Message: "Please include a valid email"})
	}
	if input.Password == "" {
		fields = append(fields, FieldError{Param: "password", Message: "Password is required"})
	}
	if len(fields) > 0 {
		return newValidationError(fields)
	}
	return nil
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
