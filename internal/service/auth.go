package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/pokedex/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput holds the fields accepted at registration.
type RegisterInput struct {
	ID          int64
	FirstName   string
	MiddleName  string
	LastName    string
	DateOfBirth *time.Time
	Gender      string
	Email       string
	Password    string
	Phone       string
}

// UpdateUserInput holds a partial user update. Nil fields are left unchanged.
type UpdateUserInput struct {
	FirstName   *string
	MiddleName  *string
	LastName    *string
	DateOfBirth *time.Time
	Gender      *string
	Email       *string
	Password    *string
	Phone       *string
}

// AuthService handles registration, login, and account maintenance.
type AuthService struct {
	users      domain.UserRepository
	tokens     *TokenService
	bcryptCost int
	// dummyHash is compared against when the email is unknown so that both
	// login failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, tokens *TokenService, bcryptCost int) (*AuthService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}, nil
}

// Register creates a new user account. The password is stored only as a
// bcrypt digest.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           in.ID,
		FirstName:    in.FirstName,
		MiddleName:   in.MiddleName,
		LastName:     in.LastName,
		DateOfBirth:  in.DateOfBirth,
		Gender:       in.Gender,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password both return domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := s.tokens.Issue(user.ID, user.Email, RoleUser)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user, nil
}

// UpdateUser applies a partial update. The password is re-hashed only when
// supplied.
func (s *AuthService) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error) {
	patch := domain.UserPatch{
		FirstName:   in.FirstName,
		MiddleName:  in.MiddleName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		Email:       in.Email,
		Phone:       in.Phone,
	}

	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", domain.ErrInvalidInput)
		}
		hash, err := s.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the user with the given id.
func (s *AuthService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *AuthService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrInvalidInput)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
