package auth

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/token"
)

// errInvalidCredentials is the single undifferentiated error returned for
// both an unknown email and a wrong password, so login responses never
// reveal which of the two failed.
var errInvalidCredentials = domain.NewAppError(domain.CodeUnauthenticated, "invalid credentials", nil)

// Service defines the authentication operations.
type Service interface {
	Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	CurrentUser(ctx context.Context, id uint) (*domain.User, error)
}

// authService implements Service.
type authService struct {
	tokens   *token.Service
	userRepo domain.UserRepository
}

// NewService creates a new auth Service.
func NewService(tokens *token.Service, userRepo domain.UserRepository) Service {
	return &authService{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// Register creates a new user with the given credentials. A duplicate email
// (exact match, per the store's unique index) is a conflict.
func (s *authService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if role == "" {
		role = domain.RoleViewer
	}
	if err := validateRegisterInput(name, email, password, role); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.NewAppError(domain.CodeAlreadyExists, "user with this email already exists", nil)
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	user := domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, &user); err != nil {
		// A concurrent register with the same email surfaces here as a
		// store-level uniqueness violation; report the same conflict the
		// pre-check would have produced.
		if domain.IsAlreadyExists(err) {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "user with this email already exists", err)
		}
		return nil, err
	}

	return &user, nil
}

// Login authenticates a user by email and password and returns a signed
// token together with the reduced public user view.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	tok, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to issue token", err)
	}

	return &LoginResponse{
		Token:     tok,
		ExpiresAt: expiresAt.Unix(),
		User:      user.Public(),
	}, nil
}

// CurrentUser resolves an already-authenticated caller's account. An id that
// no longer resolves (account removed after the token was issued) is treated
// as an authentication failure, not a plain not-found.
func (s *authService) CurrentUser(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewAppError(domain.CodeUnauthenticated, "user not found", nil)
		}
		return nil, err
	}
	return user, nil
}

// validateRegisterInput validates registration input. name and email are expected
// to be pre-trimmed by callers; TrimSpace here ensures the validator is self-contained.
func validateRegisterInput(name, email, password string, role domain.Role) error {
	nameLen := utf8.RuneCountInString(strings.TrimSpace(name))
	if nameLen == 0 {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if nameLen > 100 {
		return domain.NewAppError(domain.CodeValidation, "name must not exceed 100 characters", nil)
	}
	trimmedEmail := strings.TrimSpace(email)
	if len(trimmedEmail) == 0 {
		return domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	addr, err := mail.ParseAddress(trimmedEmail)
	if err != nil || addr.Name != "" || addr.Address != trimmedEmail {
		return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
	}
	if len(password) < 8 {
		return domain.NewAppError(domain.CodeValidation, "password must be at least 8 characters", nil)
	}
	if len(password) > 72 {
		return domain.NewAppError(domain.CodeValidation, "password must not exceed 72 characters", nil)
	}
	if !role.Valid() {
		return domain.NewAppError(domain.CodeValidation, "role must be one of ADMIN, EDITOR, VIEWER", nil)
	}
	return nil
}
