package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/token"
)

// --- mock repository ---

type mockUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
	// hooks for error injection
	createErr error
}

func newMockRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrAlreadyExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) List(_ context.Context, req domain.PageRequest) (*domain.PageResult[domain.User], error) {
	items := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		items = append(items, *u)
	}
	return &domain.PageResult[domain.User]{
		Items:        items,
		TotalItems:   int64(len(items)),
		CurrentPage:  req.Page,
		ItemsPerPage: req.PageSize,
	}, nil
}

// --- helpers ---

func newTestService(t *testing.T) (Service, *mockUserRepo) {
	t.Helper()
	tokens, err := token.New("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token.New: %v", err)
	}
	repo := newMockRepo()
	return NewService(tokens, repo), repo
}

// --- tests ---

func TestRegister(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123", domain.RoleEditor)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if user.Role != domain.RoleEditor {
		t.Errorf("Role=%q; want EDITOR", user.Role)
	}
	if user.PasswordHash == "password123" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegister_DefaultsToViewer(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != domain.RoleViewer {
		t.Errorf("Role=%q; want VIEWER", user.Role)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     domain.Role
	}{
		{"empty name", "", "a@example.com", "password123", domain.RoleViewer},
		{"whitespace name", "   ", "a@example.com", "password123", domain.RoleViewer},
		{"long name", strings.Repeat("x", 101), "a@example.com", "password123", domain.RoleViewer},
		{"empty email", "Alice", "", "password123", domain.RoleViewer},
		{"invalid email", "Alice", "not-an-email", "password123", domain.RoleViewer},
		{"short password", "Alice", "a@example.com", "short", domain.RoleViewer},
		{"long password", "Alice", "a@example.com", strings.Repeat("x", 73), domain.RoleViewer},
		{"unknown role", "Alice", "a@example.com", "password123", "SUPERUSER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.userName, tt.email, tt.password, tt.role)
			if !domain.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "dup@example.com", "password123", ""); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := svc.Register(ctx, "Bob", "dup@example.com", "password123", "")
	if !domain.IsAlreadyExists(err) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected non-empty token")
	}
	if resp.ExpiresAt <= time.Now().Unix() {
		t.Error("token expiry should be in the future")
	}
	if resp.User.ID != registered.ID {
		t.Errorf("User.ID=%d; want %d", resp.User.ID, registered.ID)
	}
	if resp.User.Role != domain.RoleAdmin {
		t.Errorf("User.Role=%q; want ADMIN", resp.User.Role)
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, unknownErr := svc.Login(ctx, "nobody@example.com", "password123")
	_, wrongErr := svc.Login(ctx, "alice@example.com", "wrong-password")

	if !domain.IsUnauthenticated(unknownErr) {
		t.Errorf("unknown email: expected unauthenticated, got %v", unknownErr)
	}
	if !domain.IsUnauthenticated(wrongErr) {
		t.Errorf("wrong password: expected unauthenticated, got %v", wrongErr)
	}
	// The two failure modes must not leak which part was wrong.
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("login errors differ: %q vs %q", unknownErr.Error(), wrongErr.Error())
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.CurrentUser(ctx, registered.ID)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email=%q; want alice@example.com", user.Email)
	}
}

func TestCurrentUser_Gone(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CurrentUser(context.Background(), 999)
	if !domain.IsUnauthenticated(err) {
		t.Errorf("expected unauthenticated, got %v", err)
	}
}
