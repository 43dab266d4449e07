package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/simp-lee/cmsbase/internal/domain"
)

func testUser() *domain.User {
	u := &domain.User{
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  domain.RoleEditor,
	}
	u.ID = 42
	return u
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		ttl     time.Duration
		wantErr bool
	}{
		{"valid", "test-secret", time.Hour, false},
		{"empty secret", "", time.Hour, true},
		{"zero ttl", "test-secret", 0, true},
		{"negative ttl", "test-secret", -time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.secret, tt.ttl)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc, err := New("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	user := testUser()
	tok, expiresAt, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if tok == "" {
		t.Fatal("expected non-empty token")
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute || remaining > time.Hour {
		t.Errorf("unexpected expiry window: %s", remaining)
	}

	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %d; want %d", claims.UserID, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %q; want %q", claims.Email, user.Email)
	}
	if claims.Role != user.Role {
		t.Errorf("Role = %q; want %q", claims.Role, user.Role)
	}
	if claims.Subject != "42" {
		t.Errorf("Subject = %q; want %q", claims.Subject, "42")
	}
}

func TestVerify_Expired(t *testing.T) {
	svc, err := New("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Sign a token whose expiry is already in the past; sleeping on a short
	// ttl would race the second-granularity of JWT timestamps.
	user := testUser()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = svc.Verify(tok)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer, _ := New("secret-one", time.Hour)
	verifier, _ := New("secret-two", time.Hour)

	tok, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = verifier.Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	svc, _ := New("test-secret", time.Hour)

	tests := []string{
		"",
		"not-a-token",
		"aaa.bbb.ccc",
		"eyJhbGciOiJub25lIn0.eyJ1aWQiOjF9.",
	}
	for _, tok := range tests {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}
