package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/pkg/apperrors"
)

const testSecret = "test-secret"

func newTestService() *JWTService {
	return NewJWTService(JWTConfig{SecretKey: testSecret, SessionDuration: time.Hour, TokenIssuer: "pucknotes"})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService()
	tok, exp, err := svc.GenerateToken(&models.Account{ID: 42}, "sess-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry should be in the future, got %v", exp)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.AccountID != 42 || claims.SessionID() != "sess-1" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tok, _, err := newTestService().GenerateToken(&models.Account{ID: 1}, "s")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	other := NewJWTService(JWTConfig{SecretKey: "wrong", SessionDuration: time.Hour, TokenIssuer: "pucknotes"})
	if _, err := other.ValidateToken(tok); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _, err := svc.GenerateToken(&models.Account{ID: 1}, "s")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	svc.now = time.Now
	if _, err := svc.ValidateToken(tok); !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_MissingSession(t *testing.T) {
	claims := &Claims{
		AccountID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "pucknotes",
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := newTestService().ValidateToken(tok); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for token without session id, got %v", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc", "abc", false},
		{"abc", "abc", false},
		{"  Bearer  abc ", "abc", false},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if (err != nil) != tt.wantErr {
			t.Errorf("ExtractBearerToken(%q) error = %v, wantErr %v", tt.header, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("expected password to match")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("expected wrong password to fail")
	}
}
