package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cseduardo/TiendaPromElec/internal/models"
)

func testCustomer() models.Customer {
	return models.Customer{
		ID:       primitive.NewObjectID(),
		FullName: "Eduardo Salas",
		Email:    "eduardo@example.com",
		Role:     RoleClient,
	}
}

func TestIssueAndValidateRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 2*time.Hour)
	customer := testCustomer()

	token, err := svc.Issue(customer)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	identity, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if identity.ID != customer.ID {
		t.Errorf("expected id %s, got %s", customer.ID.Hex(), identity.ID.Hex())
	}
	if identity.Role != RoleClient {
		t.Errorf("expected role %q, got %q", RoleClient, identity.Role)
	}
	if identity.IsAdmin() {
		t.Error("client identity must not report as admin")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(testCustomer())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got: %v", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(testCustomer())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got: %v", err)
	}
}

func TestValidateMalformedToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Validate(raw); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Validate(%q): expected ErrTokenMalformed, got: %v", raw, err)
		}
	}
}

func TestValidateMissingClaims(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := svc.Validate(raw); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for token without sub/role, got: %v", err)
	}
}
