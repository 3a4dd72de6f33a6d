package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cseduardo/TiendaPromElec/internal/models"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
)

// Identity is the validated caller, extracted once at the request boundary
// and passed by parameter everywhere below it.
type Identity struct {
	ID   primitive.ObjectID
	Role string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// TokenService issues and validates stateless signed tokens. There is no
// server-side session store; an issued token stays valid until its expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(customer models.Customer) (string, error) {
	claims := jwt.MapClaims{
		"sub":  customer.ID.Hex(),
		"name": customer.FullName,
		"role": customer.Role,
		"exp":  time.Now().Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and verifies a raw token. Failures come back as one of the
// typed sentinel errors so callers never have to inspect jwt internals.
func (s *TokenService) Validate(raw string) (Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, ErrTokenSignature
		default:
			return Identity{}, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return Identity{}, ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrTokenMalformed
	}

	subject, _ := claims["sub"].(string)
	if strings.TrimSpace(subject) == "" {
		return Identity{}, ErrTokenMalformed
	}

	id, err := primitive.ObjectIDFromHex(subject)
	if err != nil {
		return Identity{}, ErrTokenMalformed
	}

	role, _ := claims["role"].(string)
	if role == "" {
		return Identity{}, ErrTokenMalformed
	}

	return Identity{ID: id, Role: role}, nil
}
