package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cseduardo/TiendaPromElec/internal/auth"
	"github.com/cseduardo/TiendaPromElec/internal/models"
)

func newTestRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/protected", Authenticated(tokens), func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID.Hex(), "role": identity.Role})
	})
	r.GET("/admin", AdminOnly(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func issueFor(t *testing.T, tokens *auth.TokenService, role string) string {
	t.Helper()
	token, err := tokens.Issue(models.Customer{
		ID:       primitive.NewObjectID(),
		FullName: "Test Customer",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("token issue failed: %v", err)
	}
	return token
}

func TestAuthenticatedMissingToken(t *testing.T) {
	r := newTestRouter(auth.NewTokenService("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticatedRejectsBadHeaderFormat(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	r := newTestRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", issueFor(t, tokens, auth.RoleClient))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a header without Bearer prefix, got %d", w.Code)
	}
}

func TestAuthenticatedAcceptsValidToken(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	r := newTestRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, tokens, auth.RoleClient))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestAuthenticatedRejectsExpiredToken(t *testing.T) {
	expired := auth.NewTokenService("secret", -time.Minute)
	r := newTestRouter(auth.NewTokenService("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, expired, auth.RoleClient))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an expired token, got %d", w.Code)
	}
}

func TestAdminOnlyRejectsClientRole(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	r := newTestRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, tokens, auth.RoleClient))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a client on an admin route, got %d", w.Code)
	}
}

func TestAdminOnlyAcceptsAdminRole(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	r := newTestRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, tokens, auth.RoleAdmin))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for an admin, got %d", w.Code)
	}
}
