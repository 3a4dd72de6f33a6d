package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cseduardo/TiendaPromElec/internal/auth"
	"github.com/cseduardo/TiendaPromElec/internal/models"
)

func TestCanAccessOrder(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	order := models.Order{ID: primitive.NewObjectID(), CustomerID: owner}

	tests := []struct {
		name     string
		identity auth.Identity
		want     bool
	}{
		{"owner can read own order", auth.Identity{ID: owner, Role: auth.RoleClient}, true},
		{"admin can read any order", auth.Identity{ID: stranger, Role: auth.RoleAdmin}, true},
		{"stranger is forbidden", auth.Identity{ID: stranger, Role: auth.RoleClient}, false},
	}

	for _, tt := range tests {
		if got := canAccessOrder(tt.identity, order); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
