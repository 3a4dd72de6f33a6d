// Package store defines the storage ports the order workflow depends on,
// plus their MongoDB adapters. The catalog collaborator owns products and
// categories; order placement only reads products and decrements stock.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cseduardo/TiendaPromElec/internal/models"
)

var ErrNotFound = errors.New("not found")

// ProductStore is the product surface shared with the catalog collaborator.
// Order placement itself only calls GetByID and DecrementStock; Update and
// Exists round out the contract for catalog maintenance callers.
type ProductStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	// DecrementStock atomically subtracts quantity from the product's stock
	// and reports false when the remaining stock is insufficient. Two
	// concurrent callers can never drive stock below zero.
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error)
}

type OrderStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error)
	Add(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Exists serves callers that only need a presence check without loading
	// the order document.
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}
