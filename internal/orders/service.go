// Package orders implements the order-placement workflow: per-line stock
// validation against the catalog, price snapshotting and partial-success
// accounting.
package orders

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cseduardo/TiendaPromElec/internal/models"
	"github.com/cseduardo/TiendaPromElec/internal/store"
)

const StatusPending = "Pending"

var ErrNoLines = errors.New("at least one order line is required")

// NoValidLinesError reports a placement where every requested line was
// rejected. It carries the per-line warnings for the response body.
type NoValidLinesError struct {
	Warnings []string
}

func (e *NoValidLinesError) Error() string {
	return "no requested line could be fulfilled"
}

// Placement is a possibly-partial success: an accepted order plus warnings
// for any requested lines that were skipped.
type Placement struct {
	Order    models.Order `json:"order"`
	Warnings []string     `json:"warnings"`
}

type Service struct {
	products store.ProductStore
	orders   store.OrderStore
}

func NewService(products store.ProductStore, orders store.OrderStore) *Service {
	return &Service{products: products, orders: orders}
}

// Place runs the placement workflow for the given customer. Lines are
// processed independently and in input order. Each accepted line's stock
// decrement is committed immediately; a later line's rejection does not roll
// earlier decrements back. That per-line commit is the documented contract,
// not an accident.
func (s *Service) Place(ctx context.Context, customerID primitive.ObjectID, requested []RequestedLine) (*Placement, error) {
	if len(requested) == 0 {
		return nil, ErrNoLines
	}

	snapshot, err := s.snapshotProducts(ctx, requested)
	if err != nil {
		return nil, err
	}

	plan := planLines(snapshot, requested)

	applied := make([]models.OrderLine, 0, len(plan.Accepted))
	warnings := plan.Warnings

	for _, line := range plan.Accepted {
		ok, err := s.products.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Lost the race against a concurrent placement; the line is
			// demoted to a warning like any other stock shortage.
			available := 0
			if current, err := s.products.GetByID(ctx, line.ProductID); err == nil {
				available = current.Stock
			}
			warnings = append(warnings,
				insufficientStockWarning(snapshot[line.ProductID].Name, line.Quantity, available))
			continue
		}
		applied = append(applied, line)
	}

	if len(applied) == 0 {
		return nil, &NoValidLinesError{Warnings: warnings}
	}

	order := models.Order{
		OrderDate:  time.Now().UTC(),
		Status:     StatusPending,
		CustomerID: customerID,
		Total:      orderTotal(applied),
		Lines:      applied,
	}

	if err := s.orders.Add(ctx, &order); err != nil {
		return nil, err
	}

	log.Printf("[ORDER] [INFO] order %s placed for customer %s (%d lines, %d warnings)",
		order.ID.Hex(), customerID.Hex(), len(applied), len(warnings))

	return &Placement{Order: order, Warnings: warnings}, nil
}

func (s *Service) snapshotProducts(ctx context.Context, requested []RequestedLine) (map[primitive.ObjectID]models.Product, error) {
	snapshot := make(map[primitive.ObjectID]models.Product, len(requested))
	for _, req := range requested {
		if _, seen := snapshot[req.ProductID]; seen {
			continue
		}
		product, err := s.products.GetByID(ctx, req.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		snapshot[req.ProductID] = *product
	}
	return snapshot, nil
}
