package orders

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cseduardo/TiendaPromElec/internal/models"
)

// RequestedLine is one product/quantity pair from the client. The unit price
// is never taken from the request; it is looked up from the catalog.
type RequestedLine struct {
	ProductID primitive.ObjectID
	Quantity  int
}

type linePlan struct {
	Accepted []models.OrderLine
	Warnings []string
}

// planLines folds the requested lines over a catalog snapshot, in input
// order. A line that cannot be satisfied only produces a warning; it never
// aborts the rest of the request. Repeated product ids draw down the same
// snapshot stock so a request cannot accept more than is available in total.
func planLines(snapshot map[primitive.ObjectID]models.Product, requested []RequestedLine) linePlan {
	remaining := make(map[primitive.ObjectID]int, len(snapshot))
	for id, product := range snapshot {
		remaining[id] = product.Stock
	}

	plan := linePlan{
		Accepted: make([]models.OrderLine, 0, len(requested)),
		Warnings: make([]string, 0),
	}

	for _, req := range requested {
		product, ok := snapshot[req.ProductID]
		if !ok {
			plan.Warnings = append(plan.Warnings, missingProductWarning(req.ProductID))
			continue
		}

		if remaining[req.ProductID] < req.Quantity {
			plan.Warnings = append(plan.Warnings,
				insufficientStockWarning(product.Name, req.Quantity, remaining[req.ProductID]))
			continue
		}

		remaining[req.ProductID] -= req.Quantity
		plan.Accepted = append(plan.Accepted, models.OrderLine{
			ID:        primitive.NewObjectID(),
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			UnitPrice: product.Price,
		})
	}

	return plan
}

func orderTotal(lines []models.OrderLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += float64(line.Quantity) * line.UnitPrice
	}
	return total
}

func missingProductWarning(id primitive.ObjectID) string {
	return fmt.Sprintf("product %s does not exist and was skipped", id.Hex())
}

func insufficientStockWarning(name string, requested, available int) string {
	return fmt.Sprintf("product %s: insufficient stock (requested %d, available %d)", name, requested, available)
}
