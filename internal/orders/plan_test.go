package orders

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cseduardo/TiendaPromElec/internal/models"
)

func snapshotOf(products ...models.Product) map[primitive.ObjectID]models.Product {
	snapshot := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		snapshot[p.ID] = p
	}
	return snapshot
}

func TestPlanLinesEveryLineRejected(t *testing.T) {
	lowStock := models.Product{ID: primitive.NewObjectID(), Name: "Cable", Price: 4.5, Stock: 3}
	missing := primitive.NewObjectID()

	plan := planLines(snapshotOf(lowStock), []RequestedLine{
		{ProductID: lowStock.ID, Quantity: 100},
		{ProductID: missing, Quantity: 1},
	})

	if len(plan.Accepted) != 0 {
		t.Fatalf("expected no accepted lines, got %d", len(plan.Accepted))
	}
	if len(plan.Warnings) != 2 {
		t.Fatalf("expected one warning per rejected line, got %d", len(plan.Warnings))
	}
	if !strings.Contains(plan.Warnings[0], "requested 100, available 3") {
		t.Errorf("unexpected stock warning: %s", plan.Warnings[0])
	}
	if !strings.Contains(plan.Warnings[1], missing.Hex()) {
		t.Errorf("missing-product warning should name the id, got: %s", plan.Warnings[1])
	}
}

func TestPlanLinesPartialSuccess(t *testing.T) {
	valid := models.Product{ID: primitive.NewObjectID(), Name: "Foco LED", Price: 25, Stock: 5}
	shortage := models.Product{ID: primitive.NewObjectID(), Name: "Taladro", Price: 900, Stock: 3}

	plan := planLines(snapshotOf(valid, shortage), []RequestedLine{
		{ProductID: valid.ID, Quantity: 1},
		{ProductID: shortage.ID, Quantity: 100},
	})

	if len(plan.Accepted) != 1 {
		t.Fatalf("expected exactly one accepted line, got %d", len(plan.Accepted))
	}
	line := plan.Accepted[0]
	if line.ProductID != valid.ID || line.Quantity != 1 {
		t.Errorf("unexpected accepted line: %+v", line)
	}
	if line.UnitPrice != 25 {
		t.Errorf("expected snapshotted unit price 25, got %v", line.UnitPrice)
	}
	if len(plan.Warnings) != 1 || !strings.Contains(plan.Warnings[0], "Taladro") {
		t.Errorf("expected a single warning for the shortage line, got %v", plan.Warnings)
	}
	if got := orderTotal(plan.Accepted); got != 25 {
		t.Errorf("expected total 25, got %v", got)
	}
}

func TestPlanLinesRepeatedProductDrawsDownStock(t *testing.T) {
	product := models.Product{ID: primitive.NewObjectID(), Name: "Extensión", Price: 12, Stock: 1}

	plan := planLines(snapshotOf(product), []RequestedLine{
		{ProductID: product.ID, Quantity: 1},
		{ProductID: product.ID, Quantity: 1},
	})

	if len(plan.Accepted) != 1 {
		t.Fatalf("expected only one of two repeated lines accepted, got %d", len(plan.Accepted))
	}
	if len(plan.Warnings) != 1 || !strings.Contains(plan.Warnings[0], "available 0") {
		t.Errorf("second line should see the drawn-down stock, got %v", plan.Warnings)
	}
}

func TestOrderTotalSumsQuantityTimesUnitPrice(t *testing.T) {
	lines := []models.OrderLine{
		{Quantity: 2, UnitPrice: 10},
		{Quantity: 3, UnitPrice: 1.5},
	}
	if got := orderTotal(lines); got != 24.5 {
		t.Fatalf("expected total 24.5, got %v", got)
	}
}
