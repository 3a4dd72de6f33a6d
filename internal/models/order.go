package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderLine is one product entry within an order. UnitPrice is snapshotted at
// placement time and does not follow later catalog price changes.
type OrderLine struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	UnitPrice float64            `bson:"unitPrice" json:"unitPrice"`
}

// Order is the persisted order aggregate. Lines are embedded so the order and
// its lines land in a single document insert. CustomerID always comes from the
// authenticated identity, never from client input.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderDate  time.Time          `bson:"orderDate" json:"orderDate"`
	Status     string             `bson:"status" json:"status"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	Total      float64            `bson:"total" json:"total"`
	Lines      []OrderLine        `bson:"lines" json:"lines"`
}
