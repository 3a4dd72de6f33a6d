package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cseduardo/TiendaPromElec/internal/models"
)

type MongoProductStore struct {
	db *mongo.Database
}

func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{db: db}
}

func (s *MongoProductStore) collection() *mongo.Collection {
	return s.db.Collection("products")
}

func (s *MongoProductStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *MongoProductStore) Update(ctx context.Context, product *models.Product) error {
	res, err := s.collection().ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProductStore) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := s.collection().CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DecrementStock performs a conditional update so the read-check-write on
// stock is a single atomic step: the filter only matches while enough stock
// remains, which keeps stock >= 0 under concurrent placements.
func (s *MongoProductStore) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	filter := bson.M{
		"_id":   id,
		"stock": bson.M{"$gte": quantity},
	}
	update := bson.M{"$inc": bson.M{"stock": -quantity}}

	res, err := s.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

type MongoOrderStore struct {
	db *mongo.Database
}

func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{db: db}
}

func (s *MongoOrderStore) collection() *mongo.Collection {
	return s.db.Collection("orders")
}

func (s *MongoOrderStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *MongoOrderStore) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error) {
	return s.list(ctx, bson.M{"customerId": customerID})
}

func (s *MongoOrderStore) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})

	cursor, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoOrderStore) Add(ctx context.Context, order *models.Order) error {
	res, err := s.collection().InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (s *MongoOrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := s.collection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoOrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoOrderStore) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := s.collection().CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
