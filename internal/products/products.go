package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("product not found")

type Conf struct {
	db *mongo.Database
}

func NewConf(db *mongo.Database) (*Conf, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Conf{db: db}, nil
}

func (c *Conf) coll() *mongo.Collection {
	return c.db.Collection("products")
}

func (c *Conf) InsertProduct(ctx context.Context, np NewProduct) (Product, error) {
	now := time.Now().UTC()
	p := Product{
		ID:        primitive.NewObjectID().Hex(),
		Title:     np.Title,
		Author:    np.Author,
		ImageURL:  np.ImageURL,
		Price:     np.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := c.coll().InsertOne(ctx, p); err != nil {
		return Product{}, fmt.Errorf("inserting product: %w", err)
	}
	return p, nil
}

func (c *Conf) GetProductByID(ctx context.Context, productID string) (Product, error) {
	var p Product
	err := c.coll().FindOne(ctx, bson.M{"_id": productID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("fetching product %s: %w", productID, err)
	}
	return p, nil
}

func (c *Conf) ListProducts(ctx context.Context) ([]Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := c.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	var out []Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}
	return out, nil
}

// DeleteProduct removes a catalog entry. Historical orders keep their
// product id; listings render a placeholder once the product is gone.
func (c *Conf) DeleteProduct(ctx context.Context, productID string) error {
	res, err := c.coll().DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return fmt.Errorf("deleting product %s: %w", productID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
