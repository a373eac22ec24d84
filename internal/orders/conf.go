package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Conf is the Mongo-backed order ledger. Orders are inserted once and only
// ever mutated by MarkIfPending; nothing deletes them.
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
	return c.db.Collection("orders")
}

func (c *Conf) InsertOrder(ctx context.Context, o *Order) error {
	if _, err := c.coll().InsertOne(ctx, o); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

// MarkIfPending flips the order matching razorpayOrderID to the given
// terminal status, but only while it is still pending. The guard and the
// write are one FindOneAndUpdate, so concurrent webhook deliveries cannot
// both win; every caller after the first gets (nil, nil).
func (c *Conf) MarkIfPending(ctx context.Context, razorpayOrderID string, to Status, paymentID string) (*Order, error) {
	set := bson.M{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if paymentID != "" {
		set["razorpay_payment_id"] = paymentID
	}

	filter := bson.M{
		"razorpay_order_id": razorpayOrderID,
		"status":            StatusPending,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o Order
	err := c.coll().FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// No pending order with that reference: either we never
			// tracked it or it already reached a terminal status.
			return nil, nil
		}
		return nil, fmt.Errorf("updating order status: %w", err)
	}
	return &o, nil
}

func (c *Conf) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := c.coll().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing orders for user %s: %w", userID, err)
	}
	var out []Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decoding orders: %w", err)
	}
	return out, nil
}

func (c *Conf) ListAll(ctx context.Context) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := c.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	var out []Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decoding orders: %w", err)
	}
	return out, nil
}
