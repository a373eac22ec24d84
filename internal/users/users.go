package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"bookstore-service/internal/auth"
)

var (
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("user not found")
)

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
	return c.db.Collection("users")
}

func (c *Conf) InsertUser(ctx context.Context, nu NewUser) (User, error) {
	err := c.coll().FindOne(ctx, bson.M{"email": nu.Email}).Err()
	if err == nil {
		return User{}, ErrEmailTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	u := User{
		ID:           primitive.NewObjectID().Hex(),
		Email:        nu.Email,
		PasswordHash: string(hash),
		Role:         auth.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := c.coll().InsertOne(ctx, u); err != nil {
		return User{}, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user when the credentials match. A missing user
// and a wrong password report the same error so login probes learn nothing.
func (c *Conf) Authenticate(ctx context.Context, email, password string) (User, error) {
	var u User
	err := c.coll().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("fetching user by email: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (c *Conf) GetUserByID(ctx context.Context, userID string) (User, error) {
	var u User
	err := c.coll().FindOne(ctx, bson.M{"_id": userID}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("fetching user %s: %w", userID, err)
	}
	return u, nil
}

// ListUsers powers the admin dashboard. Password hashes never leave the
// store.
func (c *Conf) ListUsers(ctx context.Context) ([]User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"password_hash": 0})
	cur, err := c.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	var out []User
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return out, nil
}
