package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/payflex/banking-system/internal/core/domain"
)

const refreshTokenCollection = "refresh_tokens"

// RefreshTokenRepository stores refresh tokens in their own collection, one
// live row per user. The unique user_id index backs that invariant even if
// the delete-then-insert application path is ever bypassed.
type RefreshTokenRepository struct {
	coll *mongo.Collection
}

func NewRefreshTokenRepository(db *mongo.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{coll: db.Collection(refreshTokenCollection)}
}

// EnsureIndexes creates the token/user uniqueness constraints and the TTL
// sweep on expires_at. Call once at startup.
func (r *RefreshTokenRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return fmt.Errorf("create refresh token indexes: %w", err)
	}
	return nil
}

type mongoRefreshToken struct {
	Token     string    `bson:"token"`
	UserID    string    `bson:"user_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// Save removes any live token for the user before inserting the new one, so
// at most one row per user exists afterwards.
func (r *RefreshTokenRepository) Save(ctx context.Context, token, userID string, expiresAt time.Time) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete refresh tokens: %w", err)
	}

	doc := mongoRefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// FindUserID resolves a token to its owner. Rows past expiry are rejected
// even when the TTL sweep has not removed them yet.
func (r *RefreshTokenRepository) FindUserID(ctx context.Context, token string) (string, error) {
	var doc mongoRefreshToken
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", domain.ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("find refresh token: %w", err)
	}
	if !time.Now().UTC().Before(doc.ExpiresAt) {
		return "", domain.ErrInvalidRefreshToken
	}
	return doc.UserID, nil
}

// Consume atomically claims the token. FindOneAndDelete keyed by the token
// value is the single atomic step of rotation: a concurrent second redemption
// finds no document and fails, it can never mint a second pair.
func (r *RefreshTokenRepository) Consume(ctx context.Context, token string) (string, error) {
	var doc mongoRefreshToken
	err := r.coll.FindOneAndDelete(ctx, bson.M{"token": token}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", domain.ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("consume refresh token: %w", err)
	}
	if !time.Now().UTC().Before(doc.ExpiresAt) {
		return "", domain.ErrInvalidRefreshToken
	}
	return doc.UserID, nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"token": token}); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
