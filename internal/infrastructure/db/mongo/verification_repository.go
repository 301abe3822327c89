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

const verificationCollection = "verification_codes"

type VerificationCodeRepository struct {
	coll *mongo.Collection
}

func NewVerificationCodeRepository(db *mongo.Database) *VerificationCodeRepository {
	return &VerificationCodeRepository{coll: db.Collection(verificationCollection)}
}

// EnsureIndexes creates the TTL sweep on expires_at. Call once at startup.
func (r *VerificationCodeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("create verification code indexes: %w", err)
	}
	return nil
}

type mongoVerificationCode struct {
	Email     string    `bson:"email"`
	Code      string    `bson:"code"`
	Verified  bool      `bson:"verified"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// Replace drops all existing codes for the email and inserts the new one, so
// at most one active code per email exists.
func (r *VerificationCodeRepository) Replace(ctx context.Context, code *domain.VerificationCode) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"email": code.Email}); err != nil {
		return fmt.Errorf("delete verification codes: %w", err)
	}

	doc := mongoVerificationCode{
		Email:     code.Email,
		Code:      code.Code,
		Verified:  code.Verified,
		ExpiresAt: code.ExpiresAt,
		CreatedAt: code.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert verification code: %w", err)
	}
	return nil
}

func (r *VerificationCodeRepository) Find(ctx context.Context, email string) (*domain.VerificationCode, error) {
	var doc mongoVerificationCode
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrInvalidCode
		}
		return nil, fmt.Errorf("find verification code: %w", err)
	}
	return &domain.VerificationCode{
		Email:     doc.Email,
		Code:      doc.Code,
		Verified:  doc.Verified,
		ExpiresAt: doc.ExpiresAt,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (r *VerificationCodeRepository) MarkVerified(ctx context.Context, email string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"verified": true}})
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidCode
	}
	return nil
}

func (r *VerificationCodeRepository) Delete(ctx context.Context, email string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"email": email}); err != nil {
		return fmt.Errorf("delete verification codes: %w", err)
	}
	return nil
}
