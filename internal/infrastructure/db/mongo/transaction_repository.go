package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/payflex/banking-system/internal/core/domain"
)

const transactionCollection = "transactions"

type TransactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{coll: db.Collection(transactionCollection)}
}

type mongoTransaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	Status    string             `bson:"status"`
	Amount    int64              `bson:"amount"`
	Currency  string             `bson:"currency"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *TransactionRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cur.Close(ctx)

	transactions := []domain.Transaction{}
	for cur.Next(ctx) {
		var doc mongoTransaction
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		transactions = append(transactions, fromMongoTransaction(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*domain.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTransactionNotFound
	}

	var doc mongoTransaction
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	tx := fromMongoTransaction(&doc)
	return &tx, nil
}

func fromMongoTransaction(doc *mongoTransaction) domain.Transaction {
	return domain.Transaction{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID,
		Name:      doc.Name,
		Type:      domain.TransactionType(doc.Type),
		Status:    domain.TransactionStatus(doc.Status),
		Amount:    doc.Amount,
		Currency:  doc.Currency,
		CreatedAt: doc.CreatedAt,
	}
}
