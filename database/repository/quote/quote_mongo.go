package quoteRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventra/database"
	"eventra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoQuoteRepo implements QuoteRepository using MongoDB. Accepting a quote
// touches four collections, so the repo holds handles to all of them.
type MongoQuoteRepo struct {
	coll        *mongo.Collection
	bookingColl *mongo.Collection
	msgColl     *mongo.Collection
	convColl    *mongo.Collection
}

// NewMongoQuoteRepo creates a QuoteRepository backed by MongoDB.
func NewMongoQuoteRepo() QuoteRepository {
	db := database.DB()
	repo := &MongoQuoteRepo{
		coll:        db.Collection("quotes"),
		bookingColl: db.Collection("bookings"),
		msgColl:     db.Collection("messages"),
		convColl:    db.Collection("conversations"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create quote indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoQuoteRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a quote; nil, nil when absent.
func (r *MongoQuoteRepo) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	var quote models.Quote
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&quote); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch quote %s: %w", id, err)
	}
	return &quote, nil
}

// ListByConversation returns the thread's quotes, newest first.
func (r *MongoQuoteRepo) ListByConversation(ctx context.Context, conversationID string) ([]models.Quote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes for conversation %s: %w", conversationID, err)
	}
	defer cursor.Close(ctx)

	var quotes []models.Quote
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, fmt.Errorf("failed to decode quotes: %w", err)
	}
	return quotes, nil
}

// CreateTx inserts quote + message and bumps the customer's unread counter.
func (r *MongoQuoteRepo) CreateTx(ctx context.Context, quote *models.Quote, msg *models.Message) error {
	client := r.coll.Database().Client()

	err := database.WithTransaction(ctx, client, func(sc mongo.SessionContext) error {
		now := time.Now()
		quote.CreatedAt = now
		quote.UpdatedAt = now
		msg.CreatedAt = now

		if _, err := r.coll.InsertOne(sc, quote); err != nil {
			return fmt.Errorf("insert quote failed: %w", err)
		}
		if _, err := r.msgColl.InsertOne(sc, msg); err != nil {
			return fmt.Errorf("insert quote message failed: %w", err)
		}

		res, err := r.convColl.UpdateOne(sc, bson.M{"id": quote.ConversationID}, bson.M{
			"$set": bson.M{"last_message_at": now, "updated_at": now},
			"$inc": bson.M{"unread_customer": 1},
		})
		if err != nil {
			return fmt.Errorf("bump conversation failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("conversation %s not found", quote.ConversationID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("quote create transaction failed: %w", err)
	}
	return nil
}

// AcceptTx performs the accept transition. The status filter is the
// optimistic guard: whichever transaction matches first wins, the loser sees
// ErrNotPending and nothing else changes.
func (r *MongoQuoteRepo) AcceptTx(ctx context.Context, quoteID string, booking *models.Booking, msg *models.Message) error {
	client := r.coll.Database().Client()

	err := database.WithTransaction(ctx, client, func(sc mongo.SessionContext) error {
		now := time.Now()

		res, err := r.coll.UpdateOne(sc,
			bson.M{"id": quoteID, "status": models.QuoteStatusPending},
			bson.M{"$set": bson.M{
				"status":     models.QuoteStatusAccepted,
				"booking_id": booking.ID,
				"updated_at": now,
			}},
		)
		if err != nil {
			return fmt.Errorf("accept quote failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotPending
		}

		booking.CreatedAt = now
		booking.UpdatedAt = now
		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		msg.CreatedAt = now
		if _, err := r.msgColl.InsertOne(sc, msg); err != nil {
			return fmt.Errorf("insert system message failed: %w", err)
		}

		if _, err := r.convColl.UpdateOne(sc, bson.M{"id": msg.ConversationID}, bson.M{
			"$set": bson.M{"last_message_at": now, "updated_at": now, "booking_id": booking.ID},
			"$inc": bson.M{"unread_vendor": 1},
		}); err != nil {
			return fmt.Errorf("bump conversation failed: %w", err)
		}
		return nil
	})
	if errors.Is(err, ErrNotPending) {
		return ErrNotPending
	}
	if err != nil {
		return fmt.Errorf("quote accept transaction failed: %w", err)
	}
	return nil
}

// DeclineTx performs the decline transition under the same pending guard.
func (r *MongoQuoteRepo) DeclineTx(ctx context.Context, quoteID string, msg *models.Message) error {
	client := r.coll.Database().Client()

	err := database.WithTransaction(ctx, client, func(sc mongo.SessionContext) error {
		now := time.Now()

		res, err := r.coll.UpdateOne(sc,
			bson.M{"id": quoteID, "status": models.QuoteStatusPending},
			bson.M{"$set": bson.M{
				"status":     models.QuoteStatusDeclined,
				"updated_at": now,
			}},
		)
		if err != nil {
			return fmt.Errorf("decline quote failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotPending
		}

		msg.CreatedAt = now
		if _, err := r.msgColl.InsertOne(sc, msg); err != nil {
			return fmt.Errorf("insert system message failed: %w", err)
		}

		if _, err := r.convColl.UpdateOne(sc, bson.M{"id": msg.ConversationID}, bson.M{
			"$set": bson.M{"last_message_at": now, "updated_at": now},
			"$inc": bson.M{"unread_vendor": 1},
		}); err != nil {
			return fmt.Errorf("bump conversation failed: %w", err)
		}
		return nil
	})
	if errors.Is(err, ErrNotPending) {
		return ErrNotPending
	}
	if err != nil {
		return fmt.Errorf("quote decline transaction failed: %w", err)
	}
	return nil
}
