package messageRepo

import (
	"context"
	"fmt"
	"time"

	"eventra/database"
	"eventra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMessageRepo implements MessageRepository using MongoDB. It holds the
// conversations collection as well because appending a message and bumping
// the thread commit together.
type MongoMessageRepo struct {
	coll     *mongo.Collection
	convColl *mongo.Collection
}

// NewMongoMessageRepo creates a MessageRepository backed by MongoDB.
func NewMongoMessageRepo() MessageRepository {
	db := database.DB()
	repo := &MongoMessageRepo{
		coll:     db.Collection("messages"),
		convColl: db.Collection("conversations"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create message indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoMessageRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// AppendTx inserts the message and bumps the conversation atomically. The
// message timestamp is assigned here so it reflects commit order.
func (r *MongoMessageRepo) AppendTx(ctx context.Context, msg *models.Message, senderIsVendor bool) error {
	client := r.coll.Database().Client()

	unreadField := "unread_customer"
	if !senderIsVendor {
		unreadField = "unread_vendor"
	}

	err := database.WithTransaction(ctx, client, func(sc mongo.SessionContext) error {
		now := time.Now()
		msg.CreatedAt = now

		if _, err := r.coll.InsertOne(sc, msg); err != nil {
			return fmt.Errorf("insert message failed: %w", err)
		}

		res, err := r.convColl.UpdateOne(sc, bson.M{"id": msg.ConversationID}, bson.M{
			"$set": bson.M{"last_message_at": now, "updated_at": now},
			"$inc": bson.M{unreadField: 1},
		})
		if err != nil {
			return fmt.Errorf("bump conversation failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("conversation %s not found", msg.ConversationID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("message append transaction failed: %w", err)
	}
	return nil
}

// ListByConversation returns the log ascending by creation time.
func (r *MongoMessageRepo) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for conversation %s: %w", conversationID, err)
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return msgs, nil
}
