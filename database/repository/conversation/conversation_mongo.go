package conversationRepo

import (
	"context"
	"fmt"
	"time"

	"eventra/database"
	"eventra/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConversationRepo implements ConversationRepository using MongoDB.
type MongoConversationRepo struct {
	coll *mongo.Collection
}

// NewMongoConversationRepo creates a ConversationRepository backed by MongoDB.
func NewMongoConversationRepo() ConversationRepository {
	coll := database.DB().Collection("conversations")
	repo := &MongoConversationRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create conversation indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes backs the one-conversation-per-pair invariant with a unique
// compound index; concurrent upserts cannot create duplicate threads.
func (r *MongoConversationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "customer_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "last_message_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert returns the conversation for the pair, creating it on first contact.
func (r *MongoConversationRepo) Upsert(ctx context.Context, vendorID, customerID, bookingID string) (*models.Conversation, error) {
	now := time.Now()

	set := bson.M{"updated_at": now}
	if bookingID != "" {
		set["booking_id"] = bookingID
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"id":              uuid.New().String(),
			"vendor_id":       vendorID,
			"customer_id":     customerID,
			"unread_vendor":   0,
			"unread_customer": 0,
			"created_at":      now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var conv models.Conversation
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"vendor_id": vendorID, "customer_id": customerID}, update, opts).Decode(&conv)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert conversation for pair (%s, %s): %w", vendorID, customerID, err)
	}
	return &conv, nil
}

// GetByID retrieves a conversation; nil, nil when absent.
func (r *MongoConversationRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&conv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch conversation %s: %w", id, err)
	}
	return &conv, nil
}

// MarkRead zeroes the reader's unread counter. Reset-to-zero is commutative,
// so concurrent calls are idempotent.
func (r *MongoConversationRepo) MarkRead(ctx context.Context, id string, role models.Role) error {
	field := "unread_customer"
	if role == models.RoleVendor {
		field = "unread_vendor"
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{field: 0, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to mark conversation %s read: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("conversation %s not found", id)
	}
	return nil
}

// ListByParty returns conversations ordered by last activity descending;
// Mongo sorts missing last_message_at values lowest, which lands threads
// without messages at the end.
func (r *MongoConversationRepo) ListByParty(ctx context.Context, partyID string, role models.Role) ([]models.Conversation, error) {
	field := "customer_id"
	if role == models.RoleVendor {
		field = "vendor_id"
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "last_message_at", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cursor, err := r.coll.Find(ctx, bson.M{field: partyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations for %s: %w", partyID, err)
	}
	defer cursor.Close(ctx)

	var convs []models.Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %w", err)
	}
	return convs, nil
}

// UnreadTotal sums the party's unread counters across its threads.
func (r *MongoConversationRepo) UnreadTotal(ctx context.Context, partyID string, role models.Role) (int, error) {
	matchField := "customer_id"
	sumField := "$unread_customer"
	if role == models.RoleVendor {
		matchField = "vendor_id"
		sumField = "$unread_vendor"
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{matchField: partyID}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": sumField}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate unread total for %s: %w", partyID, err)
	}
	defer cursor.Close(ctx)

	var out []struct {
		Total int `bson:"total"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, fmt.Errorf("failed to decode unread total: %w", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}
