package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventra/database"
	"eventra/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB. Inquiry
// creation and date proposals write across collections, so the repo holds
// the conversation and message collections too.
type MongoBookingRepo struct {
	coll     *mongo.Collection
	convColl *mongo.Collection
	msgColl  *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	repo := &MongoBookingRepo{
		coll:     db.Collection("bookings"),
		convColl: db.Collection("conversations"),
		msgColl:  db.Collection("messages"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a booking; nil, nil when absent.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// ListByParty returns the caller's bookings, newest first.
func (r *MongoBookingRepo) ListByParty(ctx context.Context, partyID string, role models.Role) ([]models.Booking, error) {
	field := "customer_id"
	if role == models.RoleVendor {
		field = "vendor_id"
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{field: partyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for %s: %w", partyID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// CreateFromInquiryTx inserts the booking and upserts the conversation for
// the pair, linking the new booking onto the thread.
func (r *MongoBookingRepo) CreateFromInquiryTx(ctx context.Context, booking *models.Booking) (*models.Conversation, error) {
	client := r.coll.Database().Client()

	var conv models.Conversation
	err := database.WithTransaction(ctx, client, func(sc mongo.SessionContext) error {
		now := time.Now()
		booking.CreatedAt = now
		booking.UpdatedAt = now

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		update := bson.M{
			"$set": bson.M{"booking_id": booking.ID, "updated_at": now},
			"$setOnInsert": bson.M{
				"id":              uuid.New().String(),
				"vendor_id":       booking.VendorID,
				"customer_id":     booking.CustomerID,
				"unread_vendor":   0,
				"unread_customer": 0,
				"created_at":      now,
			},
		}
		opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
		filter := bson.M{"vendor_id": booking.VendorID, "customer_id": booking.CustomerID}
		if err := r.convColl.FindOneAndUpdate(sc, filter, update, opts).Decode(&conv); err != nil {
			return fmt.Errorf("upsert conversation failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("inquiry transaction failed: %w", err)
	}
	return &conv, nil
}

// UpdateStatus transitions the booking under an optimistic status guard.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus, confirmedAt *time.Time) error {
	set := bson.M{"status": to, "updated_at": time.Now()}
	if confirmedAt != nil {
		set["confirmed_at"] = *confirmedAt
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": bson.M{"$in": from}},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrStateConflict
	}
	return nil
}

// ProposeDateTx stages the proposed date and appends the date_proposal
// message in one transaction. The guard rejects bookings that already have
// an event date or a live proposal.
func (r *MongoBookingRepo) ProposeDateTx(ctx context.Context, bookingID, proposedDate string, msg *models.Message) error {
	client := r.coll.Database().Client()

	err := database.WithTransaction(ctx, client, func(sc mongo.SessionContext) error {
		now := time.Now()

		res, err := r.coll.UpdateOne(sc,
			bson.M{
				"id":            bookingID,
				"event_date":    bson.M{"$in": bson.A{nil, ""}},
				"proposed_date": bson.M{"$in": bson.A{nil, ""}},
			},
			bson.M{"$set": bson.M{"proposed_date": proposedDate, "updated_at": now}},
		)
		if err != nil {
			return fmt.Errorf("stage proposed date failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStateConflict
		}

		msg.CreatedAt = now
		if _, err := r.msgColl.InsertOne(sc, msg); err != nil {
			return fmt.Errorf("insert date proposal message failed: %w", err)
		}

		if _, err := r.convColl.UpdateOne(sc, bson.M{"id": msg.ConversationID}, bson.M{
			"$set": bson.M{"last_message_at": now, "updated_at": now},
			"$inc": bson.M{"unread_customer": 1},
		}); err != nil {
			return fmt.Errorf("bump conversation failed: %w", err)
		}
		return nil
	})
	if errors.Is(err, ErrStateConflict) {
		return ErrStateConflict
	}
	if err != nil {
		return fmt.Errorf("date proposal transaction failed: %w", err)
	}
	return nil
}

// AcceptProposedDate promotes proposed_date into event_date atomically via a
// pipeline update, so the value cannot change between read and write.
func (r *MongoBookingRepo) AcceptProposedDate(ctx context.Context, bookingID string) (*models.Booking, error) {
	filter := bson.M{
		"id":            bookingID,
		"proposed_date": bson.M{"$nin": bson.A{nil, ""}},
	}
	pipeline := bson.A{
		bson.M{"$set": bson.M{"event_date": "$proposed_date", "updated_at": time.Now()}},
		bson.M{"$unset": "proposed_date"},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrStateConflict
		}
		return nil, fmt.Errorf("accept proposed date failed: %w", err)
	}
	return &booking, nil
}

// DeclineProposedDate clears a live proposal.
func (r *MongoBookingRepo) DeclineProposedDate(ctx context.Context, bookingID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": bookingID, "proposed_date": bson.M{"$nin": bson.A{nil, ""}}},
		bson.M{
			"$unset": bson.M{"proposed_date": ""},
			"$set":   bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("decline proposed date failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrStateConflict
	}
	return nil
}
