package quote

import (
	"context"
	"sync"
	"testing"
	"time"

	"eventra/models"
	"eventra/services/fault"
	"eventra/services/notification"

	quoteRepo "eventra/database/repository/quote"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuoteRepo reproduces the pending-guard semantics of the Mongo
// implementation in memory.
type fakeQuoteRepo struct {
	mu       sync.Mutex
	quotes   map[string]*models.Quote
	bookings map[string]*models.Booking
	messages []models.Message
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{
		quotes:   make(map[string]*models.Quote),
		bookings: make(map[string]*models.Booking),
	}
}

func (f *fakeQuoteRepo) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuoteRepo) ListByConversation(ctx context.Context, conversationID string) ([]models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Quote
	for _, q := range f.quotes {
		if q.ConversationID == conversationID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuoteRepo) CreateTx(ctx context.Context, q *models.Quote, msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now
	cp := *q
	f.quotes[q.ID] = &cp
	msg.CreatedAt = now
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeQuoteRepo) AcceptTx(ctx context.Context, quoteID string, booking *models.Booking, msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[quoteID]
	if !ok || q.Status != models.QuoteStatusPending {
		return quoteRepo.ErrNotPending
	}
	q.Status = models.QuoteStatusAccepted
	q.BookingID = booking.ID
	cp := *booking
	f.bookings[booking.ID] = &cp
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeQuoteRepo) DeclineTx(ctx context.Context, quoteID string, msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[quoteID]
	if !ok || q.Status != models.QuoteStatusPending {
		return quoteRepo.ErrNotPending
	}
	q.Status = models.QuoteStatusDeclined
	f.messages = append(f.messages, *msg)
	return nil
}

// fakeConvRepo serves a static conversation set.
type fakeConvRepo struct {
	convs map[string]*models.Conversation
}

func (f *fakeConvRepo) Upsert(ctx context.Context, vendorID, customerID, bookingID string) (*models.Conversation, error) {
	return nil, nil
}

func (f *fakeConvRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	c, ok := f.convs[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeConvRepo) MarkRead(ctx context.Context, id string, role models.Role) error {
	return nil
}

func (f *fakeConvRepo) ListByParty(ctx context.Context, partyID string, role models.Role) ([]models.Conversation, error) {
	return nil, nil
}

func (f *fakeConvRepo) UnreadTotal(ctx context.Context, partyID string, role models.Role) (int, error) {
	return 0, nil
}

// recorderNotifier captures dispatched events.
type recorderNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (r *recorderNotifier) Dispatch(ctx context.Context, event notification.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorderNotifier) List(ctx context.Context, identity models.Identity, limit int64) ([]models.Notification, error) {
	return nil, nil
}

func (r *recorderNotifier) MarkRead(ctx context.Context, identity models.Identity, id string) error {
	return nil
}

func (r *recorderNotifier) MarkAllRead(ctx context.Context, identity models.Identity) (int64, error) {
	return 0, nil
}

func (r *recorderNotifier) UnreadCount(ctx context.Context, identity models.Identity) (int64, error) {
	return 0, nil
}

type quoteFixture struct {
	svc      *DefaultQuoteService
	repo     *fakeQuoteRepo
	notifier *recorderNotifier
	convID   string
	vendor   models.Identity
	customer models.Identity
}

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()
	repo := newFakeQuoteRepo()
	notifier := &recorderNotifier{}
	convID := uuid.New().String()
	convs := &fakeConvRepo{convs: map[string]*models.Conversation{
		convID: {ID: convID, VendorID: "v1", CustomerID: "c1"},
	}}
	svc, err := NewDefaultQuoteService(repo, convs, notifier)
	require.NoError(t, err)
	return &quoteFixture{
		svc:      svc,
		repo:     repo,
		notifier: notifier,
		convID:   convID,
		vendor:   models.Identity{UserID: "v1", Role: models.RoleVendor},
		customer: models.Identity{UserID: "c1", Role: models.RoleCustomer},
	}
}

func (fx *quoteFixture) send(t *testing.T, price float64) *models.Quote {
	t.Helper()
	q, err := fx.svc.Send(context.Background(), fx.vendor, fx.convID, SendRequest{
		Title: "Full day coverage",
		Price: price,
	})
	require.NoError(t, err)
	return q
}

func TestSendQuote(t *testing.T) {
	fx := newQuoteFixture(t)

	q := fx.send(t, 1500)
	assert.Equal(t, models.QuoteStatusPending, q.Status)
	assert.Equal(t, "v1", q.VendorID)
	assert.Equal(t, "c1", q.CustomerID)

	require.Len(t, fx.repo.messages, 1)
	assert.Equal(t, models.MessageTypeQuote, fx.repo.messages[0].Type)
	assert.Equal(t, q.ID, fx.repo.messages[0].QuoteID)

	require.Len(t, fx.notifier.events, 1)
	assert.Equal(t, models.NotificationQuoteReceived, fx.notifier.events[0].Type)
	assert.Equal(t, "c1", fx.notifier.events[0].RecipientID)
}

func TestSendQuoteValidation(t *testing.T) {
	fx := newQuoteFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Send(ctx, fx.vendor, fx.convID, SendRequest{Title: "", Price: 100})
	assert.True(t, fault.IsKind(err, fault.InvalidInput))

	_, err = fx.svc.Send(ctx, fx.vendor, fx.convID, SendRequest{Title: "Bad", Price: 0})
	assert.True(t, fault.IsKind(err, fault.InvalidInput))

	_, err = fx.svc.Send(ctx, fx.vendor, fx.convID, SendRequest{Title: "Bad", Price: -5})
	assert.True(t, fault.IsKind(err, fault.InvalidInput))

	// Only the thread's vendor may send.
	_, err = fx.svc.Send(ctx, fx.customer, fx.convID, SendRequest{Title: "Nope", Price: 100})
	assert.True(t, fault.IsKind(err, fault.Forbidden))

	_, err = fx.svc.Send(ctx, fx.vendor, "missing", SendRequest{Title: "Nope", Price: 100})
	assert.True(t, fault.IsKind(err, fault.NotFound))
}

func TestAcceptQuoteCreatesBookingWithFees(t *testing.T) {
	fx := newQuoteFixture(t)
	q := fx.send(t, 1500)

	result, err := fx.svc.Accept(context.Background(), fx.customer, q.ID)
	require.NoError(t, err)

	assert.Equal(t, models.QuoteStatusAccepted, result.Quote.Status)
	b := result.Booking
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, result.Quote.BookingID, b.ID)
	require.NotNil(t, b.TotalPrice)
	assert.Equal(t, 1500.0, *b.TotalPrice)
	assert.Equal(t, 150.0, b.VendorFee)
	assert.Equal(t, 30.0, b.CustomerFee)

	// System message appended to the thread.
	require.Len(t, fx.repo.messages, 2)
	assert.Equal(t, "Quote accepted. Booking created.", fx.repo.messages[1].Text)

	// Vendor notified.
	last := fx.notifier.events[len(fx.notifier.events)-1]
	assert.Equal(t, models.NotificationQuoteAccepted, last.Type)
	assert.Equal(t, "v1", last.RecipientID)
}

func TestDeclineQuote(t *testing.T) {
	fx := newQuoteFixture(t)
	q := fx.send(t, 800)

	declined, err := fx.svc.Decline(context.Background(), fx.customer, q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusDeclined, declined.Status)
	assert.Empty(t, declined.BookingID)
	assert.Empty(t, fx.repo.bookings)

	require.Len(t, fx.repo.messages, 2)
	assert.Equal(t, "Quote declined.", fx.repo.messages[1].Text)

	last := fx.notifier.events[len(fx.notifier.events)-1]
	assert.Equal(t, models.NotificationQuoteDeclined, last.Type)
}

func TestSettledQuoteRejectsFurtherTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("accept then accept", func(t *testing.T) {
		fx := newQuoteFixture(t)
		q := fx.send(t, 100)
		_, err := fx.svc.Accept(ctx, fx.customer, q.ID)
		require.NoError(t, err)
		_, err = fx.svc.Accept(ctx, fx.customer, q.ID)
		assert.True(t, fault.IsKind(err, fault.InvalidState))
	})

	t.Run("accept then decline", func(t *testing.T) {
		fx := newQuoteFixture(t)
		q := fx.send(t, 100)
		_, err := fx.svc.Accept(ctx, fx.customer, q.ID)
		require.NoError(t, err)
		_, err = fx.svc.Decline(ctx, fx.customer, q.ID)
		assert.True(t, fault.IsKind(err, fault.InvalidState))
		// The booking from the accept survives untouched.
		assert.Len(t, fx.repo.bookings, 1)
	})

	t.Run("decline then accept", func(t *testing.T) {
		fx := newQuoteFixture(t)
		q := fx.send(t, 100)
		_, err := fx.svc.Decline(ctx, fx.customer, q.ID)
		require.NoError(t, err)
		_, err = fx.svc.Accept(ctx, fx.customer, q.ID)
		assert.True(t, fault.IsKind(err, fault.InvalidState))
		assert.Empty(t, fx.repo.bookings)
	})
}

func TestQuoteSettlementAuthorization(t *testing.T) {
	fx := newQuoteFixture(t)
	ctx := context.Background()
	q := fx.send(t, 100)

	// The vendor cannot settle their own quote.
	_, err := fx.svc.Accept(ctx, fx.vendor, q.ID)
	assert.True(t, fault.IsKind(err, fault.Forbidden))

	outsider := models.Identity{UserID: "c2", Role: models.RoleCustomer}
	_, err = fx.svc.Decline(ctx, outsider, q.ID)
	assert.True(t, fault.IsKind(err, fault.Forbidden))

	_, err = fx.svc.Accept(ctx, fx.customer, "missing")
	assert.True(t, fault.IsKind(err, fault.NotFound))
}

func TestTwoQuotesSettleIndependently(t *testing.T) {
	fx := newQuoteFixture(t)
	ctx := context.Background()

	q1 := fx.send(t, 500)
	q2 := fx.send(t, 750)

	_, err := fx.svc.Decline(ctx, fx.customer, q1.ID)
	require.NoError(t, err)

	result, err := fx.svc.Accept(ctx, fx.customer, q2.ID)
	require.NoError(t, err)
	assert.Equal(t, 750.0, *result.Booking.TotalPrice)

	stored1, _ := fx.repo.GetByID(ctx, q1.ID)
	stored2, _ := fx.repo.GetByID(ctx, q2.ID)
	assert.Equal(t, models.QuoteStatusDeclined, stored1.Status)
	assert.Equal(t, models.QuoteStatusAccepted, stored2.Status)
	assert.Empty(t, stored1.BookingID)
	assert.Equal(t, result.Booking.ID, stored2.BookingID)
}
