package messaging

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"eventra/models"
	"eventra/services/fault"
	"eventra/services/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConvRepo implements the pair-upsert and unread-counter semantics in
// memory.
type fakeConvRepo struct {
	mu    sync.Mutex
	convs map[string]*models.Conversation
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{convs: make(map[string]*models.Conversation)}
}

func (f *fakeConvRepo) Upsert(ctx context.Context, vendorID, customerID, bookingID string) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := vendorID + "|" + customerID
	conv, ok := f.convs[key]
	if !ok {
		conv = &models.Conversation{
			ID:         uuid.New().String(),
			VendorID:   vendorID,
			CustomerID: customerID,
			CreatedAt:  time.Now(),
		}
		f.convs[key] = conv
	}
	if bookingID != "" {
		conv.BookingID = bookingID
	}
	cp := *conv
	return &cp, nil
}

func (f *fakeConvRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.convs {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeConvRepo) MarkRead(ctx context.Context, id string, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.convs {
		if c.ID == id {
			if role == models.RoleVendor {
				c.UnreadVendor = 0
			} else {
				c.UnreadCustomer = 0
			}
		}
	}
	return nil
}

func (f *fakeConvRepo) ListByParty(ctx context.Context, partyID string, role models.Role) ([]models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Conversation
	for _, c := range f.convs {
		if c.HasParty(partyID) {
			out = append(out, *c)
		}
	}
	// Most recent activity first; threads without messages last.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].LastMessageAt, out[j].LastMessageAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return out, nil
}

func (f *fakeConvRepo) UnreadTotal(ctx context.Context, partyID string, role models.Role) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, c := range f.convs {
		if c.HasParty(partyID) {
			total += c.UnreadFor(role)
		}
	}
	return total, nil
}

func (f *fakeConvRepo) bump(conversationID string, senderIsVendor bool, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.convs {
		if c.ID == conversationID {
			c.LastMessageAt = &at
			if senderIsVendor {
				c.UnreadCustomer++
			} else {
				c.UnreadVendor++
			}
		}
	}
}

// fakeMsgRepo appends to a slice and bumps the conversation, mirroring the
// transactional append.
type fakeMsgRepo struct {
	mu    sync.Mutex
	msgs  []models.Message
	convs *fakeConvRepo
	clock time.Time
}

func (f *fakeMsgRepo) AppendTx(ctx context.Context, msg *models.Message, senderIsVendor bool) error {
	f.mu.Lock()
	f.clock = f.clock.Add(time.Second)
	msg.CreatedAt = f.clock
	f.msgs = append(f.msgs, *msg)
	f.mu.Unlock()
	f.convs.bump(msg.ConversationID, senderIsVendor, msg.CreatedAt)
	return nil
}

func (f *fakeMsgRepo) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Message
	for _, m := range f.msgs {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// fakeQuoteRepo serves quotes for hydration only.
type fakeQuoteRepo struct {
	quotes []models.Quote
}

func (f *fakeQuoteRepo) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	return nil, nil
}

func (f *fakeQuoteRepo) ListByConversation(ctx context.Context, conversationID string) ([]models.Quote, error) {
	var out []models.Quote
	for _, q := range f.quotes {
		if q.ConversationID == conversationID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuoteRepo) CreateTx(ctx context.Context, q *models.Quote, msg *models.Message) error {
	return nil
}

func (f *fakeQuoteRepo) AcceptTx(ctx context.Context, quoteID string, booking *models.Booking, msg *models.Message) error {
	return nil
}

func (f *fakeQuoteRepo) DeclineTx(ctx context.Context, quoteID string, msg *models.Message) error {
	return nil
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

type messagingFixture struct {
	svc      *DefaultMessagingService
	convs    *fakeConvRepo
	msgs     *fakeMsgRepo
	quotes   *fakeQuoteRepo
	notifier *recorderNotifier
	vendor   models.Identity
	customer models.Identity
}

func newMessagingFixture(t *testing.T) *messagingFixture {
	t.Helper()
	convs := newFakeConvRepo()
	msgs := &fakeMsgRepo{convs: convs, clock: time.Now()}
	quotes := &fakeQuoteRepo{}
	notifier := &recorderNotifier{}
	svc, err := NewDefaultMessagingService(convs, msgs, quotes, notifier)
	require.NoError(t, err)
	return &messagingFixture{
		svc:      svc,
		convs:    convs,
		msgs:     msgs,
		quotes:   quotes,
		notifier: notifier,
		vendor:   models.Identity{UserID: "v1", Role: models.RoleVendor},
		customer: models.Identity{UserID: "c1", Role: models.RoleCustomer},
	}
}

func TestGetOrCreateConversationIsStable(t *testing.T) {
	fx := newMessagingFixture(t)
	ctx := context.Background()

	first, err := fx.svc.GetOrCreateConversation(ctx, "v1", "c1", "")
	require.NoError(t, err)
	second, err := fx.svc.GetOrCreateConversation(ctx, "v1", "c1", "bk-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "bk-1", second.BookingID)

	_, err = fx.svc.GetOrCreateConversation(ctx, "", "c1", "")
	assert.True(t, fault.IsKind(err, fault.InvalidInput))
}

func TestUnreadCountersFollowSenders(t *testing.T) {
	fx := newMessagingFixture(t)
	ctx := context.Background()
	conv, err := fx.svc.GetOrCreateConversation(ctx, "v1", "c1", "")
	require.NoError(t, err)

	// N messages from the customer, M from the vendor.
	const n, m = 3, 2
	for i := 0; i < n; i++ {
		_, err := fx.svc.SendMessage(ctx, fx.customer, conv.ID, models.TextContent("hi"))
		require.NoError(t, err)
	}
	for i := 0; i < m; i++ {
		_, err := fx.svc.SendMessage(ctx, fx.vendor, conv.ID, models.TextContent("hello"))
		require.NoError(t, err)
	}

	vendorUnread, err := fx.svc.UnreadTotal(ctx, fx.vendor)
	require.NoError(t, err)
	customerUnread, err := fx.svc.UnreadTotal(ctx, fx.customer)
	require.NoError(t, err)
	assert.Equal(t, n, vendorUnread)
	assert.Equal(t, m, customerUnread)

	// Reading resets only the reader's counter.
	_, err = fx.svc.ListMessages(ctx, fx.vendor, conv.ID)
	require.NoError(t, err)

	vendorUnread, _ = fx.svc.UnreadTotal(ctx, fx.vendor)
	customerUnread, _ = fx.svc.UnreadTotal(ctx, fx.customer)
	assert.Zero(t, vendorUnread)
	assert.Equal(t, m, customerUnread)

	// Re-reading an already-read thread stays at zero.
	_, err = fx.svc.ListMessages(ctx, fx.vendor, conv.ID)
	require.NoError(t, err)
	vendorUnread, _ = fx.svc.UnreadTotal(ctx, fx.vendor)
	assert.Zero(t, vendorUnread)
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	fx := newMessagingFixture(t)
	ctx := context.Background()
	conv, err := fx.svc.GetOrCreateConversation(ctx, "v1", "c1", "")
	require.NoError(t, err)

	_, err = fx.svc.SendMessage(ctx, fx.customer, conv.ID, models.TextContent(""))
	assert.True(t, fault.IsKind(err, fault.InvalidInput))

	_, err = fx.svc.SendMessage(ctx, fx.customer, conv.ID, models.AttachmentContent("", "", "", ""))
	assert.True(t, fault.IsKind(err, fault.InvalidInput))

	// An attachment without text is fine.
	_, err = fx.svc.SendMessage(ctx, fx.customer, conv.ID, models.AttachmentContent("", "https://cdn.example/file.pdf", "file.pdf", "application/pdf"))
	assert.NoError(t, err)
}

func TestSendMessageAuthorization(t *testing.T) {
	fx := newMessagingFixture(t)
	ctx := context.Background()
	conv, err := fx.svc.GetOrCreateConversation(ctx, "v1", "c1", "")
	require.NoError(t, err)

	outsider := models.Identity{UserID: "c2", Role: models.RoleCustomer}
	_, err = fx.svc.SendMessage(ctx, outsider, conv.ID, models.TextContent("hi"))
	assert.True(t, fault.IsKind(err, fault.Forbidden))

	_, err = fx.svc.SendMessage(ctx, fx.customer, "missing", models.TextContent("hi"))
	assert.True(t, fault.IsKind(err, fault.NotFound))

	_, err = fx.svc.SendMessage(ctx, models.Identity{}, conv.ID, models.TextContent("hi"))
	assert.True(t, fault.IsKind(err, fault.Unauthenticated))
}

func TestSendMessageNotifiesCounterpart(t *testing.T) {
	fx := newMessagingFixture(t)
	ctx := context.Background()
	conv, err := fx.svc.GetOrCreateConversation(ctx, "v1", "c1", "")
	require.NoError(t, err)

	_, err = fx.svc.SendMessage(ctx, fx.customer, conv.ID, models.TextContent("hi"))
	require.NoError(t, err)
	_, err = fx.svc.SendMessage(ctx, fx.vendor, conv.ID, models.TextContent("hello"))
	require.NoError(t, err)

	require.Len(t, fx.notifier.events, 2)
	assert.Equal(t, "v1", fx.notifier.events[0].RecipientID)
	assert.Equal(t, "c1", fx.notifier.events[1].RecipientID)
	assert.Equal(t, models.NotificationMessageReceived, fx.notifier.events[0].Type)
}

func TestListMessagesOrderAndQuoteHydration(t *testing.T) {
	fx := newMessagingFixture(t)
	ctx := context.Background()
	conv, err := fx.svc.GetOrCreateConversation(ctx, "v1", "c1", "")
	require.NoError(t, err)

	_, err = fx.svc.SendMessage(ctx, fx.customer, conv.ID, models.TextContent("first"))
	require.NoError(t, err)

	quoteID := uuid.New().String()
	fx.quotes.quotes = append(fx.quotes.quotes, models.Quote{
		ID:             quoteID,
		ConversationID: conv.ID,
		Title:          "Gold package",
		Price:          2000,
		Status:         models.QuoteStatusPending,
	})
	_, err = fx.svc.SendMessage(ctx, fx.vendor, conv.ID, models.QuoteContent(quoteID, "Gold package"))
	require.NoError(t, err)

	msgs, err := fx.svc.ListMessages(ctx, fx.customer, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Text)
	assert.Equal(t, models.MessageTypeQuote, msgs[1].Type)
	require.NotNil(t, msgs[1].Quote)
	assert.Equal(t, 2000.0, msgs[1].Quote.Price)
}

func TestListConversationsOrdering(t *testing.T) {
	fx := newMessagingFixture(t)
	ctx := context.Background()

	convA, err := fx.svc.GetOrCreateConversation(ctx, "v1", "c1", "")
	require.NoError(t, err)
	convB, err := fx.svc.GetOrCreateConversation(ctx, "v1", "c2", "")
	require.NoError(t, err)
	// convC never receives a message.
	convC, err := fx.svc.GetOrCreateConversation(ctx, "v1", "c3", "")
	require.NoError(t, err)

	_, err = fx.svc.SendMessage(ctx, fx.customer, convA.ID, models.TextContent("older"))
	require.NoError(t, err)
	c2 := models.Identity{UserID: "c2", Role: models.RoleCustomer}
	_, err = fx.svc.SendMessage(ctx, c2, convB.ID, models.TextContent("newer"))
	require.NoError(t, err)

	convs, err := fx.svc.ListConversations(ctx, fx.vendor)
	require.NoError(t, err)
	require.Len(t, convs, 3)
	assert.Equal(t, convB.ID, convs[0].ID)
	assert.Equal(t, convA.ID, convs[1].ID)
	assert.Equal(t, convC.ID, convs[2].ID)
}
