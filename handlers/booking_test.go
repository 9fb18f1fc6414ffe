package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventra/middleware"
	"eventra/models"
	"eventra/services/booking"
	"eventra/services/fault"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateFromInquiry(ctx context.Context, identity models.Identity, req booking.InquiryRequest) (*booking.InquiryResult, error) {
	args := m.Called(identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.InquiryResult), args.Error(1)
}

func (m *MockBookingService) Get(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	args := m.Called(identity, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) ListForParty(ctx context.Context, identity models.Identity) ([]models.Booking, error) {
	args := m.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingService) Confirm(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	args := m.Called(identity, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	args := m.Called(identity, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) Complete(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	args := m.Called(identity, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) ProposeDate(ctx context.Context, identity models.Identity, bookingID, proposedDate string) (*models.Booking, error) {
	args := m.Called(identity, bookingID, proposedDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) AcceptDate(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	args := m.Called(identity, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) DeclineDate(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	args := m.Called(identity, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func newBookingRouter(svc booking.BookingService, identity *models.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if identity != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.IdentityKey, *identity)
			c.Next()
		})
	}
	h := NewBookingHandler(svc, zap.NewNop())
	r.POST("/api/bookings", h.CreateInquiry)
	r.GET("/api/bookings/:id", h.GetBooking)
	r.PUT("/api/bookings/:id/confirm", h.ConfirmBooking)
	return r
}

func TestCreateInquiryHandler(t *testing.T) {
	svc := new(MockBookingService)
	customer := models.Identity{UserID: "c1", Role: models.RoleCustomer}
	router := newBookingRouter(svc, &customer)

	price := 2000.0
	result := &booking.InquiryResult{
		Booking: &models.Booking{
			ID:          "bk-1",
			VendorID:    "v1",
			CustomerID:  "c1",
			Status:      models.BookingStatusNewInquiry,
			TotalPrice:  &price,
			VendorFee:   200,
			CustomerFee: 40,
		},
		Conversation: &models.Conversation{ID: "conv-1", VendorID: "v1", CustomerID: "c1"},
	}
	svc.On("CreateFromInquiry", customer, mock.MatchedBy(func(req booking.InquiryRequest) bool {
		return req.VendorID == "v1" && req.PackageID == "pkg-gold"
	})).Return(result, nil)

	body, _ := json.Marshal(gin.H{"vendorId": "v1", "packageId": "pkg-gold"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var got booking.InquiryResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "bk-1", got.Booking.ID)
	assert.Equal(t, "conv-1", got.Conversation.ID)
	svc.AssertExpectations(t)
}

func TestCreateInquiryHandlerRejectsBadJSON(t *testing.T) {
	svc := new(MockBookingService)
	customer := models.Identity{UserID: "c1", Role: models.RoleCustomer}
	router := newBookingRouter(svc, &customer)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateFromInquiry")
}

func TestHandlersRequireIdentity(t *testing.T) {
	svc := new(MockBookingService)
	router := newBookingRouter(svc, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/bookings/bk-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Get")
}

func TestFaultStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fault.New(fault.NotFound, "booking missing"), http.StatusNotFound},
		{"forbidden", fault.New(fault.Forbidden, "not a party"), http.StatusForbidden},
		{"invalid state", fault.New(fault.InvalidState, "already confirmed"), http.StatusConflict},
		{"internal", fault.New(fault.Internal, "boom"), http.StatusInternalServerError},
	}

	vendor := models.Identity{UserID: "v1", Role: models.RoleVendor}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockBookingService)
			router := newBookingRouter(svc, &vendor)
			svc.On("Confirm", vendor, "bk-1").Return(nil, tc.err)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPut, "/api/bookings/bk-1/confirm", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}
