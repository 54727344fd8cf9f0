package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumiere/handlers"
	"lumiere/models"
	"lumiere/routes"
	"lumiere/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fakeService is a canned scheduling.Service for transport tests.
type fakeService struct {
	booking *models.Booking
	listing []models.Booking
	slots   []time.Time
	err     error
}

func (f *fakeService) CreateBooking(_ context.Context, _ models.CreateBookingInput) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeService) RescheduleBooking(_ context.Context, _ string, _ time.Time) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeService) CancelBooking(_ context.Context, _ string) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeService) MarkCompleted(_ context.Context, _ string) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeService) UpdatePaymentStatus(_ context.Context, _ string, _ models.PaymentStatus) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeService) GetBooking(_ context.Context, _ string) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeService) ListBookingsByDate(_ context.Context, _ string) ([]models.Booking, error) {
	return f.listing, f.err
}

func (f *fakeService) AvailableSlots(_ context.Context, _ string) ([]time.Time, error) {
	return f.slots, f.err
}

func newBookingRouter(svc scheduling.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterBookingRoutes(r, &routes.HandlerBundle{
		Booking: handlers.NewBookingHandler(svc, zap.NewNop()),
	})
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:            "bk-1",
		DateTime:      time.Date(2026, 9, 14, 11, 0, 0, 0, time.Local),
		Date:          "2026-09-14",
		ClientID:      "client-1",
		Email:         "client@example.com",
		Phone:         "+77010000000",
		PackageID:     "pkg-portrait",
		Status:        models.BookingUpcoming,
		PaymentStatus: models.PaymentPending,
	}
}

func TestCreateBookingEndpoint(t *testing.T) {
	router := newBookingRouter(&fakeService{booking: sampleBooking()})

	w := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]any{
		"dateTime":  "2026-09-14T11:00:00+05:00",
		"clientId":  "client-1",
		"email":     "client@example.com",
		"phone":     "+77010000000",
		"packageId": "pkg-portrait",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != "bk-1" || got.Status != models.BookingUpcoming {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestCreateBookingRejectsMalformedJSON(t *testing.T) {
	router := newBookingRouter(&fakeService{booking: sampleBooking()})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestEngineErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    *scheduling.Error
		status int
	}{
		{"validation", &scheduling.Error{Kind: scheduling.KindValidation, Code: scheduling.CodeMissingField, Message: "required field \"email\" is missing"}, http.StatusBadRequest},
		{"policy", &scheduling.Error{Kind: scheduling.KindPolicy, Code: scheduling.CodeCapacityExceeded, Message: "no capacity left", Threshold: 5}, http.StatusUnprocessableEntity},
		{"state conflict", &scheduling.Error{Kind: scheduling.KindStateConflict, Code: scheduling.CodeInvalidStateTransition, Message: "cannot cancel"}, http.StatusConflict},
		{"not found", &scheduling.Error{Kind: scheduling.KindNotFound, Code: scheduling.CodeNotFound, Message: "booking bk-9 not found"}, http.StatusNotFound},
		{"internal", &scheduling.Error{Kind: scheduling.KindInternal, Code: scheduling.CodeInternal, Message: "write timeout"}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newBookingRouter(&fakeService{err: tc.err})
			w := doJSON(t, router, http.MethodPut, "/api/bookings/bk-1/cancel", nil)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}

			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body["errorKind"] != string(tc.err.Kind) {
				t.Errorf("expected errorKind %s, got %v", tc.err.Kind, body["errorKind"])
			}
			if body["message"] == "" {
				t.Error("expected a human-readable message")
			}
		})
	}
}

func TestPolicyViolationCarriesThreshold(t *testing.T) {
	engineErr := &scheduling.Error{
		Kind:      scheduling.KindPolicy,
		Code:      scheduling.CodeCancellationWindowViolation,
		Message:   "bookings can only be cancelled at least 24 hours before the session",
		Threshold: 24,
	}
	router := newBookingRouter(&fakeService{err: engineErr})

	w := doJSON(t, router, http.MethodPut, "/api/bookings/bk-1/cancel", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	var body struct {
		Code      string `json:"code"`
		Threshold int    `json:"threshold"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Code != scheduling.CodeCancellationWindowViolation || body.Threshold != 24 {
		t.Fatalf("expected violated threshold in body, got %+v", body)
	}
}

func TestRescheduleEndpoint(t *testing.T) {
	moved := sampleBooking()
	moved.DateTime = time.Date(2026, 9, 20, 15, 0, 0, 0, time.Local)
	moved.Date = "2026-09-20"
	router := newBookingRouter(&fakeService{booking: moved})

	w := doJSON(t, router, http.MethodPut, "/api/bookings/bk-1/reschedule", map[string]any{
		"newDateTime": "2026-09-20T15:00:00+05:00",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Date != "2026-09-20" {
		t.Fatalf("expected the moved booking, got %+v", got)
	}
}

func TestListBookingsRequiresDate(t *testing.T) {
	router := newBookingRouter(&fakeService{listing: []models.Booking{*sampleBooking()}})

	w := doJSON(t, router, http.MethodGet, "/api/bookings", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a date, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/bookings?date=2026-09-14", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(got))
	}
}

func TestAvailableSlotsEndpoint(t *testing.T) {
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local)
	router := newBookingRouter(&fakeService{slots: []time.Time{
		day.Add(9 * time.Hour),
		day.Add(10 * time.Hour),
	}})

	w := doJSON(t, router, http.MethodGet, "/api/bookings/slots?date=2026-09-14", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Date  string      `json:"date"`
		Slots []time.Time `json:"slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Date != "2026-09-14" || len(body.Slots) != 2 {
		t.Fatalf("unexpected body %+v", body)
	}

	w = doJSON(t, router, http.MethodGet, "/api/bookings/slots", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a date, got %d", w.Code)
	}
}

func TestUpdatePaymentStatusEndpoint(t *testing.T) {
	paid := sampleBooking()
	paid.PaymentStatus = models.PaymentPaid
	router := newBookingRouter(&fakeService{booking: paid})

	w := doJSON(t, router, http.MethodPut, "/api/bookings/bk-1/payment-status", map[string]any{
		"status": "Paid",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.PaymentStatus != models.PaymentPaid {
		t.Fatalf("expected Paid, got %s", got.PaymentStatus)
	}
}
