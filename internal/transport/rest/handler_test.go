package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lexmarket/config"
	"lexmarket/internal/domain"
	"lexmarket/internal/service"
)

type stubAuthService struct{}

func (s *stubAuthService) Register(ctx context.Context, dto domain.RegisterRequest) (string, error) {
	return "u-new", nil
}

func (s *stubAuthService) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	return &domain.Tokens{AccessToken: "at", RefreshToken: "rt"}, nil
}

func (s *stubAuthService) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	return &domain.Tokens{AccessToken: "at2", RefreshToken: "rt2"}, nil
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string) error {
	return nil
}

func (s *stubAuthService) ParseToken(ctx context.Context, token string) (string, domain.UserRole, error) {
	switch token {
	case "client-token":
		return "cl-1", domain.UserRoleClient, nil
	case "lawyer-token":
		return "u-lw-1", domain.UserRoleLawyer, nil
	case "admin-token":
		return "adm-1", domain.UserRoleAdmin, nil
	default:
		return "", "", domain.ErrUnauthorized
	}
}

type stubLawyerService struct {
	profiles map[string]*domain.LawyerProfile
}

func (s *stubLawyerService) Create(ctx context.Context, userID string, dto domain.CreateLawyerDTO) (string, error) {
	return "lw-new", nil
}

func (s *stubLawyerService) GetByID(ctx context.Context, id string) (*domain.LawyerProfile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubLawyerService) GetByUserID(ctx context.Context, userID string) (*domain.LawyerProfile, error) {
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubLawyerService) Update(ctx context.Context, id string, dto domain.UpdateLawyerDTO) error {
	return nil
}

func (s *stubLawyerService) SetVerified(ctx context.Context, id string, verified bool) error {
	return nil
}

func (s *stubLawyerService) Search(ctx context.Context, filters domain.SearchFilters, query string) ([]domain.LawyerProfile, error) {
	out := make([]domain.LawyerProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return domain.SearchLawyers(out, filters, query), nil
}

func (s *stubLawyerService) Facets(ctx context.Context) (*domain.DirectoryFacets, error) {
	return &domain.DirectoryFacets{PracticeAreas: []string{"Family Law"}, Locations: []string{"Lisbon"}}, nil
}

func (s *stubLawyerService) UploadAvatar(ctx context.Context, lawyerID string, data []byte, filename string) (string, error) {
	return "https://cdn.example.com/avatars/x.png", nil
}

func (s *stubLawyerService) DeleteAvatar(ctx context.Context, lawyerID string) error {
	return nil
}

type stubBookingService struct {
	createErr error
	bookings  map[string]*domain.Booking
}

func (s *stubBookingService) Create(ctx context.Context, clientID string, dto domain.CreateBookingDTO) (*domain.Booking, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Booking{
		ID:       "bk-1",
		ClientID: clientID,
		LawyerID: dto.LawyerID,
		Date:     dto.Date,
		Time:     dto.Time,
		Type:     dto.Type,
		Price:    210,
		Status:   domain.BookingStatusPending,
	}, nil
}

func (s *stubBookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *stubBookingService) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	return nil, 0, nil
}

func (s *stubBookingService) UpdateStatus(ctx context.Context, id string, next domain.BookingStatus) error {
	b, ok := s.bookings[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !b.Status.CanTransitionTo(next) {
		return domain.NewInvalidRequest("status", "illegal transition")
	}
	b.Status = next
	return nil
}

func (s *stubBookingService) FreeSlots(ctx context.Context, lawyerID string, date string) ([]string, error) {
	return domain.TimeSlots, nil
}

type stubReviewService struct{}

func (s *stubReviewService) Create(ctx context.Context, clientID string, dto domain.CreateReviewDTO) (string, error) {
	return "rv-1", nil
}

func (s *stubReviewService) ListByLawyer(ctx context.Context, lawyerID string, limit, offset int) ([]domain.Review, int, error) {
	return []domain.Review{}, 0, nil
}

type stubUserService struct{}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, FirstName: "Test"}, nil
}

func (s *stubUserService) Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error {
	return nil
}

func (s *stubUserService) UpdatePassword(ctx context.Context, id string, dto domain.PasswordUpdateDTO) error {
	return nil
}

func testRouter(booking *stubBookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	services := &service.Services{
		User: &stubUserService{},
		Auth: &stubAuthService{},
		Lawyer: &stubLawyerService{profiles: map[string]*domain.LawyerProfile{
			"lw-1": {ID: "lw-1", UserID: "u-lw-1", FirstName: "Dana", LastName: "Reyes",
				Specialties: []string{"Family Law"}, HourlyRate: 200, Location: "Lisbon",
				Rating: 4.5, IsVerified: true},
		}},
		Booking: booking,
		Review:  &stubReviewService{},
	}

	handler := NewHandler(services, zap.NewNop(), &config.Config{})
	router := gin.New()
	handler.InitRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBooking(t *testing.T) {
	booking := &stubBookingService{bookings: map[string]*domain.Booking{}}
	router := testRouter(booking)

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", "client-token", gin.H{
		"lawyer_id": "lw-1",
		"date":      "2026-09-10",
		"time":      "10:00",
		"type":      "VIDEO",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data domain.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cl-1", resp.Data.ClientID)
	assert.Equal(t, domain.BookingStatusPending, resp.Data.Status)
	assert.NotZero(t, resp.Data.Price)
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	router := testRouter(&stubBookingService{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", "", gin.H{"lawyer_id": "lw-1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/bookings", "expired", gin.H{"lawyer_id": "lw-1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateBookingValidationNamesField(t *testing.T) {
	booking := &stubBookingService{
		createErr: domain.NewInvalidRequest("time", "must be one of the available time slots"),
	}
	router := testRouter(booking)

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", "client-token", gin.H{
		"lawyer_id": "lw-1",
		"date":      "2026-09-10",
		"time":      "09:30",
		"type":      "VIDEO",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "time", resp.Field)
	assert.Contains(t, resp.Message, "time")
}

func TestCreateBookingRejectsClientPrice(t *testing.T) {
	router := testRouter(&stubBookingService{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", "client-token", gin.H{
		"lawyer_id": "lw-1",
		"date":      "2026-09-10",
		"time":      "10:00",
		"type":      "VIDEO",
		"price":     1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingConflict(t *testing.T) {
	router := testRouter(&stubBookingService{createErr: domain.ErrSlotTaken})

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", "client-token", gin.H{
		"lawyer_id": "lw-1",
		"date":      "2026-09-10",
		"time":      "10:00",
		"type":      "VIDEO",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateBookingUnknownLawyer(t *testing.T) {
	router := testRouter(&stubBookingService{createErr: domain.ErrNotFound})

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", "client-token", gin.H{
		"lawyer_id": "ghost",
		"date":      "2026-09-10",
		"time":      "10:00",
		"type":      "VIDEO",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBookingStoreUnavailable(t *testing.T) {
	router := testRouter(&stubBookingService{createErr: domain.ErrUnavailable})

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", "client-token", gin.H{
		"lawyer_id": "lw-1",
		"date":      "2026-09-10",
		"time":      "10:00",
		"type":      "VIDEO",
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestWrongMethodIs405(t *testing.T) {
	router := testRouter(&stubBookingService{})

	w := doJSON(t, router, http.MethodDelete, "/api/v1/bookings", "client-token", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSearchLawyers(t *testing.T) {
	router := testRouter(&stubBookingService{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/lawyers?practice_area=Family%20Law&price_max=250", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []domain.LawyerProfile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "lw-1", resp.Data[0].ID)

	// No matches is an empty 200, never an error.
	w = doJSON(t, router, http.MethodGet, "/api/v1/lawyers?location=Berlin", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestSearchLawyersBadFilterValue(t *testing.T) {
	router := testRouter(&stubBookingService{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/lawyers?price_min=cheap", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "price_min", resp.Field)
}

func TestBookingTransitionAccess(t *testing.T) {
	booking := &stubBookingService{bookings: map[string]*domain.Booking{
		"bk-1": {ID: "bk-1", ClientID: "cl-1", LawyerID: "lw-1", Status: domain.BookingStatusPending},
	}}
	router := testRouter(booking)

	// The client may not confirm their own booking.
	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings/bk-1/confirm", "client-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The booked lawyer may.
	w = doJSON(t, router, http.MethodPost, "/api/v1/bookings/bk-1/confirm", "lawyer-token", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The client may cancel a confirmed booking.
	w = doJSON(t, router, http.MethodPost, "/api/v1/bookings/bk-1/cancel", "client-token", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Completing a cancelled booking is an illegal transition.
	w = doJSON(t, router, http.MethodPost, "/api/v1/bookings/bk-1/complete", "lawyer-token", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBookingAccess(t *testing.T) {
	booking := &stubBookingService{bookings: map[string]*domain.Booking{
		"bk-1": {ID: "bk-1", ClientID: "cl-other", LawyerID: "lw-other", Status: domain.BookingStatusPending},
	}}
	router := testRouter(booking)

	w := doJSON(t, router, http.MethodGet, "/api/v1/bookings/bk-1", "client-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/bookings/bk-1", "admin-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/bookings/missing", "admin-token", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDirectoryFacets(t *testing.T) {
	router := testRouter(&stubBookingService{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/lawyers/facets", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data domain.DirectoryFacets `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Family Law"}, resp.Data.PracticeAreas)
}

func TestRegister(t *testing.T) {
	router := testRouter(&stubBookingService{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"first_name": "Ana",
		"last_name":  "Silva",
		"email":      "ana@example.com",
		"phone":      "+351912345678",
		"password":   "secret123",
		"role":       "client",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Binding failure before the service is reached.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
