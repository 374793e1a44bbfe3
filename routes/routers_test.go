package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelcore/dto"
	"hotelcore/models"
	"hotelcore/services"
	"hotelcore/store"
)

const testSecret = "test-secret"

type apiFixture struct {
	router     *gin.Engine
	facade     *services.BookingFacade
	guestID    string
	guestToken string
	staffToken string
	roomID     string
}

type envelope struct {
	Code      int             `json:"code"`
	Mess      string          `json:"mess"`
	ErrorCode string          `json:"errorCode"`
	Data      json.RawMessage `json:"data"`
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	st := store.NewMemoryStore()
	locker := services.NewKeyedMutex()
	facade := services.NewBookingFacade(
		services.NewAvailabilityService(st, nil, time.Second),
		services.NewBookingService(services.BookingServiceOptions{Store: st, Locker: locker, LenientCheckout: true}),
		services.NewRoomService(services.RoomServiceOptions{Store: st, Locker: locker}),
		services.NewRatingService(services.RatingServiceOptions{Store: st}),
		services.NewUserService(services.UserServiceOptions{Store: st, TokenSecret: testSecret}),
	)

	guest, err := facade.CreateUser(ctx, dto.CreateUserRequest{Email: "an@example.com", Password: "secret123"})
	require.NoError(t, err)
	staff, err := facade.CreateUser(ctx, dto.CreateUserRequest{Email: "staff@example.com", Password: "secret123", Role: "receptionist"})
	require.NoError(t, err)
	room, err := facade.CreateRoom(ctx, dto.CreateRoomRequest{RoomNumber: "101", Type: "double", Capacity: 2, PricePerNight: 100})
	require.NoError(t, err)

	guestToken, err := services.GenerateToken(testSecret, guest.ID, guest.Role, time.Hour)
	require.NoError(t, err)
	staffToken, err := services.GenerateToken(testSecret, staff.ID, staff.Role, time.Hour)
	require.NoError(t, err)

	router := gin.New()
	SetupRoutes(router, facade, testSecret, nil)
	return &apiFixture{
		router: router, facade: facade,
		guestID: guest.ID, guestToken: guestToken, staffToken: staffToken, roomID: room.ID,
	}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
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
	f.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func TestPing(t *testing.T) {
	f := newAPIFixture(t)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestBookingFlowOverHTTP(t *testing.T) {
	f := newAPIFixture(t)

	status, env := f.do(t, http.MethodPost, "/api/v1/bookings", f.guestToken, map[string]interface{}{
		"roomId": f.roomID, "checkIn": "2025-06-01", "checkOut": "2025-06-03", "guestCount": 2,
	})
	require.Equal(t, http.StatusCreated, status, env.Mess)
	var booking models.Booking
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, f.guestID, booking.GuestID)
	assert.Equal(t, 200.0, booking.TotalAmount)

	status, _ = f.do(t, http.MethodPut, "/api/v1/bookings/"+booking.ID+"/status", f.guestToken, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, status, "guests cannot drive the lifecycle")

	status, env = f.do(t, http.MethodPut, "/api/v1/bookings/"+booking.ID+"/status", f.staffToken, map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, status, env.Mess)

	status, env = f.do(t, http.MethodGet, "/api/v1/rooms/available?checkIn=2025-06-02&checkOut=2025-06-04", "", nil)
	require.Equal(t, http.StatusOK, status)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal(env.Data, &rooms))
	assert.Empty(t, rooms)

	status, env = f.do(t, http.MethodPost, "/api/v1/bookings", f.guestToken, map[string]interface{}{
		"roomId": f.roomID, "checkIn": "2025-06-02", "checkOut": "2025-06-04", "guestCount": 1,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ROOM_ALREADY_BOOKED", env.ErrorCode)

	status, env = f.do(t, http.MethodPut, "/api/v1/bookings/"+booking.ID+"/status", f.staffToken, map[string]string{"status": "checked-out"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", env.ErrorCode)

	status, env = f.do(t, http.MethodPost, "/api/v1/bookings/"+booking.ID+"/cancel", f.guestToken, map[string]string{"reason": "ốm"})
	require.Equal(t, http.StatusOK, status, env.Mess)
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, models.BookingCancelled, booking.BookingStatus)

	status, env = f.do(t, http.MethodGet, "/api/v1/bookings", f.guestToken, nil)
	require.Equal(t, http.StatusOK, status)
	var list []models.Booking
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}

func TestBookingValidationOverHTTP(t *testing.T) {
	f := newAPIFixture(t)

	status, _ := f.do(t, http.MethodPost, "/api/v1/bookings", "", map[string]interface{}{"roomId": f.roomID})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := f.do(t, http.MethodPost, "/api/v1/bookings", f.guestToken, map[string]interface{}{
		"roomId": f.roomID, "checkIn": "01/06/2025", "checkOut": "2025-06-03", "guestCount": 1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_FORMAT", env.ErrorCode)

	status, env = f.do(t, http.MethodPost, "/api/v1/bookings", f.guestToken, map[string]interface{}{
		"roomId": f.roomID, "checkIn": "2025-06-03", "checkOut": "2025-06-01", "guestCount": 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INVALID_RANGE", env.ErrorCode)

	status, env = f.do(t, http.MethodPost, "/api/v1/bookings", f.guestToken, map[string]interface{}{
		"roomId": f.roomID, "guestId": "someone-else", "checkIn": "2025-06-01", "checkOut": "2025-06-03", "guestCount": 1,
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = f.do(t, http.MethodGet, "/api/v1/bookings/missing", f.guestToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
}

func TestRatingsOverHTTP(t *testing.T) {
	f := newAPIFixture(t)

	status, env := f.do(t, http.MethodPost, "/api/v1/ratings", f.guestToken, map[string]interface{}{"resourceId": f.roomID, "rating": 4})
	require.Equal(t, http.StatusCreated, status, env.Mess)

	status, env = f.do(t, http.MethodPost, "/api/v1/ratings", f.guestToken, map[string]interface{}{"resourceId": f.roomID, "rating": 2})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_RATING", env.ErrorCode)

	status, env = f.do(t, http.MethodGet, "/api/v1/ratings/"+f.roomID+"?userId="+f.guestID, "", nil)
	require.Equal(t, http.StatusOK, status)
	var summary dto.RatingSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 4.0, summary.Mean)
	assert.Equal(t, 1, summary.TotalCount)
	require.NotNil(t, summary.UserRating)
	assert.Equal(t, 4, *summary.UserRating)
}

func TestRoomAdminOverHTTP(t *testing.T) {
	f := newAPIFixture(t)

	status, _ := f.do(t, http.MethodPost, "/api/v1/rooms", f.guestToken, map[string]interface{}{"roomNumber": "102", "type": "single", "capacity": 1})
	assert.Equal(t, http.StatusForbidden, status)

	status, env := f.do(t, http.MethodPost, "/api/v1/rooms", f.staffToken, map[string]interface{}{"roomNumber": "102", "type": "phong don", "capacity": 1, "pricePerNight": 60})
	require.Equal(t, http.StatusCreated, status, env.Mess)
	var room models.Room
	require.NoError(t, json.Unmarshal(env.Data, &room))
	assert.Equal(t, models.RoomTypeSingle, room.Type)

	status, _ = f.do(t, http.MethodPut, "/api/v1/rooms/"+room.ID+"/status", f.staffToken, map[string]string{"status": "maintenance"})
	assert.Equal(t, http.StatusOK, status)

	housekeeper, err := f.facade.CreateUser(context.Background(), dto.CreateUserRequest{Email: "hk@example.com", Password: "secret123", Role: "housekeeping"})
	require.NoError(t, err)
	hkToken, err := services.GenerateToken(testSecret, housekeeper.ID, housekeeper.Role, time.Hour)
	require.NoError(t, err)

	status, _ = f.do(t, http.MethodPut, "/api/v1/rooms/"+room.ID+"/status", f.guestToken, map[string]string{"status": "vacant"})
	assert.Equal(t, http.StatusForbidden, status)
	status, env = f.do(t, http.MethodPut, "/api/v1/rooms/"+room.ID+"/status", hkToken, map[string]string{"status": "vacant"})
	assert.Equal(t, http.StatusOK, status, env.Mess)
	status, _ = f.do(t, http.MethodPost, "/api/v1/rooms", hkToken, map[string]interface{}{"roomNumber": "103", "type": "single", "capacity": 1})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = f.do(t, http.MethodGet, "/api/v1/rooms/"+room.ID+"/calendar?month=2025-02", "", nil)
	require.Equal(t, http.StatusOK, status)
	var days []dto.CalendarDay
	require.NoError(t, json.Unmarshal(env.Data, &days))
	assert.Len(t, days, 28)

	status, _ = f.do(t, http.MethodDelete, "/api/v1/rooms/"+room.ID, f.staffToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestLoginOverHTTP(t *testing.T) {
	f := newAPIFixture(t)

	status, env := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "an@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", env.ErrorCode)

	status, env = f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "An@Example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, status, env.Mess)
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, f.guestID, login.User.ID)

	status, _ = f.do(t, http.MethodGet, "/api/v1/users/"+f.guestID, login.AccessToken, nil)
	assert.Equal(t, http.StatusOK, status)
}
