package services

import (
	"context"
	"time"

	"hotelcore/dto"
	"hotelcore/models"
)

// BookingFacade đơn giản hóa việc tương tác với các service.
// Controllers, jobs and feature tests only talk to the facade.
type BookingFacade struct {
	availability *AvailabilityService
	bookings     *BookingService
	rooms        *RoomService
	ratings      *RatingService
	users        *UserService
}

func NewBookingFacade(availability *AvailabilityService, bookings *BookingService, rooms *RoomService, ratings *RatingService, users *UserService) *BookingFacade {
	return &BookingFacade{
		availability: availability,
		bookings:     bookings,
		rooms:        rooms,
		ratings:      ratings,
		users:        users,
	}
}

func (f *BookingFacade) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, filter dto.RoomFilter) ([]models.Room, error) {
	return f.availability.FindAvailableRooms(ctx, checkIn, checkOut, filter)
}

func (f *BookingFacade) RoomCalendar(ctx context.Context, roomID string, month time.Time) ([]dto.CalendarDay, error) {
	return f.availability.RoomCalendar(ctx, roomID, month)
}

func (f *BookingFacade) CreateBooking(ctx context.Context, in dto.CreateBookingInput) (*models.Booking, error) {
	return f.bookings.CreateBooking(ctx, in)
}

func (f *BookingFacade) Transition(ctx context.Context, bookingID string, target models.BookingStatus, actorID string, extra dto.TransitionExtra) (*models.Booking, error) {
	return f.bookings.Transition(ctx, bookingID, target, actorID, extra)
}

// CancelBooking hủy booking, hoàn tiền nếu booking đã xác nhận và đã thanh toán
func (f *BookingFacade) CancelBooking(ctx context.Context, bookingID, actorID, reason string, refund *float64) (*models.Booking, error) {
	return f.bookings.CancelBooking(ctx, bookingID, actorID, reason, refund)
}

func (f *BookingFacade) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return f.bookings.GetBooking(ctx, bookingID)
}

func (f *BookingFacade) ListGuestBookings(ctx context.Context, guestID string) ([]models.Booking, error) {
	return f.bookings.ListGuestBookings(ctx, guestID)
}

func (f *BookingFacade) ExpirePending(ctx context.Context) (int, error) {
	return f.bookings.ExpirePending(ctx)
}

func (f *BookingFacade) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	return f.rooms.CreateRoom(ctx, req)
}

func (f *BookingFacade) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	return f.rooms.GetRoom(ctx, roomID)
}

func (f *BookingFacade) SetRoomStatus(ctx context.Context, roomID string, status models.RoomStatus, actorID string) (*models.Room, error) {
	return f.rooms.SetRoomStatus(ctx, roomID, status, actorID)
}

func (f *BookingFacade) DeleteRoom(ctx context.Context, roomID string) error {
	return f.rooms.DeleteRoom(ctx, roomID)
}

func (f *BookingFacade) AddRating(ctx context.Context, resourceID, userID string, rating int) (*dto.RatingSummary, error) {
	return f.ratings.AddRating(ctx, resourceID, userID, rating)
}

func (f *BookingFacade) GetRatingSummary(ctx context.Context, resourceID, userID string) (*dto.RatingSummary, error) {
	return f.ratings.GetRatingSummary(ctx, resourceID, userID)
}

func (f *BookingFacade) CreateRestaurant(ctx context.Context, req dto.CreateRestaurantRequest) (*models.Restaurant, error) {
	return f.ratings.CreateRestaurant(ctx, req)
}

func (f *BookingFacade) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	return f.users.CreateUser(ctx, req)
}

func (f *BookingFacade) Login(ctx context.Context, req dto.LoginInput) (*dto.LoginResponse, error) {
	return f.users.Login(ctx, req)
}

func (f *BookingFacade) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return f.users.GetUser(ctx, userID)
}
