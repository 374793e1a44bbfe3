// Package store persists rooms, bookings, users and ratings.
//
// Multi-record lifecycle writes go through Apply, which commits a ChangeSet
// atomically: either every record in it is written or none is.
package store

import (
	"context"
	"time"

	"hotelcore/models"
)

type RoomFilter struct {
	Types       []models.RoomType
	MinCapacity int
	Amenities   []string
	OnlyVacant  bool
}

type RoomStore interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error)
	// SetRoomStatus writes status only when the room is currently in expected.
	SetRoomStatus(ctx context.Context, id string, expected, status models.RoomStatus) error
	DeleteRoom(ctx context.Context, id string) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type BookingStore interface {
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListGuestBookings(ctx context.Context, guestID string) ([]models.Booking, error)
	// ListRoomBookings returns the room's bookings in any of statuses, ordered by check-in.
	ListRoomBookings(ctx context.Context, roomID string, statuses []models.BookingStatus) ([]models.Booking, error)
	// ClaimedRoomIDs returns the rooms with a claiming booking overlapping [checkIn, checkOut).
	ClaimedRoomIDs(ctx context.Context, checkIn, checkOut time.Time) (map[string]struct{}, error)
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]models.Booking, error)
	Apply(ctx context.Context, cs *ChangeSet) error
}

type RatingStore interface {
	CreateRestaurant(ctx context.Context, r *models.Restaurant) error
	// FindRateable resolves a room or restaurant id.
	FindRateable(ctx context.Context, resourceID string) (models.ResourceKind, models.RatingAggregate, error)
	ListRatings(ctx context.Context, resourceID string) ([]models.Rating, error)
	GetUserRating(ctx context.Context, resourceID, userID string) (*models.Rating, error)
	// ApplyRating inserts the entry and overwrites the resource aggregate in one unit.
	ApplyRating(ctx context.Context, change RatingChange) error
}

type Store interface {
	RoomStore
	UserStore
	BookingStore
	RatingStore
	Close() error
}

// Claim re-checks, inside the write, that no other claiming booking overlaps.
type Claim struct {
	RoomID           string
	CheckIn          time.Time
	CheckOut         time.Time
	ExcludeBookingID string
}

type RoomPatch struct {
	RoomID string
	Status models.RoomStatus
}

type UserPatch struct {
	UserID        string
	Role          *models.UserRole
	BookingStatus *models.UserBookingStatus
}

// ChangeSet is the full set of writes for one lifecycle step.
type ChangeSet struct {
	Booking *models.Booking
	// Create inserts Booking instead of updating it.
	Create bool
	// ExpectedStatus guards the update: the stored booking must still be in it.
	ExpectedStatus models.BookingStatus
	Claim          *Claim
	Room           *RoomPatch
	User           *UserPatch
}

type RatingChange struct {
	Entry     models.Rating
	Kind      models.ResourceKind
	Aggregate models.RatingAggregate
}
