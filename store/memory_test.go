package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "hotelcore/errors"
	"hotelcore/models"
)

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func seed(t *testing.T) *MemoryStore {
	t.Helper()
	ctx := context.Background()
	s := NewMemoryStore()
	room := &models.Room{ID: "room-1", RoomNumber: "101", Type: models.RoomTypeDouble, PricePerNight: 100, Capacity: 2}
	room.SetStatus(models.RoomStatusVacant)
	require.NoError(t, s.CreateRoom(ctx, room))
	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "guest-1", Email: "g1@example.com", Role: models.RoleUser}))
	return s
}

func booking(id string, status models.BookingStatus, in, out int) *models.Booking {
	return &models.Booking{
		ID: id, RoomID: "room-1", GuestID: "guest-1",
		CheckIn: day(in), CheckOut: day(out), BookingStatus: status,
	}
}

func TestApplyCreateAndClaim(t *testing.T) {
	ctx := context.Background()
	s := seed(t)

	require.NoError(t, s.Apply(ctx, &ChangeSet{Booking: booking("b1", models.BookingConfirmed, 1, 4), Create: true}))

	err := s.Apply(ctx, &ChangeSet{
		Booking: booking("b2", models.BookingPending, 3, 5),
		Create:  true,
		Claim:   &Claim{RoomID: "room-1", CheckIn: day(3), CheckOut: day(5)},
	})
	assert.ErrorIs(t, err, apperrors.ErrRoomAlreadyBooked)

	_, err = s.GetBooking(ctx, "b2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// back-to-back is fine
	require.NoError(t, s.Apply(ctx, &ChangeSet{
		Booking: booking("b3", models.BookingPending, 4, 6),
		Create:  true,
		Claim:   &Claim{RoomID: "room-1", CheckIn: day(4), CheckOut: day(6)},
	}))
}

func TestApplyIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	require.NoError(t, s.Apply(ctx, &ChangeSet{Booking: booking("b1", models.BookingPending, 1, 4), Create: true}))

	confirmed := booking("b1", models.BookingConfirmed, 1, 4)
	approved := models.UserBookingApproved
	err := s.Apply(ctx, &ChangeSet{
		Booking:        confirmed,
		ExpectedStatus: models.BookingPending,
		Room:           &RoomPatch{RoomID: "room-1", Status: models.RoomStatusReserved},
		User:           &UserPatch{UserID: "ghost", BookingStatus: &approved},
	})
	assert.ErrorIs(t, err, apperrors.ErrConsistencyFault)

	b, err := s.GetBooking(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.BookingStatus)

	room, err := s.GetRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusVacant, room.Status)
	assert.True(t, room.IsAvailable)
}

func TestApplyRejectsStaleStatus(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	require.NoError(t, s.Apply(ctx, &ChangeSet{Booking: booking("b1", models.BookingCancelled, 1, 4), Create: true}))

	err := s.Apply(ctx, &ChangeSet{
		Booking:        booking("b1", models.BookingConfirmed, 1, 4),
		ExpectedStatus: models.BookingPending,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestApplyUpdatesAllRecords(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	require.NoError(t, s.Apply(ctx, &ChangeSet{Booking: booking("b1", models.BookingPending, 1, 4), Create: true}))

	guest := models.RoleGuest
	approved := models.UserBookingApproved
	require.NoError(t, s.Apply(ctx, &ChangeSet{
		Booking:        booking("b1", models.BookingConfirmed, 1, 4),
		ExpectedStatus: models.BookingPending,
		Claim:          &Claim{RoomID: "room-1", CheckIn: day(1), CheckOut: day(4), ExcludeBookingID: "b1"},
		Room:           &RoomPatch{RoomID: "room-1", Status: models.RoomStatusReserved},
		User:           &UserPatch{UserID: "guest-1", Role: &guest, BookingStatus: &approved},
	}))

	room, _ := s.GetRoom(ctx, "room-1")
	assert.Equal(t, models.RoomStatusReserved, room.Status)
	assert.False(t, room.IsAvailable)

	user, _ := s.GetUser(ctx, "guest-1")
	assert.Equal(t, models.RoleGuest, user.Role)
	assert.Equal(t, models.UserBookingApproved, user.BookingStatus)

	claimed, err := s.ClaimedRoomIDs(ctx, day(2), day(3))
	require.NoError(t, err)
	assert.Contains(t, claimed, "room-1")
}

func TestListRoomsFilter(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	suite := &models.Room{ID: "room-2", RoomNumber: "201", Type: models.RoomTypeSuite, Capacity: 4, Amenities: []string{"wifi", "jacuzzi"}}
	suite.SetStatus(models.RoomStatusVacant)
	require.NoError(t, s.CreateRoom(ctx, suite))
	cleaning := &models.Room{ID: "room-3", RoomNumber: "301", Type: models.RoomTypeSuite, Capacity: 4}
	cleaning.SetStatus(models.RoomStatusCleaning)
	require.NoError(t, s.CreateRoom(ctx, cleaning))

	rooms, err := s.ListRooms(ctx, RoomFilter{OnlyVacant: true, MinCapacity: 3})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "room-2", rooms[0].ID)

	rooms, err = s.ListRooms(ctx, RoomFilter{Amenities: []string{"jacuzzi"}})
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	rooms, err = s.ListRooms(ctx, RoomFilter{Types: []models.RoomType{models.RoomTypeSuite}})
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}

func TestDeleteRoomInUse(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	require.NoError(t, s.Apply(ctx, &ChangeSet{Booking: booking("b1", models.BookingPending, 1, 4), Create: true}))

	assert.ErrorIs(t, s.DeleteRoom(ctx, "room-1"), apperrors.ErrRoomInUse)
	assert.ErrorIs(t, s.DeleteRoom(ctx, "nope"), apperrors.ErrNotFound)
}

func TestApplyRatingRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	entry := models.Rating{ID: "r1", ResourceID: "room-1", ResourceKind: models.ResourceRoom, UserID: "guest-1", Rating: 4}
	agg := models.ComputeRatingAggregate([]models.Rating{entry})

	require.NoError(t, s.ApplyRating(ctx, RatingChange{Entry: entry, Kind: models.ResourceRoom, Aggregate: agg}))
	err := s.ApplyRating(ctx, RatingChange{Entry: entry, Kind: models.ResourceRoom, Aggregate: agg})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRating)

	kind, stored, err := s.FindRateable(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, models.ResourceRoom, kind)
	assert.Equal(t, 1, stored.TotalCount)
	assert.Equal(t, 4.0, stored.Mean)
}

func TestListExpiredPending(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	past, future := day(1), day(20)
	b1 := booking("b1", models.BookingPending, 5, 6)
	b1.AutoCancelAt = &past
	b2 := booking("b2", models.BookingPending, 7, 8)
	b2.AutoCancelAt = &future
	require.NoError(t, s.Apply(ctx, &ChangeSet{Booking: b1, Create: true}))
	require.NoError(t, s.Apply(ctx, &ChangeSet{Booking: b2, Create: true}))

	expired, err := s.ListExpiredPending(ctx, day(2), 10)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "b1", expired[0].ID)
}
