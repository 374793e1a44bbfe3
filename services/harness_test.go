package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hotelcore/models"
	"hotelcore/store"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// chanNotifier records events; err makes every Send fail after recording.
type chanNotifier struct {
	events chan models.Notification
	err    error
}

func newChanNotifier(err error) *chanNotifier {
	return &chanNotifier{events: make(chan models.Notification, 64), err: err}
}

func (n *chanNotifier) Send(e models.Notification) error {
	n.events <- e
	return n.err
}

type harness struct {
	store    *store.MemoryStore
	clock    *fakeClock
	notifier *chanNotifier
	bookings *BookingService
	rooms    *RoomService
	ratings  *RatingService
	avail    *AvailabilityService
	facade   *BookingFacade
}

type harnessOption func(*BookingServiceOptions)

func lenient(on bool) harnessOption {
	return func(o *BookingServiceOptions) { o.LenientCheckout = on }
}

func failingNotifier() harnessOption {
	return func(o *BookingServiceOptions) { o.Notifier = newChanNotifier(errors.New("sink down")) }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	st := store.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2025, time.May, 20, 10, 0, 0, 0, time.UTC)}
	notifier := newChanNotifier(nil)
	locker := NewKeyedMutex()

	bo := BookingServiceOptions{
		Store:          st,
		Locker:         locker,
		Notifier:       notifier,
		Now:            clock.Now,
		StorageTimeout: time.Second,
		LockTimeout:    time.Second,
		PendingTTL:     24 * time.Hour,
	}
	for _, opt := range opts {
		opt(&bo)
	}
	if n, ok := bo.Notifier.(*chanNotifier); ok {
		notifier = n
	}

	h := &harness{
		store:    st,
		clock:    clock,
		notifier: notifier,
		bookings: NewBookingService(bo),
		rooms:    NewRoomService(RoomServiceOptions{Store: st, Locker: locker, StorageTimeout: time.Second}),
		ratings:  NewRatingService(RatingServiceOptions{Store: st, Locker: NewKeyedMutex(), Now: clock.Now, StorageTimeout: time.Second}),
		avail:    NewAvailabilityService(st, nil, time.Second),
	}
	h.facade = NewBookingFacade(h.avail, h.bookings, h.rooms, h.ratings, NewUserService(UserServiceOptions{Store: st}))
	return h
}

func (h *harness) addRoom(t *testing.T, id, number string, roomType models.RoomType, capacity int, price float64) {
	t.Helper()
	room := &models.Room{ID: id, RoomNumber: number, Type: roomType, Capacity: capacity, PricePerNight: price}
	room.SetStatus(models.RoomStatusVacant)
	require.NoError(t, h.store.CreateRoom(context.Background(), room))
}

func (h *harness) addUser(t *testing.T, id string, role models.UserRole) {
	t.Helper()
	require.NoError(t, h.store.CreateUser(context.Background(), &models.User{
		ID: id, Email: id + "@example.com", Role: role, BookingStatus: models.UserBookingNone,
	}))
}

func (h *harness) room(t *testing.T, id string) *models.Room {
	t.Helper()
	r, err := h.store.GetRoom(context.Background(), id)
	require.NoError(t, err)
	return r
}

func (h *harness) user(t *testing.T, id string) *models.User {
	t.Helper()
	u, err := h.store.GetUser(context.Background(), id)
	require.NoError(t, err)
	return u
}

func june(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}
