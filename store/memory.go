package store

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "hotelcore/errors"
	"hotelcore/models"
)

// MemoryStore keeps everything in process. Used for STORAGE_DRIVER=memory and in tests.
// Apply validates the whole ChangeSet before mutating, so a failed Apply leaves no trace.
type MemoryStore struct {
	mu          sync.RWMutex
	rooms       map[string]models.Room
	users       map[string]models.User
	bookings    map[string]models.Booking
	restaurants map[string]models.Restaurant
	ratings     map[string][]models.Rating
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:       map[string]models.Room{},
		users:       map[string]models.User{},
		bookings:    map[string]models.Booking{},
		restaurants: map[string]models.Restaurant{},
		ratings:     map[string][]models.Rating{},
		now:         time.Now,
	}
}

func (s *MemoryStore) Close() error { return nil }

func notFound(kind, id string) error {
	return apperrors.Newf(apperrors.ErrCodeNotFound, "%s %s not found", kind, id)
}

func (s *MemoryStore) CreateRoom(ctx context.Context, room *models.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; ok {
		return apperrors.Newf(apperrors.ErrCodeValidation, "room %s already exists", room.ID)
	}
	for _, r := range s.rooms {
		if r.RoomNumber == room.RoomNumber {
			return apperrors.Newf(apperrors.ErrCodeValidation, "room number %s already exists", room.RoomNumber)
		}
	}
	now := s.now()
	room.CreatedAt, room.UpdatedAt = now, now
	if room.Rating.Histogram == nil {
		room.Rating.Histogram = models.NewHistogram()
	}
	s.rooms[room.ID] = room.Clone()
	return nil
}

func (s *MemoryStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, notFound("room", id)
	}
	out := r.Clone()
	return &out, nil
}

func (s *MemoryStore) ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		if filter.OnlyVacant && !(r.Status == models.RoomStatusVacant && r.IsAvailable) {
			continue
		}
		if len(filter.Types) > 0 && !containsType(filter.Types, r.Type) {
			continue
		}
		if r.Capacity < filter.MinCapacity {
			continue
		}
		if !r.HasAmenities(filter.Amenities) {
			continue
		}
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func containsType(types []models.RoomType, t models.RoomType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func (s *MemoryStore) SetRoomStatus(ctx context.Context, id string, expected, status models.RoomStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return notFound("room", id)
	}
	if r.Status != expected {
		return apperrors.Newf(apperrors.ErrCodeRoomInUse, "room %s is %s", id, r.Status)
	}
	r.SetStatus(status)
	r.UpdatedAt = s.now()
	s.rooms[id] = r
	return nil
}

func (s *MemoryStore) DeleteRoom(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return notFound("room", id)
	}
	if r.Status.Held() {
		return apperrors.Newf(apperrors.ErrCodeRoomInUse, "room %s is %s", id, r.Status)
	}
	for _, b := range s.bookings {
		if b.RoomID == id && (b.BookingStatus == models.BookingPending || b.BookingStatus.HoldsClaim()) {
			return apperrors.Newf(apperrors.ErrCodeRoomInUse, "room %s has open booking %s", id, b.ID)
		}
	}
	delete(s.rooms, id)
	return nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == user.ID || (user.Email != "" && u.Email == user.Email) {
			return apperrors.Newf(apperrors.ErrCodeUserExists, "user %s already exists", user.Email)
		}
	}
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, notFound("user", email)
}

// DeleteUser removes an account without touching its bookings.
func (s *MemoryStore) DeleteUser(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return notFound("user", id)
	}
	delete(s.users, id)
	return nil
}

func (s *MemoryStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, notFound("booking", id)
	}
	out := b.Clone()
	return &out, nil
}

func (s *MemoryStore) ListGuestBookings(ctx context.Context, guestID string) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.GuestID == guestID {
			out = append(out, b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) ListRoomBookings(ctx context.Context, roomID string, statuses []models.BookingStatus) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.RoomID == roomID && hasStatus(statuses, b.BookingStatus) {
			out = append(out, b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

func hasStatus(statuses []models.BookingStatus, s models.BookingStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func (s *MemoryStore) ClaimedRoomIDs(ctx context.Context, checkIn, checkOut time.Time) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]struct{}{}
	for _, b := range s.bookings {
		if b.Claims(checkIn, checkOut) {
			out[b.RoomID] = struct{}{}
		}
	}
	return out, nil
}

func (s *MemoryStore) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.BookingStatus == models.BookingPending && b.AutoCancelAt != nil && !b.AutoCancelAt.After(now) {
			out = append(out, b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AutoCancelAt.Before(*out[j].AutoCancelAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Apply(ctx context.Context, cs *ChangeSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// validate everything first
	if cs.Booking == nil {
		return apperrors.NewAppError(apperrors.ErrCodeConsistencyFault, "change set has no booking", nil)
	}
	current, exists := s.bookings[cs.Booking.ID]
	if cs.Create && exists {
		return apperrors.Newf(apperrors.ErrCodeConsistencyFault, "booking %s already exists", cs.Booking.ID)
	}
	if !cs.Create {
		if !exists {
			return notFound("booking", cs.Booking.ID)
		}
		if current.BookingStatus != cs.ExpectedStatus {
			return apperrors.Newf(apperrors.ErrCodeInvalidTransition,
				"booking %s is %s, expected %s", current.ID, current.BookingStatus, cs.ExpectedStatus)
		}
	}
	if cs.Claim != nil {
		if _, ok := s.rooms[cs.Claim.RoomID]; !ok {
			return notFound("room", cs.Claim.RoomID)
		}
		for _, b := range s.bookings {
			if b.ID == cs.Claim.ExcludeBookingID || b.RoomID != cs.Claim.RoomID {
				continue
			}
			if b.Claims(cs.Claim.CheckIn, cs.Claim.CheckOut) {
				return apperrors.Newf(apperrors.ErrCodeRoomAlreadyBooked,
					"room %s is claimed by booking %s", cs.Claim.RoomID, b.ID)
			}
		}
	}
	if cs.Room != nil {
		if _, ok := s.rooms[cs.Room.RoomID]; !ok {
			return apperrors.Newf(apperrors.ErrCodeConsistencyFault, "room %s missing", cs.Room.RoomID)
		}
	}
	if cs.User != nil {
		if _, ok := s.users[cs.User.UserID]; !ok {
			return apperrors.Newf(apperrors.ErrCodeConsistencyFault, "user %s missing", cs.User.UserID)
		}
	}

	now := s.now()
	b := cs.Booking.Clone()
	if cs.Create {
		b.CreatedAt = now
	} else {
		b.CreatedAt = current.CreatedAt
	}
	b.UpdatedAt = now
	s.bookings[b.ID] = b
	cs.Booking.CreatedAt, cs.Booking.UpdatedAt = b.CreatedAt, b.UpdatedAt

	if cs.Room != nil {
		r := s.rooms[cs.Room.RoomID]
		r.SetStatus(cs.Room.Status)
		r.UpdatedAt = now
		s.rooms[r.ID] = r
	}
	if cs.User != nil {
		u := s.users[cs.User.UserID]
		if cs.User.Role != nil {
			u.Role = *cs.User.Role
		}
		if cs.User.BookingStatus != nil {
			u.BookingStatus = *cs.User.BookingStatus
		}
		u.UpdatedAt = now
		s.users[u.ID] = u
	}
	return nil
}

func (s *MemoryStore) CreateRestaurant(ctx context.Context, r *models.Restaurant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Rating.Histogram == nil {
		r.Rating.Histogram = models.NewHistogram()
	}
	now := s.now()
	r.CreatedAt, r.UpdatedAt = now, now
	cp := *r
	cp.Rating = r.Rating.Clone()
	s.restaurants[r.ID] = cp
	return nil
}

func (s *MemoryStore) FindRateable(ctx context.Context, resourceID string) (models.ResourceKind, models.RatingAggregate, error) {
	if err := ctx.Err(); err != nil {
		return "", models.RatingAggregate{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.rooms[resourceID]; ok {
		return models.ResourceRoom, r.Rating.Clone(), nil
	}
	if r, ok := s.restaurants[resourceID]; ok {
		return models.ResourceRestaurant, r.Rating.Clone(), nil
	}
	return "", models.RatingAggregate{}, notFound("resource", resourceID)
}

func (s *MemoryStore) ListRatings(ctx context.Context, resourceID string) ([]models.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Rating(nil), s.ratings[resourceID]...), nil
}

func (s *MemoryStore) GetUserRating(ctx context.Context, resourceID, userID string) (*models.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.ratings[resourceID] {
		if r.UserID == userID {
			out := r
			return &out, nil
		}
	}
	return nil, notFound("rating", resourceID+"/"+userID)
}

func (s *MemoryStore) ApplyRating(ctx context.Context, change RatingChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := change.Entry
	for _, r := range s.ratings[entry.ResourceID] {
		if r.UserID == entry.UserID {
			return apperrors.Newf(apperrors.ErrCodeDuplicateRating,
				"user %s already rated %s", entry.UserID, entry.ResourceID)
		}
	}
	agg := change.Aggregate.Clone()
	switch change.Kind {
	case models.ResourceRoom:
		r, ok := s.rooms[entry.ResourceID]
		if !ok {
			return notFound("room", entry.ResourceID)
		}
		r.Rating = agg
		s.rooms[r.ID] = r
	case models.ResourceRestaurant:
		r, ok := s.restaurants[entry.ResourceID]
		if !ok {
			return notFound("restaurant", entry.ResourceID)
		}
		r.Rating = agg
		s.restaurants[r.ID] = r
	default:
		return apperrors.Newf(apperrors.ErrCodeValidation, "unknown resource kind %q", change.Kind)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	s.ratings[entry.ResourceID] = append(s.ratings[entry.ResourceID], entry)
	return nil
}
