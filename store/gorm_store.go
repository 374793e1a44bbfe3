package store

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "hotelcore/errors"
	"hotelcore/models"
)

// GormStore is the Postgres-backed Store. Apply runs in one transaction and
// locks the room row FOR UPDATE before re-checking a claim.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Models trả về danh sách bảng cần AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&models.Room{},
		&models.Restaurant{},
		&models.User{},
		&models.Booking{},
		&models.Rating{},
	}
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func mapLookupErr(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(kind, id)
	}
	return err
}

func (s *GormStore) CreateRoom(ctx context.Context, room *models.Room) error {
	if room.Rating.Histogram == nil {
		room.Rating.Histogram = models.NewHistogram()
	}
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewAppError(apperrors.ErrCodeValidation, "room number already exists", err)
		}
		return err
	}
	return nil
}

func (s *GormStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, mapLookupErr(err, "room", id)
	}
	return &room, nil
}

func (s *GormStore) ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	query := s.db.WithContext(ctx).Model(&models.Room{})
	if filter.OnlyVacant {
		query = query.Where("status = ? AND is_available = ?", models.RoomStatusVacant, true)
	}
	if len(filter.Types) > 0 {
		query = query.Where("type IN ?", filter.Types)
	}
	if filter.MinCapacity > 0 {
		query = query.Where("capacity >= ?", filter.MinCapacity)
	}
	if len(filter.Amenities) > 0 {
		query = query.Where("amenities @> ?", pq.StringArray(filter.Amenities))
	}

	var rooms []models.Room
	if err := query.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *GormStore) SetRoomStatus(ctx context.Context, id string, expected, status models.RoomStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(map[string]interface{}{
			"status":       status,
			"is_available": status == models.RoomStatusVacant,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetRoom(ctx, id); err != nil {
			return err
		}
		return apperrors.Newf(apperrors.ErrCodeRoomInUse, "room %s changed status concurrently", id)
	}
	return nil
}

func (s *GormStore) DeleteRoom(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&room).Error; err != nil {
			return mapLookupErr(err, "room", id)
		}
		if room.Status.Held() {
			return apperrors.Newf(apperrors.ErrCodeRoomInUse, "room %s is %s", id, room.Status)
		}
		var open int64
		openStatuses := append([]models.BookingStatus{models.BookingPending}, models.ClaimStatuses...)
		if err := tx.Model(&models.Booking{}).
			Where("room_id = ? AND booking_status IN ?", id, openStatuses).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return apperrors.Newf(apperrors.ErrCodeRoomInUse, "room %s has %d open bookings", id, open)
		}
		return tx.Delete(&models.Room{}, "id = ?", id).Error
	})
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewAppError(apperrors.ErrCodeUserExists, "user already exists", err)
		}
		return err
	}
	return nil
}

func (s *GormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, mapLookupErr(err, "user", id)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, mapLookupErr(err, "user", email)
	}
	return &user, nil
}

func (s *GormStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, mapLookupErr(err, "booking", id)
	}
	return &booking, nil
}

func (s *GormStore) ListGuestBookings(ctx context.Context, guestID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *GormStore) ListRoomBookings(ctx context.Context, roomID string, statuses []models.BookingStatus) ([]models.Booking, error) {
	query := s.db.WithContext(ctx).Where("room_id = ?", roomID)
	if len(statuses) > 0 {
		query = query.Where("booking_status IN ?", statuses)
	}
	var bookings []models.Booking
	err := query.Order("check_in").Find(&bookings).Error
	return bookings, err
}

func (s *GormStore) ClaimedRoomIDs(ctx context.Context, checkIn, checkOut time.Time) (map[string]struct{}, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("booking_status IN ? AND check_in < ? AND check_out > ?", models.ClaimStatuses, checkOut, checkIn).
		Distinct().
		Pluck("room_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func (s *GormStore) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]models.Booking, error) {
	query := s.db.WithContext(ctx).
		Where("booking_status = ? AND auto_cancel_at IS NOT NULL AND auto_cancel_at <= ?", models.BookingPending, now).
		Order("auto_cancel_at")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var bookings []models.Booking
	err := query.Find(&bookings).Error
	return bookings, err
}

func (s *GormStore) Apply(ctx context.Context, cs *ChangeSet) error {
	if cs.Booking == nil {
		return apperrors.NewAppError(apperrors.ErrCodeConsistencyFault, "change set has no booking", nil)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cs.Claim != nil {
			if err := checkClaim(tx, cs.Claim); err != nil {
				return err
			}
		}

		if cs.Create {
			if err := tx.Create(cs.Booking).Error; err != nil {
				return apperrors.NewAppError(apperrors.ErrCodeConsistencyFault, "insert booking", err)
			}
		} else {
			res := tx.Model(&models.Booking{}).
				Where("id = ? AND booking_status = ?", cs.Booking.ID, cs.ExpectedStatus).
				Select("*").Omit("id", "created_at").
				Updates(cs.Booking)
			if res.Error != nil {
				return apperrors.NewAppError(apperrors.ErrCodeConsistencyFault, "update booking", res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.Newf(apperrors.ErrCodeInvalidTransition,
					"booking %s is no longer %s", cs.Booking.ID, cs.ExpectedStatus)
			}
		}

		if cs.Room != nil {
			res := tx.Model(&models.Room{}).Where("id = ?", cs.Room.RoomID).Updates(map[string]interface{}{
				"status":       cs.Room.Status,
				"is_available": cs.Room.Status == models.RoomStatusVacant,
			})
			if res.Error != nil {
				return apperrors.NewAppError(apperrors.ErrCodeConsistencyFault, "update room", res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.Newf(apperrors.ErrCodeConsistencyFault, "room %s missing", cs.Room.RoomID)
			}
		}

		if cs.User != nil {
			updates := map[string]interface{}{}
			if cs.User.Role != nil {
				updates["role"] = *cs.User.Role
			}
			if cs.User.BookingStatus != nil {
				updates["booking_status"] = *cs.User.BookingStatus
			}
			res := tx.Model(&models.User{}).Where("id = ?", cs.User.UserID).Updates(updates)
			if res.Error != nil {
				return apperrors.NewAppError(apperrors.ErrCodeConsistencyFault, "update user", res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.Newf(apperrors.ErrCodeConsistencyFault, "user %s missing", cs.User.UserID)
			}
		}
		return nil
	})
}

// checkClaim khóa dòng phòng rồi kiểm tra trùng lịch.
func checkClaim(tx *gorm.DB, claim *Claim) error {
	var room models.Room
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").Where("id = ?", claim.RoomID).First(&room).Error; err != nil {
		return mapLookupErr(err, "room", claim.RoomID)
	}

	query := tx.Model(&models.Booking{}).
		Where("room_id = ? AND booking_status IN ? AND check_in < ? AND check_out > ?",
			claim.RoomID, models.ClaimStatuses, claim.CheckOut, claim.CheckIn)
	if claim.ExcludeBookingID != "" {
		query = query.Where("id <> ?", claim.ExcludeBookingID)
	}
	var conflicts int64
	if err := query.Count(&conflicts).Error; err != nil {
		return err
	}
	if conflicts > 0 {
		return apperrors.Newf(apperrors.ErrCodeRoomAlreadyBooked, "room %s is already booked for these dates", claim.RoomID)
	}
	return nil
}

func (s *GormStore) CreateRestaurant(ctx context.Context, r *models.Restaurant) error {
	if r.Rating.Histogram == nil {
		r.Rating.Histogram = models.NewHistogram()
	}
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *GormStore) FindRateable(ctx context.Context, resourceID string) (models.ResourceKind, models.RatingAggregate, error) {
	db := s.db.WithContext(ctx)

	var room models.Room
	err := db.Where("id = ?", resourceID).First(&room).Error
	if err == nil {
		return models.ResourceRoom, room.Rating, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", models.RatingAggregate{}, err
	}

	var restaurant models.Restaurant
	if err := db.Where("id = ?", resourceID).First(&restaurant).Error; err != nil {
		return "", models.RatingAggregate{}, mapLookupErr(err, "resource", resourceID)
	}
	return models.ResourceRestaurant, restaurant.Rating, nil
}

func (s *GormStore) ListRatings(ctx context.Context, resourceID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.WithContext(ctx).Where("resource_id = ?", resourceID).Order("created_at").Find(&ratings).Error
	return ratings, err
}

func (s *GormStore) GetUserRating(ctx context.Context, resourceID, userID string) (*models.Rating, error) {
	var rating models.Rating
	err := s.db.WithContext(ctx).Where("resource_id = ? AND user_id = ?", resourceID, userID).First(&rating).Error
	if err != nil {
		return nil, mapLookupErr(err, "rating", resourceID+"/"+userID)
	}
	return &rating, nil
}

func (s *GormStore) ApplyRating(ctx context.Context, change RatingChange) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry := change.Entry
		if err := tx.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.NewAppError(apperrors.ErrCodeDuplicateRating, "user already rated this resource", err)
			}
			return err
		}

		var target interface{}
		switch change.Kind {
		case models.ResourceRoom:
			target = &models.Room{}
		case models.ResourceRestaurant:
			target = &models.Restaurant{}
		default:
			return apperrors.Newf(apperrors.ErrCodeValidation, "unknown resource kind %q", change.Kind)
		}

		res := tx.Model(target).Where("id = ?", entry.ResourceID).Updates(map[string]interface{}{
			"rating_mean":        change.Aggregate.Mean,
			"rating_total_count": change.Aggregate.TotalCount,
			"rating_histogram":   change.Aggregate.Histogram,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound(string(change.Kind), entry.ResourceID)
		}
		return nil
	})
}
