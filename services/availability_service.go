package services

import (
	"context"
	"time"

	"hotelcore/dto"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/logger"
	"hotelcore/store"
	"hotelcore/validator"
)

// AvailabilityService chỉ đọc, không lấy khóa.
type AvailabilityService struct {
	store          store.Store
	logger         logger.Logger
	storageTimeout time.Duration
}

func NewAvailabilityService(st store.Store, log logger.Logger, storageTimeout time.Duration) *AvailabilityService {
	return &AvailabilityService{store: st, logger: logger.OrNop(log), storageTimeout: storageTimeout}
}

// FindAvailableRooms trả về các phòng Vacant không có booking confirmed/checked-in
// trùng với [checkIn, checkOut), sắp xếp theo số phòng.
func (s *AvailabilityService) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, filter dto.RoomFilter) ([]models.Room, error) {
	if err := validator.ValidateDateRange(checkIn, checkOut); err != nil {
		return nil, err
	}

	query := store.RoomFilter{
		OnlyVacant:  true,
		MinCapacity: filter.MinCapacity,
		Amenities:   filter.Amenities,
	}
	if filter.RoomType != "" {
		roomType, ok := models.ParseRoomType(filter.RoomType)
		if !ok {
			return nil, apperrors.Newf(apperrors.ErrCodeValidation, "unknown room type %q", filter.RoomType)
		}
		query.Types = []models.RoomType{roomType}
	}

	ctx, cancel := withStorageTimeout(ctx, s.storageTimeout)
	defer cancel()

	claimed, err := s.store.ClaimedRoomIDs(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	rooms, err := s.store.ListRooms(ctx, query)
	if err != nil {
		return nil, err
	}

	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if _, taken := claimed[room.ID]; taken {
			continue
		}
		available = append(available, room)
	}
	s.logger.Debug("availability %s - %s: %d of %d rooms free",
		checkIn.Format(validator.DateLayout), checkOut.Format(validator.DateLayout), len(available), len(rooms))
	return available, nil
}

// RoomCalendar trả về từng ngày trong tháng, đánh dấu ngày bị booking giữ phòng.
func (s *AvailabilityService) RoomCalendar(ctx context.Context, roomID string, month time.Time) ([]dto.CalendarDay, error) {
	ctx, cancel := withStorageTimeout(ctx, s.storageTimeout)
	defer cancel()

	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	bookings, err := s.store.ListRoomBookings(ctx, roomID, append([]models.BookingStatus{models.BookingPending}, models.ClaimStatuses...))
	if err != nil {
		return nil, err
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	var days []dto.CalendarDay
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		day := dto.CalendarDay{Date: d.Format(validator.DateLayout)}
		for i := range bookings {
			b := &bookings[i]
			if !b.Overlaps(d, d.AddDate(0, 0, 1)) {
				continue
			}
			// booking giữ phòng được ưu tiên hơn booking pending
			if b.BookingStatus.HoldsClaim() {
				day.Claimed = true
				day.BookingID = b.ID
				day.Status = string(b.BookingStatus)
				break
			}
			if day.BookingID == "" {
				day.BookingID = b.ID
				day.Status = string(b.BookingStatus)
			}
		}
		days = append(days, day)
	}
	return days, nil
}
