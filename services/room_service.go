package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"hotelcore/dto"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/logger"
	"hotelcore/store"
	"hotelcore/validator"
)

// RoomService quản lý phòng. Đổi trạng thái phòng dùng chung khóa với booking.
type RoomService struct {
	store          store.Store
	locker         Locker
	logger         logger.Logger
	storageTimeout time.Duration
	lockTimeout    time.Duration
}

type RoomServiceOptions struct {
	Store          store.Store
	Locker         Locker
	Logger         logger.Logger
	StorageTimeout time.Duration
	LockTimeout    time.Duration
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	s := &RoomService{
		store:          opts.Store,
		locker:         opts.Locker,
		logger:         logger.OrNop(opts.Logger),
		storageTimeout: opts.StorageTimeout,
		lockTimeout:    opts.LockTimeout,
	}
	if s.locker == nil {
		s.locker = NewKeyedMutex()
	}
	if s.lockTimeout <= 0 {
		s.lockTimeout = defaultLockTimeout
	}
	return s
}

func (s *RoomService) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	roomType, ok := models.ParseRoomType(req.Type)
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrCodeValidation, "unknown room type %q", req.Type)
	}

	room := &models.Room{
		ID:            uuid.NewString(),
		RoomNumber:    strings.TrimSpace(req.RoomNumber),
		Type:          roomType,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
		Amenities:     pq.StringArray(req.Amenities),
		Description:   req.Description,
		Rating:        models.RatingAggregate{Histogram: models.NewHistogram()},
	}
	room.SetStatus(models.RoomStatusVacant)
	if err := validator.ValidateRoom(room); err != nil {
		return nil, err
	}

	ctx, cancel := withStorageTimeout(ctx, s.storageTimeout)
	defer cancel()
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	s.logger.Info("room %s (%s) created", room.RoomNumber, room.Type)
	return room, nil
}

func (s *RoomService) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	ctx, cancel := withStorageTimeout(ctx, s.storageTimeout)
	defer cancel()
	return s.store.GetRoom(ctx, roomID)
}

// SetRoomStatus cho phép nhân viên chuyển giữa vacant, cleaning, maintenance.
// Reserved/Occupied chỉ do vòng đời booking ghi.
func (s *RoomService) SetRoomStatus(ctx context.Context, roomID string, status models.RoomStatus, actorID string) (*models.Room, error) {
	if !status.OperatorSettable() {
		return nil, apperrors.Newf(apperrors.ErrCodeValidation, "status %q cannot be set manually", status)
	}

	ctx, cancel := withStorageTimeout(ctx, s.storageTimeout)
	defer cancel()

	unlock, err := lockWithTimeout(ctx, s.locker, RoomLockKey(roomID), s.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status.Held() {
		return nil, apperrors.Newf(apperrors.ErrCodeRoomInUse, "room %s is %s", room.RoomNumber, room.Status)
	}
	if err := s.store.SetRoomStatus(ctx, roomID, room.Status, status); err != nil {
		return nil, err
	}
	s.logger.Info("room %s: %s -> %s by %s", room.RoomNumber, room.Status, status, actorID)
	room.SetStatus(status)
	return room, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, roomID string) error {
	ctx, cancel := withStorageTimeout(ctx, s.storageTimeout)
	defer cancel()

	unlock, err := lockWithTimeout(ctx, s.locker, RoomLockKey(roomID), s.lockTimeout)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.store.DeleteRoom(ctx, roomID); err != nil {
		return err
	}
	s.logger.Info("room %s deleted", roomID)
	return nil
}

func withStorageTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
