package services

import (
	"context"
	"errors"
	"time"

	"hotelcore/builders"
	"hotelcore/commands"
	"hotelcore/dto"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/logger"
	"hotelcore/services/notification"
	"hotelcore/store"
	"hotelcore/validator"
)

const (
	SystemActor        = "system"
	ExpiredReason      = "expired"
	expireBatchSize    = 100
	defaultLockTimeout = 5 * time.Second
)

// BookingService owns the booking lifecycle. Every write for one room is
// serialized by the room lock and committed through a single ChangeSet.
type BookingService struct {
	store           store.Store
	locker          Locker
	notifier        notification.Service
	logger          logger.Logger
	now             func() time.Time
	storageTimeout  time.Duration
	lockTimeout     time.Duration
	pendingTTL      time.Duration
	lenientCheckout bool
}

type BookingServiceOptions struct {
	Store           store.Store
	Locker          Locker
	Notifier        notification.Service
	Logger          logger.Logger
	Now             func() time.Time
	StorageTimeout  time.Duration
	LockTimeout     time.Duration
	PendingTTL      time.Duration
	LenientCheckout bool
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	s := &BookingService{
		store:           opts.Store,
		locker:          opts.Locker,
		notifier:        opts.Notifier,
		logger:          logger.OrNop(opts.Logger),
		now:             opts.Now,
		storageTimeout:  opts.StorageTimeout,
		lockTimeout:     opts.LockTimeout,
		pendingTTL:      opts.PendingTTL,
		lenientCheckout: opts.LenientCheckout,
	}
	if s.locker == nil {
		s.locker = NewKeyedMutex()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.lockTimeout <= 0 {
		s.lockTimeout = defaultLockTimeout
	}
	return s
}

// CreateBooking tạo booking pending. Kiểm tra theo thứ tự: phòng tồn tại,
// khoảng ngày, sức chứa, trùng lịch, rồi trạng thái phòng.
func (s *BookingService) CreateBooking(ctx context.Context, in dto.CreateBookingInput) (*models.Booking, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}

	ctx, cancel := s.storageContext(ctx)
	defer cancel()

	unlock, err := lockWithTimeout(ctx, s.locker, RoomLockKey(in.RoomID), s.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	room, err := s.store.GetRoom(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateDateRange(in.CheckIn, in.CheckOut); err != nil {
		return nil, err
	}
	if in.GuestCount > room.Capacity {
		return nil, apperrors.Newf(apperrors.ErrCodeCapacityExceeded,
			"room %s fits %d guests, requested %d", room.RoomNumber, room.Capacity, in.GuestCount)
	}

	claims, err := s.store.ListRoomBookings(ctx, room.ID, models.ClaimStatuses)
	if err != nil {
		return nil, err
	}
	for _, other := range claims {
		if other.Overlaps(in.CheckIn, in.CheckOut) {
			return nil, apperrors.Newf(apperrors.ErrCodeRoomAlreadyBooked,
				"room %s is already booked for these dates", room.RoomNumber)
		}
	}
	if room.Status != models.RoomStatusVacant || !room.IsAvailable {
		return nil, apperrors.Newf(apperrors.ErrCodeRoomNotAvailable, "room %s is %s", room.RoomNumber, room.Status)
	}

	guest, err := s.store.GetUser(ctx, in.GuestID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	builder := builders.NewBookingBuilder().
		ForRoom(room).
		ForGuest(guest, in.SpecialRequests).
		WithDates(in.CheckIn, in.CheckOut).
		WithGuestCount(in.GuestCount).
		WithServices(in.AdditionalServices).
		CreatedBy(in.GuestID)
	if s.pendingTTL > 0 {
		builder.ExpiresAt(now.Add(s.pendingTTL))
	}
	booking := builder.Build()

	if err := commands.NewCreateBookingCommand(booking, s.store).Execute(ctx); err != nil {
		return nil, s.applyError("create booking", booking.ID, err)
	}

	s.logger.Info("booking %s created for room %s (%s - %s)",
		booking.ID, room.RoomNumber, in.CheckIn.Format(validator.DateLayout), in.CheckOut.Format(validator.DateLayout))
	s.notify(models.NewBookingNotification(booking, in.GuestID, now))
	return booking, nil
}

// Transition chuyển booking sang target. Phòng và user được cập nhật cùng lúc.
func (s *BookingService) Transition(ctx context.Context, bookingID string, target models.BookingStatus, actorID string, extra dto.TransitionExtra) (*models.Booking, error) {
	if !target.Valid() {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidTransition, "unknown status %q", target)
	}

	ctx, cancel := s.storageContext(ctx)
	defer cancel()

	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// fail fast without taking the lock
	if !booking.BookingStatus.CanTransitionTo(target) {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidTransition,
			"booking %s cannot go from %s to %s", booking.ID, booking.BookingStatus, target)
	}

	unlock, err := lockWithTimeout(ctx, s.locker, RoomLockKey(booking.RoomID), s.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// đọc lại dưới khóa
	booking, err = s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	room, err := s.store.GetRoom(ctx, booking.RoomID)
	if err != nil {
		return nil, s.applyError("load room", booking.ID, err)
	}
	user, err := s.store.GetUser(ctx, booking.GuestID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	claims, err := s.store.ListRoomBookings(ctx, booking.RoomID, models.ClaimStatuses)
	if err != nil {
		return nil, err
	}

	cmd, err := commands.NewTransitionCommand(commands.TransitionInput{
		Booking:         booking,
		Room:            room,
		User:            user,
		RoomClaims:      claims,
		Target:          target,
		ActorID:         actorID,
		Extra:           extra,
		Now:             s.now(),
		LenientCheckout: s.lenientCheckout,
	}, s.store)
	if err != nil {
		return nil, err
	}
	if err := cmd.Execute(ctx); err != nil {
		return nil, s.applyError("transition to "+string(target), booking.ID, err)
	}

	plan := cmd.Plan()
	updated := plan.Changes.Booking
	if plan.AssumedPayment {
		s.logger.Warn("booking %s checked out without paid amount, assumed full payment %.2f", updated.ID, updated.TotalAmount)
	}
	s.logger.Info("booking %s: %s -> %s by %s", updated.ID, booking.BookingStatus, target, actorID)
	s.notify(models.NewBookingNotification(updated, actorID, s.now()))
	return updated, nil
}

func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	return s.Transition(ctx, bookingID, models.BookingConfirmed, actorID, dto.TransitionExtra{})
}

func (s *BookingService) CheckIn(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	return s.Transition(ctx, bookingID, models.BookingCheckedIn, actorID, dto.TransitionExtra{})
}

func (s *BookingService) CheckOut(ctx context.Context, bookingID, actorID string, extra dto.TransitionExtra) (*models.Booking, error) {
	return s.Transition(ctx, bookingID, models.BookingCheckedOut, actorID, extra)
}

func (s *BookingService) MarkNoShow(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	return s.Transition(ctx, bookingID, models.BookingNoShow, actorID, dto.TransitionExtra{})
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID, actorID, reason string, refund *float64) (*models.Booking, error) {
	return s.Transition(ctx, bookingID, models.BookingCancelled, actorID, dto.TransitionExtra{Reason: reason, RefundAmount: refund})
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := s.storageContext(ctx)
	defer cancel()
	return s.store.GetBooking(ctx, bookingID)
}

func (s *BookingService) ListGuestBookings(ctx context.Context, guestID string) ([]models.Booking, error) {
	ctx, cancel := s.storageContext(ctx)
	defer cancel()
	return s.store.ListGuestBookings(ctx, guestID)
}

// ExpirePending hủy các booking pending đã quá hạn xác nhận. Trả về số booking đã hủy.
func (s *BookingService) ExpirePending(ctx context.Context) (int, error) {
	listCtx, cancel := s.storageContext(ctx)
	expired, err := s.store.ListExpiredPending(listCtx, s.now(), expireBatchSize)
	cancel()
	if err != nil {
		return 0, err
	}

	var errs []error
	cancelled := 0
	for _, b := range expired {
		_, err := s.Transition(ctx, b.ID, models.BookingCancelled, SystemActor, dto.TransitionExtra{Reason: ExpiredReason})
		switch {
		case err == nil:
			cancelled++
		case errors.Is(err, apperrors.ErrInvalidTransition):
			// đã được xác nhận/hủy trong lúc quét
			s.logger.Debug("skip expiring booking %s: %v", b.ID, err)
		default:
			s.logger.Error("expire booking %s: %v", b.ID, err)
			errs = append(errs, err)
		}
	}
	return cancelled, errors.Join(errs...)
}

func (s *BookingService) storageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withStorageTimeout(ctx, s.storageTimeout)
}

// applyError giữ nguyên lỗi nghiệp vụ, còn lỗi hạ tầng thành ConsistencyFault.
// Nothing was written in either case; the caller may retry the whole operation.
func (s *BookingService) applyError(op, bookingID string, err error) error {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		if appErr.Code == apperrors.ErrCodeConsistencyFault {
			s.logger.Error("%s for booking %s rolled back: %v", op, bookingID, err)
		}
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		s.logger.Error("%s for booking %s timed out: %v", op, bookingID, err)
		return apperrors.NewAppError(apperrors.ErrCodeStorageUnavailable, op+" timed out", err)
	}
	s.logger.Error("%s for booking %s rolled back: %v", op, bookingID, err)
	return apperrors.NewAppError(apperrors.ErrCodeConsistencyFault, op+" failed and was rolled back", err)
}

func (s *BookingService) notify(n models.Notification) {
	if s.notifier == nil {
		return
	}
	go func() {
		if err := s.notifier.Send(n); err != nil {
			s.logger.Error("notify %s for booking %s: %v", n.Event, n.Payload.BookingID, err)
		}
	}()
}

func lockWithTimeout(ctx context.Context, locker Locker, key string, timeout time.Duration) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return locker.Lock(lockCtx, key)
}
