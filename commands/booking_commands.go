package commands

import (
	"context"
	"time"

	"hotelcore/dto"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/store"
)

// BookingCommand định nghĩa interface cho các command
type BookingCommand interface {
	Execute(ctx context.Context) error
}

// Applier commits a ChangeSet atomically.
type Applier interface {
	Apply(ctx context.Context, cs *store.ChangeSet) error
}

// CreateBookingCommand ghi booking pending, kiểm tra lại trùng lịch khi ghi
type CreateBookingCommand struct {
	booking *models.Booking
	applier Applier
}

func NewCreateBookingCommand(booking *models.Booking, applier Applier) *CreateBookingCommand {
	return &CreateBookingCommand{booking: booking, applier: applier}
}

func (c *CreateBookingCommand) Execute(ctx context.Context) error {
	return c.applier.Apply(ctx, &store.ChangeSet{
		Booking: c.booking,
		Create:  true,
		Claim: &store.Claim{
			RoomID:   c.booking.RoomID,
			CheckIn:  c.booking.CheckIn,
			CheckOut: c.booking.CheckOut,
		},
	})
}

// TransitionCommand áp dụng một bước chuyển trạng thái đã được lập kế hoạch
type TransitionCommand struct {
	plan    *Plan
	applier Applier
}

func NewTransitionCommand(in TransitionInput, applier Applier) (*TransitionCommand, error) {
	plan, err := PlanTransition(in)
	if err != nil {
		return nil, err
	}
	return &TransitionCommand{plan: plan, applier: applier}, nil
}

func (c *TransitionCommand) Plan() *Plan { return c.plan }

func (c *TransitionCommand) Execute(ctx context.Context) error {
	return c.applier.Apply(ctx, c.plan.Changes)
}

type TransitionInput struct {
	Booking *models.Booking
	Room    *models.Room
	// User may be nil when the account row is gone; the write then faults.
	User *models.User
	// RoomClaims are the room's confirmed/checked-in bookings. The booking itself is ignored.
	RoomClaims []models.Booking
	Target     models.BookingStatus
	ActorID    string
	Extra      dto.TransitionExtra
	Now        time.Time
	// LenientCheckout lets checkout without a paid amount assume full payment.
	LenientCheckout bool
}

type Plan struct {
	Changes *store.ChangeSet
	// AssumedPayment is set when checkout defaulted the paid amount to the total.
	AssumedPayment bool
}

// PlanTransition tính toàn bộ thay đổi cho booking, phòng và user. Không ghi gì cả.
func PlanTransition(in TransitionInput) (*Plan, error) {
	current := in.Booking
	from := current.BookingStatus
	if !in.Target.Valid() {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidTransition, "unknown status %q", in.Target)
	}
	if !from.CanTransitionTo(in.Target) {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidTransition,
			"booking %s cannot go from %s to %s", current.ID, from, in.Target)
	}

	now := in.Now
	b := current.Clone()
	b.BookingStatus = in.Target
	b.UpdatedBy = in.ActorID

	plan := &Plan{Changes: &store.ChangeSet{Booking: &b, ExpectedStatus: from}}
	cs := plan.Changes

	switch in.Target {
	case models.BookingConfirmed:
		b.ConfirmedAt = &now
		b.ConfirmedBy = in.ActorID
		b.AutoCancelAt = nil
		cs.Claim = &store.Claim{RoomID: b.RoomID, CheckIn: b.CheckIn, CheckOut: b.CheckOut, ExcludeBookingID: b.ID}
		// phòng đang có khách thì giữ Occupied
		status := models.RoomStatusReserved
		if in.Room != nil && in.Room.Status == models.RoomStatusOccupied {
			status = models.RoomStatusOccupied
		}
		cs.Room = &store.RoomPatch{RoomID: b.RoomID, Status: status}
		cs.User = confirmUserPatch(b.GuestID, in.User)

	case models.BookingCheckedIn:
		b.CheckInTime = &now
		b.AssignedBy = in.ActorID
		cs.Room = &store.RoomPatch{RoomID: b.RoomID, Status: models.RoomStatusOccupied}

	case models.BookingCheckedOut:
		if err := applyCheckoutPayment(&b, in, now, plan); err != nil {
			return nil, err
		}
		b.CheckOutTime = &now
		cs.Room = releasePatch(b.RoomID, b.ID, in.RoomClaims)
		cs.User = clearUserPatch(b.GuestID)

	case models.BookingCancelled:
		refund, err := refundAmount(&b, from, in.Extra.RefundAmount)
		if err != nil {
			return nil, err
		}
		if refund > 0 {
			b.PaymentStatus = models.PaymentRefunded
		}
		b.Cancellation = models.Cancellation{
			CancelledAt:  &now,
			CancelledBy:  in.ActorID,
			Reason:       in.Extra.Reason,
			RefundAmount: refund,
		}
		b.AutoCancelAt = nil
		if from.HoldsClaim() {
			cs.Room = releasePatch(b.RoomID, b.ID, in.RoomClaims)
			cs.User = clearUserPatch(b.GuestID)
		}

	case models.BookingNoShow:
		cs.Room = releasePatch(b.RoomID, b.ID, in.RoomClaims)
		cs.User = clearUserPatch(b.GuestID)

	default:
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidTransition, "no handler for %s", in.Target)
	}
	return plan, nil
}

func applyCheckoutPayment(b *models.Booking, in TransitionInput, now time.Time, plan *Plan) error {
	paid := in.Extra.PaidAmount
	if paid == nil {
		if !in.LenientCheckout {
			return apperrors.Newf(apperrors.ErrCodePaymentRequired, "booking %s: paid amount is required at checkout", b.ID)
		}
		total := b.TotalAmount
		paid = &total
		plan.AssumedPayment = true
	}
	if *paid < 0 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "paid amount cannot be negative", nil)
	}

	b.Payment.PaidAmount = *paid
	b.Payment.PaymentDate = &now
	if in.Extra.PaymentMethod != "" {
		b.Payment.Method = in.Extra.PaymentMethod
	}
	if in.Extra.TransactionID != "" {
		b.Payment.TransactionID = in.Extra.TransactionID
	}
	if in.Extra.PaymentStatus != "" {
		if !in.Extra.PaymentStatus.Valid() {
			return apperrors.Newf(apperrors.ErrCodeValidation, "unknown payment status %q", in.Extra.PaymentStatus)
		}
		b.PaymentStatus = in.Extra.PaymentStatus
	} else {
		b.PaymentStatus = models.DerivePaymentStatus(*paid, b.TotalAmount)
	}
	return nil
}

// refundAmount: chỉ hoàn tiền khi booking đã được xác nhận và đã thanh toán
func refundAmount(b *models.Booking, from models.BookingStatus, requested *float64) (float64, error) {
	paid := b.Payment.PaidAmount
	if !from.HoldsClaim() || paid <= 0 {
		return 0, nil
	}
	if requested == nil {
		return paid, nil
	}
	if *requested < 0 {
		return 0, apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "refund cannot be negative", nil)
	}
	if *requested > paid {
		return 0, apperrors.Newf(apperrors.ErrCodeInvalidAmount, "refund %.2f exceeds paid %.2f", *requested, paid)
	}
	return *requested, nil
}

// releasePatch tính lại trạng thái phòng từ các booking còn giữ phòng.
func releasePatch(roomID, bookingID string, claims []models.Booking) *store.RoomPatch {
	status := models.RoomStatusVacant
	for _, other := range claims {
		if other.ID == bookingID || other.RoomID != roomID {
			continue
		}
		switch other.BookingStatus {
		case models.BookingCheckedIn:
			return &store.RoomPatch{RoomID: roomID, Status: models.RoomStatusOccupied}
		case models.BookingConfirmed:
			status = models.RoomStatusReserved
		}
	}
	return &store.RoomPatch{RoomID: roomID, Status: status}
}

// Staff and housekeeping accounts keep their role; only plain accounts are promoted to guest.
func confirmUserPatch(userID string, user *models.User) *store.UserPatch {
	approved := models.UserBookingApproved
	patch := &store.UserPatch{UserID: userID, BookingStatus: &approved}
	if user == nil || user.Role == models.RoleUser || user.Role == models.RoleGuest {
		guest := models.RoleGuest
		patch.Role = &guest
	}
	return patch
}

func clearUserPatch(userID string) *store.UserPatch {
	none := models.UserBookingNone
	return &store.UserPatch{UserID: userID, BookingStatus: &none}
}
