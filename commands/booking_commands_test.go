package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelcore/dto"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/store"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func fixture(status models.BookingStatus) TransitionInput {
	return TransitionInput{
		Booking: &models.Booking{
			ID: "b1", RoomID: "room-1", GuestID: "u1",
			CheckIn: now, CheckOut: now.AddDate(0, 0, 2),
			TotalAmount: 200, BookingStatus: status, PaymentStatus: models.PaymentPending,
		},
		Room:    &models.Room{ID: "room-1", Status: models.RoomStatusVacant, IsAvailable: true},
		User:    &models.User{ID: "u1", Role: models.RoleUser, BookingStatus: models.UserBookingNone},
		ActorID: "staff-1",
		Now:     now,
	}
}

func TestPlanConfirm(t *testing.T) {
	plan, err := PlanTransition(with(fixture(models.BookingPending), models.BookingConfirmed))
	require.NoError(t, err)
	cs := plan.Changes

	assert.Equal(t, models.BookingConfirmed, cs.Booking.BookingStatus)
	assert.Equal(t, models.BookingPending, cs.ExpectedStatus)
	assert.Equal(t, "staff-1", cs.Booking.ConfirmedBy)
	assert.Nil(t, cs.Booking.AutoCancelAt)
	require.NotNil(t, cs.Claim)
	assert.Equal(t, "b1", cs.Claim.ExcludeBookingID)
	assert.Equal(t, models.RoomStatusReserved, cs.Room.Status)
	assert.Equal(t, models.RoleGuest, *cs.User.Role)
	assert.Equal(t, models.UserBookingApproved, *cs.User.BookingStatus)
}

func TestPlanConfirmKeepsOccupiedRoomAndStaffRole(t *testing.T) {
	in := with(fixture(models.BookingPending), models.BookingConfirmed)
	in.Room.Status = models.RoomStatusOccupied
	in.User.Role = models.RoleManager

	plan, err := PlanTransition(in)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusOccupied, plan.Changes.Room.Status)
	assert.Nil(t, plan.Changes.User.Role)

	in = with(fixture(models.BookingPending), models.BookingConfirmed)
	in.User.Role = models.RoleHousekeeping
	plan, err = PlanTransition(in)
	require.NoError(t, err)
	assert.Nil(t, plan.Changes.User.Role)
	require.NotNil(t, plan.Changes.User.BookingStatus)
	assert.Equal(t, models.UserBookingApproved, *plan.Changes.User.BookingStatus)
}

func TestPlanDoesNotMutateInput(t *testing.T) {
	in := with(fixture(models.BookingPending), models.BookingConfirmed)
	_, err := PlanTransition(in)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, in.Booking.BookingStatus)
	assert.Nil(t, in.Booking.ConfirmedAt)
}

func TestPlanRejectsIllegalTransitions(t *testing.T) {
	cases := []struct{ from, to models.BookingStatus }{
		{models.BookingPending, models.BookingCheckedIn},
		{models.BookingPending, models.BookingNoShow},
		{models.BookingConfirmed, models.BookingCheckedOut},
		{models.BookingCheckedIn, models.BookingCancelled},
		{models.BookingCheckedOut, models.BookingCancelled},
		{models.BookingCancelled, models.BookingConfirmed},
		{models.BookingNoShow, models.BookingCheckedIn},
		{models.BookingPending, "teleported"},
	}
	for _, c := range cases {
		_, err := PlanTransition(with(fixture(c.from), c.to))
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "%s -> %s", c.from, c.to)
	}
}

func TestPlanCheckoutLenientAssumesFullPayment(t *testing.T) {
	in := with(fixture(models.BookingCheckedIn), models.BookingCheckedOut)
	in.LenientCheckout = true

	plan, err := PlanTransition(in)
	require.NoError(t, err)
	assert.True(t, plan.AssumedPayment)
	assert.Equal(t, 200.0, plan.Changes.Booking.Payment.PaidAmount)
	assert.Equal(t, models.PaymentPaid, plan.Changes.Booking.PaymentStatus)
	assert.Equal(t, models.RoomStatusVacant, plan.Changes.Room.Status)
	assert.Equal(t, models.UserBookingNone, *plan.Changes.User.BookingStatus)
}

func TestPlanCheckoutStrictRequiresPayment(t *testing.T) {
	_, err := PlanTransition(with(fixture(models.BookingCheckedIn), models.BookingCheckedOut))
	assert.ErrorIs(t, err, apperrors.ErrPaymentRequired)

	in := with(fixture(models.BookingCheckedIn), models.BookingCheckedOut)
	paid := 50.0
	in.Extra = dto.TransitionExtra{PaidAmount: &paid, PaymentMethod: "cash"}
	plan, err := PlanTransition(in)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPartial, plan.Changes.Booking.PaymentStatus)
	assert.Equal(t, "cash", plan.Changes.Booking.Payment.Method)
}

func TestPlanReleaseRecomputesRoomStatus(t *testing.T) {
	in := with(fixture(models.BookingConfirmed), models.BookingCancelled)
	in.RoomClaims = []models.Booking{
		{ID: "b1", RoomID: "room-1", BookingStatus: models.BookingConfirmed},
		{ID: "b2", RoomID: "room-1", BookingStatus: models.BookingConfirmed},
	}
	plan, err := PlanTransition(in)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusReserved, plan.Changes.Room.Status)

	in.RoomClaims = append(in.RoomClaims, models.Booking{ID: "b3", RoomID: "room-1", BookingStatus: models.BookingCheckedIn})
	plan, err = PlanTransition(in)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusOccupied, plan.Changes.Room.Status)
}

func TestPlanCancelPendingTouchesNothingElse(t *testing.T) {
	in := with(fixture(models.BookingPending), models.BookingCancelled)
	in.Extra.Reason = "changed plans"

	plan, err := PlanTransition(in)
	require.NoError(t, err)
	assert.Nil(t, plan.Changes.Room)
	assert.Nil(t, plan.Changes.User)
	assert.Nil(t, plan.Changes.Claim)
	assert.Equal(t, "changed plans", plan.Changes.Booking.Cancellation.Reason)
	assert.Equal(t, "staff-1", plan.Changes.Booking.Cancellation.CancelledBy)
	assert.Zero(t, plan.Changes.Booking.Cancellation.RefundAmount)
}

func TestPlanCancelRefundsPaidConfirmedBooking(t *testing.T) {
	in := with(fixture(models.BookingConfirmed), models.BookingCancelled)
	in.Booking.Payment.PaidAmount = 80

	plan, err := PlanTransition(in)
	require.NoError(t, err)
	assert.Equal(t, 80.0, plan.Changes.Booking.Cancellation.RefundAmount)
	assert.Equal(t, models.PaymentRefunded, plan.Changes.Booking.PaymentStatus)

	tooMuch := 100.0
	in.Extra.RefundAmount = &tooMuch
	_, err = PlanTransition(in)
	assert.Equal(t, apperrors.ErrCodeInvalidAmount, apperrors.CodeOf(err))
}

type recordingApplier struct{ got *store.ChangeSet }

func (r *recordingApplier) Apply(_ context.Context, cs *store.ChangeSet) error {
	r.got = cs
	return nil
}

func TestCommandsExecuteThroughApplier(t *testing.T) {
	applier := &recordingApplier{}
	in := with(fixture(models.BookingConfirmed), models.BookingCheckedIn)

	cmd, err := NewTransitionCommand(in, applier)
	require.NoError(t, err)
	require.NoError(t, cmd.Execute(context.Background()))
	assert.Equal(t, models.RoomStatusOccupied, applier.got.Room.Status)
	assert.Equal(t, "staff-1", applier.got.Booking.AssignedBy)

	b := fixture(models.BookingPending).Booking
	require.NoError(t, NewCreateBookingCommand(b, applier).Execute(context.Background()))
	assert.True(t, applier.got.Create)
	assert.Equal(t, "room-1", applier.got.Claim.RoomID)
}

func with(in TransitionInput, target models.BookingStatus) TransitionInput {
	in.Target = target
	return in
}
