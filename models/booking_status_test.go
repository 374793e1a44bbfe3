package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitionTable(t *testing.T) {
	legal := map[BookingStatus][]BookingStatus{
		BookingPending:   {BookingConfirmed, BookingCancelled},
		BookingConfirmed: {BookingCheckedIn, BookingCancelled, BookingNoShow},
		BookingCheckedIn: {BookingCheckedOut, BookingNoShow},
	}

	for _, from := range BookingStatuses {
		for _, to := range BookingStatuses {
			want := false
			for _, l := range legal[from] {
				if l == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []BookingStatus{BookingCheckedOut, BookingCancelled, BookingNoShow} {
		assert.True(t, s.IsTerminal(), s)
		assert.Empty(t, s.NextStatuses())
	}
	assert.False(t, BookingPending.IsTerminal())
	assert.False(t, BookingStatus("archived").IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	s, ok := ParseBookingStatus(" Checked-In ")
	assert.True(t, ok)
	assert.Equal(t, BookingCheckedIn, s)

	_, ok = ParseBookingStatus("completed")
	assert.False(t, ok)
}

func TestDerivePaymentStatus(t *testing.T) {
	assert.Equal(t, PaymentPending, DerivePaymentStatus(0, 300))
	assert.Equal(t, PaymentPartial, DerivePaymentStatus(100, 300))
	assert.Equal(t, PaymentPaid, DerivePaymentStatus(300, 300))
	assert.Equal(t, PaymentPaid, DerivePaymentStatus(350, 300))
}
