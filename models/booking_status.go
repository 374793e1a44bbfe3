package models

import "strings"

// BookingStatus trạng thái vòng đời của booking
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCancelled  BookingStatus = "cancelled"
	BookingNoShow     BookingStatus = "no-show"
)

var BookingStatuses = []BookingStatus{
	BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled, BookingNoShow,
}

// ClaimStatuses là các trạng thái đang giữ phòng cho khoảng ngày của booking.
var ClaimStatuses = []BookingStatus{BookingConfirmed, BookingCheckedIn}

// bảng chuyển trạng thái hợp lệ
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingCheckedIn, BookingCancelled, BookingNoShow},
	BookingCheckedIn:  {BookingCheckedOut, BookingNoShow},
	BookingCheckedOut: {},
	BookingCancelled:  {},
	BookingNoShow:     {},
}

func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	_, ok := bookingTransitions[status]
	return status, ok
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// NextStatuses returns a copy of the legal targets from s.
func (s BookingStatus) NextStatuses() []BookingStatus {
	return append([]BookingStatus(nil), bookingTransitions[s]...)
}

func (s BookingStatus) IsTerminal() bool {
	return s.Valid() && len(bookingTransitions[s]) == 0
}

// HoldsClaim reports whether a booking in this status blocks its room for its dates.
func (s BookingStatus) HoldsClaim() bool {
	return s == BookingConfirmed || s == BookingCheckedIn
}

// PaymentStatus trạng thái thanh toán
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partially-paid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// DerivePaymentStatus tính trạng thái thanh toán từ số tiền đã trả.
func DerivePaymentStatus(paid, total float64) PaymentStatus {
	switch {
	case paid <= 0:
		return PaymentPending
	case paid < total:
		return PaymentPartial
	default:
		return PaymentPaid
	}
}
