package models

import (
	"math"
	"time"

	"gorm.io/datatypes"
)

type GuestDetails struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"specialRequests"`
}

// ServiceItem là dịch vụ đi kèm (ăn sáng, đưa đón...)
type ServiceItem struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
}

func (s ServiceItem) Total() float64 {
	return s.Price * float64(s.Quantity)
}

type Payment struct {
	Method        string     `json:"method"`
	TransactionID string     `json:"transactionId"`
	PaidAmount    float64    `json:"paidAmount" gorm:"default:0"`
	PaymentDate   *time.Time `json:"paymentDate"`
}

type Cancellation struct {
	CancelledAt  *time.Time `json:"cancelledAt"`
	CancelledBy  string     `json:"cancelledBy"`
	Reason       string     `json:"reason"`
	RefundAmount float64    `json:"refundAmount" gorm:"default:0"`
}

type Booking struct {
	ID                 string                           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RoomID             string                           `json:"roomId" gorm:"type:varchar(36);not null;index:idx_booking_room_dates"`
	RoomNumber         string                           `json:"roomNumber"`
	RoomType           RoomType                         `json:"roomType" gorm:"type:varchar(20)"`
	GuestID            string                           `json:"guestId" gorm:"type:varchar(36);not null;index"`
	Guest              GuestDetails                     `json:"guest" gorm:"embedded;embeddedPrefix:guest_"`
	CheckIn            time.Time                        `json:"checkIn" gorm:"not null;index:idx_booking_room_dates"`
	CheckOut           time.Time                        `json:"checkOut" gorm:"not null;index:idx_booking_room_dates"`
	Nights             int                              `json:"nights"`
	GuestCount         int                              `json:"guestCount" gorm:"not null;default:1"`
	PricePerNight      float64                          `json:"pricePerNight"`
	AdditionalServices datatypes.JSONSlice[ServiceItem] `json:"additionalServices"`
	TotalAmount        float64                          `json:"totalAmount"`
	BookingStatus      BookingStatus                    `json:"bookingStatus" gorm:"type:varchar(20);not null;index"`
	PaymentStatus      PaymentStatus                    `json:"paymentStatus" gorm:"type:varchar(20);not null"`
	Payment            Payment                          `json:"payment" gorm:"embedded;embeddedPrefix:payment_"`
	Cancellation       Cancellation                     `json:"cancellation" gorm:"embedded;embeddedPrefix:cancellation_"`
	AutoCancelAt       *time.Time                       `json:"autoCancelAt,omitempty" gorm:"index"`
	ConfirmedAt        *time.Time                       `json:"confirmedAt,omitempty"`
	ConfirmedBy        string                           `json:"confirmedBy,omitempty"`
	CheckInTime        *time.Time                       `json:"checkInTime,omitempty"`
	AssignedBy         string                           `json:"assignedBy,omitempty"`
	CheckOutTime       *time.Time                       `json:"checkOutTime,omitempty"`
	UpdatedBy          string                           `json:"updatedBy,omitempty"`
	CreatedAt          time.Time                        `json:"createdAt"`
	UpdatedAt          time.Time                        `json:"updatedAt"`
}

// CountNights làm tròn lên theo đơn vị 24 giờ.
func CountNights(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	if hours <= 0 {
		return 0
	}
	return int(math.Ceil(hours / 24))
}

// RangesOverlap dùng khoảng nửa mở [start, end): trả phòng cùng ngày nhận phòng không bị tính là trùng.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func ComputeTotal(nights int, pricePerNight float64, services []ServiceItem) float64 {
	total := float64(nights) * pricePerNight
	for _, s := range services {
		total += s.Total()
	}
	return total
}

func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return RangesOverlap(b.CheckIn, b.CheckOut, checkIn, checkOut)
}

// Claims reports whether b blocks its room for [checkIn, checkOut).
func (b *Booking) Claims(checkIn, checkOut time.Time) bool {
	return b.BookingStatus.HoldsClaim() && b.Overlaps(checkIn, checkOut)
}

// Clone deep-copies the pointer and slice fields.
func (b Booking) Clone() Booking {
	if b.AdditionalServices != nil {
		b.AdditionalServices = append(datatypes.JSONSlice[ServiceItem](nil), b.AdditionalServices...)
	}
	b.AutoCancelAt = cloneTime(b.AutoCancelAt)
	b.ConfirmedAt = cloneTime(b.ConfirmedAt)
	b.CheckInTime = cloneTime(b.CheckInTime)
	b.CheckOutTime = cloneTime(b.CheckOutTime)
	b.Payment.PaymentDate = cloneTime(b.Payment.PaymentDate)
	b.Cancellation.CancelledAt = cloneTime(b.Cancellation.CancelledAt)
	return b
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
