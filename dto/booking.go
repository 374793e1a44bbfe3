package dto

import (
	"time"

	"hotelcore/models"
)

// CreateBookingRequest là body của POST /bookings
type CreateBookingRequest struct {
	RoomID             string               `json:"roomId" validate:"required"`
	GuestID            string               `json:"guestId"`
	CheckIn            string               `json:"checkIn" validate:"required"`
	CheckOut           string               `json:"checkOut" validate:"required"`
	GuestCount         int                  `json:"guestCount" validate:"gte=1"`
	SpecialRequests    string               `json:"specialRequests"`
	AdditionalServices []models.ServiceItem `json:"additionalServices" validate:"dive"`
}

// CreateBookingInput là dữ liệu đã parse gửi vào BookingService
type CreateBookingInput struct {
	RoomID             string `validate:"required"`
	GuestID            string `validate:"required"`
	CheckIn            time.Time
	CheckOut           time.Time
	GuestCount         int `validate:"gte=1"`
	SpecialRequests    string
	AdditionalServices []models.ServiceItem `validate:"dive"`
}

// TransitionRequest là body của PATCH /bookings/:id/status
type TransitionRequest struct {
	Status        string   `json:"status" validate:"required"`
	PaidAmount    *float64 `json:"paidAmount" validate:"omitempty,gte=0"`
	PaymentStatus string   `json:"paymentStatus"`
	PaymentMethod string   `json:"paymentMethod"`
	TransactionID string   `json:"transactionId"`
	Reason        string   `json:"reason"`
	RefundAmount  *float64 `json:"refundAmount" validate:"omitempty,gte=0"`
}

type CancelBookingRequest struct {
	Reason       string   `json:"reason"`
	RefundAmount *float64 `json:"refundAmount" validate:"omitempty,gte=0"`
}

// TransitionExtra mang các trường phụ theo từng bước chuyển trạng thái
type TransitionExtra struct {
	PaidAmount    *float64
	PaymentStatus models.PaymentStatus
	PaymentMethod string
	TransactionID string
	Reason        string
	RefundAmount  *float64
}

func (r TransitionRequest) Extra() TransitionExtra {
	return TransitionExtra{
		PaidAmount:    r.PaidAmount,
		PaymentStatus: models.PaymentStatus(r.PaymentStatus),
		PaymentMethod: r.PaymentMethod,
		TransactionID: r.TransactionID,
		Reason:        r.Reason,
		RefundAmount:  r.RefundAmount,
	}
}
