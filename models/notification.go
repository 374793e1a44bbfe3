package models

import "time"

const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCheckedIn = "booking.checked-in"
	EventBookingCheckOut  = "booking.checked-out"
	EventBookingCancelled = "booking.cancelled"
	EventBookingNoShow    = "booking.no-show"
	EventRatingAdded      = "rating.added"
)

// EventForStatus trả về tên sự kiện khi booking chuyển sang status.
func EventForStatus(status BookingStatus) string {
	switch status {
	case BookingConfirmed:
		return EventBookingConfirmed
	case BookingCheckedIn:
		return EventBookingCheckedIn
	case BookingCheckedOut:
		return EventBookingCheckOut
	case BookingCancelled:
		return EventBookingCancelled
	case BookingNoShow:
		return EventBookingNoShow
	default:
		return EventBookingCreated
	}
}

type EventPayload struct {
	BookingID  string        `json:"bookingId,omitempty"`
	RoomID     string        `json:"roomId,omitempty"`
	GuestID    string        `json:"guestId,omitempty"`
	ResourceID string        `json:"resourceId,omitempty"`
	Status     BookingStatus `json:"status,omitempty"`
	ActorID    string        `json:"actorId,omitempty"`
	Rating     int           `json:"rating,omitempty"`
}

// Notification là sự kiện gửi tới các kênh thông báo (websocket, redis)
type Notification struct {
	Event      string       `json:"event"`
	Payload    EventPayload `json:"payload"`
	OccurredAt time.Time    `json:"occurredAt"`
}

func NewBookingNotification(b *Booking, actorID string, at time.Time) Notification {
	return Notification{
		Event: EventForStatus(b.BookingStatus),
		Payload: EventPayload{
			BookingID: b.ID,
			RoomID:    b.RoomID,
			GuestID:   b.GuestID,
			Status:    b.BookingStatus,
			ActorID:   actorID,
		},
		OccurredAt: at,
	}
}
