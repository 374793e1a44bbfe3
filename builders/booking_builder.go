package builders

import (
	"time"

	"github.com/google/uuid"

	"hotelcore/models"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{
			ID:            uuid.NewString(),
			BookingStatus: models.BookingPending,
			PaymentStatus: models.PaymentPending,
			GuestCount:    1,
		},
	}
}

// WithID ghi đè id sinh tự động
func (b *BookingBuilder) WithID(id string) *BookingBuilder {
	b.booking.ID = id
	return b
}

// ForRoom chụp lại số phòng, loại phòng và giá tại thời điểm đặt
func (b *BookingBuilder) ForRoom(room *models.Room) *BookingBuilder {
	b.booking.RoomID = room.ID
	b.booking.RoomNumber = room.RoomNumber
	b.booking.RoomType = room.Type
	b.booking.PricePerNight = room.PricePerNight
	return b
}

// ForGuest thêm thông tin khách
func (b *BookingBuilder) ForGuest(user *models.User, specialRequests string) *BookingBuilder {
	b.booking.GuestID = user.ID
	b.booking.Guest = models.GuestDetails{
		Name:            user.Name,
		Email:           user.Email,
		Phone:           user.PhoneNumber,
		SpecialRequests: specialRequests,
	}
	return b
}

func (b *BookingBuilder) WithDates(checkIn, checkOut time.Time) *BookingBuilder {
	b.booking.CheckIn = checkIn
	b.booking.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithGuestCount(n int) *BookingBuilder {
	b.booking.GuestCount = n
	return b
}

func (b *BookingBuilder) WithServices(services []models.ServiceItem) *BookingBuilder {
	b.booking.AdditionalServices = append(b.booking.AdditionalServices, services...)
	return b
}

// ExpiresAt đặt thời điểm tự hủy nếu chưa được xác nhận
func (b *BookingBuilder) ExpiresAt(t time.Time) *BookingBuilder {
	if t.IsZero() {
		b.booking.AutoCancelAt = nil
		return b
	}
	b.booking.AutoCancelAt = &t
	return b
}

func (b *BookingBuilder) CreatedBy(actorID string) *BookingBuilder {
	b.booking.UpdatedBy = actorID
	return b
}

// Build tính số đêm và tổng tiền rồi trả về booking
func (b *BookingBuilder) Build() *models.Booking {
	booking := b.booking
	booking.Nights = models.CountNights(booking.CheckIn, booking.CheckOut)
	booking.TotalAmount = models.ComputeTotal(booking.Nights, booking.PricePerNight, booking.AdditionalServices)
	return booking
}
