package dto

type CreateRoomRequest struct {
	RoomNumber    string   `json:"roomNumber" validate:"required"`
	Type          string   `json:"type" validate:"required"`
	PricePerNight float64  `json:"pricePerNight" validate:"gte=0"`
	Capacity      int      `json:"capacity" validate:"gte=1"`
	Amenities     []string `json:"amenities"`
	Description   string   `json:"description"`
}

type SetRoomStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AvailabilityQuery là query string của GET /rooms/available
type AvailabilityQuery struct {
	CheckIn     string   `form:"checkIn"`
	CheckOut    string   `form:"checkOut"`
	RoomType    string   `form:"roomType"`
	MinCapacity int      `form:"minCapacity"`
	Amenities   []string `form:"amenities"`
}

func (q AvailabilityQuery) Filter() RoomFilter {
	return RoomFilter{RoomType: q.RoomType, MinCapacity: q.MinCapacity, Amenities: q.Amenities}
}

// RoomFilter là bộ lọc tùy chọn khi tìm phòng trống
type RoomFilter struct {
	RoomType    string
	MinCapacity int
	Amenities   []string
}

// CalendarDay trạng thái của phòng trong một ngày
type CalendarDay struct {
	Date      string `json:"date"`
	Claimed   bool   `json:"claimed"`
	BookingID string `json:"bookingId,omitempty"`
	Status    string `json:"status,omitempty"`
}
