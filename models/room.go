package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// RoomStatus là trạng thái vận hành của phòng
type RoomStatus string

const (
	RoomStatusVacant      RoomStatus = "vacant"
	RoomStatusReserved    RoomStatus = "reserved"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusCleaning    RoomStatus = "cleaning"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusVacant, RoomStatusReserved, RoomStatusOccupied, RoomStatusCleaning, RoomStatusMaintenance:
		return true
	}
	return false
}

// OperatorSettable reports whether staff may set the status directly.
// Reserved and Occupied are only ever written by the booking lifecycle.
func (s RoomStatus) OperatorSettable() bool {
	return s == RoomStatusVacant || s == RoomStatusCleaning || s == RoomStatusMaintenance
}

// Held reports whether a booking currently holds the room.
func (s RoomStatus) Held() bool {
	return s == RoomStatusReserved || s == RoomStatusOccupied
}

type Room struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RoomNumber    string          `json:"roomNumber" gorm:"uniqueIndex;type:varchar(16);not null"`
	Type          RoomType        `json:"type" gorm:"type:varchar(20);not null;index"`
	PricePerNight float64         `json:"pricePerNight" gorm:"not null"`
	Capacity      int             `json:"capacity" gorm:"not null;default:1"`
	Status        RoomStatus      `json:"status" gorm:"type:varchar(20);not null;default:vacant;index"`
	IsAvailable   bool            `json:"isAvailable" gorm:"not null;default:true"`
	Amenities     pq.StringArray  `json:"amenities" gorm:"type:text[]"`
	Description   string          `json:"description"`
	Rating        RatingAggregate `json:"rating" gorm:"embedded;embeddedPrefix:rating_"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// SetStatus keeps IsAvailable derived from Status.
func (r *Room) SetStatus(status RoomStatus) {
	r.Status = status
	r.IsAvailable = status == RoomStatusVacant
}

func (r *Room) HasAmenities(required []string) bool {
	for _, want := range required {
		found := false
		for _, have := range r.Amenities {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *Room) ValidateStatus() error {
	if !r.Status.Valid() {
		return fmt.Errorf("invalid status: %q", r.Status)
	}
	if r.IsAvailable != (r.Status == RoomStatusVacant) {
		return fmt.Errorf("room %s: isAvailable=%v disagrees with status %s", r.ID, r.IsAvailable, r.Status)
	}
	return nil
}

// Clone trả về bản sao không chia sẻ slice/map với r.
func (r Room) Clone() Room {
	if r.Amenities != nil {
		r.Amenities = append(pq.StringArray(nil), r.Amenities...)
	}
	r.Rating = r.Rating.Clone()
	return r
}
