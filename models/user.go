package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UserRole string

const (
	RoleUser         UserRole = "user"
	RoleGuest        UserRole = "guest"
	RoleReceptionist UserRole = "receptionist"
	RoleManager      UserRole = "manager"
	RoleAdmin        UserRole = "admin"
	RoleHousekeeping UserRole = "housekeeping"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleGuest, RoleReceptionist, RoleManager, RoleAdmin, RoleHousekeeping:
		return true
	}
	return false
}

// IsStaff: nhân viên được phép xác nhận, check-in, check-out.
func (r UserRole) IsStaff() bool {
	return r == RoleReceptionist || r == RoleManager || r == RoleAdmin
}

// RoomOperatorRoles được đổi trạng thái phòng (dọn phòng, bảo trì).
// Housekeeping không phải staff nên không xử lý booking.
var RoomOperatorRoles = []UserRole{RoleReceptionist, RoleManager, RoleAdmin, RoleHousekeeping}

// UserBookingStatus là projection của booking hiện tại lên tài khoản
type UserBookingStatus string

const (
	UserBookingNone     UserBookingStatus = "none"
	UserBookingPending  UserBookingStatus = "pending"
	UserBookingApproved UserBookingStatus = "approved"
)

type User struct {
	ID            string            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`
	Name          string            `gorm:"default:New User" json:"name"`
	Email         string            `gorm:"unique" json:"email"`
	PhoneNumber   string            `gorm:"type:varchar(11)" json:"phoneNumber"`
	PasswordHash  string            `json:"-"`
	Role          UserRole          `gorm:"type:varchar(20);default:user" json:"role"`
	BookingStatus UserBookingStatus `gorm:"type:varchar(20);default:none" json:"bookingStatus"`
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
