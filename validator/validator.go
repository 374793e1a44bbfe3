package validator

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	playground "github.com/go-playground/validator/v10"

	"hotelcore/errors"
	"hotelcore/models"
)

// DateLayout là định dạng ngày nhận qua API
const DateLayout = "2006-01-02"

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10,11}$`)

	once     sync.Once
	validate *playground.Validate
)

func instance() *playground.Validate {
	once.Do(func() {
		validate = playground.New()
		validate.RegisterValidation("phone", func(fl playground.FieldLevel) bool {
			return isValidPhone(fl.Field().String())
		})
		validate.RegisterValidation("rating", func(fl playground.FieldLevel) bool {
			return models.ValidRating(int(fl.Field().Int()))
		})
	})
	return validate
}

// Struct chạy các rule trong tag `validate` và gom lỗi thành một AppError.
func Struct(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(playground.ValidationErrors)
	if !ok {
		return errors.NewAppError(errors.ErrCodeValidation, "Dữ liệu không hợp lệ", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return errors.NewAppError(errors.ErrCodeValidation, strings.Join(msgs, "; "), err)
}

// ParseDate đọc ngày dạng YYYY-MM-DD theo UTC.
func ParseDate(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, errors.Newf(errors.ErrCodeInvalidRange, "%s không được để trống", field)
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, field+" không đúng định dạng YYYY-MM-DD", err)
	}
	return t, nil
}

// ValidateDateRange yêu cầu checkOut sau checkIn.
func ValidateDateRange(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return errors.NewAppError(errors.ErrCodeInvalidRange, "Ngày nhận/trả phòng không được để trống", nil)
	}
	if !checkOut.After(checkIn) {
		return errors.NewAppError(errors.ErrCodeInvalidRange, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}
	return nil
}

func ValidateRating(rating int) error {
	if !models.ValidRating(rating) {
		return errors.Newf(errors.ErrCodeInvalidRating, "Số sao phải từ %d đến %d", models.MinRating, models.MaxRating)
	}
	return nil
}

func ValidateRoom(room *models.Room) error {
	if strings.TrimSpace(room.RoomNumber) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Số phòng không được để trống", nil)
	}
	if !room.Type.Valid() {
		return errors.Newf(errors.ErrCodeValidation, "Loại phòng không hợp lệ: %q", room.Type)
	}
	if room.PricePerNight < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Giá không được âm", nil)
	}
	if room.Capacity < 1 {
		return errors.NewAppError(errors.ErrCodeValidation, "Sức chứa phải lớn hơn 0", nil)
	}
	return nil
}

// ValidateUser validate thông tin user
func ValidateUser(user *models.User) error {
	if user.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email không được để trống", nil)
	}
	if !isValidEmail(user.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email không hợp lệ", nil)
	}
	if user.PhoneNumber != "" && !isValidPhone(user.PhoneNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Số điện thoại không hợp lệ", nil)
	}
	if !user.Role.Valid() {
		return errors.Newf(errors.ErrCodeValidation, "Role không hợp lệ: %q", user.Role)
	}
	return nil
}

// ValidateAmount validate số tiền
func ValidateAmount(amount float64) error {
	if amount < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Số tiền không được âm", nil)
	}
	return nil
}

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func isValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}
