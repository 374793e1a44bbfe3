package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"

	"hotelcore/models"
)

// Service nhận sự kiện booking/rating. Lỗi gửi không làm hỏng thao tác gốc.
type Service interface {
	Send(n models.Notification) error
}

// Keys gắn vào melody session khi kết nối websocket đã xác thực
const (
	SessionUserKey = "userID"
	SessionRoleKey = "role"
)

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) Send(n models.Notification) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	msg, err := NewMessageBuilder(n).Build()
	if err != nil {
		return err
	}
	return s.m.BroadcastFilter(msg, func(sess *melody.Session) bool {
		userID, role := sessionIdentity(sess)
		return Receives(userID, role, n)
	})
}

func sessionIdentity(sess *melody.Session) (string, models.UserRole) {
	var (
		userID string
		role   models.UserRole
	)
	if v, ok := sess.Get(SessionUserKey); ok {
		userID, _ = v.(string)
	}
	if v, ok := sess.Get(SessionRoleKey); ok {
		role, _ = v.(models.UserRole)
	}
	return userID, role
}

// Receives: nhân viên nhận mọi sự kiện, khách chỉ nhận sự kiện của mình.
func Receives(userID string, role models.UserRole, n models.Notification) bool {
	if userID == "" {
		return false
	}
	if role.IsStaff() {
		return true
	}
	return n.Payload.GuestID == userID || n.Payload.ActorID == userID
}

// RedisService publishes events on a pub/sub channel for other instances.
type RedisService struct {
	rdb     *redis.Client
	channel string
	timeout time.Duration
}

func NewRedisService(rdb *redis.Client, channel string) *RedisService {
	return &RedisService{rdb: rdb, channel: channel, timeout: 2 * time.Second}
}

func (s *RedisService) Send(n models.Notification) error {
	msg, err := NewMessageBuilder(n).Build()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.rdb.Publish(ctx, s.channel, msg).Err()
}

// MultiService gửi tới tất cả các kênh, gom lỗi lại.
type MultiService []Service

func (m MultiService) Send(n models.Notification) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type message struct {
	models.Notification
	Text string `json:"text"`
}

type MessageBuilder struct {
	n models.Notification
}

func NewMessageBuilder(n models.Notification) *MessageBuilder {
	return &MessageBuilder{n: n}
}

func (b *MessageBuilder) Text() string {
	p := b.n.Payload
	switch b.n.Event {
	case models.EventRatingAdded:
		return fmt.Sprintf("⭐ %s nhận được đánh giá %d sao.", p.ResourceID, p.Rating)
	case models.EventBookingCreated:
		return fmt.Sprintf("🔔 Booking %s cho phòng %s đang chờ xác nhận.", p.BookingID, p.RoomID)
	default:
		return fmt.Sprintf("🔔 Booking %s (phòng %s) chuyển sang %s.", p.BookingID, p.RoomID, p.Status)
	}
}

// Build trả về JSON gửi qua websocket/redis.
func (b *MessageBuilder) Build() ([]byte, error) {
	return json.Marshal(message{Notification: b.n, Text: b.Text()})
}
