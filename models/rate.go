package models

import (
	"database/sql/driver"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ResourceKind phân biệt đối tượng được đánh giá
type ResourceKind string

const (
	ResourceRoom       ResourceKind = "room"
	ResourceRestaurant ResourceKind = "restaurant"
)

// Rating là một lượt đánh giá, mỗi user chỉ được đánh giá một lần cho mỗi resource
type Rating struct {
	ID           string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ResourceID   string       `json:"resourceId" gorm:"type:varchar(36);not null;uniqueIndex:idx_rating_resource_user"`
	ResourceKind ResourceKind `json:"resourceKind" gorm:"type:varchar(20);not null"`
	UserID       string       `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_rating_resource_user"`
	Rating       int          `json:"rating" gorm:"not null"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"createdAt"`
}

// Histogram đếm số lượt đánh giá theo từng mức sao 1..5
type Histogram map[int]int

func NewHistogram() Histogram {
	h := make(Histogram, MaxRating)
	for star := MinRating; star <= MaxRating; star++ {
		h[star] = 0
	}
	return h
}

func (h Histogram) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

func (h Histogram) Clone() Histogram {
	out := NewHistogram()
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Value stores the histogram as a JSON object in a jsonb column.
func (h Histogram) Value() (driver.Value, error) {
	if h == nil {
		h = NewHistogram()
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (h *Histogram) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*h = NewHistogram()
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("histogram: unsupported type %T", value)
	}
	parsed := map[int]int{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return err
	}
	out := NewHistogram()
	for k, v := range parsed {
		out[k] = v
	}
	*h = out
	return nil
}

// RatingAggregate được lưu kèm resource (phòng, nhà hàng)
type RatingAggregate struct {
	Mean       float64   `json:"mean" gorm:"default:0"`
	TotalCount int       `json:"totalCount" gorm:"default:0"`
	Histogram  Histogram `json:"histogram" gorm:"type:jsonb"`
}

func (a RatingAggregate) Clone() RatingAggregate {
	a.Histogram = a.Histogram.Clone()
	return a
}

// RoundMean làm tròn trung bình đến 1 chữ số thập phân.
func RoundMean(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}

// ComputeRatingAggregate recomputes the aggregate from the full set of entries.
func ComputeRatingAggregate(entries []Rating) RatingAggregate {
	hist := NewHistogram()
	sum := 0
	for _, e := range entries {
		hist[e.Rating]++
		sum += e.Rating
	}
	return RatingAggregate{
		Mean:       RoundMean(sum, len(entries)),
		TotalCount: len(entries),
		Histogram:  hist,
	}
}

func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
