package dto

import "hotelcore/models"

type CreateRatingRequest struct {
	ResourceID string `json:"resourceId" validate:"required"`
	UserID     string `json:"userId"`
	Rating     int    `json:"rating"`
}

// RatingSummary là kết quả đọc điểm đánh giá của một resource
type RatingSummary struct {
	ResourceID string              `json:"resourceId"`
	Kind       models.ResourceKind `json:"kind"`
	Mean       float64             `json:"mean"`
	TotalCount int                 `json:"totalCount"`
	Histogram  models.Histogram    `json:"histogram"`
	UserRating *int                `json:"userRating,omitempty"`
}

func NewRatingSummary(resourceID string, kind models.ResourceKind, agg models.RatingAggregate) RatingSummary {
	hist := agg.Histogram
	if hist == nil {
		hist = models.NewHistogram()
	}
	return RatingSummary{
		ResourceID: resourceID,
		Kind:       kind,
		Mean:       agg.Mean,
		TotalCount: agg.TotalCount,
		Histogram:  hist.Clone(),
	}
}
