package models

import "time"

type Restaurant struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string          `json:"name" gorm:"not null"`
	Cuisine   string          `json:"cuisine"`
	Rating    RatingAggregate `json:"rating" gorm:"embedded;embeddedPrefix:rating_"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}
