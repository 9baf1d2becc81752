package movies

import (
	"time"

	"github.com/screenlog/screenlog-core/internal/users"
)

type Movie struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Slug            string     `gorm:"unique;not null" json:"slug"`
	Description     string     `gorm:"not null" json:"description"`
	ReleasedAt      time.Time  `gorm:"type:date;not null" json:"released_at"`
	DurationMinutes int        `gorm:"not null" json:"duration_minutes"`
	Genre           string     `gorm:"size:100;not null" json:"genre"`
	Language        string     `gorm:"size:50;not null" json:"language"`
	CreatedByID     uint       `gorm:"not null;index" json:"created_by"`
	CreatedBy       users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// AvgRating and TotalRatings are derived from the rating rows and only
	// ever written by the aggregator's targeted column update.
	AvgRating    float64 `gorm:"type:decimal(3,2);default:0.0" json:"avg_rating"`
	TotalRatings int     `gorm:"default:0;not null" json:"total_ratings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
