package ratings

import (
	"time"

	"github.com/screenlog/screenlog-core/internal/movies"
	"github.com/screenlog/screenlog-core/internal/users"
)

// Rating rows are unique per (movie, user); the index is the storage-level
// backstop behind the service's upsert.
type Rating struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	MovieID   uint         `gorm:"not null;uniqueIndex:idx_ratings_movie_user" json:"movie"`
	Movie     movies.Movie `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_ratings_movie_user" json:"user"`
	User      users.User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Value     int          `gorm:"not null" json:"rating"`
	CreatedAt time.Time    `json:"created_at"`
}
