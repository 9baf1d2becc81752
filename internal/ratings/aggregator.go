package ratings

import (
	"math"

	"gorm.io/gorm"

	"github.com/screenlog/screenlog-core/internal/movies"
)

// Recompute re-derives avg_rating and total_ratings from the current rating
// rows for movieID and writes both columns directly, skipping model hooks
// and the full re-save path. Callers invoke it inside the same transaction
// as the rating write that changed the inputs.
func Recompute(db *gorm.DB, movieID uint) error {
	var agg struct {
		Avg   float64
		Count int64
	}
	err := db.Model(&Rating{}).
		Select("COALESCE(AVG(value), 0) AS avg, COUNT(*) AS count").
		Where("movie_id = ?", movieID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	return db.Model(&movies.Movie{}).
		Where("id = ?", movieID).
		UpdateColumns(map[string]interface{}{
			"avg_rating":    math.Round(agg.Avg*100) / 100,
			"total_ratings": agg.Count,
		}).Error
}
