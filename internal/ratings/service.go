package ratings

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/screenlog/screenlog-core/internal/apperr"
	"github.com/screenlog/screenlog-core/internal/movies"
)

func validateValue(value int) error {
	if value < 1 || value > 5 {
		return apperr.Validation("rating must be an integer between 1 and 5")
	}
	return nil
}

// SubmitOrUpdate upserts the caller's rating for a movie and recomputes the
// movie aggregate in the same transaction. No ownership check is needed:
// the row is keyed by the caller's own identity. Returns the rating and the
// movie with refreshed aggregate fields.
func SubmitOrUpdate(db *gorm.DB, movieID, userID uint, value int) (*Rating, *movies.Movie, error) {
	if err := validateValue(value); err != nil {
		return nil, nil, err
	}

	var movie movies.Movie
	if err := db.First(&movie, movieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("movie not found")
		}
		return nil, nil, err
	}

	var rating Rating
	err := db.Transaction(func(tx *gorm.DB) error {
		// ON CONFLICT keeps concurrent submissions for the same (movie, user)
		// from racing into duplicate rows; the unique index is the backstop.
		row := Rating{MovieID: movieID, UserID: userID, Value: value}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "movie_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&row).Error; err != nil {
			return err
		}

		if err := tx.Where("movie_id = ? AND user_id = ?", movieID, userID).
			First(&rating).Error; err != nil {
			return err
		}

		if err := Recompute(tx, movieID); err != nil {
			return err
		}
		return tx.First(&movie, movieID).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &rating, &movie, nil
}

// UpdateOwn is the strict per-resource update: the rating id alone does not
// imply ownership, so the requester is re-verified against the row.
func UpdateOwn(db *gorm.DB, ratingID, requesterID uint, value int) (*Rating, error) {
	var rating Rating
	if err := db.First(&rating, ratingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("rating not found")
		}
		return nil, err
	}

	if rating.UserID != requesterID {
		return nil, apperr.Permission("you can only update your own ratings")
	}

	if err := validateValue(value); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&rating).Update("value", value).Error; err != nil {
			return err
		}
		return Recompute(tx, rating.MovieID)
	})
	if err != nil {
		return nil, err
	}

	return &rating, nil
}

// DeleteOwn removes the requester's rating and recomputes the aggregate.
func DeleteOwn(db *gorm.DB, ratingID, requesterID uint) error {
	var rating Rating
	if err := db.First(&rating, ratingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("rating not found")
		}
		return err
	}

	if rating.UserID != requesterID {
		return apperr.Permission("you can only delete your own ratings")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&rating).Error; err != nil {
			return err
		}
		return Recompute(tx, rating.MovieID)
	})
}

// GetOwn fetches a rating by id, restricted to its owner.
func GetOwn(db *gorm.DB, ratingID, requesterID uint) (*Rating, error) {
	var rating Rating
	if err := db.First(&rating, ratingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("rating not found")
		}
		return nil, err
	}
	if rating.UserID != requesterID {
		return nil, apperr.Permission("you can only view your own ratings")
	}
	return &rating, nil
}

func ListOwn(db *gorm.DB, userID uint) ([]Rating, error) {
	var list []Rating
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}
