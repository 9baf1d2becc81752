package reports

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/screenlog/screenlog-core/internal/apperr"
	"github.com/screenlog/screenlog-core/internal/movies"
)

const (
	ActionResolve = "resolve"
	ActionDismiss = "dismiss"
)

// File creates a report against a movie. A reporter may have at most one
// open report per movie; resolved reports do not block new ones. The
// duplicate check runs inside the insert transaction so concurrent filings
// cannot both pass it.
func File(db *gorm.DB, movieID, reporterID uint, reason string) (*Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperr.Validation("reason is required")
	}

	var movie movies.Movie
	if err := db.First(&movie, movieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("movie not found")
		}
		return nil, err
	}

	report := Report{MovieID: movieID, ReportedByID: reporterID, Reason: reason}
	err := db.Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&Report{}).
			Where("movie_id = ? AND reported_by_id = ? AND resolved = ?", movieID, reporterID, false).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return apperr.Conflict("you already have an open report for this movie")
		}
		return tx.Create(&report).Error
	})
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// ListFor returns all reports for staff, and only the requester's own
// reports otherwise. Newest first.
func ListFor(db *gorm.DB, requesterID uint, isStaff bool) ([]Report, error) {
	query := db.Model(&Report{}).Order("created_at DESC")
	if !isStaff {
		query = query.Where("reported_by_id = ?", requesterID)
	}
	var list []Report
	err := query.Find(&list).Error
	return list, err
}

// Resolve closes a report. "resolve" and "dismiss" are both terminal and
// store the same fields; they differ only in the notes the moderator leaves.
// Resolving an already-resolved report overwrites the resolution metadata.
func Resolve(db *gorm.DB, reportID, staffID uint, action, notes string) (*Report, error) {
	if action != ActionResolve && action != ActionDismiss {
		return nil, apperr.Validation(`invalid action, use "resolve" or "dismiss"`)
	}

	var report Report
	if err := db.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("report not found")
		}
		return nil, err
	}

	now := time.Now()
	report.Resolved = true
	report.AdminNotes = notes
	report.ResolvedAt = &now
	report.ResolvedByID = &staffID

	if err := db.Save(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

type Statistics struct {
	Total          int64  `json:"total_reports"`
	Pending        int64  `json:"pending_reports"`
	Resolved       int64  `json:"resolved_reports"`
	ResolutionRate string `json:"resolution_rate"`
}

func Stats(db *gorm.DB) (*Statistics, error) {
	var stats Statistics
	if err := db.Model(&Report{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&Report{}).Where("resolved = ?", true).Count(&stats.Resolved).Error; err != nil {
		return nil, err
	}
	stats.Pending = stats.Total - stats.Resolved

	if stats.Total > 0 {
		stats.ResolutionRate = fmt.Sprintf("%.2f%%", float64(stats.Resolved)/float64(stats.Total)*100)
	} else {
		stats.ResolutionRate = "0%"
	}
	return &stats, nil
}
