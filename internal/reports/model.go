package reports

import (
	"time"

	"github.com/screenlog/screenlog-core/internal/movies"
	"github.com/screenlog/screenlog-core/internal/users"
)

// A report is open until a staff member resolves it; resolution is one-way.
// Deleting the resolving user keeps the report and nulls the resolver.
type Report struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	MovieID      uint         `gorm:"not null;index" json:"movie"`
	Movie        movies.Movie `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ReportedByID uint         `gorm:"not null;index" json:"reported_by"`
	ReportedBy   users.User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reason       string       `gorm:"not null" json:"reason"`
	Resolved     bool         `gorm:"default:false;not null" json:"resolved"`
	ResolvedAt   *time.Time   `json:"resolved_at"`
	ResolvedByID *uint        `json:"resolved_by"`
	ResolvedBy   *users.User  `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	AdminNotes   string       `gorm:"default:''" json:"admin_notes"`
	CreatedAt    time.Time    `json:"created_at"`
}
