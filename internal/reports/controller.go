package reports

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/screenlog/screenlog-core/internal/apperr"
	"github.com/screenlog/screenlog-core/internal/auth"
	"github.com/screenlog/screenlog-core/internal/authz"
	"github.com/screenlog/screenlog-core/internal/database"
)

type createDTO struct {
	Movie  uint   `json:"movie" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

type reportMovieDTO struct {
	Reason string `json:"reason" binding:"required"`
}

// ReportMovieHandler handles POST /movies/:id/report.
func ReportMovieHandler(c *gin.Context) {
	uid, _ := auth.CurrentUserID(c)
	if d := authz.CanFileReport(uid); !d.Allowed {
		apperr.Respond(c, apperr.Authentication("%s", d.Reason))
		return
	}

	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperr.Respond(c, apperr.Validation("invalid movie id"))
		return
	}

	var dto reportMovieDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Respond(c, apperr.Validation("reason is required"))
		return
	}

	report, err := File(database.DB, uint(movieID), uid, dto.Reason)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "movie reported", "data": report})
}

// CreateHandler handles POST /reports with an explicit movie id in the body.
func CreateHandler(c *gin.Context) {
	uid, _ := auth.CurrentUserID(c)
	if d := authz.CanFileReport(uid); !d.Allowed {
		apperr.Respond(c, apperr.Authentication("%s", d.Reason))
		return
	}

	var dto createDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Respond(c, apperr.Validation("movie and reason are required"))
		return
	}

	report, err := File(database.DB, dto.Movie, uid, dto.Reason)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": report})
}

// ListHandler scopes the listing by role: staff see everything, everyone
// else only what they filed.
func ListHandler(c *gin.Context) {
	uid, _ := auth.CurrentUserID(c)
	if d := authz.CanFileReport(uid); !d.Allowed {
		apperr.Respond(c, apperr.Authentication("%s", d.Reason))
		return
	}

	list, err := ListFor(database.DB, uid, auth.CurrentUserIsStaff(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}
