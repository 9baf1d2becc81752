package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/screenlog/screenlog-core/internal/apperr"
	"github.com/screenlog/screenlog-core/internal/auth"
	"github.com/screenlog/screenlog-core/internal/authz"
	"github.com/screenlog/screenlog-core/internal/database"
	"github.com/screenlog/screenlog-core/internal/movies"
	"github.com/screenlog/screenlog-core/internal/reports"
	"github.com/screenlog/screenlog-core/internal/tmdb"
)

var (
	tmdbClient  *tmdb.Client
	tmdbFetcher *tmdb.MovieFetcher
)

func init() {
	tmdbConfig := tmdb.NewConfig()
	tmdbClient = tmdb.NewClient(tmdbConfig)
	tmdbFetcher = tmdb.NewMovieFetcher(tmdbClient)
}

type resolveDTO struct {
	Action string `json:"action" binding:"required"`
	Notes  string `json:"notes"`
}

func moderator(c *gin.Context) (uint, bool) {
	uid, _ := auth.CurrentUserID(c)
	if d := authz.CanModerateReports(auth.CurrentUserIsStaff(c)); !d.Allowed {
		apperr.Respond(c, apperr.Permission("%s", d.Reason))
		return 0, false
	}
	return uid, true
}

// ListReportsHandler returns the moderation queue, optionally filtered with
// ?status=resolved or ?status=pending.
func ListReportsHandler(c *gin.Context) {
	if _, ok := moderator(c); !ok {
		return
	}

	query := database.DB.Model(&reports.Report{}).Order("created_at DESC")
	switch c.Query("status") {
	case "resolved":
		query = query.Where("resolved = ?", true)
	case "pending":
		query = query.Where("resolved = ?", false)
	}

	var list []reports.Report
	if err := query.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func ResolveReportHandler(c *gin.Context) {
	uid, ok := moderator(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperr.Respond(c, apperr.Validation("invalid report id"))
		return
	}

	var dto resolveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Respond(c, apperr.Validation("action is required"))
		return
	}

	report, err := reports.Resolve(database.DB, uint(id), uid, dto.Action, dto.Notes)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "report " + dto.Action + "d",
		"data":    report,
	})
}

func ReportStatisticsHandler(c *gin.Context) {
	if _, ok := moderator(c); !ok {
		return
	}

	stats, err := reports.Stats(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func TMDbSearchHandler(c *gin.Context) {
	if _, ok := moderator(c); !ok {
		return
	}

	query := c.Query("q")
	if query == "" {
		apperr.Respond(c, apperr.Validation("query parameter required"))
		return
	}

	results, err := tmdbClient.SearchMovies(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// ImportFromTMDbHandler creates a catalog movie from external metadata,
// owned by the importing staff user.
func ImportFromTMDbHandler(c *gin.Context) {
	uid, ok := moderator(c)
	if !ok {
		return
	}

	var req struct {
		TMDbID int `json:"tmdb_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation("tmdb_id is required"))
		return
	}

	movie, err := tmdbFetcher.FetchMovieByTMDbID(req.TMDbID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch from TMDb: " + err.Error()})
		return
	}

	var existing movies.Movie
	if err := database.DB.Where("slug = ?", movie.Slug).First(&existing).Error; err == nil {
		apperr.Respond(c, apperr.Conflict("movie already exists"))
		return
	}

	movie.CreatedByID = uid
	if err := database.DB.Create(movie).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save movie: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "movie imported successfully",
		"data":    movie,
	})
}
