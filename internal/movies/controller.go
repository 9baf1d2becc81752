package movies

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/screenlog/screenlog-core/internal/apperr"
	"github.com/screenlog/screenlog-core/internal/auth"
	"github.com/screenlog/screenlog-core/internal/authz"
	"github.com/screenlog/screenlog-core/internal/database"
)

type movieDTO struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description" binding:"required"`
	ReleasedAt      string `json:"released_at" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	Genre           string `json:"genre" binding:"required"`
	Language        string `json:"language" binding:"required"`
}

// UniqueSlug derives a slug from title, suffixing a counter when the plain
// slug is already taken.
func UniqueSlug(db *gorm.DB, title string) string {
	base := slug.Make(title)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		db.Model(&Movie{}).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func ListMoviesHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := c.Query("search")
	genre := c.Query("genre")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&Movie{})
	if search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}
	if genre != "" {
		query = query.Where("LOWER(genre) = LOWER(?)", genre)
	}

	var total int64
	query.Count(&total)

	var movieList []Movie
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&movieList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": movieList,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// GetMovieHandler looks a movie up by numeric ID or by slug.
func GetMovieHandler(c *gin.Context) {
	identifier := c.Param("id")

	var movie Movie
	var err error
	if id, parseErr := strconv.Atoi(identifier); parseErr == nil {
		err = database.DB.First(&movie, id).Error
	} else {
		err = database.DB.Where("slug = ?", identifier).First(&movie).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, apperr.NotFound("movie not found"))
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": movie})
}

func CreateMovieHandler(c *gin.Context) {
	uid, ok := auth.CurrentUserID(c)
	if !ok {
		apperr.Respond(c, apperr.Authentication("unauthenticated"))
		return
	}

	var dto movieDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	releasedAt, err := time.Parse("2006-01-02", dto.ReleasedAt)
	if err != nil {
		apperr.Respond(c, apperr.Validation("invalid released_at, expected YYYY-MM-DD"))
		return
	}

	movie := Movie{
		Title:           dto.Title,
		Slug:            UniqueSlug(database.DB, dto.Title),
		Description:     dto.Description,
		ReleasedAt:      releasedAt,
		DurationMinutes: dto.DurationMinutes,
		Genre:           dto.Genre,
		Language:        dto.Language,
		CreatedByID:     uid,
	}
	if err := database.DB.Create(&movie).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": movie})
}

func UpdateMovieHandler(c *gin.Context) {
	uid, ok := auth.CurrentUserID(c)
	if !ok {
		apperr.Respond(c, apperr.Authentication("unauthenticated"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperr.Respond(c, apperr.Validation("invalid movie id"))
		return
	}

	var movie Movie
	if err := database.DB.First(&movie, uint(id)).Error; err != nil {
		apperr.Respond(c, apperr.NotFound("movie not found"))
		return
	}

	if d := authz.CanModifyMovie(uid, movie.CreatedByID); !d.Allowed {
		apperr.Respond(c, apperr.Permission("%s", d.Reason))
		return
	}

	var dto movieDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	releasedAt, err := time.Parse("2006-01-02", dto.ReleasedAt)
	if err != nil {
		apperr.Respond(c, apperr.Validation("invalid released_at, expected YYYY-MM-DD"))
		return
	}

	movie.Title = dto.Title
	movie.Description = dto.Description
	movie.ReleasedAt = releasedAt
	movie.DurationMinutes = dto.DurationMinutes
	movie.Genre = dto.Genre
	movie.Language = dto.Language

	if err := database.DB.Save(&movie).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": movie})
}

func DeleteMovieHandler(c *gin.Context) {
	uid, ok := auth.CurrentUserID(c)
	if !ok {
		apperr.Respond(c, apperr.Authentication("unauthenticated"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperr.Respond(c, apperr.Validation("invalid movie id"))
		return
	}

	var movie Movie
	if err := database.DB.First(&movie, uint(id)).Error; err != nil {
		apperr.Respond(c, apperr.NotFound("movie not found"))
		return
	}

	if d := authz.CanModifyMovie(uid, movie.CreatedByID); !d.Allowed {
		apperr.Respond(c, apperr.Permission("%s", d.Reason))
		return
	}

	// Ratings and reports go with the movie via FK cascade.
	if err := database.DB.Delete(&movie).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
