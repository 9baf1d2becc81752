package ratings

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/screenlog/screenlog-core/internal/apperr"
	"github.com/screenlog/screenlog-core/internal/auth"
	"github.com/screenlog/screenlog-core/internal/authz"
	"github.com/screenlog/screenlog-core/internal/database"
)

type rateDTO struct {
	Rating int `json:"rating" binding:"required"`
}

// RateMovieHandler handles POST /movies/:id/rate, the convenience upsert.
func RateMovieHandler(c *gin.Context) {
	uid, _ := auth.CurrentUserID(c)
	if d := authz.CanMutateRating(uid); !d.Allowed {
		apperr.Respond(c, apperr.Authentication("%s", d.Reason))
		return
	}

	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperr.Respond(c, apperr.Validation("invalid movie id"))
		return
	}

	var dto rateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Respond(c, apperr.Validation("rating is required"))
		return
	}

	rating, movie, err := SubmitOrUpdate(database.DB, uint(movieID), uid, dto.Rating)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "rating saved",
		"rating":        rating.Value,
		"avg_rating":    movie.AvgRating,
		"total_ratings": movie.TotalRatings,
	})
}

func ListMineHandler(c *gin.Context) {
	uid, _ := auth.CurrentUserID(c)
	if d := authz.CanMutateRating(uid); !d.Allowed {
		apperr.Respond(c, apperr.Authentication("%s", d.Reason))
		return
	}

	list, err := ListOwn(database.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func GetHandler(c *gin.Context) {
	uid, _ := auth.CurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperr.Respond(c, apperr.Validation("invalid rating id"))
		return
	}

	rating, err := GetOwn(database.DB, uint(id), uid)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rating})
}

// UpdateHandler handles PUT /ratings/:id, the strict per-resource update.
func UpdateHandler(c *gin.Context) {
	uid, _ := auth.CurrentUserID(c)
	if d := authz.CanMutateRating(uid); !d.Allowed {
		apperr.Respond(c, apperr.Authentication("%s", d.Reason))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperr.Respond(c, apperr.Validation("invalid rating id"))
		return
	}

	var dto rateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Respond(c, apperr.Validation("rating is required"))
		return
	}

	rating, err := UpdateOwn(database.DB, uint(id), uid, dto.Rating)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rating})
}

func DeleteHandler(c *gin.Context) {
	uid, _ := auth.CurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperr.Respond(c, apperr.Validation("invalid rating id"))
		return
	}

	if err := DeleteOwn(database.DB, uint(id), uid); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
