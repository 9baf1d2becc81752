package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenlog/screenlog-core/internal/apperr"
	"github.com/screenlog/screenlog-core/internal/database"
	"github.com/screenlog/screenlog-core/internal/users"
)

type registerDTO struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshDTO struct {
	Refresh string `json:"refresh" binding:"required"`
}

func RegisterHandler(c *gin.Context) {
	var dto registerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Fast-path duplicate check; the unique constraints are the backstop.
	var count int64
	database.DB.Model(&users.User{}).
		Where("email = ? OR username = ?", dto.Email, dto.Username).
		Count(&count)
	if count > 0 {
		apperr.Respond(c, apperr.Conflict("username or email already taken"))
		return
	}

	hashed, err := users.HashPassword(dto.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := users.User{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hashed,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		apperr.Respond(c, apperr.Conflict("username or email already taken"))
		return
	}

	tokens, err := GenerateTokenPair(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate tokens"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   users.ToResponse(&user),
		"tokens": tokens,
	})
}

func LoginHandler(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var u users.User
	if err := database.DB.First(&u, "email = ?", dto.Email).Error; err != nil {
		apperr.Respond(c, apperr.Authentication("invalid credentials"))
		return
	}

	if !users.CheckPassword(u.PasswordHash, dto.Password) {
		apperr.Respond(c, apperr.Authentication("invalid credentials"))
		return
	}

	tokens, err := GenerateTokenPair(&u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   users.ToResponse(&u),
		"tokens": tokens,
	})
}

// RefreshHandler exchanges a valid refresh token for a new token pair.
func RefreshHandler(c *gin.Context) {
	var dto refreshDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := ParseToken(dto.Refresh)
	if err != nil || claims.TokenType != TokenTypeRefresh {
		apperr.Respond(c, apperr.Authentication("invalid refresh token"))
		return
	}

	var u users.User
	if err := database.DB.First(&u, claims.UserID).Error; err != nil {
		apperr.Respond(c, apperr.Authentication("invalid refresh token"))
		return
	}

	tokens, err := GenerateTokenPair(&u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

func MeHandler(c *gin.Context) {
	uid, ok := CurrentUserID(c)
	if !ok {
		apperr.Respond(c, apperr.Authentication("unauthenticated"))
		return
	}

	var u users.User
	if err := database.DB.First(&u, uid).Error; err != nil {
		apperr.Respond(c, apperr.NotFound("user not found"))
		return
	}

	c.JSON(http.StatusOK, users.ToResponse(&u))
}
