package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/screenlog/screenlog-core/internal/admin"
	"github.com/screenlog/screenlog-core/internal/auth"
	"github.com/screenlog/screenlog-core/internal/database"
	"github.com/screenlog/screenlog-core/internal/movies"
	"github.com/screenlog/screenlog-core/internal/ratings"
	"github.com/screenlog/screenlog-core/internal/reports"
	"github.com/screenlog/screenlog-core/internal/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, continuing with environment variables")
	}

	if m := os.Getenv("GIN_MODE"); m != "" {
		gin.SetMode(m)
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(
		&users.User{},
		&movies.Movie{},
		&ratings.Rating{},
		&reports.Report{},
	); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth
	r.POST("/auth/register", auth.RegisterHandler)
	r.POST("/auth/login", auth.LoginHandler)
	r.POST("/token/refresh", auth.RefreshHandler)
	r.GET("/me", auth.RequireAuth(), auth.MeHandler)

	// Movies
	r.GET("/movies", movies.ListMoviesHandler)
	r.GET("/movies/:id", movies.GetMovieHandler)
	r.POST("/movies", auth.RequireAuth(), movies.CreateMovieHandler)
	r.PUT("/movies/:id", auth.RequireAuth(), movies.UpdateMovieHandler)
	r.DELETE("/movies/:id", auth.RequireAuth(), movies.DeleteMovieHandler)
	r.POST("/movies/:id/rate", auth.RequireAuth(), ratings.RateMovieHandler)
	r.POST("/movies/:id/report", auth.RequireAuth(), reports.ReportMovieHandler)

	// Ratings, scoped to the caller
	ratingRoutes := r.Group("/ratings", auth.RequireAuth())
	ratingRoutes.GET("", ratings.ListMineHandler)
	ratingRoutes.GET("/:id", ratings.GetHandler)
	ratingRoutes.PUT("/:id", ratings.UpdateHandler)
	ratingRoutes.DELETE("/:id", ratings.DeleteHandler)

	// Reports
	reportRoutes := r.Group("/reports", auth.RequireAuth())
	reportRoutes.GET("", reports.ListHandler)
	reportRoutes.POST("", reports.CreateHandler)

	// Moderation
	adminRoutes := r.Group("/admin", auth.RequireAuth(), auth.RequireStaff())
	adminRoutes.GET("/reports", admin.ListReportsHandler)
	adminRoutes.POST("/reports/:id/resolve", admin.ResolveReportHandler)
	adminRoutes.GET("/reports/statistics", admin.ReportStatisticsHandler)
	adminRoutes.GET("/tmdb/search", admin.TMDbSearchHandler)
	adminRoutes.POST("/tmdb/import", admin.ImportFromTMDbHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r.Run(":" + port)
}
