package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AlazarStudio/kchr-tourism-backend/server/middlewares"
)

// NewRouter assembles the gin engine. localUploadsDir, when non-empty,
// mounts the static media route; it stays empty when media lives on S3.
func NewRouter(h *Handlers, localUploadsDir string) *gin.Engine {
	// Default ships with the Logger and Recovery middleware attached.
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	// Admin list views page through Content-Range.
	corsConfig.ExposeHeaders = []string{"Content-Range"}
	router.Use(cors.New(corsConfig))
	router.Use(middlewares.Trace())

	if localUploadsDir != "" {
		router.Static("/uploads", localUploadsDir)
	}

	news := router.Group("/api/news")
	{
		news.GET("", h.ListNews)
		news.GET("/telegram", h.IngestNews)
		news.GET("/create", h.CreateNewsFromQuery)
		news.GET("/:id", h.GetNews)
	}

	stories := router.Group("/api/stories")
	{
		stories.GET("", h.ListStories)
		stories.GET("/telegram", h.IngestStories)
		stories.GET("/create", h.CreateStoryFromQuery)
		stories.GET("/:id", h.GetStory)
	}

	router.POST("/uploads", h.UploadImages)
	router.POST("/upload-doc", h.UploadDocument)

	return router
}
