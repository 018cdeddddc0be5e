package router

import (
	"net/http"

	"github.com/cuongbtq/job-search-be/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// ServiceName is reported by the health endpoint
const ServiceName = "job-search-api"

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": ServiceName,
		})
	})

	searchHandler := handler.NewSearchHandler(deps)

	api := r.Group("/api")
	{
		// POST /api/search - Search jobs matching the given preferences
		api.POST("/search", searchHandler.Search)
	}

	return r
}
