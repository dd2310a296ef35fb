package httpapi

import "github.com/gin-gonic/gin"

// SetupRoutes registers the four documented endpoints (spec.md §6) plus a
// health check.
func SetupRoutes(router *gin.Engine, matchHandler *MatchHandler, backlogHandler *BacklogHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	match := router.Group("/match/interactive")
	{
		match.POST("/start", matchHandler.Start)
		match.POST("/continue", matchHandler.Continue)
		match.POST("/finalize", matchHandler.Finalize)
	}

	router.POST("/backlog/ingest", backlogHandler.Ingest)
}
