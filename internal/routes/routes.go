package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dbexplorer/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, authenticate gin.HandlerFunc, tableHandler *handlers.TableHandler, relationshipHandler *handlers.RelationshipHandler) {
	api := router.Group("/api/v1")
	api.Use(authenticate)

	tableRoutes := NewTableRoutes(tableHandler)
	tableRoutes.RegisterRoutes(api)

	relationshipRoutes := NewRelationshipRoutes(relationshipHandler)
	relationshipRoutes.RegisterRoutes(api)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
