package routes

import (
	"github.com/gin-gonic/gin"

	"dbexplorer/internal/handlers"
)

type RelationshipRoutes struct {
	handler *handlers.RelationshipHandler
}

func NewRelationshipRoutes(handler *handlers.RelationshipHandler) *RelationshipRoutes {
	return &RelationshipRoutes{handler: handler}
}

func (r *RelationshipRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/relationships", r.handler.ListRelationships)
	router.GET("/tables/:name/:id/relationships", r.handler.GetRowRelationships)
}
