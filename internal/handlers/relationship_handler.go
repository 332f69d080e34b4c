package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dbexplorer/internal/models"
	"dbexplorer/internal/responses"
)

// RelationshipService is implemented by services.RelationshipService.
type RelationshipService interface {
	ListForeignKeys(ctx context.Context) ([]models.ForeignKeyEdge, error)
	Resolve(ctx context.Context, table, id string) (*models.RelationshipGraph, error)
}

type RelationshipHandler struct {
	relationshipService RelationshipService
}

func NewRelationshipHandler(relationshipService RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relationshipService: relationshipService}
}

func (h *RelationshipHandler) ListRelationships(c *gin.Context) {
	edges, err := h.relationshipService.ListForeignKeys(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"relationships": edges}, "Relationships fetched successfully")
}

func (h *RelationshipHandler) GetRowRelationships(c *gin.Context) {
	graph, err := h.relationshipService.Resolve(c.Request.Context(), c.Param("name"), c.Param("id"))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, graph, "Relationships fetched successfully")
}
