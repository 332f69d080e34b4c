package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dbexplorer/internal/apperrors"
	"dbexplorer/internal/models"
	"dbexplorer/internal/responses"
	"dbexplorer/internal/services"
)

// TableService is implemented by services.TableService.
type TableService interface {
	ListTables(ctx context.Context, nonEmptyOnly bool) ([]models.TableDescriptor, error)
	ListRows(ctx context.Context, p services.ListRowsParams) (*models.RowsPage, error)
}

// PageLimits bounds the limit query parameter.
type PageLimits struct {
	Default int
	Max     int
}

type TableHandler struct {
	tableService TableService
	limits       PageLimits
}

func NewTableHandler(tableService TableService, limits PageLimits) *TableHandler {
	return &TableHandler{
		tableService: tableService,
		limits:       limits,
	}
}

func (h *TableHandler) ListTables(c *gin.Context) {
	nonEmpty := false
	if raw := c.Query("non_empty"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			responses.Error(c, apperrors.Validation("non_empty must be a boolean"))
			return
		}
		nonEmpty = v
	}

	tables, err := h.tableService.ListTables(c.Request.Context(), nonEmpty)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"tables": tables}, "Tables fetched successfully")
}

func (h *TableHandler) ListRows(c *gin.Context) {
	page, limit, err := h.pagination(c)
	if err != nil {
		responses.Error(c, err)
		return
	}

	result, err := h.tableService.ListRows(c.Request.Context(), services.ListRowsParams{
		Table:     c.Param("name"),
		Page:      page,
		Limit:     limit,
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	})
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, result, "Rows fetched successfully")
}

// pagination reads page and limit. Page defaults to 1 and is clamped up to 1;
// limit defaults to the configured page size and is clamped to the maximum.
func (h *TableHandler) pagination(c *gin.Context) (int, int, error) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperrors.Validation("page must be an integer")
		}
		page = max(v, 1)
	}

	limit := h.limits.Default
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperrors.Validation("limit must be an integer")
		}
		if v <= 0 {
			return 0, 0, apperrors.Validation("limit must be greater than zero")
		}
		limit = v
	}
	if h.limits.Max > 0 && limit > h.limits.Max {
		limit = h.limits.Max
	}

	return page, limit, nil
}
