package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbexplorer/internal/auth"
	"dbexplorer/internal/handlers"
	"dbexplorer/internal/middlewares"
	"dbexplorer/internal/models"
	"dbexplorer/internal/services"
)

type emptyTables struct{ calls int }

func (e *emptyTables) ListTables(ctx context.Context, nonEmptyOnly bool) ([]models.TableDescriptor, error) {
	e.calls++
	return []models.TableDescriptor{}, nil
}

func (e *emptyTables) ListRows(ctx context.Context, p services.ListRowsParams) (*models.RowsPage, error) {
	e.calls++
	return &models.RowsPage{Table: p.Table}, nil
}

type emptyRelationships struct{}

func (emptyRelationships) ListForeignKeys(ctx context.Context) ([]models.ForeignKeyEdge, error) {
	return []models.ForeignKeyEdge{}, nil
}

func (emptyRelationships) Resolve(ctx context.Context, table, id string) (*models.RelationshipGraph, error) {
	return &models.RelationshipGraph{MainRecord: models.MainRecord{Table: table}, RelatedRecordsByTable: models.NewRelatedRecords()}, nil
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validator := auth.NewJWTValidator("secret")
	token, err := validator.Issue(uuid.New(), time.Minute)
	require.NoError(t, err)

	tables := &emptyTables{}
	router := gin.New()
	RegisterRoutes(router,
		middlewares.Authenticate(validator, "session"),
		handlers.NewTableHandler(tables, handlers.PageLimits{Default: 50, Max: 500}),
		handlers.NewRelationshipHandler(emptyRelationships{}),
	)

	paths := []string{
		"/api/v1/tables",
		"/api/v1/tables/users",
		"/api/v1/relationships",
		"/api/v1/tables/users/1/relationships",
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			req := httptest.NewRequest(http.MethodGet, p, nil)
			req.AddCookie(&http.Cookie{Name: "session", Value: token})
			w = httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
	assert.Equal(t, 2, tables.calls)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
