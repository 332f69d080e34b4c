package models

type MainRecord struct {
	Table  string  `json:"table"`
	Record *Record `json:"record"`
}

// RelationshipGraph is the one-hop neighbourhood of a single row.
type RelationshipGraph struct {
	MainRecord            MainRecord       `json:"mainRecord"`
	RelatedRecordsByTable *RelatedRecords  `json:"relatedRecordsByTable"`
	Edges                 []ForeignKeyEdge `json:"edges"`
	TotalRelated          int              `json:"totalRelated"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination computes TotalPages as ceil(totalCount/limit). limit must be positive.
func NewPagination(page, limit int, totalCount int64) Pagination {
	var pages int64
	if totalCount > 0 {
		pages = (totalCount + int64(limit) - 1) / int64(limit)
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: pages,
	}
}

// RowsPage is the result of a table listing.
type RowsPage struct {
	Table       string             `json:"table"`
	Rows        []*Record          `json:"rows"`
	Columns     []ColumnDescriptor `json:"columns"`
	PrimaryKeys []string           `json:"primaryKeys"`
	Pagination  Pagination         `json:"pagination"`
}
