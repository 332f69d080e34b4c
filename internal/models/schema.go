package models

import "strings"

// ColumnKind is the semantic tag derived from a column's declared data type.
type ColumnKind string

const (
	KindText     ColumnKind = "text"
	KindNumeric  ColumnKind = "numeric"
	KindTemporal ColumnKind = "temporal"
	KindOther    ColumnKind = "other"
)

type TableDescriptor struct {
	Name        string `json:"name"`
	ColumnCount int    `json:"columnCount"`
	RowCount    *int64 `json:"rowCount,omitempty"` // planner estimate, nil when statistics are missing
}

type ColumnDescriptor struct {
	Name     string     `json:"name"`
	DataType string     `json:"dataType"`
	Kind     ColumnKind `json:"kind"`
	Nullable bool       `json:"nullable"`
	Position int        `json:"position"`
}

// Searchable reports whether the column takes part in substring search.
func (c ColumnDescriptor) Searchable() bool {
	return c.Kind == KindText
}

// ForeignKeyEdge is one referencing column pair of a foreign-key constraint.
// From is the referencing side, To is the referenced side.
type ForeignKeyEdge struct {
	FromTable      string `json:"fromTable"`
	FromColumn     string `json:"fromColumn"`
	ToTable        string `json:"toTable"`
	ToColumn       string `json:"toColumn"`
	ConstraintName string `json:"constraintName"`
}

// Outbound reports whether table is the referencing side of the edge.
func (e ForeignKeyEdge) Outbound(table string) bool {
	return e.FromTable == table
}

// Inbound reports whether table is the referenced side of the edge.
func (e ForeignKeyEdge) Inbound(table string) bool {
	return e.ToTable == table
}

// ClassifyDataType maps an information_schema data_type to a ColumnKind.
func ClassifyDataType(dataType string) ColumnKind {
	dt := strings.ToLower(strings.TrimSpace(dataType))

	switch {
	case dt == "text",
		strings.HasPrefix(dt, "character varying"),
		strings.HasPrefix(dt, "character"),
		strings.HasPrefix(dt, "varchar"),
		strings.HasPrefix(dt, "char"):
		return KindText
	case dt == "smallint", dt == "integer", dt == "bigint",
		dt == "real", dt == "double precision", dt == "money",
		strings.HasPrefix(dt, "numeric"), strings.HasPrefix(dt, "decimal"),
		strings.HasSuffix(dt, "serial"):
		return KindNumeric
	case dt == "date", dt == "interval",
		strings.HasPrefix(dt, "timestamp"), strings.HasPrefix(dt, "time"):
		return KindTemporal
	default:
		return KindOther
	}
}

// ColumnNames returns the names of cols in declaration order.
func ColumnNames(cols []ColumnDescriptor) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// FindColumn returns the named column, if present.
func FindColumn(cols []ColumnDescriptor, name string) (ColumnDescriptor, bool) {
	for _, c := range cols {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDescriptor{}, false
}
