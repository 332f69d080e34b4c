package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbexplorer/internal/models"
)

func TestTables(t *testing.T) {
	n := int64(1200)
	var buf bytes.Buffer
	err := Tables(&buf, []models.TableDescriptor{
		{Name: "orders", ColumnCount: 4, RowCount: &n},
		{Name: "users", ColumnCount: 12},
	}, false)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "TABLE   COLUMNS  ROWS (EST.)", lines[0])
	assert.Equal(t, "------  -------  -----------", lines[1])
	assert.Equal(t, "orders  4        1200", lines[2])
	assert.Equal(t, "users   12       ?", lines[3])
}

func TestRelationships(t *testing.T) {
	var buf bytes.Buffer
	err := Relationships(&buf, []models.ForeignKeyEdge{
		{FromTable: "orders", FromColumn: "user_id", ToTable: "users", ToColumn: "id", ConstraintName: "orders_user_id_fkey"},
	}, false)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "orders.user_id  users.id  orders_user_id_fkey")
}

func TestTable_WideRunesAlign(t *testing.T) {
	tbl := NewTable("NAME", "N")
	tbl.Append("日本", "1")
	tbl.Append("ab", "2")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf, false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "日本  1", lines[2])
	assert.Equal(t, "ab    2", lines[3])
}

func TestTable_TruncatesLongCells(t *testing.T) {
	tbl := NewTable("V")
	tbl.Append(strings.Repeat("x", 100))

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf, false))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.True(t, strings.HasSuffix(lines[2], "…"))
}

func TestTable_ColoredHeader(t *testing.T) {
	tbl := NewTable("NAME")
	tbl.Append("users")

	var plain, colored bytes.Buffer
	require.NoError(t, tbl.Render(&plain, false))
	require.NoError(t, tbl.Render(&colored, true))

	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "users")
}
