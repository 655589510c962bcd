package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader("id,name\n1,ada\n2,\n3,grace\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())
	assert.Equal(t, "id", tbl.Columns[0].Name)
	assert.Equal(t, []string{"1", "2", "3"}, tbl.Columns[0].Values)
	assert.Equal(t, []string{"ada", "", "grace"}, tbl.Columns[1].Values)
}

func TestReadTableHeaderOnly(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader("id,name\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())
}

func TestReadTableEmptyInput(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadTableRaggedRecord(t *testing.T) {
	_, err := ReadTable(strings.NewReader("a,b\n1,2\n3\n"))
	assert.Error(t, err)
}

func TestReadTableQuotedFields(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader("note\n\"a, b\"\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a, b"}, tbl.Columns[0].Values)
}
