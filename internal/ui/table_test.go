package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// KeyValueBlock
// ---------------------------------------------------------------------------

func TestKeyValueBlockContainsTitleAndPairs(t *testing.T) {
	result := KeyValueBlock("Token", [][2]string{
		{"Name", "TRAG"},
		{"Total supply", "1000000.000000"},
	})
	assert.Contains(t, result, "Token")
	assert.Contains(t, result, "Name:")
	assert.Contains(t, result, "TRAG")
	assert.Contains(t, result, "Total supply:")
	assert.Contains(t, result, "1000000.000000")
}

func TestKeyValueBlockEmptyTitle(t *testing.T) {
	result := KeyValueBlock("", [][2]string{{"Key", "Value"}})
	assert.Contains(t, result, "Key")
	assert.Contains(t, result, "Value")
}

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

func TestTableRender(t *testing.T) {
	tbl := NewTable([]Column{{Title: "Name", Width: 8}, {Title: "Address", Width: 12}})
	tbl.AddRow(Row{"main", "0x7099…79C8"})
	tbl.AddRow(Row{"short"})

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[0], "Address")
	assert.Contains(t, lines[1], strings.Repeat("-", 8))
	assert.Contains(t, lines[2], "main")
	assert.Contains(t, lines[3], "short")
}

func TestTableNoRows(t *testing.T) {
	tbl := NewTable([]Column{{Title: "Key", Width: 6}})
	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4))
	assert.Equal(t, "abcd", pad("abcd", 4))
	assert.Equal(t, "abc…", pad("abcdef", 4))
	assert.Equal(t, "→ x ", pad("→ x", 4))
}
