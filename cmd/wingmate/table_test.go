package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	var buf bytes.Buffer
	long := strings.Repeat("Albatros ", 6)

	tbl := newTable(&buf, "Name", "Aircraft")
	tbl.Append([]string{"Hans Schmidt", long})
	tbl.Append([]string{"Otto", "Fokker Dr.I"})
	tbl.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"NAME", "AIRCRAFT"}, strings.Fields(lines[0]))
	assert.Contains(t, lines[1], strings.TrimSpace(long))
	assert.NotContains(t, buf.String(), "|")
	assert.NotContains(t, buf.String(), "+")

	// columns line up
	assert.Equal(t, strings.Index(lines[1], "Albatros"), strings.Index(lines[2], "Fokker"))
}
