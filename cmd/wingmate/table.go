package main

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// newTable returns a borderless, unwrapped table with the given header
func newTable(out io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(out)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(true)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetBorder(false)
	t.SetCenterSeparator("")
	t.SetColumnSeparator("")
	t.SetRowSeparator("")
	t.SetHeaderLine(false)
	t.SetTablePadding("  ")
	t.SetNoWhiteSpace(true)
	return t
}
