// Package util provides common helpers shared by the CLI and the storage backends.
package util

import "strings"

var fileNameReplacer = strings.NewReplacer(
	" ", "_",
	":", "_",
	"/", "_",
	`\`, "_",
	"*", "_",
	"?", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SafeFileName turns a campaign name into something usable as a file name
// on every platform the campaign generator runs on.
func SafeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "campaign"
	}
	return fileNameReplacer.Replace(name)
}

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}
