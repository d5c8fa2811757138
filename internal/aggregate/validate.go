package aggregate

import (
	"fmt"
	"log/slog"

	"github.com/wingmate/wingmate/internal/logging"
	"github.com/wingmate/wingmate/internal/parser"
)

// Mission is the typed row handed to consumers that need fixed fields.
type Mission struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Aircraft    string `json:"aircraft"`
	Duty        string `json:"duty"`
	Description string `json:"description"`
}

// ValidateMissions converts loosely typed mission rows into Missions,
// dropping rows that are not objects. It returns the valid rows and how
// many were dropped. Aircraft falls back to the combat report "type" field
// so raw reports validate as well as summaries.
func ValidateMissions(rows []any, logger *slog.Logger) ([]Mission, int) {
	logger = logging.OrDiscard(logger)
	out := make([]Mission, 0, len(rows))
	invalid := 0

	for i, row := range rows {
		obj, ok := parser.AsObject(row)
		if !ok {
			logger.Warn("Invalid mission row", "index", i, "type", fmt.Sprintf("%T", row))
			invalid++
			continue
		}
		out = append(out, Mission{
			Date:        obj.String("date"),
			Time:        obj.String("time"),
			Aircraft:    obj.FirstString("aircraft", "type"),
			Duty:        obj.String("duty"),
			Description: obj.String("description"),
		})
	}

	if invalid > 0 {
		logger.Warn("Ignored invalid missions", "count", invalid)
	}
	return out, invalid
}
