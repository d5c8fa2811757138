package personnel

import "strings"

// Canonical country codes a pilot can resolve to.
const (
	Germany = "GERMANY"
	France  = "FRANCE"
	Britain = "BRITAIN"
	Belgian = "BELGIAN"
	USA     = "USA"
)

type country struct {
	code    string
	label   string
	aliases []string
}

var countries = []country{
	{Germany, "Germany", []string{"GERMANY", "GER", "DE", "DEU", "ALEMANHA", "ALLEMAGNE", "DEUTSCHLAND"}},
	{France, "France", []string{"FRANCE", "FR", "FRA"}},
	{Britain, "Britain", []string{"BRITAIN", "UK", "GB", "GBR", "UNITED KINGDOM", "BRIT"}},
	{Belgian, "Belgian", []string{"BELGIAN", "BELGIUM", "BE", "BEL"}},
	{USA, "USA", []string{"USA", "US", "UNITED STATES", "UNITED STATES OF AMERICA"}},
}

// CanonicalCountry maps a free-form country value to its canonical code and
// display label. Unknown values map to Germany.
func CanonicalCountry(s string) (code, label string) {
	c := strings.ToUpper(strings.TrimSpace(s))
	for _, entry := range countries {
		for _, alias := range entry.aliases {
			if c == alias {
				return entry.code, entry.label
			}
		}
	}
	return Germany, "Germany"
}
