package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wingmate/wingmate/internal/campaign"
	"github.com/wingmate/wingmate/internal/personnel"
	"github.com/wingmate/wingmate/internal/util"
)

var personnelCmd = &cobra.Command{
	Use:   "personnel <campaign> <pilot>",
	Short: "Resolve a pilot's nationality and earned medals",
	Args:  cobra.ExactArgs(2),
	RunE:  runPersonnel,
}

func runPersonnel(cmd *cobra.Command, args []string) error {
	resolver := personnel.NewResolver(func() *campaign.Reader {
		return newReader(newLoader())
	}, Logger)

	res := resolver.Resolve(util.TrimQuotes(args[0]), util.TrimQuotes(args[1]))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Country: %s (%s)\n", res.DisplayName, res.CountryCode)
	medals := res.MedalIDs()
	if len(medals) == 0 {
		fmt.Fprintln(out, "Medals:  none")
		return nil
	}
	fmt.Fprintf(out, "Medals:  %s\n", strings.Join(medals, ", "))
	return nil
}
