package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wingmate/wingmate/internal/aggregate"
	"github.com/wingmate/wingmate/internal/query"
)

var missionsCmd = &cobra.Command{
	Use:   "missions <campaign>",
	Short: "List the player's combat reports as validated mission rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runMissions,
}

func runMissions(cmd *cobra.Command, args []string) error {
	svc := query.NewService(query.NewJSONRepository(newReader(newLoader())))
	if _, ok := svc.Campaign(args[0]); !ok {
		return fmt.Errorf("campaign %q not found under %s", args[0], rootDir())
	}

	reports := svc.CampaignMissions(args[0])
	rows := make([]any, len(reports))
	for i, r := range reports {
		rows[i] = r
	}
	missions, invalid := aggregate.ValidateMissions(rows, Logger)

	out := cmd.OutOrStdout()
	t := newTable(out, "Date", "Time", "Aircraft", "Duty")
	for _, m := range missions {
		t.Append([]string{aggregate.FormatDate(m.Date), m.Time, m.Aircraft, m.Duty})
	}
	t.Render()

	fmt.Fprintf(out, "%d missions", len(missions))
	if invalid > 0 {
		fmt.Fprintf(out, ", %d invalid", invalid)
	}
	fmt.Fprintln(out)
	return nil
}
