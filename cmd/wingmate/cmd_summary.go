package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wingmate/wingmate/internal/aggregate"
	"github.com/wingmate/wingmate/internal/campaign"
	"github.com/wingmate/wingmate/internal/config"
	"github.com/wingmate/wingmate/internal/mission"
)

var summaryFlags struct {
	all     bool
	jsonOut bool
}

var summaryCmd = &cobra.Command{
	Use:   "summary [campaign]",
	Short: "Aggregate a campaign and print pilot, missions, squadron and aces",
	Args: func(cmd *cobra.Command, args []string) error {
		if summaryFlags.all {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runSummary,
}

func init() {
	f := summaryCmd.Flags()
	f.BoolVar(&summaryFlags.all, "all", false, "Aggregate every campaign under the root")
	f.BoolVar(&summaryFlags.jsonOut, "json", false, "Print the snapshot as JSON")
}

func newAggregator(loader campaign.Loader) *aggregate.Aggregator {
	return aggregate.New(newReader(loader), mission.NewResolver(loader, Logger), Logger)
}

func runSummary(cmd *cobra.Command, args []string) error {
	var snapshots []aggregate.Snapshot
	if summaryFlags.all {
		var err error
		if snapshots, err = aggregateAll(cmd); err != nil {
			return err
		}
	} else {
		s, ok := newAggregator(newLoader()).Aggregate(args[0])
		if !ok {
			return fmt.Errorf("campaign %q not found under %s", args[0], rootDir())
		}
		snapshots = []aggregate.Snapshot{s}
	}

	out := cmd.OutOrStdout()
	if summaryFlags.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if summaryFlags.all {
			return enc.Encode(snapshots)
		}
		return enc.Encode(snapshots[0])
	}

	for i, s := range snapshots {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printSnapshot(out, s)
	}
	return nil
}

// aggregateAll aggregates every campaign with at most config workers in
// flight. Each worker gets its own loader so no cache is shared.
func aggregateAll(cmd *cobra.Command) ([]aggregate.Snapshot, error) {
	names := newReader(newLoader()).ListCampaigns()
	results := make([]aggregate.Snapshot, len(names))
	found := make([]bool, len(names))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(config.GetWorkers())
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i], found[i] = newAggregator(newLoader()).Aggregate(name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate campaigns: %w", err)
	}

	out := make([]aggregate.Snapshot, 0, len(names))
	for i := range results {
		if found[i] {
			out = append(out, results[i])
		} else {
			Logger.Warn("Skipping campaign without descriptor", "campaign", names[i])
		}
	}
	return out, nil
}

func printSnapshot(out io.Writer, s aggregate.Snapshot) {
	fmt.Fprintf(out, "Campaign: %s\n", s.Campaign)
	fmt.Fprintf(out, "Pilot:    %s\n", s.Pilot.Name)
	fmt.Fprintf(out, "Squadron: %s\n", s.Pilot.Squadron)
	fmt.Fprintf(out, "Missions: %d\n", s.Pilot.TotalMissions)

	if len(s.Missions) > 0 {
		fmt.Fprintln(out, "\nMissions:")
		t := newTable(out, "Date", "Time", "Aircraft", "Duty", "Airfield", "Pilots")
		for _, m := range s.Missions {
			t.Append([]string{m.Date, m.Time, m.Aircraft, m.Duty, m.Airfield, strings.Join(m.Pilots, ", ")})
		}
		t.Render()
	}

	if len(s.Squadron) > 0 {
		fmt.Fprintln(out, "\nSquadron:")
		t := newTable(out, "Name", "Rank", "Victories", "Missions", "Status")
		for _, m := range s.Squadron {
			t.Append([]string{m.Name, m.Rank, strconv.Itoa(m.Victories), strconv.Itoa(m.MissionsFlown), m.Status.Label()})
		}
		t.Render()
	}

	if len(s.Aces) > 0 {
		fmt.Fprintln(out, "\nAces:")
		t := newTable(out, "Name", "Rank", "Country", "Victories", "Missions")
		for _, a := range s.Aces {
			t.Append([]string{a.Name, a.Rank, a.Country, strconv.Itoa(a.Victories), fmt.Sprint(a.MissionsFlown)})
		}
		t.Render()
	}
}
