package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "List the campaigns under the PWCG root",
	Args:  cobra.NoArgs,
	RunE:  runCampaigns,
}

func runCampaigns(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	campaigns := newReader(newLoader()).ListCampaigns()
	if len(campaigns) == 0 {
		fmt.Fprintf(out, "No campaigns found under %s\n", rootDir())
		return nil
	}
	for _, name := range campaigns {
		fmt.Fprintln(out, name)
	}
	return nil
}
