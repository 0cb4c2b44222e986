package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rstore/pkg/catalog"
	"github.com/vango-dev/rstore/pkg/store"
)

func bugsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bugs",
		Short: "Play with the local bug list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>...",
		Short: "Add bugs to a list seeded with Centipede",
		Long: `Add bugs one at a time, printing the header after every change.

Examples:
  rstore bugs add Locust
  rstore bugs add Locust Beetle`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runBugsAdd(cmd, args)
		},
	})

	return cmd
}

func runBugsAdd(cmd *cobra.Command, names []string) {
	out := cmd.OutOrStdout()
	bugs := catalog.NewBugStore()

	fmt.Fprintf(out, "Total Number of Bugs: %d\n", bugs.BugsCount())
	unsubscribe := bugs.Subscribe(func(s store.Snapshot[string]) {
		fmt.Fprintf(out, "Total Number of Bugs: %d\n", s.Count)
	})
	defer unsubscribe()

	for _, name := range names {
		bugs.AddBug(name)
	}

	for _, bug := range bugs.Items() {
		fmt.Fprintf(out, "  - %s\n", bug)
	}
}
