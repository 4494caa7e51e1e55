package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatusCmd())
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show when each migration's refs were last recorded",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			a, err := openApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, m := range a.cfg.Migrations {
				last, ok, err := a.journal.LastRecorded(m.Name)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: never synced\n", m.Name)
					continue
				}

				snap, err := a.journal.Snapshot(m.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d refs, recorded %s\n",
					m.Name, len(snap), humanize.Time(last))
			}
			return nil
		},
	}
}
