package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/edbaunton/copybara/internal/console"
	"github.com/edbaunton/copybara/internal/feedback"
	"github.com/edbaunton/copybara/internal/migration"
)

func init() {
	rootCmd.AddCommand(newSyncCmd())
}

func newSyncCmd() *cobra.Command {
	var all bool
	var asJSON bool

	syncCmd := &cobra.Command{
		Use:   "sync [migration]",
		Short: "Diff the origin refs against the journal and run feedback actions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			if !all && len(args) == 0 {
				return fmt.Errorf("provide a migration name or --all")
			}

			a, err := openApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			reg := feedback.NewRegistry()
			if err := migration.RegisterBuiltins(reg); err != nil {
				return err
			}

			pipeline := migration.NewPipeline(a.cfg, a.cfgPath, a.journal, reg, console.NewSlog(nil))

			var results []*migration.Result
			if all {
				results, err = pipeline.SyncAll(cmd.Context())
			} else {
				var res *migration.Result
				res, err = pipeline.Sync(cmd.Context(), args[0])
				if res != nil {
					results = append(results, res)
				}
			}
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			for _, res := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d deleted, %d inserted, %d updated, %d effects\n",
					res.Migration,
					len(res.Diff.Deleted), len(res.Diff.Inserted), len(res.Diff.Updated),
					len(res.Effects))
				for _, effect := range res.Effects {
					fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s\n", effect.Type, effect.Summary)
				}
			}
			return nil
		},
	}

	syncCmd.Flags().BoolVar(&all, "all", false, "sync every configured migration")
	syncCmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return syncCmd
}
