package commands

import (
	"fmt"

	"github.com/XiaoConstantine/sco-go/cmd/sco-cli/internal/display"
	"github.com/XiaoConstantine/sco-go/pkg/store"
	"github.com/spf13/cobra"
)

func NewHistoryCommand() *cobra.Command {
	var storePath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show archived experiments and their best runs",
		Long: `List the experiments recorded in a SQLite archive, newest first,
with the best solution found by each one.`,
		Example: `  # Show everything archived in results.db
  sco-cli history --store results.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := store.Open(storePath)
			if err != nil {
				return err
			}
			defer archive.Close()

			experiments, err := archive.ListExperiments(cmd.Context())
			if err != nil {
				return err
			}

			bests := make(map[string]store.RunRecord, len(experiments))
			for _, exp := range experiments {
				best, err := archive.BestRun(cmd.Context(), exp.ID)
				if err != nil {
					continue
				}
				bests[exp.ID] = best
			}

			fmt.Fprint(cmd.OutOrStdout(), display.FormatExperiments(experiments, bests))
			return nil
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "results.db", "SQLite archive to read")
	return cmd
}
