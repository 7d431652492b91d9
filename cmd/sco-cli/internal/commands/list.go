package commands

import (
	"fmt"

	"github.com/XiaoConstantine/sco-go/cmd/sco-cli/internal/display"
	"github.com/spf13/cobra"
)

func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all available benchmark problems",
		Long: `Display the registered benchmark problems with their number of
variables and default search bounds.`,
		Example: `  # List all benchmarks
  sco-cli list`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), display.FormatBenchmarkList())
		},
	}
}
