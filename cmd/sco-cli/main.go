package main

import (
	"fmt"
	"os"

	"github.com/XiaoConstantine/sco-go/cmd/sco-cli/internal/commands"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sco-cli",
	Short: "Society and civilization optimizer for constrained design problems",
	Long: `A command-line interface for running the society and civilization
optimizer against constrained engineering design benchmarks.

The CLI provides:
- Batch execution of independent runs with a statistical report
- Built-in benchmark problems (two-variable design, welded beam design)
- Per-iteration CSV trajectory export and an ASCII map of the population
- A SQLite archive of past experiments`,
	Version: "0.1.0",
}

func init() {
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
