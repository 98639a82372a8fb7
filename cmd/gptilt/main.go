// gptilt - Match timeline dataset builder
// Transforms raw match and timeline payloads into analytics-ready
// Parquet tables.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

var verboseFlag bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gptilt",
	Short: "gptilt - Build match datasets from raw API payloads",
	Long: `gptilt transforms raw match and timeline payloads into flat,
typed, analytics-ready Parquet tables: one match row, ten participant
rows, and a time-ordered event stream per match.`,
	Version: fmt.Sprintf("%s (%s)", version, commit),
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print configuration sources and run details")
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(coordinatesCmd)
}
