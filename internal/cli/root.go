package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:     "nexo",
	Short:   "Nexo - personal finance tracker with cloud backup",
	Version: version,
	Long: `Nexo tracks transactions, debts and budgets locally and keeps a
snapshot in a cloud backup of your choosing (GitHub Gist, JSONBin or
a Google Cloud Storage bucket).`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
