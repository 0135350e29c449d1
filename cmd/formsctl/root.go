package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "formsctl",
	Short: "Manage the forms server",
	Long: `formsctl manages the forms server: the schema, the configuration
and the server process itself.

The server exposes user-designed forms that can be attached to Projects,
Datasets, Plates and Screens, with submitted data kept as an append-only
history.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
