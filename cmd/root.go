package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the sheetcheck application
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheetcheck",
		Short: "Diagnose a Google Sheets service-account connection",
		Long: `sheetcheck checks whether a project is set up to talk to Google Sheets
through a service account.

It verifies that the required client libraries are linked, inspects the
Streamlit secrets file and the service-account key, lists the spreadsheets the
account can see and prints a summary with next steps.`,
		SilenceUsage: true,
	}

	// The root command runs the check and shares its flags
	checkCmd := newCheckCmd()
	cmd.Flags().AddFlagSet(checkCmd.Flags())
	cmd.Args = cobra.NoArgs
	cmd.RunE = checkCmd.RunE

	cmd.AddCommand(checkCmd)
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "sheetcheck version %s\n" .Version}}`)

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}
