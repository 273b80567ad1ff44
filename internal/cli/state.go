package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Export or import the filter state",
}

var stateExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the filter state as JSON to a file or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := session.ExportState(ctxOf(cmd))
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		}
		if err := os.WriteFile(args[0], []byte(text+"\n"), 0o600); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		cmd.Printf("State written to %s\n", args[0])
		return nil
	},
}

var stateImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the filter state with the contents of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		if err := session.ImportState(ctxOf(cmd), strings.TrimSpace(string(data))); err != nil {
			return err
		}
		printSummary(cmd)
		printStats(cmd)
		return persist(cmd)
	},
}

func init() {
	stateCmd.AddCommand(stateExportCmd, stateImportCmd)
	rootCmd.AddCommand(stateCmd)
}
