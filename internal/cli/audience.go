package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	audienceLimit  int
	audienceExport bool
)

var audienceCmd = &cobra.Command{
	Use:   "audience",
	Short: "Show the users matching the current filters",
	RunE:  runAudience,
}

func init() {
	audienceCmd.Flags().IntVarP(&audienceLimit, "limit", "n", 10, "maximum users to list (0 lists none)")
	audienceCmd.Flags().BoolVar(&audienceExport, "export", false, "print a JSON audience report")
	rootCmd.AddCommand(audienceCmd)
}

func runAudience(cmd *cobra.Command, _ []string) error {
	ctx := ctxOf(cmd)

	if audienceExport {
		out, err := json.MarshalIndent(session.ExportAudience(ctx), "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}

	if audienceLimit < 0 {
		return fmt.Errorf("--limit must not be negative, got %d", audienceLimit)
	}

	printStats(cmd)
	users := session.Audience(ctx)
	for i, u := range users {
		if i == audienceLimit {
			cmd.Printf("  ... %d more\n", len(users)-audienceLimit)
			break
		}
		cmd.Printf("  %s  %-4s %-14s %3d일 %3d만원\n", u.ID, u.MembershipTier, u.DeviceType, u.Recency, u.AOV)
	}
	return nil
}
