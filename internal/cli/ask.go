package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/audex/internal/domain/intent"
)

var askCmd = &cobra.Command{
	Use:   "ask <text...>",
	Short: "Apply filters from a free-text description",
	Long: `Interpret a natural-language audience description and apply the
matching filters on top of the current state.

Example:
  audexctl ask "최근 30일 내 구매이력이 있는 VIP 고객"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	res := session.Interpret(ctxOf(cmd), text)

	if !res.Understood {
		cmd.Println("Query not understood. Try one of:")
		for _, q := range intent.SuggestedQueries() {
			cmd.Printf("  %s\n", q)
		}
		return nil
	}

	cmd.Printf("Matched: %s\n", strings.Join(res.MatchedRules, ", "))
	printSummary(cmd)
	printStats(cmd)
	return persist(cmd)
}
