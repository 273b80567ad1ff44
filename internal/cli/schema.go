package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/audex/internal/domain/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [category]",
	Short: "List filterable fields",
	Long: `List every filterable field with its kind and options.

Categories: behavioral, transactional, profile, crossSell.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	categories := schema.Categories()
	if len(args) == 1 {
		c, ok := schema.ParseCategory(args[0])
		if !ok {
			return fmt.Errorf("unknown category %q", args[0])
		}
		categories = []schema.Category{c}
	}

	for _, c := range categories {
		cmd.Printf("[%s]\n", c)
		for _, f := range schema.FieldsOf(c) {
			cmd.Printf("  %-34s %-14s %s\n", f.Key(), f.Kind(), describeField(f))
		}
	}
	return nil
}

func describeField(f schema.Field) string {
	if f.Kind() == schema.NumericRange {
		return fmt.Sprintf("%s, %d..%d %s", f.Label(), f.Min(), f.Max(), f.Unit())
	}
	return fmt.Sprintf("%s (%s)", f.Label(), strings.Join(f.Options(), " | "))
}
