package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/audex/internal/domain/filter"
	"github.com/kailas-cloud/audex/internal/domain/schema"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Inspect and edit individual filters",
}

var filterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active filters and the audience size",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		printSummary(cmd)
		printStats(cmd)
	},
}

var filterSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Overwrite one filter",
	Long: `Overwrite one filter. The value is parsed by the field kind:

  single-select  the option text, empty string for none
  multi-select   comma-separated options, empty string for none
  boolean        true, false or unset (있음 and 없음 also work)
  numeric-range  an integer threshold`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := lookupField(args[0])
		if err != nil {
			return err
		}
		v, err := parseValue(f, args[1])
		if err != nil {
			return err
		}
		if err := session.SetFilter(ctxOf(cmd), f.Key(), v); err != nil {
			return err
		}
		printStats(cmd)
		return persist(cmd)
	},
}

var filterToggleCmd = &cobra.Command{
	Use:   "toggle <field> <member>",
	Short: "Add or remove one member of a multi-select filter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := lookupField(args[0])
		if err != nil {
			return err
		}
		if err := session.ToggleFilterMember(ctxOf(cmd), f.Key(), args[1]); err != nil {
			return err
		}
		printStats(cmd)
		return persist(cmd)
	},
}

var filterClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset every filter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		session.ClearFilters(ctxOf(cmd))
		printStats(cmd)
		return persist(cmd)
	},
}

func init() {
	filterCmd.AddCommand(filterShowCmd, filterSetCmd, filterToggleCmd, filterClearCmd)
	rootCmd.AddCommand(filterCmd)
}

func lookupField(raw string) (schema.Field, error) {
	k, ok := schema.ParseKey(raw)
	if !ok {
		return schema.Field{}, fmt.Errorf("unknown field %q (see \"audexctl schema\")", raw)
	}
	f, _ := schema.Lookup(k)
	return f, nil
}

func parseValue(f schema.Field, raw string) (filter.Value, error) {
	switch f.Kind() {
	case schema.SingleSelect:
		return filter.Text(raw), nil
	case schema.MultiSelect:
		if strings.TrimSpace(raw) == "" {
			return filter.Members(), nil
		}
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return filter.Members(parts...), nil
	case schema.Boolean:
		switch strings.ToLower(raw) {
		case "true", "yes", schema.BooleanLabel[true]:
			return filter.Flag(true), nil
		case "false", "no", schema.BooleanLabel[false]:
			return filter.Flag(false), nil
		case "", "unset", "null":
			return filter.Unset(), nil
		}
		return filter.Value{}, fmt.Errorf("%s: want true, false or unset, got %q", f.Key(), raw)
	case schema.NumericRange:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return filter.Value{}, fmt.Errorf("%s: want an integer, got %q", f.Key(), raw)
		}
		return filter.Number(n), nil
	}
	return filter.Value{}, fmt.Errorf("%s: unsupported kind %s", f.Key(), f.Kind())
}
