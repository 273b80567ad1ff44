// Package cli implements audexctl, a local console over the audience engine.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/audex/internal/domain/intent"
	"github.com/kailas-cloud/audex/internal/domain/population"
	logpkg "github.com/kailas-cloud/audex/internal/logger"
	audienceuc "github.com/kailas-cloud/audex/internal/usecase/audience"
)

var (
	seed      uint64
	size      int
	statePath string
	verbose   bool

	// session is rebuilt before every command from the global flags.
	session *audienceuc.Service
)

var rootCmd = &cobra.Command{
	Use:   "audexctl",
	Short: "Build travel audiences from attribute filters",
	Long: `audexctl filters a synthetic traveller population by behavioural,
transactional, profile and cross-sell attributes.

Filters can be set directly or from free text with "ask". Pass --state to
keep filters between invocations.`,
	SilenceUsage:      true,
	PersistentPreRunE: openSession,
}

func init() {
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 42, "population seed")
	rootCmd.PersistentFlags().IntVar(&size, "size", population.DefaultSize, "population size")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "filter state file to load before and save after mutating commands")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
}

// Execute runs the root command against the process arguments. Command
// output goes to stdout, errors to stderr.
func Execute() error {
	return run(os.Stdout, os.Stderr, os.Args[1:])
}

func run(stdout, stderr io.Writer, args []string) error {
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func openSession(cmd *cobra.Command, _ []string) error {
	if size <= 0 {
		return fmt.Errorf("--size must be positive, got %d", size)
	}

	logger := zap.NewNop()
	if verbose {
		l, err := logpkg.NewLogger("local", "debug")
		if err != nil {
			return err
		}
		logger = l
	}

	pop := population.Generate(seed, size)
	session = audienceuc.New(pop, intent.Default(), logger)
	logger.Debug("population ready", zap.Uint64("seed", seed), zap.Int("size", pop.Len()))

	if statePath == "" {
		return nil
	}
	data, err := os.ReadFile(statePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	if err := session.ImportState(ctxOf(cmd), string(data)); err != nil {
		return fmt.Errorf("load %s: %w", statePath, err)
	}
	return nil
}

// persist writes the session state to --state, if set.
func persist(cmd *cobra.Command) error {
	if statePath == "" {
		return nil
	}
	text, err := session.ExportState(ctxOf(cmd))
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, []byte(text+"\n"), 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printStats(cmd *cobra.Command) {
	st := session.Stats(ctxOf(cmd))
	cmd.Printf("Audience: %d / %d (%.1f%%)\n", st.Size, st.Total, st.Percentage)
}

func printSummary(cmd *cobra.Command) {
	lines := session.Summary(ctxOf(cmd))
	if len(lines) == 0 {
		cmd.Println("No active filters.")
		return
	}
	cmd.Println("Active filters:")
	for _, l := range lines {
		cmd.Printf("  %s\n", l)
	}
}
