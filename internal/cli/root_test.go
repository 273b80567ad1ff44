package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// executeStreams runs the CLI over a small population and returns what it
// wrote to stdout and stderr.
func executeStreams(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	seed, size, statePath, verbose = 42, 50, "", false
	audienceLimit, audienceExport = 10, false

	var out, errOut bytes.Buffer
	defer rootCmd.SetArgs(nil)
	err = run(&out, &errOut, append([]string{"--size", "50"}, args...))
	return out.String(), errOut.String(), err
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeStreams(t, args...)
	return out, err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := executeStreams(t, args...)
	require.NoError(t, err, errOut)
	return out
}
