package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCommand(t *testing.T) {
	out := mustExecute(t, "version")
	assert.Contains(t, out, "audexctl dev")
	assert.Contains(t, out, "commit unknown")
}
