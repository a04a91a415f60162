package printer

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture redirects output for the duration of the test with colours off.
func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	prevOut, prevErr := out, errOut
	var stdout, stderr bytes.Buffer
	SetOutput(&stdout, &stderr)
	SetColor(false)
	t.Cleanup(func() { SetOutput(prevOut, prevErr) })
	return &stdout, &stderr
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		_, stderr := capture(t)
		err := Error("Test Error", "This is a test error", []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
		assert.Equal(t, "Test Error\n\nThis is a test error\n", stderr.String())
	})

	t.Run("single suggestion printed verbatim", func(t *testing.T) {
		_, stderr := capture(t)
		err := Error("Test Error", "Explanation", []string{"Try this fix"})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, stderr.String(), "\nTry this fix\n")
	})

	t.Run("multiple suggestions are numbered", func(t *testing.T) {
		_, stderr := capture(t)
		Error("Test Error", "Explanation", []string{"First option", "Second option"})
		assert.Contains(t, stderr.String(), "Either:\n  1. First option\n  2. Second option\n")
	})
}

func TestErrorWithContext(t *testing.T) {
	_, stderr := capture(t)
	context := map[string]string{
		"Workspace": "growth-ops",
		"Backend":   "redis",
	}
	err := ErrorWithContext("Test Error", "Explanation", context, nil)
	require.Equal(t, "Test Error", err.Error())
	assert.Contains(t, stderr.String(), "  Backend: redis\n  Workspace: growth-ops\n")
}

func TestSuccessAndWarning(t *testing.T) {
	stdout, stderr := capture(t)

	Success("Saved\n")
	Success("✓ Already prefixed\n")
	Warning("Careful\n")

	assert.Equal(t, "✓ Saved\n✓ Already prefixed\n", stdout.String())
	assert.Equal(t, "⚠️  Careful\n", stderr.String())
}

func TestPlainOutput(t *testing.T) {
	stdout, _ := capture(t)

	Heading("Blueprint")
	Step("Compiling\n")
	Info("%d nodes\n", 9)
	Printf("%s\n", "done")
	Println("bye")

	assert.Equal(t, "Blueprint\n\n→ Compiling\n9 nodes\ndone\nbye\n", stdout.String())
	assert.Equal(t, stdout, Stdout())
}

func TestIsReported(t *testing.T) {
	capture(t)

	err := Error("already shown", "", nil)
	assert.True(t, IsReported(err))
	assert.True(t, IsReported(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsReported(errors.New("plain")))
}
