package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertCellFailed checks the log output within a HarnessResult to confirm
// that a cell was reported as failed with a message containing msg.
func AssertCellFailed(t *testing.T, result *HarnessResult, ref, msg string) {
	t.Helper()

	marker := fmt.Sprintf("cell=%s ", ref)
	for _, line := range strings.Split(result.LogOutput, "\n") {
		if strings.Contains(line, marker) && strings.Contains(line, "level=WARN") && strings.Contains(line, msg) {
			return
		}
	}
	require.Fail(t, "cell failure not logged",
		"expected a warning for cell %s containing %q in logs:\n%s", ref, msg, result.LogOutput)
}

// AssertNoFailures confirms that the run logged no per-cell warnings.
func AssertNoFailures(t *testing.T, result *HarnessResult) {
	t.Helper()
	require.NotContains(t, result.LogOutput, "level=WARN", "expected no cell failures to be logged")
}
