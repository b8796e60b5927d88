package integration_tests

import (
	"fmt"
	"strings"
	"testing"

	"github.com/specialistvlad/cellgridgo/internal/app"
	"github.com/specialistvlad/cellgridgo/internal/testutil"
	"github.com/stretchr/testify/require"
)

// buildGrid returns a rows x 26 table in which every cell sums its left and
// upper neighbours, with a sprinkling of cycles and malformed cells.
func buildGrid(rows int) string {
	var sb strings.Builder
	for r := 1; r <= rows; r++ {
		fields := make([]string, 26)
		for c := range 26 {
			col := string(rune('a' + c))
			switch {
			case r == 1 && c == 0:
				fields[c] = "1"
			case r == 1:
				fields[c] = fmt.Sprintf("%s1 + 1", string(rune('a'+c-1)))
			case c == 0:
				fields[c] = fmt.Sprintf("a%d * 2", r-1)
			case r%7 == 0 && c == 13:
				fields[c] = fmt.Sprintf("%s%d", col, r+1) // points down at a cell pointing back up
			case r%7 == 1 && r > 1 && c == 13:
				fields[c] = fmt.Sprintf("%s%d", col, r-1)
			case r%11 == 0 && c == 20:
				fields[c] = "2 +* 2"
			default:
				fields[c] = fmt.Sprintf("%s%d + %s%d", string(rune('a'+c-1)), r, col, r-1)
			}
		}
		sb.WriteString(strings.Join(fields, ","))
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestDagConcurrency_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	input := buildGrid(30)

	// --- Act ---
	sequential := testutil.RunIntegrationTest(t, input, app.Config{Workers: 1})
	require.NoError(t, sequential.Err)

	for _, workers := range []int{2, 8, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			parallel := testutil.RunIntegrationTest(t, input, app.Config{Workers: workers})

			// --- Assert ---
			require.NoError(t, parallel.Err)
			require.Equal(t, sequential.Output, parallel.Output)
		})
	}

	require.Contains(t, sequential.Output, "#ERR")
	require.Equal(t, 30, strings.Count(sequential.Output, "\n"))
}

func TestDagConcurrency_FanInEvaluatesSharedCellOnce(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Every cell in rows 2..40 reads a1, which must still be evaluated once.
	var sb strings.Builder
	sb.WriteString("5\n")
	for r := 2; r <= 40; r++ {
		sb.WriteString("a1+1,a1*2,b" + fmt.Sprint(r) + "-a1\n")
	}
	cells := 1 + 39*3

	// --- Act ---
	result := testutil.RunIntegrationTest(t, sb.String(), app.Config{Workers: 16})

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Contains(t, result.LogOutput, fmt.Sprintf("evaluations=%d", cells))
	require.Equal(t, 39, strings.Count(result.Output, "6,10,5\n"))
	testutil.AssertNoFailures(t, result)
}
