package cellref

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// referencePattern matches one letter immediately followed by digits. It is
// compiled on first use and shared read-only afterwards.
var referencePattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`[a-zA-Z][0-9]+`)
})

// Reference is a single cell reference found in an expression.
type Reference struct {
	// Text is the reference exactly as written, e.g. "A4".
	Text string
	// Coordinate is the decoded position of Text.
	Coordinate Coordinate
	// Start and End delimit Text inside the expression (byte offsets,
	// End exclusive).
	Start int
	End   int
}

// Extract returns every cell reference in expression, in the order they
// appear. A reference used twice is returned twice.
//
// Extract("1 a4 + 14 - h2") => [{a4 (3,0)}, {h2 (1,7)}]
func Extract(expression string) ([]Reference, error) {
	spans := referencePattern().FindAllStringIndex(expression, -1)
	if len(spans) == 0 {
		return nil, nil
	}

	refs := make([]Reference, 0, len(spans))
	for _, span := range spans {
		text := expression[span[0]:span[1]]
		coord, err := ToCoordinate(text)
		if err != nil {
			return nil, fmt.Errorf("extracting references from %q: %w", expression, err)
		}
		refs = append(refs, Reference{
			Text:       text,
			Coordinate: coord,
			Start:      span[0],
			End:        span[1],
		})
	}
	return refs, nil
}

// Substitute replaces each reference span in expression with the value at the
// same index. Replacement is positional, so "a1" is never rewritten inside
// "a11". refs must come from Extract on the same expression.
func Substitute(expression string, refs []Reference, values []string) string {
	if len(refs) == 0 {
		return expression
	}

	var sb strings.Builder
	sb.Grow(len(expression))
	last := 0
	for i, ref := range refs {
		sb.WriteString(expression[last:ref.Start])
		sb.WriteString(values[i])
		last = ref.End
	}
	sb.WriteString(expression[last:])
	return sb.String()
}
