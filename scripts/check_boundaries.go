// Command check_boundaries reports context-layer import violations for use
// outside the test runner (pre-commit hooks, one-off audits). The same rules
// run on every build via tests/unit.
package main

import (
	"fmt"
	"os"

	"gatherly/scripts/boundaries"
)

func main() {
	violations := boundaries.Collect(".")
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}
