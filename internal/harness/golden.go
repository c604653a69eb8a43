package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares the final snapshot against
// a golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	snapshot := Run(t, scenario)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot)
}
