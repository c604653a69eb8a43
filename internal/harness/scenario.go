package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario for a permission-gated tree.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Schemas is an inline CUE schema document declaring the field
	// restrictions the scenario runs under. Empty means no restrictions.
	Schemas string `yaml:"schemas,omitempty"`

	// SchemaID is the schema identity of the root node.
	SchemaID string `yaml:"schema_id"`

	// Seed contains top-level entries written before the steps run.
	// Seed writes are assumed to succeed.
	Seed map[string]any `yaml:"seed,omitempty"`

	// Steps is the main flow: operations with expected outcomes.
	Steps []Step `yaml:"steps"`
}

// Step is one store operation with an optional expectation.
type Step struct {
	// Op is "read" or "write".
	Op string `yaml:"op"`

	// Path is the colon-delimited target.
	Path string `yaml:"path"`

	// Value is the value to write (write steps only).
	Value any `yaml:"value,omitempty"`

	// Expect specifies the expected outcome. If nil, the step is only
	// required to succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies a step's expected outcome. Exactly one of the fields
// should be set.
type Expect struct {
	// Leaf is the expected leaf value of a read.
	Leaf any `yaml:"leaf,omitempty"`

	// Node expects the read to resolve to a node reference.
	Node bool `yaml:"node,omitempty"`

	// Absent expects the terminal read to find no stored value.
	Absent bool `yaml:"absent,omitempty"`

	// Error is the expected error code: PERMISSION_DENIED, EMPTY_PATH,
	// MISSING_INTERMEDIATE, or NOT_A_NODE.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario document.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(raw, &scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if scenario.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: at least one step is required", path)
	}
	for i, step := range scenario.Steps {
		if step.Op != "read" && step.Op != "write" {
			return nil, fmt.Errorf("scenario %s: step %d: op must be read or write, got %q", path, i, step.Op)
		}
		if step.Path == "" && (step.Expect == nil || step.Expect.Error == "") {
			return nil, fmt.Errorf("scenario %s: step %d: empty path requires an expected error", path, i)
		}
	}
	return &scenario, nil
}
