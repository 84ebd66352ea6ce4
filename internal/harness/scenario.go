package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/commodex/internal/validate"
)

// Scenario defines a conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Spec is the path of the spec document under test.
	Spec string `yaml:"spec"`

	// Dataset describes the file placed at the first declared output.
	// Nil leaves the output missing.
	Dataset *DatasetStep `yaml:"dataset,omitempty"`

	// Options configure the validator.
	Options Options `yaml:"options,omitempty"`

	// Expect is the outcome the validator must report.
	Expect Expectation `yaml:"expect"`
}

// DatasetStep produces the dataset. Exactly one of Rows and CSV is set.
type DatasetStep struct {
	// Rows generates a dataset with this many rows.
	Rows int `yaml:"rows,omitempty"`

	// CSV is written verbatim.
	CSV string `yaml:"csv,omitempty"`
}

// Options mirror the validate command flags.
type Options struct {
	UnknownRules string `yaml:"unknown_rules,omitempty"`
	AllOutputs   bool   `yaml:"all_outputs,omitempty"`
}

// Expectation is the expected validation outcome.
type Expectation struct {
	// Pass is whether the contract is satisfied.
	Pass bool `yaml:"pass"`

	// Violations lists the expected violation codes in report order.
	Violations []string `yaml:"violations,omitempty"`

	// Warnings is the expected number of warnings.
	Warnings int `yaml:"warnings,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. The spec path is
// resolved relative to the scenario file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Spec != "" && !filepath.IsAbs(scenario.Spec) {
		scenario.Spec = filepath.Join(filepath.Dir(path), scenario.Spec)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Spec == "" {
		return fmt.Errorf("spec is required")
	}
	if _, err := os.Stat(s.Spec); os.IsNotExist(err) {
		return fmt.Errorf("spec file not found: %s", s.Spec)
	}

	if s.Dataset != nil {
		switch {
		case s.Dataset.Rows != 0 && s.Dataset.CSV != "":
			return fmt.Errorf("dataset: rows and csv are mutually exclusive")
		case s.Dataset.Rows < 0:
			return fmt.Errorf("dataset: rows must be positive, got %d", s.Dataset.Rows)
		case s.Dataset.Rows == 0 && s.Dataset.CSV == "":
			return fmt.Errorf("dataset: one of rows or csv is required")
		}
	}

	if _, err := validate.ParsePolicy(s.Options.UnknownRules); err != nil {
		return fmt.Errorf("options: %w", err)
	}

	if s.Expect.Pass && len(s.Expect.Violations) > 0 {
		return fmt.Errorf("expect: a passing scenario cannot list violations")
	}
	if !s.Expect.Pass && len(s.Expect.Violations) == 0 {
		return fmt.Errorf("expect: a failing scenario must list its violations")
	}

	return nil
}
