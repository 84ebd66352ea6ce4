package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/roach88/commodex/internal/generate"
	"github.com/roach88/commodex/internal/spec"
	"github.com/roach88/commodex/internal/testutil"
	"github.com/roach88/commodex/internal/validate"
)

// ScenarioClock is the instant generated scenario datasets are stamped with.
const ScenarioClock = "2026-01-01T00:00:00Z"

// Harness runs one scenario inside a working directory.
type Harness struct {
	workDir string
	clock   testutil.FixedClock
	logger  *slog.Logger
}

// Run executes a scenario in a fresh temporary directory and returns the
// result. The directory is removed afterwards.
func Run(scenario *Scenario) (*Result, error) {
	workDir, err := os.MkdirTemp("", "commodex-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	return RunIn(scenario, workDir)
}

// RunIn executes a scenario with relative output paths resolved inside
// workDir.
//
// Execution flow:
// 1. Load the spec and rebase its output paths
// 2. Produce the dataset at the first output, if the scenario has one
// 3. Validate
// 4. Compare the report with the expectation
func RunIn(scenario *Scenario, workDir string) (*Result, error) {
	h := &Harness{
		workDir: workDir,
		clock:   testutil.NewFixedClock(ScenarioClock),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in scenarios
	}

	s, err := spec.Load(scenario.Spec)
	if err != nil {
		return nil, fmt.Errorf("load spec: %w", err)
	}
	h.rebase(s)

	if err := h.produceDataset(s, scenario.Dataset); err != nil {
		return nil, err
	}

	policy, err := validate.ParsePolicy(scenario.Options.UnknownRules)
	if err != nil {
		return nil, err
	}
	v := &validate.Validator{
		UnknownRules: policy,
		AllOutputs:   scenario.Options.AllOutputs,
		Logger:       h.logger,
	}
	report := v.Validate(s)
	h.relativize(report)

	result := NewResult()
	result.Report = report
	checkExpectation(result, scenario.Expect, report)
	return result, nil
}

// rebase points relative output paths into the working directory.
func (h *Harness) rebase(s *spec.Spec) {
	for i, out := range s.Outputs {
		if out.Path != "" && !filepath.IsAbs(out.Path) {
			s.Outputs[i].Path = filepath.Join(h.workDir, out.Path)
		}
	}
}

// relativize strips the working directory from report paths and messages
// so reports are stable across runs.
func (h *Harness) relativize(report *validate.Report) {
	prefix := h.workDir + string(filepath.Separator)
	strip := func(s string) string {
		return strings.ReplaceAll(s, prefix, "")
	}

	for i := range report.Violations {
		report.Violations[i].Message = strip(report.Violations[i].Message)
	}
	for _, out := range report.Outputs {
		out.Path = strip(out.Path)
		for i := range out.Violations {
			out.Violations[i].Message = strip(out.Violations[i].Message)
		}
		for i := range out.Warnings {
			out.Warnings[i] = strip(out.Warnings[i])
		}
	}
}

func (h *Harness) produceDataset(s *spec.Spec, step *DatasetStep) error {
	if step == nil {
		return nil
	}
	out, ok := s.Output(0)
	if !ok {
		return fmt.Errorf("dataset given but spec declares no outputs")
	}

	if step.CSV != "" {
		if err := os.MkdirAll(filepath.Dir(out.Path), 0o755); err != nil {
			return fmt.Errorf("write dataset: %w", err)
		}
		if err := os.WriteFile(out.Path, []byte(step.CSV), 0o644); err != nil {
			return fmt.Errorf("write dataset: %w", err)
		}
		return nil
	}

	gen := &generate.Generator{
		Rows:   step.Rows,
		Now:    h.clock.Now,
		Logger: h.logger,
	}
	if _, err := gen.Generate(s, out.Path); err != nil {
		return fmt.Errorf("generate dataset: %w", err)
	}
	return nil
}

func checkExpectation(result *Result, expect Expectation, report *validate.Report) {
	if got := report.Pass(); got != expect.Pass {
		result.AddError(fmt.Sprintf("expected pass=%t, got pass=%t", expect.Pass, got))
	}

	var codes []string
	for _, v := range report.AllViolations() {
		codes = append(codes, v.Code)
	}
	if !slices.Equal(codes, expect.Violations) {
		result.AddError(fmt.Sprintf("expected violations %v, got %v", expect.Violations, codes))
		for _, v := range report.AllViolations() {
			result.AddError(fmt.Sprintf("  %s: %s", v.Code, v.Message))
		}
	}

	if got := len(report.Warnings()); got != expect.Warnings {
		result.AddError(fmt.Sprintf("expected %d warning(s), got %d", expect.Warnings, got))
	}
}
