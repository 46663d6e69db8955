package model

import (
	"fmt"
	"time"
)

// FixStatus is the outcome of one fix.
type FixStatus int

const (
	// Applied indicates the field was introduced.
	Applied FixStatus = iota
	// Skipped indicates the diagnostic no longer resolved to a parameter.
	Skipped
	// Failed indicates the refactoring returned an error.
	Failed
	// Canceled indicates the run was canceled before the fix completed.
	Canceled
)

func (s FixStatus) String() string {
	switch s {
	case Applied:
		return "applied"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	case Canceled:
		return "canceled"
	}

	return fmt.Sprintf("FixStatus(%d)", int(s))
}

// MarshalYAML stores the status by name.
func (s FixStatus) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML reads a status stored by name.
func (s *FixStatus) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}

	for _, candidate := range []FixStatus{Applied, Skipped, Failed, Canceled} {
		if candidate.String() == name {
			*s = candidate
			return nil
		}
	}

	return fmt.Errorf("unknown fix status %q", name)
}

// FixReport is the result of applying one diagnostic.
type FixReport struct {
	DiagnosticID string    `yaml:"diagnostic"`
	Path         Path      `yaml:"path"`
	Class        string    `yaml:"class"`
	Parameter    string    `yaml:"parameter"`
	FieldName    string    `yaml:"field,omitempty"`
	Reused       bool      `yaml:"reused,omitempty"`
	Status       FixStatus `yaml:"status"`
	Error        string    `yaml:"error,omitempty"`
}

// RunReport is one fix-all run.
type RunReport struct {
	ID        string      `yaml:"id"`
	StartedAt time.Time   `yaml:"started_at"`
	DryRun    bool        `yaml:"dry_run"`
	Reports   []FixReport `yaml:"reports"`
}

// Summary counts reports per status.
type Summary struct {
	Applied  int
	Skipped  int
	Failed   int
	Canceled int
}

// Total returns the number of counted reports.
func (s Summary) Total() int {
	return s.Applied + s.Skipped + s.Failed + s.Canceled
}
