package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

// LastRunFile is the report written by every fix run.
const LastRunFile = "last-run.yaml"

// ErrNoReport is returned when the reports directory holds no run.
var ErrNoReport = errors.New("no saved report")

// ReportStore persists fix-all run reports.
type ReportStore interface {
	SaveReport(ctx context.Context, dir m.Path, report m.RunReport) error
	LoadReport(ctx context.Context, dir m.Path) (m.RunReport, error)
}

type yamlReportStore struct {
	fs SourceFSAdapter
}

// NewReportStore creates a ReportStore writing YAML files through fs.
func NewReportStore(fs SourceFSAdapter) ReportStore {
	return &yamlReportStore{fs: fs}
}

func (s *yamlReportStore) SaveReport(ctx context.Context, dir m.Path, report m.RunReport) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	runFile := s.fs.JoinPath(ctx, string(dir), fmt.Sprintf("run-%s.yaml", report.ID))
	if err := s.fs.WriteFile(ctx, runFile, data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if err := s.fs.WriteFile(ctx, s.fs.JoinPath(ctx, string(dir), LastRunFile), data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func (s *yamlReportStore) LoadReport(ctx context.Context, dir m.Path) (m.RunReport, error) {
	data, err := s.fs.ReadFile(ctx, s.fs.JoinPath(ctx, string(dir), LastRunFile))
	if errors.Is(err, os.ErrNotExist) {
		return m.RunReport{}, fmt.Errorf("%s: %w", filepath.Join(string(dir), LastRunFile), ErrNoReport)
	}

	if err != nil {
		return m.RunReport{}, fmt.Errorf("read report: %w", err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("unmarshal report: %w", err)
	}

	return report, nil
}
