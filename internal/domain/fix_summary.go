package domain

import (
	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

func summarize(reports []m.FixReport) m.Summary {
	var summary m.Summary

	for _, report := range reports {
		switch report.Status {
		case m.Applied:
			summary.Applied++
		case m.Skipped:
			summary.Skipped++
		case m.Failed:
			summary.Failed++
		case m.Canceled:
			summary.Canceled++
		}
	}

	return summary
}
