package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"ctorfield.dev/pkg/ctorfield/internal/domain"
	domainmocks "ctorfield.dev/pkg/ctorfield/internal/domain/mocks"
	"ctorfield.dev/pkg/ctorfield/internal/domain/refactor"
)

// useMockWorkflow routes commands to a mock and records the options fix and
// diff build their workflow with.
func useMockWorkflow(t *testing.T) (*domainmocks.MockWorkflow, *refactor.Options) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)
	captured := &refactor.Options{}

	originalWorkflow := workflow
	originalFactory := workflowWithOptions
	workflow = mockWorkflow
	workflowWithOptions = func(options refactor.Options) domain.Workflow {
		*captured = options
		return mockWorkflow
	}

	t.Cleanup(func() {
		workflow = originalWorkflow
		workflowWithOptions = originalFactory
	})

	return mockWorkflow, captured
}

func newTestRoot(sub ...func() *cobra.Command) *cobra.Command {
	cmd := newRootCmd()
	for _, newSub := range sub {
		cmd.AddCommand(newSub())
	}

	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	return cmd
}
