package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ctorfield.dev/pkg/ctorfield/internal/domain"
	"ctorfield.dev/pkg/ctorfield/internal/domain/refactor"
	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

func TestFixCmd_Defaults(t *testing.T) {
	mockWorkflow, options := useMockWorkflow(t)

	mockWorkflow.On("Fix", mock.Anything, mock.MatchedBy(func(args domain.FixArgs) bool {
		return args.Threads == 1 &&
			!args.DryRun &&
			len(args.Paths) == 0 &&
			args.Reports == m.Path(".ctorfield-reports")
	})).Return(nil)

	cmd := newTestRoot(newFixCmd)
	cmd.SetArgs([]string{"fix"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, refactor.SelectTarget, options.Selection)
	require.NotNil(t, options.Naming)
	assert.Equal(t, "x12", options.Naming("x", "x1", 2), "cumulative naming by default")
}

func TestFixCmd_Flags(t *testing.T) {
	mockWorkflow, options := useMockWorkflow(t)

	mockWorkflow.On("Fix", mock.Anything, mock.MatchedBy(func(args domain.FixArgs) bool {
		return args.Threads == 4 &&
			args.DryRun &&
			len(args.Paths) == 2 &&
			args.Paths[0] == m.Path("./src/...") &&
			args.Paths[1] == m.Path("./trees")
	})).Return(nil)

	cmd := newTestRoot(newFixCmd)
	cmd.SetArgs([]string{"fix", "-p", "4", "--dry-run", "--naming", "sequential", "--constructor", "first", "./src/...", "./trees"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, refactor.SelectFirst, options.Selection)
	assert.Equal(t, "x2", options.Naming("x", "x1", 2))

	mockWorkflow.AssertExpectations(t)
}

func TestFixCmd_WithExcludePatterns(t *testing.T) {
	mockWorkflow, _ := useMockWorkflow(t)

	mockWorkflow.On("Fix", mock.Anything, mock.MatchedBy(func(args domain.FixArgs) bool {
		return len(args.Exclude) == 2 &&
			args.Exclude[0] == "^gen/" &&
			args.Exclude[1] == "_test\\.java$"
	})).Return(nil)

	cmd := newTestRoot(newFixCmd)
	cmd.SetArgs([]string{"fix", "-x", "^gen/", "--exclude", "_test\\.java$", "."})
	require.NoError(t, cmd.Execute())
}

func TestFixCmd_InvalidNaming(t *testing.T) {
	useMockWorkflow(t)

	cmd := newTestRoot(newFixCmd)
	cmd.SetArgs([]string{"fix", "--naming", "random"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown naming policy")
}

func TestFixCmd_InvalidConstructor(t *testing.T) {
	useMockWorkflow(t)

	cmd := newTestRoot(newFixCmd)
	cmd.SetArgs([]string{"fix", "--constructor", "last"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown constructor selection")
}

func TestFixCmd_WorkflowError(t *testing.T) {
	mockWorkflow, _ := useMockWorkflow(t)

	mockWorkflow.On("Fix", mock.Anything, mock.Anything).Return(domain.ErrFixesFailed)

	cmd := newTestRoot(newFixCmd)
	cmd.SetArgs([]string{"fix"})

	require.ErrorIs(t, cmd.Execute(), domain.ErrFixesFailed)
}

func TestNewFixCmd(t *testing.T) {
	cmd := newFixCmd()
	assert.Equal(t, "fix [paths...]", cmd.Use)
	assert.Equal(t, fixLongDescription, cmd.Long)

	for _, name := range []string{fixParallelFlagName, fixDryRunFlagName, namingFlagName, constructorFlagName} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	assert.Equal(t, "p", cmd.Flags().Lookup(fixParallelFlagName).Shorthand)
}
