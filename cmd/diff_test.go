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

func TestDiffCmd_BuildsWorkflowFromFlags(t *testing.T) {
	mockWorkflow, options := useMockWorkflow(t)

	mockWorkflow.On("Diff", mock.Anything, mock.MatchedBy(func(args domain.DiffArgs) bool {
		return args.Threads == 2 &&
			len(args.Paths) == 1 &&
			args.Paths[0] == m.Path("./trees")
	})).Return(nil)

	cmd := newTestRoot(newDiffCmd)
	cmd.SetArgs([]string{"diff", "-p", "2", "--constructor", "first", "./trees"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, refactor.SelectFirst, options.Selection)
	mockWorkflow.AssertExpectations(t)
}

func TestDiffCmd_InvalidNaming(t *testing.T) {
	useMockWorkflow(t)

	cmd := newTestRoot(newDiffCmd)
	cmd.SetArgs([]string{"diff", "--naming", "nope"})

	require.Error(t, cmd.Execute())
}

func TestNewDiffCmd(t *testing.T) {
	cmd := newDiffCmd()
	assert.Equal(t, "diff [paths...]", cmd.Use)
	assert.Equal(t, diffLongDescription, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup(namingFlagName))
	assert.NotNil(t, cmd.Flags().Lookup(constructorFlagName))
	assert.Nil(t, cmd.Flags().Lookup(fixDryRunFlagName))
}
