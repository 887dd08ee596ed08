package commands_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redblack-systems/rbtree/cmd/rbtreectl/commands"
	"github.com/redblack-systems/rbtree/pkg/arena"
)

func TestInspectCommandReportsShape(t *testing.T) {
	t.Parallel()

	alloc := arena.NewAllocator()
	tree := arena.NewTree(alloc)

	for _, key := range []uint32{5, 3, 8, 1, 4} {
		tree.Insert(arena.Item{Key: key, Value: key})
	}

	alloc.Hibernate()

	path := filepath.Join(t.TempDir(), "allocator.bin")
	require.NoError(t, alloc.Serialize(path))

	cmd := commands.NewInspectCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--path", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "5")
}

func TestInspectCommandMissingFileErrors(t *testing.T) {
	t.Parallel()

	cmd := commands.NewInspectCommand()
	cmd.SetArgs([]string{"--path", "/nonexistent/allocator.bin"})

	assert.Error(t, cmd.Execute())
}
