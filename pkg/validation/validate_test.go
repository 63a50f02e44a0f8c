package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsTraversal(t *testing.T) {
	t.Run("Clean", func(t *testing.T) {
		require.False(t, ContainsTraversal("foo/bar.txt"))
	})
	t.Run("ForwardSlashTraversal", func(t *testing.T) {
		require.True(t, ContainsTraversal("foo/../../etc/passwd"))
	})
	t.Run("BackslashTraversal", func(t *testing.T) {
		require.True(t, ContainsTraversal(`foo\..\..\etc\passwd`))
	})
}

func TestResolveWithinRoot(t *testing.T) {
	root := "/extract/root"

	t.Run("Normal", func(t *testing.T) {
		got, err := ResolveWithinRoot(root, "dir/file.txt")
		require.NoError(t, err)
		require.Equal(t, "/extract/root/dir/file.txt", got)
	})

	t.Run("WindowsSeparators", func(t *testing.T) {
		got, err := ResolveWithinRoot(root, `dir\file.txt`)
		require.NoError(t, err)
		require.Equal(t, "/extract/root/dir/file.txt", got)
	})

	t.Run("TraversalRejected", func(t *testing.T) {
		_, err := ResolveWithinRoot(root, "../../etc/passwd")
		require.Error(t, err)
		var te *TraversalError
		require.ErrorAs(t, err, &te)
	})

	t.Run("AbsolutePathRejected", func(t *testing.T) {
		_, err := ResolveWithinRoot(root, "/etc/passwd")
		require.Error(t, err)
	})
}

func TestValidSymlinkTarget(t *testing.T) {
	require.False(t, ValidSymlinkTarget("../sibling/file.txt"))
	require.True(t, ValidSymlinkTarget("sibling/file.txt"))
	require.False(t, ValidSymlinkTarget("/etc/passwd"))
}
