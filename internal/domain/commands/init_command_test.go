//go:build unit

package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
	doubles "github.com/rios0rios0/releaser/test/infrastructure/repositorydoubles"
)

func TestInitCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should write and commit a default config in a clean project", func(t *testing.T) {
		// given
		root := t.TempDir()
		git := &doubles.SpyGitRepository{}
		cmd := commands.NewInitCommand(git)

		// when
		path, err := cmd.Execute(context.Background(), commands.InitOptions{RootDir: root})

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, ".releaser.yaml"), path)
		assert.Equal(t, []string{"add .releaser.yaml", "commit releaser: add default config"}, git.Calls)

		settings, loadErr := entities.NewSettings(path)
		require.NoError(t, loadErr)
		assert.Equal(t, filepath.Base(root), settings.ProductName)
	})

	t.Run("should use the given product name and leave a dirty project uncommitted", func(t *testing.T) {
		// given
		root := t.TempDir()
		git := &doubles.SpyGitRepository{DirtyDirs: map[string]bool{root: true}}
		cmd := commands.NewInitCommand(git)

		// when
		path, err := cmd.Execute(context.Background(), commands.InitOptions{RootDir: root, ProductName: "demo"})

		// then
		require.NoError(t, err)
		assert.Empty(t, git.Calls)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Contains(t, string(content), "product_name: demo")
	})

	t.Run("should keep an existing config", func(t *testing.T) {
		// given
		root := t.TempDir()
		existing := filepath.Join(root, "releaser.yml")
		require.NoError(t, os.WriteFile(existing, []byte("product_name: mine\n"), 0o600))
		git := &doubles.SpyGitRepository{}
		cmd := commands.NewInitCommand(git)

		// when
		path, err := cmd.Execute(context.Background(), commands.InitOptions{RootDir: root})

		// then
		require.NoError(t, err)
		assert.Equal(t, existing, path)
		assert.Empty(t, git.Calls)
		content, readErr := os.ReadFile(existing)
		require.NoError(t, readErr)
		assert.Equal(t, "product_name: mine\n", string(content))
	})
}
