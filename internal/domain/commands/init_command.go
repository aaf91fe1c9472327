package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// Init is the interface for bootstrapping a configuration file.
type Init interface {
	Execute(ctx context.Context, opts InitOptions) (string, error)
}

// InitOptions holds runtime options for writing the default configuration.
type InitOptions struct {
	RootDir string
	// ProductName defaults to the name of RootDir.
	ProductName string
}

// InitCommand writes a documented default configuration into a project.
type InitCommand struct {
	git repositories.GitRepository
}

// NewInitCommand creates a new InitCommand.
func NewInitCommand(git repositories.GitRepository) *InitCommand {
	return &InitCommand{git: git}
}

// Execute returns the path of the configuration file, whether it was written now or already existed.
func (it *InitCommand) Execute(ctx context.Context, opts InitOptions) (string, error) {
	if existing, err := entities.FindConfigFile(opts.RootDir); err == nil {
		logger.Infof("[config] Found existing config %s", existing)
		return existing, nil
	}

	productName := opts.ProductName
	if productName == "" {
		abs, err := filepath.Abs(opts.RootDir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", opts.RootDir, err)
		}
		productName = filepath.Base(abs)
	}

	content, err := entities.NewDefaultSettings(productName).MarshalDocumented()
	if err != nil {
		return "", err
	}

	wasClean, err := it.git.IsClean(opts.RootDir)
	if err != nil {
		return "", err
	}

	name := entities.ConfigFileNames[0]
	path := filepath.Join(opts.RootDir, name)
	//nolint:gosec // config is committed with the project
	if err = os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Warnf("[config] Wrote default config to %s, please review it", path)

	if !wasClean {
		logger.Infof("[git] Working copy was not clean, leaving %s uncommitted", name)
		return path, nil
	}
	if err = it.git.Add(ctx, opts.RootDir, name); err != nil {
		return "", err
	}
	if err = it.git.Commit(ctx, opts.RootDir, "releaser: add default config"); err != nil {
		return "", err
	}
	return path, nil
}
