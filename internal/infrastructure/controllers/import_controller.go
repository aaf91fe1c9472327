package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/infrastructure/output"
)

// ImportController handles the "import" subcommand.
type ImportController struct {
	command commands.Import
	loader  *ConfigLoader
}

// NewImportController creates a new ImportController.
func NewImportController(command commands.Import, loader *ConfigLoader) *ImportController {
	return &ImportController{command: command, loader: loader}
}

// GetBind returns the Cobra command metadata for the import controller.
func (it *ImportController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "import <repository-url>",
		Short: "Build a changelog from the releases of a hosted repository",
		Long: `Download every release of a GitHub or GitLab repository and write them,
newest first, to <changelog>.tmp next to the configured changelog.`,
		Args: cobra.ExactArgs(1),
	}
}

// AddFlags has nothing to add for import.
func (it *ImportController) AddFlags(_ *cobra.Command) {}

// Execute runs the import.
func (it *ImportController) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := it.loader.Load(cmd)
	if err != nil {
		return err
	}

	path, err := it.command.Execute(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.SuccessLine("changelog imported to "+path))
	return nil
}
