package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/infrastructure/output"
)

// ValidateController handles the "validate" subcommand.
type ValidateController struct {
	command commands.Validate
	loader  *ConfigLoader
}

// NewValidateController creates a new ValidateController.
func NewValidateController(command commands.Validate, loader *ConfigLoader) *ValidateController {
	return &ValidateController{command: command, loader: loader}
}

// GetBind returns the Cobra command metadata for the validate controller.
func (it *ValidateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "validate",
		Short: "Validate the project is ready to release",
		Long: `Check git, the changelog, the working copy, the branches and every
custom validation command, without changing anything.`,
		Args: cobra.NoArgs,
	}
}

// AddFlags adds the validate-specific flags to the given Cobra command.
func (it *ValidateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("changelog-only", false, "Only validate the changelog")
}

// Execute runs the validation.
func (it *ValidateController) Execute(cmd *cobra.Command, _ []string) error {
	changelogOnly, _ := cmd.Flags().GetBool("changelog-only")

	cfg, err := it.loader.Load(cmd)
	if err != nil {
		return err
	}

	release, err := it.command.Execute(cmd.Context(), cfg, commands.ValidateOptions{ChangelogOnly: changelogOnly})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.SuccessLine(
		fmt.Sprintf("%s %s is valid", cfg.ProductName(), release.Version()),
	))
	return nil
}
