package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/infrastructure/output"
)

// InitController handles the "init" subcommand.
type InitController struct {
	command commands.Init
}

// NewInitController creates a new InitController.
func NewInitController(command commands.Init) *InitController {
	return &InitController{command: command}
}

// GetBind returns the Cobra command metadata for the init controller.
func (it *InitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a documented default .releaser.yaml into the project and commit it
when the working copy was clean. An existing configuration is left alone.`,
		Args: cobra.NoArgs,
	}
}

// AddFlags adds the init-specific flags to the given Cobra command.
func (it *InitController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("product-name", "", "Product name (default: name of the project directory)")
}

// Execute runs the bootstrap.
func (it *InitController) Execute(cmd *cobra.Command, _ []string) error {
	rootDir, _ := cmd.Flags().GetString("dir")
	productName, _ := cmd.Flags().GetString("product-name")

	path, err := it.command.Execute(cmd.Context(), commands.InitOptions{
		RootDir:     rootDir,
		ProductName: productName,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.SuccessLine("config ready at "+path))
	return nil
}
