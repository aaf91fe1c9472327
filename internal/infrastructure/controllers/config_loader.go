package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/infrastructure/repositories/hooks"
)

// ConfigLoader resolves the configuration of a run from the global flags.
type ConfigLoader struct {
	builder *hooks.ConfigBuilder
}

// NewConfigLoader creates a new ConfigLoader.
func NewConfigLoader(builder *hooks.ConfigBuilder) *ConfigLoader {
	return &ConfigLoader{builder: builder}
}

// Load reads --config (or searches --dir for a config file) and builds the run configuration.
func (it *ConfigLoader) Load(cmd *cobra.Command) (*entities.ReleaseConfig, error) {
	configPath, _ := cmd.Flags().GetString("config")
	rootDir, _ := cmd.Flags().GetString("dir")
	verbose, _ := cmd.Flags().GetBool("verbose")
	trace, _ := cmd.Flags().GetBool("trace")

	if configPath == "" {
		var err error
		if configPath, err = entities.FindConfigFile(rootDir); err != nil {
			return nil, err
		}
	}
	logger.Infof("[config] Using config file: %s", configPath)

	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, err
	}
	return it.builder.Build(settings, hooks.BuildOptions{
		RootDir: rootDir,
		Verbose: verbose,
		Trace:   trace,
	})
}
