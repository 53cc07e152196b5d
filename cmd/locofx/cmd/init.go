package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cbegin/locofx/internal/config"
	"github.com/cbegin/locofx/internal/logger"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration to a YAML file.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFilename
		if len(args) > 0 {
			path = args[0]
		}
		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
		logger.InfoKV(cmd.Context(), "configuration written", "path", path)
		return nil
	},
}
