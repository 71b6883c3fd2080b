// Package commands wires the attachtool command line.
package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/AttachEdit/internal/project"
)

const envPrefix = "ATTACHTOOL"

// New returns the root attachtool command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attachtool",
		Short: "Inspect and edit object attachments of a document without the GUI.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(cmd); err != nil {
				return err
			}
			if viper.GetBool("no-color") {
				color.NoColor = true
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output.")
	cmd.PersistentFlags().Int("decimals", 2, "Digits shown for lengths and angles.")

	AddCommands(cmd)
	return cmd
}

// AddCommands registers every sub-command on topLevel.
func AddCommands(topLevel *cobra.Command) {
	addInspect(topLevel)
	addAttach(topLevel)
	addImport(topLevel)
	addExports(topLevel)
}

// initConfig layers flags over ATTACHTOOL_* variables over the optional
// ~/.attachedit/attachtool.yaml file.
func initConfig(cmd *cobra.Command) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetDefault("decimals", 2)

	viper.SetConfigName("attachtool")
	viper.AddConfigPath(project.DefaultConfigDir())
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	for _, name := range []string{"no-color", "decimals"} {
		if err := viper.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}
