package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/AttachEdit/internal/commands/options"
	"github.com/piwi3910/AttachEdit/internal/runner/inspect"
)

func addInspect(topLevel *cobra.Command) {
	do := &options.DocumentOptions{}
	oo := &options.OutputOptions{}
	var onlyAttachable bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List objects with their attachment mode, references and status.",
		Example: `
attachtool inspect -d part.attach.json
attachtool inspect -d part.attach.json --attachable --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := do.Resolve(); err != nil {
				return oo.HandleError(err)
			}
			i := inspect.Inspect{
				Path:           do.Path,
				JSON:           oo.JSON,
				Decimals:       viper.GetInt("decimals"),
				OnlyAttachable: onlyAttachable,
			}
			return oo.HandleError(i.Do(context.Background()))
		},
	}

	options.AddDocumentArg(cmd, do)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&onlyAttachable, "attachable", false,
		"Only list attachable objects.")

	topLevel.AddCommand(cmd)
}
