package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/AttachEdit/internal/commands/options"
	"github.com/piwi3910/AttachEdit/internal/engine"
	"github.com/piwi3910/AttachEdit/internal/runner/attach"
)

func addAttach(topLevel *cobra.Command) {
	do := &options.DocumentOptions{}
	a := &attach.Attach{}
	var (
		links   []string
		reverse bool
	)

	long := strings.Builder{}
	long.WriteString("Attach an object to references given as Object or Object:Sub links.\n\n")
	long.WriteString("Modes:\n")
	for _, m := range engine.Modes() {
		long.WriteString("  " + m + "\n")
	}

	cmd := &cobra.Command{
		Use:   "attach <object> [link...]",
		Short: "Set the attachment of an object and move it to the attached placement.",
		Long:  long.String(),
		Example: `
attachtool attach Sketch Box:Face1 -d part.attach.json
attachtool attach Sketch Box:Vertex1 Box:Vertex2 Box:Vertex3 --mode ThreePointsPlane
attachtool attach Sketch --z "5 mm" --reverse
attachtool attach Sketch Box --suggest
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := do.Resolve(); err != nil {
				return err
			}
			a.Path = do.Path
			a.Object = args[0]
			links = args[1:]
			if len(links) > 0 || cmd.Flags().Changed("clear") {
				a.Links = links
			}
			if cmd.Flags().Changed("reverse") {
				a.Reverse = &reverse
			}
			return a.Do(context.Background())
		},
	}

	options.AddDocumentArg(cmd, do)
	cmd.Flags().StringVar(&a.Mode, "mode", "",
		"Attachment mode. Defaults to the current mode or the best fit.")
	cmd.Flags().BoolVar(&reverse, "reverse", false,
		"Flip sides.")
	cmd.Flags().Bool("clear", false,
		"Remove all references.")
	cmd.Flags().BoolVar(&a.Suggest, "suggest", false,
		"Only list the modes the references allow.")
	cmd.Flags().BoolVar(&a.DryRun, "dry-run", false,
		"Do not save the document.")
	for i, name := range []string{"x", "y", "z", "yaw", "pitch", "roll"} {
		cmd.Flags().StringVar(&a.Super[i], name, "",
			"Extra placement "+name+", with unit.")
	}

	topLevel.AddCommand(cmd)
}
