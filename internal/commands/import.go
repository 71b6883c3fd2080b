package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/piwi3910/AttachEdit/internal/commands/options"
	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/importer"
	"github.com/piwi3910/AttachEdit/internal/project"
)

// importers maps file extensions to import functions.
var importers = map[string]func(string) importer.ImportResult{
	".csv":  importer.ImportCSV,
	".xlsx": importer.ImportExcel,
	".dxf":  importer.ImportDXF,
}

func addImport(topLevel *cobra.Command) {
	do := &options.DocumentOptions{}
	var name string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add objects from a CSV, Excel or DXF file to a document.",
		Long:  "Add objects from a CSV, Excel or DXF file to a document. The document is created when it does not exist.",
		Example: `
attachtool import objects.csv -d part.attach.json
attachtool import outline.dxf -d part.attach.json --name Part
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := do.Resolve(); err != nil {
				return err
			}
			read, ok := importers[strings.ToLower(filepath.Ext(args[0]))]
			if !ok {
				return fmt.Errorf("unsupported file type %q", filepath.Ext(args[0]))
			}

			doc, err := project.LoadDocument(do.Path)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				if name == "" {
					name = strings.TrimSuffix(filepath.Base(do.Path), filepath.Ext(do.Path))
				}
				doc = document.New(name)
			case err != nil:
				return err
			}

			result := read(args[0])
			out := color.Output
			for _, e := range result.Errors {
				_, _ = color.New(color.FgRed).Fprintln(out, e)
			}
			warnings, err := result.AddTo(doc)
			for _, w := range append(result.Warnings, warnings...) {
				_, _ = color.New(color.FgYellow).Fprintln(out, w)
			}
			if err != nil {
				return err
			}
			if len(result.Objects) == 0 {
				return fmt.Errorf("nothing imported from %s", args[0])
			}
			if err := project.SaveDocument(do.Path, doc); err != nil {
				return err
			}
			_, _ = color.New(color.FgGreen).Fprintf(out, "imported %d objects into %s\n", len(result.Objects), do.Path)
			return nil
		},
	}

	options.AddDocumentArg(cmd, do)
	cmd.Flags().StringVar(&name, "name", "",
		"Name of a new document. Defaults to the file name.")

	topLevel.AddCommand(cmd)
}
