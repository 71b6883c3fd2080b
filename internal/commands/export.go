package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/piwi3910/AttachEdit/internal/commands/options"
	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/export"
	"github.com/piwi3910/AttachEdit/internal/project"
)

func addExports(topLevel *cobra.Command) {
	addExport(topLevel, "report", "Write an attachment report as PDF.", "attachments.pdf", export.ExportPDF)
	addExport(topLevel, "labels", "Write QR-coded attachment labels as PDF.", "labels.pdf", export.ExportLabels)
	addExport(topLevel, "xlsx", "Write the objects and their attachments as an Excel workbook.", "attachments.xlsx", export.ExportXLSX)
}

func addExport(topLevel *cobra.Command, use, short, def string, write func(string, *document.Document) error) {
	do := &options.DocumentOptions{}
	fo := &options.FileOptions{}

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: fmt.Sprintf("\nattachtool %s -d part.attach.json -o %s\n", use, def),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := do.Resolve(); err != nil {
				return err
			}
			doc, err := project.LoadDocument(do.Path)
			if err != nil {
				return err
			}
			if err := write(fo.Output, doc); err != nil {
				return err
			}
			_, _ = color.New(color.FgGreen).Fprintf(color.Output, "wrote %s\n", fo.Output)
			return nil
		},
	}

	options.AddDocumentArg(cmd, do)
	options.AddFileArg(cmd, fo, def)

	topLevel.AddCommand(cmd)
}
