// Package options defines shared flag helpers for attachtool commands.
package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DocumentOptions selects the document a command works on.
type DocumentOptions struct {
	Path string
}

// AddDocumentArg registers --document, falling back to ATTACHTOOL_DOCUMENT.
func AddDocumentArg(cmd *cobra.Command, o *DocumentOptions) {
	cmd.Flags().StringVarP(&o.Path, "document", "d", "",
		"Path to the document file.")
}

// Resolve fills Path from the environment or config when the flag was not
// given.
func (o *DocumentOptions) Resolve() error {
	if o.Path == "" {
		o.Path = viper.GetString("document")
	}
	if o.Path == "" {
		return errors.New("no document given, use --document or ATTACHTOOL_DOCUMENT")
	}
	return nil
}

// OutputOptions controls machine readable output.
type OutputOptions struct {
	JSON bool
}

// AddOutputArg registers --json.
func AddOutputArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().BoolVar(&o.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as JSON when JSON output was requested.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}

// FileOptions names an output file.
type FileOptions struct {
	Output string
}

// AddFileArg registers --output with a default file name.
func AddFileArg(cmd *cobra.Command, o *FileOptions, def string) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", def,
		"Output file.")
}
