// attachtool inspects and edits the attachments of AttachEdit documents
// from the command line.
//
// Settings come from flags, ATTACHTOOL_* environment variables and
// ~/.attachedit/attachtool.yaml, in that order.
package main

import (
	"log"

	"github.com/piwi3910/AttachEdit/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
