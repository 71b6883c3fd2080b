// AttachEdit: attachment editor for placed objects
//
// A cross-platform desktop application for attaching an object's
// placement to vertices, edges, faces or whole objects of other objects.
//
// Build:
//   go build -o attachedit ./cmd/attachedit
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o attachedit.exe ./cmd/attachedit
//   GOOS=darwin  GOARCH=amd64 go build -o attachedit-darwin ./cmd/attachedit
//
// Set ATTACHEDIT_DEBUG=1 for debug logging.

package main

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/AttachEdit/internal/ui"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("ATTACHEDIT_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logger.Info("starting AttachEdit")

	application := app.NewWithID("com.piwi3910.attachedit")
	window := application.NewWindow("AttachEdit")

	appUI := ui.NewApp(application, window, logger)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()

	if len(os.Args) > 1 {
		appUI.Open(os.Args[1])
	}
	window.ShowAndRun()
}
