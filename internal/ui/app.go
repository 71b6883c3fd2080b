package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/editor"
	"github.com/piwi3910/AttachEdit/internal/engine"
	"github.com/piwi3910/AttachEdit/internal/export"
	"github.com/piwi3910/AttachEdit/internal/importer"
	"github.com/piwi3910/AttachEdit/internal/model"
	"github.com/piwi3910/AttachEdit/internal/project"
	"github.com/piwi3910/AttachEdit/internal/ui/widgets"
)

const documentExt = ".attach.json"

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	log     *slog.Logger
	config  model.AppConfig
	doc     *document.Document
	docPath string
	sel     *document.Selection

	// UI references for dynamic updates
	objectList *widget.List
	subList    *widget.List
	view       *widgets.PlacementView
	taskArea   *fyne.Container
	status     *widget.Label
	undoBtn    *widget.Button
	redoBtn    *widget.Button

	objects  []*document.Object
	current  *document.Object
	subNames []string
	panel    *editor.Panel
}

// NewApp creates the application state. The config is loaded from the
// default location; a broken file falls back to defaults.
func NewApp(application fyne.App, window fyne.Window, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		app:    application,
		window: window,
		log:    logger.With(slog.String("component", "ui")),
		doc:    document.New("Unnamed"),
		sel:    document.NewSelection(),
	}
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		a.log.Warn("failed to load config, using defaults", slog.Any("err", err))
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg
	a.applyTheme()
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Document", func() {
			a.newDocument()
		}),
		fyne.NewMenuItem("Open Document...", func() {
			a.openDocument()
		}),
		a.recentMenuItem(),
		fyne.NewMenuItem("Save Document", func() {
			a.saveDocument(false)
		}),
		fyne.NewMenuItem("Save Document As...", func() {
			a.saveDocument(true)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Objects from CSV...", func() {
			a.importFile(importer.ImportCSV)
		}),
		fyne.NewMenuItem("Import Objects from Excel...", func() {
			a.importFile(importer.ImportExcel)
		}),
		fyne.NewMenuItem("Import Objects from DXF...", func() {
			a.importFile(importer.ImportDXF)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Attachment Report (PDF)...", func() {
			a.exportFile("attachments.pdf", export.ExportPDF)
		}),
		fyne.NewMenuItem("Export Labels (PDF)...", func() {
			a.exportFile("labels.pdf", export.ExportLabels)
		}),
		fyne.NewMenuItem("Export Attachment Table (Excel)...", func() {
			a.exportFile("attachments.xlsx", export.ExportXLSX)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", func() {
			a.showPreferencesDialog()
		}),
		fyne.NewMenuItem("Backup Settings...", func() {
			a.showBackupDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Attachment...", func() {
			a.editAttachment()
		}),
		fyne.NewMenuItem("Clear Selection", func() {
			a.clearSelection()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

func (a *App) recentMenuItem() *fyne.MenuItem {
	item := fyne.NewMenuItem("Open Recent", nil)
	var children []*fyne.MenuItem
	for _, path := range a.config.RecentDocuments {
		p := path
		children = append(children, fyne.NewMenuItem(filepath.Base(p), func() {
			a.loadDocument(p)
		}))
	}
	if len(children) == 0 {
		none := fyne.NewMenuItem("(none)", nil)
		none.Disabled = true
		children = append(children, none)
	}
	item.ChildMenu = fyne.NewMenu("", children...)
	return item
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About AttachEdit",
		"AttachEdit: attachment editor for placed objects\n\n"+
			"Attach an object's placement to references on other objects\n"+
			"and preview the result live.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.objectList = widget.NewList(
		func() int { return len(a.objects) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.FileIcon()), widget.NewLabel("object"))
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			obj := a.objects[id]
			row := o.(*fyne.Container)
			icon := row.Objects[0].(*widget.Icon)
			if obj.Attachable {
				icon.SetResource(theme.MailAttachmentIcon())
			} else {
				icon.SetResource(theme.FileIcon())
			}
			text := fmt.Sprintf("%s (%s)", obj.Label, obj.Name)
			if !obj.Visible {
				text += " hidden"
			}
			row.Objects[1].(*widget.Label).SetText(text)
		},
	)
	a.objectList.OnSelected = func(id widget.ListItemID) {
		if id < len(a.objects) {
			a.pick(a.objects[id], "")
		}
	}

	a.subList = widget.NewList(
		func() int { return len(a.subNames) },
		func() fyne.CanvasObject { return widget.NewLabel("sub-element") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(a.subNames[id])
		},
	)
	a.subList.OnSelected = func(id widget.ListItemID) {
		if a.current != nil && id < len(a.subNames) {
			a.pick(a.current, a.subNames[id])
		}
		// a list keeps its selection; the same element must be pickable again
		a.subList.UnselectAll()
	}

	editBtn := widget.NewButtonWithIcon("Attachment...", theme.DocumentCreateIcon(), func() {
		a.editAttachment()
	})
	a.undoBtn = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() { a.undo() })
	a.redoBtn = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() { a.redo() })
	clearBtn := newIconButtonWithTooltip(theme.ContentClearIcon(), "Clear selection", func() {
		a.clearSelection()
	})

	left := container.NewVSplit(
		container.NewBorder(
			widget.NewLabelWithStyle("Objects", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			nil, nil, nil, a.objectList),
		container.NewBorder(
			widget.NewLabelWithStyle("Sub-elements", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			nil, nil, nil, a.subList),
	)
	left.SetOffset(0.6)

	a.view = widgets.NewPlacementView(a.doc, 640, 480)
	a.taskArea = container.NewStack()
	a.showIdleTask()

	a.status = widget.NewLabel("Ready")

	toolbar := container.NewHBox(editBtn, a.undoBtn, a.redoBtn, clearBtn)
	center := container.NewBorder(toolbar, nil, nil, nil, container.NewCenter(a.view))

	split := container.NewHSplit(left, container.NewHSplit(center, a.taskArea))
	split.SetOffset(0.22)

	a.refresh()
	content := container.NewBorder(nil, a.status, nil, nil, split)
	return fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas())
}

func (a *App) showIdleTask() {
	hint := widget.NewLabel("Select an object and choose Edit > Attachment...")
	hint.Wrapping = fyne.TextWrapWord
	a.taskArea.Objects = []fyne.CanvasObject{hint}
	a.taskArea.Refresh()
}

// refresh rebuilds the object lists and the view from the document.
func (a *App) refresh() {
	a.objects = a.doc.Objects()
	if a.current != nil && !a.doc.HasObject(a.current.Name) {
		a.current = nil
	}
	a.subNames = nil
	if a.current != nil {
		a.subNames = a.current.Shape.SubElementNames()
	}
	a.objectList.Refresh()
	a.subList.Refresh()
	a.view.Refresh()

	history := a.doc.History()
	editing := a.panel != nil
	setEnabled(a.undoBtn, !editing && history.CanUndo())
	setEnabled(a.redoBtn, !editing && history.CanRedo())

	title := "AttachEdit - " + a.doc.Name()
	if a.docPath != "" {
		title += " (" + a.docPath + ")"
	}
	a.window.SetTitle(title)
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

// pick adds an object or one of its sub-elements to the selection, which
// forwards it to an open attachment editor.
func (a *App) pick(obj *document.Object, sub string) {
	a.current = obj
	a.subNames = obj.Shape.SubElementNames()
	a.subList.Refresh()
	a.sel.AddSelection(a.doc.Name(), obj.Name, sub, pickPoint(obj, sub))
	a.status.SetText(fmt.Sprintf("Selected %s", model.EncodeLink(obj.Name, sub)))
}

func pickPoint(obj *document.Object, sub string) model.Vector {
	if sub == "" {
		return obj.Placement.Base
	}
	kind, idx, err := model.ParseSubElement(sub)
	if err != nil {
		return obj.Placement.Base
	}
	switch kind {
	case model.SubVertex:
		return obj.Placement.MultVec(obj.Shape.Vertices[idx])
	case model.SubEdge:
		e := obj.Shape.Edges[idx]
		mid := obj.Shape.Vertices[e.Start].Add(obj.Shape.Vertices[e.End]).Scale(0.5)
		return obj.Placement.MultVec(mid)
	default:
		return obj.Placement.MultVec(obj.Shape.Faces[idx].Origin)
	}
}

func (a *App) clearSelection() {
	a.sel.Clear()
	a.objectList.UnselectAll()
	a.status.SetText("Selection cleared")
}

// ─── Attachment editor ─────────────────────────────────────

func (a *App) editAttachment() {
	if a.panel != nil {
		dialog.ShowInformation("Attachment", "An attachment editor is already open.", a.window)
		return
	}
	obj := a.current
	if obj == nil {
		dialog.ShowInformation("Attachment", "Select an object to edit its attachment first.", a.window)
		return
	}
	if obj.Attachable {
		a.openAttachmentEditor(obj)
		return
	}
	if !obj.Movable() {
		dialog.ShowError(fmt.Errorf("%s is neither attachable nor movable", obj.Label), a.window)
		return
	}
	// Fyne dialogs are asynchronous; ask before opening the editor.
	msg := fmt.Sprintf("%s is not attachable. You can still use attachment editor dialog to align the object, but the attachment won't be parametric.", obj.Label)
	dialog.ShowConfirm("Attachment", msg, func(ok bool) {
		if ok {
			a.openAttachmentEditor(obj)
		}
	}, a.window)
}

func (a *App) openAttachmentEditor(obj *document.Object) {
	view := newAttachmentView()
	view.onUpdate = func(f editor.Form) {
		a.highlight(obj.Name, f)
	}
	view.onClose = func() {
		a.panel = nil
		a.view.SetHighlight(nil)
		a.showIdleTask()
		a.refresh()
	}

	deps := editor.Deps{
		Host:       a.doc,
		Engine:     engine.New(a.doc),
		Selection:  a.sel,
		Visibility: document.NewTempoVis(a.doc),
		View:       view,
	}
	opts := editor.Options{
		TakeSelection:     a.config.TakeSelection,
		CreateTransaction: a.config.CreateTransaction,
		Decimals:          a.config.Decimals,
		OnOK: func() {
			a.status.SetText(fmt.Sprintf("Attachment of %s saved", obj.Label))
		},
		OnCancel: func() {
			a.status.SetText(fmt.Sprintf("Attachment of %s canceled", obj.Label))
		},
		OnApply: func() {
			a.status.SetText(fmt.Sprintf("Attachment of %s applied", obj.Label))
			a.refresh()
		},
		Logger: a.log,
	}

	p, err := editor.Open(obj, deps, opts)
	if err != nil {
		if !errors.Is(err, editor.ErrCanceled) {
			a.log.Error("failed to open attachment editor", slog.Any("err", err))
			dialog.ShowError(err, a.window)
		}
		return
	}
	view.bind(p)
	a.panel = p
	a.taskArea.Objects = []fyne.CanvasObject{view.Content()}
	a.taskArea.Refresh()
	a.refresh()
}

// highlight marks the edited object and its resolvable references.
func (a *App) highlight(edited string, f editor.Form) {
	h := map[string]widgets.Highlight{}
	for _, text := range f.RefTexts {
		ref, ok, err := model.DecodeLink(text, a.doc)
		if err == nil && ok {
			h[ref.Object] = widgets.HighlightReference
		}
	}
	h[edited] = widgets.HighlightEdited
	a.view.SetHighlight(h)
	a.objectList.Refresh()
}

// ─── Document actions ──────────────────────────────────────

// closeEditor rejects an open attachment editor before the document changes.
func (a *App) closeEditor() {
	if a.panel != nil {
		a.panel.Reject()
	}
}

func (a *App) setDocument(doc *document.Document, path string) {
	a.closeEditor()
	a.doc = doc
	a.docPath = path
	a.current = nil
	a.sel.Clear()
	a.objectList.UnselectAll()
	a.view.SetDocument(doc)
	a.refresh()
}

func (a *App) newDocument() {
	a.setDocument(document.New("Unnamed"), "")
	a.status.SetText("New document")
}

func (a *App) undo() {
	if a.panel != nil {
		return
	}
	if a.doc.Undo() {
		a.refresh()
		a.status.SetText("Undone")
	}
}

func (a *App) redo() {
	if a.panel != nil {
		return
	}
	if a.doc.Redo() {
		a.refresh()
		a.status.SetText("Redone")
	}
}

func (a *App) saveDocument(ask bool) {
	a.closeEditor()
	if a.docPath != "" && !ask {
		a.writeDocument(a.docPath)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		a.writeDocument(writer.URI().Path())
	}, a.window)
	d.SetFileName(a.doc.Name() + documentExt)
	d.Show()
}

func (a *App) writeDocument(path string) {
	if err := project.SaveDocument(path, a.doc); err != nil {
		a.log.Error("save failed", slog.String("path", path), slog.Any("err", err))
		dialog.ShowError(err, a.window)
		return
	}
	a.docPath = path
	a.rememberDocument(path)
	a.refresh()
	a.status.SetText(fmt.Sprintf("Saved %s", path))
}

func (a *App) openDocument() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.loadDocument(reader.URI().Path())
	}, a.window)
	d.Show()
}

func (a *App) loadDocument(path string) {
	doc, err := project.LoadDocument(path)
	if err != nil {
		a.log.Error("open failed", slog.String("path", path), slog.Any("err", err))
		dialog.ShowError(err, a.window)
		return
	}
	a.setDocument(doc, path)
	a.rememberDocument(path)
	a.status.SetText(fmt.Sprintf("Opened %s", path))
}

func (a *App) rememberDocument(path string) {
	a.config.AddRecentDocument(path)
	if err := a.saveConfig(); err != nil {
		a.log.Warn("failed to save config", slog.Any("err", err))
	}
	a.SetupMenus()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importFile(read func(path string) importer.ImportResult) {
	a.closeEditor()
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(read(reader.URI().Path()))
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}
	if len(result.Objects) == 0 {
		return
	}

	warnings, err := result.AddTo(a.doc)
	warnings = append(result.Warnings, warnings...)
	if len(warnings) > 0 {
		a.log.Warn("import warnings", slog.Any("warnings", warnings))
	}
	a.refresh()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	msg := fmt.Sprintf("Successfully imported %d objects.", len(result.Objects))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	if len(warnings) > 0 {
		msg += "\n\nWarnings:\n" + strings.Join(warnings, "\n")
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

func (a *App) exportFile(defaultName string, write func(path string, doc *document.Document) error) {
	if len(a.doc.Objects()) == 0 {
		dialog.ShowInformation("Nothing to export", "The document has no objects.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := write(path, a.doc); err != nil {
			a.log.Error("export failed", slog.String("path", path), slog.Any("err", err))
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// Open loads the document at path, reporting failures in a dialog.
func (a *App) Open(path string) {
	a.loadDocument(path)
}
