package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/AttachEdit/internal/editor"
)

var superPlacementLabels = [6]string{"X", "Y", "Z", "Yaw", "Pitch", "Roll"}

// attachmentView is the Fyne rendering of an attachment editor panel.
// Widget callbacks are forwarded to the panel as editor events.
type attachmentView struct {
	panel *editor.Panel

	// onUpdate runs after every form update, onClose once the panel closed.
	onUpdate func(editor.Form)
	onClose  func()

	title        *widget.Label
	message      *widget.Label
	refButtons   [editor.NumRefs]*ttwidget.Button
	refEntries   [editor.NumRefs]*widget.Entry
	superTitle   *widget.Label
	superEntries [6]*widget.Entry
	flip         *widget.Check
	modeList     *widget.List
	modes        []editor.ModeItem

	// syncing is set while the list selection is made to match the form.
	syncing bool
	content fyne.CanvasObject
}

func newAttachmentView() *attachmentView {
	v := &attachmentView{}

	v.title = widget.NewLabelWithStyle("Attachment", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.message = widget.NewLabel("")
	v.message.Wrapping = fyne.TextWrapWord

	refRows := container.NewVBox()
	for i := range v.refEntries {
		idx := i
		btn := ttwidget.NewButton("Reference", func() {
			v.dispatch(editor.Event{Action: editor.ActionRefButton, Index: idx})
		})
		btn.SetToolTip("Click, then pick a sub-element or object in the view")
		entry := widget.NewEntry()
		entry.SetPlaceHolder("Object:Sub")
		entry.OnChanged = func(text string) {
			v.dispatch(editor.Event{Action: editor.ActionRefEdited, Index: idx, Text: text})
		}
		v.refButtons[i] = btn
		v.refEntries[i] = entry
		refRows.Add(container.NewBorder(nil, nil, btn, nil, entry))
	}

	v.modeList = widget.NewList(
		func() int { return len(v.modes) },
		func() fyne.CanvasObject { return ttwidget.NewLabel("mode") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			item := v.modes[id]
			label := o.(*ttwidget.Label)
			label.TextStyle = fyne.TextStyle{Bold: item.Bold}
			label.Importance = widget.MediumImportance
			if !item.Enabled {
				label.Importance = widget.LowImportance
			}
			label.SetText(item.Text)
			label.SetToolTip(item.Tooltip)
		},
	)
	v.modeList.OnSelected = func(id widget.ListItemID) {
		if v.syncing || id >= len(v.modes) {
			return
		}
		v.dispatch(editor.Event{Action: editor.ActionModeSelected, Text: v.modes[id].Mode})
		// disabled modes are ignored by the panel; undo the list selection
		v.syncModeSelection()
	}

	v.flip = widget.NewCheck("Flip sides", func(checked bool) {
		v.dispatch(editor.Event{Action: editor.ActionFlipToggled, Checked: checked})
	})

	v.superTitle = widget.NewLabel("Extra placement:")
	superGrid := container.NewGridWithColumns(2)
	for i := range v.superEntries {
		idx := i
		entry := widget.NewEntry()
		entry.OnChanged = func(text string) {
			v.dispatch(editor.Event{Action: editor.ActionSuperPlacementEdited, Index: idx, Text: text})
		}
		v.superEntries[i] = entry
		superGrid.Add(widget.NewLabel(superPlacementLabels[i]))
		superGrid.Add(entry)
	}

	okBtn := widget.NewButtonWithIcon("OK", theme.ConfirmIcon(), func() {
		if v.panel != nil {
			v.panel.Accept()
		}
	})
	okBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), func() {
		if v.panel != nil {
			v.panel.Reject()
		}
	})
	applyBtn := newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Apply without closing", func() {
		if v.panel != nil {
			v.panel.Apply()
		}
	})

	modeScroll := container.NewVScroll(v.modeList)
	modeScroll.SetMinSize(fyne.NewSize(260, 160))

	top := container.NewVBox(
		v.title,
		v.message,
		widget.NewSeparator(),
		refRows,
		widget.NewLabelWithStyle("Attachment mode:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	bottom := container.NewVBox(
		v.flip,
		widget.NewSeparator(),
		v.superTitle,
		superGrid,
		widget.NewSeparator(),
		container.NewHBox(applyBtn, layout.NewSpacer(), cancelBtn, okBtn),
	)
	v.content = container.NewBorder(top, bottom, nil, nil, modeScroll)
	return v
}

// bind connects the view to the panel it renders. Events raised before
// binding are dropped.
func (v *attachmentView) bind(p *editor.Panel) {
	v.panel = p
}

func (v *attachmentView) dispatch(ev editor.Event) {
	if v.panel == nil {
		return
	}
	v.panel.Dispatch(ev)
}

// Content returns the root widget of the panel.
func (v *attachmentView) Content() fyne.CanvasObject {
	return v.content
}

// Update implements editor.View.
func (v *attachmentView) Update(f editor.Form) {
	v.title.SetText(f.Title)
	v.message.SetText(f.Message)

	for i := range f.RefTexts {
		setEntryText(v.refEntries[i], f.RefTexts[i])
		b := f.RefButtons[i]
		v.refButtons[i].SetText(b.Text)
		if b.Checked {
			v.refButtons[i].Importance = widget.HighImportance
		} else {
			v.refButtons[i].Importance = widget.MediumImportance
		}
		v.refButtons[i].Refresh()
	}

	v.superTitle.SetText(f.SuperPlacementTitle)
	for i := range f.SuperPlacement {
		setEntryText(v.superEntries[i], f.SuperPlacement[i])
	}
	v.flip.SetChecked(f.Flip)

	v.modes = f.Modes
	v.modeList.Refresh()
	v.syncModeSelection()

	if v.onUpdate != nil {
		v.onUpdate(f)
	}
}

// Close implements editor.View.
func (v *attachmentView) Close() {
	if v.onClose != nil {
		v.onClose()
	}
}

func (v *attachmentView) syncModeSelection() {
	v.syncing = true
	defer func() { v.syncing = false }()
	for i, m := range v.modes {
		if m.Selected {
			v.modeList.Select(i)
			return
		}
	}
	v.modeList.UnselectAll()
}

// setEntryText leaves the entry alone when the text is unchanged so the
// cursor of the field being typed in does not jump.
func setEntryText(e *widget.Entry, text string) {
	if e.Text != text {
		e.SetText(text)
	}
}
