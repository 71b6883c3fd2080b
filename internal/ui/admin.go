package ui

import (
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/AttachEdit/internal/project"
)

const maxDecimals = 12

// showPreferencesDialog edits the attachment editor defaults and the theme.
func (a *App) showPreferencesDialog() {
	cfg := a.config

	takeSelection := widget.NewCheck("", func(checked bool) {
		cfg.TakeSelection = checked
	})
	takeSelection.SetChecked(cfg.TakeSelection)

	createTransaction := widget.NewCheck("", func(checked bool) {
		cfg.CreateTransaction = checked
	})
	createTransaction.SetChecked(cfg.CreateTransaction)

	decimalsEntry := widget.NewEntry()
	decimalsEntry.SetText(strconv.Itoa(cfg.Decimals))
	decimalsEntry.Validator = func(text string) error {
		v, err := strconv.Atoi(text)
		if err != nil || v < 0 || v > maxDecimals {
			return fmt.Errorf("enter a number from 0 to %d", maxDecimals)
		}
		return nil
	}
	decimalsEntry.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil && v >= 0 && v <= maxDecimals {
			cfg.Decimals = v
		}
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Use selection as references", takeSelection),
		widget.NewFormItem("Undoable attachment edits", createTransaction),
		widget.NewFormItem("Decimals", decimalsEntry),
	}

	d := dialog.NewForm("Preferences", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.config = cfg
			a.applyTheme()
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save preferences: %w", err), a.window)
				return
			}
			a.log.Info("preferences saved",
				slog.Bool("take_selection", cfg.TakeSelection),
				slog.Bool("create_transaction", cfg.CreateTransaction),
				slog.Int("decimals", cfg.Decimals))
		},
		a.window,
	)
	d.Resize(fyne.NewSize(420, 300))
	d.Show()
}

// showBackupDialog exports or imports the application settings.
func (a *App) showBackupDialog() {
	exportBtn := widget.NewButton("Export Settings...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("Settings exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("attachedit-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import Settings...", func() {
		dialog.ShowConfirm("Import Settings",
			"Importing will replace your current settings.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, err := project.ImportAllData(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.applyTheme()
					a.SetupMenus()
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Settings imported from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export the preferences and recent documents to a backup file,\nor import them from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		importBtn,
	)

	d := dialog.NewCustom("Backup Settings", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 220))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
