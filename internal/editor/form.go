package editor

import (
	"fmt"
	"strings"

	"github.com/piwi3910/AttachEdit/internal/model"
)

// Form is everything a View displays.
type Form struct {
	Title string

	RefTexts   [NumRefs]string
	RefButtons [NumRefs]RefButton

	// SuperPlacement holds X, Y, Z, yaw, pitch and roll as entered.
	SuperPlacement      [6]string
	SuperPlacementTitle string
	Flip                bool

	Modes   []ModeItem
	Message string
}

// RefButton is the select toggle next to a reference field.
type RefButton struct {
	Text    string
	Checked bool
}

// ModeItem is one row of the mode list.
type ModeItem struct {
	Mode     string
	Text     string
	Bold     bool
	Enabled  bool
	Selected bool
	Tooltip  string
}

// SuperPlacement field indices.
const (
	FieldX = iota
	FieldY
	FieldZ
	FieldYaw
	FieldPitch
	FieldRoll
)

// Form returns the current dialog contents.
func (p *Panel) Form() Form {
	params := p.engine.Parameters()
	f := Form{
		Title:               "Attachment",
		RefTexts:            p.refTexts,
		SuperPlacement:      p.superTexts,
		SuperPlacementTitle: p.superTitle,
		Flip:                params.Reverse,
		Modes:               append([]ModeItem(nil), p.modes...),
		Message:             p.message,
	}
	for i := range f.RefButtons {
		f.RefButtons[i] = RefButton{Text: p.refButtonText(i), Checked: p.active == i}
	}
	return f
}

func (p *Panel) refButtonText(i int) string {
	if p.active == i {
		return "Selecting..."
	}
	if p.lastSugr != nil && i < len(p.lastSugr.ReferenceTypes) {
		return p.engine.RefTypeInfo(p.lastSugr.ReferenceTypes[i]).UserFriendlyName
	}
	return fmt.Sprintf("Reference%d", i+1)
}

// render pushes the form to the view. Handlers triggered by the view while
// it updates its widgets are ignored.
func (p *Panel) render() {
	if p.view == nil {
		return
	}
	defer p.suppress()()
	p.view.Update(p.Form())
}

// updateListOfModes rebuilds the mode list from the last suggestion.
func (p *Panel) updateListOfModes() {
	sugr := p.lastSugr
	current := p.engine.Parameters().Mode

	items := make([]ModeItem, 0, len(sugr.AllApplicableModes)+len(sugr.ReachableModes))
	for _, m := range sugr.AllApplicableModes {
		items = append(items, ModeItem{
			Mode:     m,
			Text:     p.engine.ModeInfo(m).UserFriendlyName,
			Bold:     m == sugr.BestFitMode,
			Enabled:  true,
			Selected: m == current && (m != model.ModeDeactivated || p.keepDeactivated),
		})
	}
	for _, r := range sugr.ReachableModes {
		name := p.engine.ModeInfo(r.Mode).UserFriendlyName
		var text string
		if len(r.Missing) == 1 {
			text = fmt.Sprintf("%s (add %s)", name, strings.Join(p.refTypeNames(r.Missing[0]), "+"))
		} else {
			text = fmt.Sprintf("%s (add more references)", name)
		}
		items = append(items, ModeItem{
			Mode: r.Mode,
			Text: text,
			Bold: r.Mode == sugr.BestFitMode,
		})
	}

	for i := range items {
		items[i].Tooltip = p.modeTooltip(items[i].Mode)
	}
	p.modes = items
}

func (p *Panel) modeTooltip(mode string) string {
	info := p.engine.ModeInfo(mode)
	combinations := make([]string, len(info.ReferenceCombinations))
	for i, c := range info.ReferenceCombinations {
		combinations[i] = strings.Join(p.refTypeNames(c), ", ")
	}
	return fmt.Sprintf("%s\n\nReference combinations:\n%s", info.BriefDocu, strings.Join(combinations, "\n"))
}

func (p *Panel) refTypeNames(ts []model.RefType) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = p.engine.RefTypeInfo(t).UserFriendlyName
	}
	return out
}
