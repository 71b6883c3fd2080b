package editor

import (
	"fmt"
	"log/slog"

	"github.com/piwi3910/AttachEdit/internal/model"
)

// Action is a logical user action on the dialog.
type Action int

const (
	ActionRefEdited            Action = iota // Index, Text
	ActionRefButton                          // Index
	ActionSuperPlacementEdited               // Index (FieldX..FieldRoll), Text
	ActionFlipToggled                        // Checked
	ActionModeSelected                       // Text is the mode identifier
)

// Event carries an Action and its arguments.
type Event struct {
	Action  Action
	Index   int
	Text    string
	Checked bool
}

var handlers = map[Action]func(*Panel, Event){
	ActionRefEdited:            (*Panel).refEdited,
	ActionRefButton:            (*Panel).refButtonClicked,
	ActionSuperPlacementEdited: (*Panel).superPlacementEdited,
	ActionFlipToggled:          (*Panel).flipToggled,
	ActionModeSelected:         (*Panel).modeSelected,
}

// Dispatch runs the handler for ev. Events arriving while the panel
// updates its view, or after it closed, are dropped.
func (p *Panel) Dispatch(ev Event) {
	if p.closed || p.block {
		return
	}
	h, ok := handlers[ev.Action]
	if !ok {
		p.log.Warn("unknown action", slog.Int("action", int(ev.Action)))
		return
	}
	h(p, ev)
}

func validSlot(i int) bool { return i >= 0 && i < NumRefs }

func (p *Panel) refEdited(ev Event) {
	if !validSlot(ev.Index) {
		return
	}
	p.refTexts[ev.Index] = ev.Text
	p.updatePreview()
	p.render()
}

func (p *Panel) refButtonClicked(ev Event) {
	if !validSlot(ev.Index) {
		return
	}
	if p.active == ev.Index {
		p.active = -1
	} else {
		p.active = ev.Index
		p.autoNext = false
	}
	p.render()
}

func (p *Panel) superPlacementEdited(ev Event) {
	if ev.Index < FieldX || ev.Index > FieldRoll {
		return
	}
	p.superTexts[ev.Index] = ev.Text

	kind := model.Length
	if ev.Index >= FieldYaw {
		kind = model.Angle
	}
	v, err := model.ParseQuantity(ev.Text, kind)
	if err != nil {
		p.message = fmt.Sprintf("Error: %s", err)
		p.render()
		return
	}

	params := p.engine.Parameters()
	sp := params.SuperPlacement
	switch ev.Index {
	case FieldX:
		sp.Base.X = v
	case FieldY:
		sp.Base.Y = v
	case FieldZ:
		sp.Base.Z = v
	default:
		yaw, pitch, roll := sp.Rotation.ToEuler()
		switch ev.Index {
		case FieldYaw:
			yaw = v
		case FieldPitch:
			pitch = v
		case FieldRoll:
			roll = v
		}
		sp.Rotation = model.NewRotationFromEuler(yaw, pitch, roll)
	}
	params.SuperPlacement = sp
	p.engine.SetParameters(params)

	p.updatePreview()
	p.render()
}

func (p *Panel) flipToggled(ev Event) {
	params := p.engine.Parameters()
	params.Reverse = ev.Checked
	p.engine.SetParameters(params)
	p.updatePreview()
	p.render()
}

func (p *Panel) modeSelected(ev Event) {
	enabled := false
	for _, it := range p.modes {
		enabled = enabled || (it.Enabled && it.Mode == ev.Text)
	}
	if !enabled {
		return
	}
	p.keepDeactivated = ev.Text == model.ModeDeactivated
	for i := range p.modes {
		p.modes[i].Selected = p.modes[i].Mode == ev.Text
	}
	params := p.engine.Parameters()
	params.Mode = p.currentMode()
	p.engine.SetParameters(params)
	p.updatePreview()
	p.render()
}

// AddSelection receives picks from the selection service and fills the
// active reference slot.
func (p *Panel) AddSelection(docName, objName, subName string, _ model.Vector) {
	if p.closed {
		return
	}
	i := p.active
	if i < 0 {
		return
	}
	// A double click reports the sub-element first and then the whole
	// object; the second pick replaces the reference made by the first.
	if i > 0 && p.autoNext && subName == "" {
		prev, ok, err := model.DecodeLink(p.refTexts[i-1], p.host)
		if err == nil && ok && prev.Object == objName {
			i--
		}
	}
	if objName == p.obj.Name {
		p.log.Debug("pick rejected", slog.String("reason", "self"))
		p.message = "Ignored. Can't attach object to itself!"
		p.render()
		return
	}
	for _, dep := range p.host.AllDependent(p.obj.Name) {
		if dep == objName {
			p.log.Debug("pick rejected", slog.String("reason", "dependent"), slog.String("pick", objName))
			p.message = fmt.Sprintf("%s depends on object being attached, can't use it for attachment", objName)
			p.render()
			return
		}
	}

	p.refTexts[i] = model.EncodeLink(objName, subName)
	p.updatePreview()
	if p.autoNext {
		i++
	}
	if i >= NumRefs {
		i = -1
	}
	p.active = i
	p.render()
}
