// Package editor implements the attachment editor dialog controller. It is
// independent of any GUI toolkit: a View renders the Form it produces and
// forwards user actions back through Panel.Dispatch.
package editor

import (
	"fmt"
	"log/slog"

	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/model"
)

// NumRefs is the number of reference slots in the dialog.
const NumRefs = 4

// Attacher is the attachment engine the dialog drives.
type Attacher interface {
	Parameters() model.AttachParams
	SetParameters(p model.AttachParams)
	SuggestModes() model.Suggestion
	CalculateAttachedPlacement(orig model.Placement) (model.Placement, bool, error)
	ModeInfo(mode string) model.ModeInfo
	RefTypeInfo(t model.RefType) model.RefTypeInfo
	ReadParametersFromFeature(o *document.Object)
	WriteParametersToFeature(o *document.Object)
}

// Host is the document owning the edited object.
type Host interface {
	Name() string
	HasObject(name string) bool
	AllDependent(name string) []string
	SetPlacement(name string, plm model.Placement)
	OpenTransaction(label string)
	CommitTransaction()
	AbortTransaction()
}

// SelectionService delivers picks to registered observers.
type SelectionService interface {
	SelectionEx() []model.SelectionItem
	AddObserver(o document.SelectionObserver)
	RemoveObserver(o document.SelectionObserver)
}

// Visibility changes object visibility temporarily.
type Visibility interface {
	HideAllDependent(name string)
	Show(names ...string)
	Restore()
}

// View renders the dialog.
type View interface {
	Update(f Form)
	Close()
}

// Deps are the collaborators of a Panel.
type Deps struct {
	Host       Host
	Engine     Attacher
	Selection  SelectionService
	Visibility Visibility
	View       View
}

// Options control how the dialog opens and whom it notifies.
type Options struct {
	// TakeSelection seeds empty references from the current selection.
	TakeSelection bool
	// CreateTransaction wraps the edit in a document transaction.
	CreateTransaction bool
	// Decimals is the precision of the extra placement fields.
	Decimals int

	// Confirm is asked before aligning an object that is movable but not
	// attachable. A nil Confirm accepts.
	Confirm func(message string) bool

	OnOK     func()
	OnCancel func()
	OnApply  func()

	Logger *slog.Logger
}

// Panel is an open attachment editor dialog.
type Panel struct {
	obj        *document.Object
	attachable bool

	host   Host
	engine Attacher
	sel    SelectionService
	vis    Visibility
	view   View
	opts   Options
	log    *slog.Logger

	refTexts   [NumRefs]string
	superTexts [6]string
	modes      []ModeItem
	message    string
	superTitle string

	active   int // slot waiting for a pick, -1 for none
	autoNext bool
	// keepDeactivated holds Deactivated selected while references are
	// edited. It is set when the user picks Deactivated or when the object
	// was opened deactivated with references.
	keepDeactivated bool
	block    bool
	lastSugr *model.Suggestion
	closed   bool
}

// Open starts editing the attachment of obj. On failure no dialog is
// opened, OnCancel has been called and the error matches ErrAborted.
func Open(obj *document.Object, deps Deps, opts Options) (*Panel, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "editor"), slog.String("object", obj.Name))

	cancel := func() {
		if opts.OnCancel != nil {
			opts.OnCancel()
		}
	}

	if !obj.Attachable {
		if !obj.Movable() {
			cancel()
			return nil, fmt.Errorf("object %s: %w", obj.Label, ErrNotEditable)
		}
		msg := fmt.Sprintf("%s is not attachable. You can still use attachment editor dialog to align the object, but the attachment won't be parametric.", obj.Label)
		if opts.Confirm != nil && !opts.Confirm(msg) {
			log.Debug("alignment declined")
			cancel()
			return nil, fmt.Errorf("object %s: %w", obj.Label, ErrCanceled)
		}
	}

	p := &Panel{
		obj:        obj,
		attachable: obj.Attachable,
		host:       deps.Host,
		engine:     deps.Engine,
		sel:        deps.Selection,
		vis:        deps.Visibility,
		view:       deps.View,
		opts:       opts,
		log:        log,
		active:     -1,
	}

	if opts.CreateTransaction {
		p.host.OpenTransaction(fmt.Sprintf("Edit attachment of %s", obj.Name))
		log.Debug("transaction opened")
	}

	p.readParameters()

	params := p.engine.Parameters()
	p.keepDeactivated = params.Mode == model.ModeDeactivated && len(params.References) > 0
	if len(params.References) == 0 && opts.TakeSelection {
		var refs []model.Reference
		for _, r := range SelectionAsReferences(p.sel.SelectionEx()) {
			if r.Object != obj.Name && len(refs) < NumRefs {
				refs = append(refs, r)
			}
		}
		params.References = refs
		p.engine.SetParameters(params)
		p.setRefTexts(refs)
	}
	if len(params.References) == 0 {
		p.active = 0
		p.autoNext = true
	}

	p.sel.AddObserver(p)

	p.updatePreview()
	p.render()

	p.vis.HideAllDependent(obj.Name)
	p.vis.Show(obj.Name)
	for _, r := range p.engine.Parameters().References {
		p.vis.Show(r.Object)
	}

	log.Debug("attachment editor opened", slog.Int("references", len(params.References)))
	return p, nil
}

// Object returns the edited object.
func (p *Panel) Object() *document.Object { return p.obj }

// Attachable reports whether parameters are written back to the object.
func (p *Panel) Attachable() bool { return p.attachable }

// ActiveRef returns the slot waiting for a pick, or -1.
func (p *Panel) ActiveRef() int { return p.active }

// AutoAdvance reports whether a pick moves on to the next slot.
func (p *Panel) AutoAdvance() bool { return p.autoNext }

// Closed reports whether Accept or Reject has run.
func (p *Panel) Closed() bool { return p.closed }

// LastSuggestion returns the result of the most recent mode suggestion.
func (p *Panel) LastSuggestion() (model.Suggestion, bool) {
	if p.lastSugr == nil {
		return model.Suggestion{}, false
	}
	return *p.lastSugr, true
}

// suppress blocks handlers until the returned release func is called.
func (p *Panel) suppress() func() {
	old := p.block
	p.block = true
	return func() { p.block = old }
}

func (p *Panel) setRefTexts(refs []model.Reference) {
	links := model.LinksFromRefs(refs)
	for i := range p.refTexts {
		p.refTexts[i] = ""
		if i < len(links) {
			p.refTexts[i] = links[i]
		}
	}
}

// readParameters transfers the parameters from the object into the form.
func (p *Panel) readParameters() {
	if p.attachable {
		p.engine.ReadParametersFromFeature(p.obj)
	}
	params := p.engine.Parameters()

	sp := params.SuperPlacement
	yaw, pitch, roll := sp.Rotation.ToEuler()
	d := p.opts.Decimals
	p.superTexts = [6]string{
		model.FormatQuantity(sp.Base.X, model.Length, d),
		model.FormatQuantity(sp.Base.Y, model.Length, d),
		model.FormatQuantity(sp.Base.Z, model.Length, d),
		model.FormatQuantity(yaw, model.Angle, d),
		model.FormatQuantity(pitch, model.Angle, d),
		model.FormatQuantity(roll, model.Angle, d),
	}
	p.setRefTexts(params.References)
}

// writeParameters transfers the engine parameters onto the object.
func (p *Panel) writeParameters() {
	p.engine.WriteParametersToFeature(p.obj)
}

// updatePreview parses the references, asks the engine for modes and moves
// the object to the attached placement.
func (p *Panel) updatePreview() {
	attached := false
	err := func() error {
		refs, err := model.RefsFromLinks(p.refTexts[:], p.host)
		if err != nil {
			return err
		}
		params := p.engine.Parameters()
		params.References = refs
		p.engine.SetParameters(params)

		sugr := p.engine.SuggestModes()
		p.lastSugr = &sugr
		if sugr.Message == model.SuggestLinkBroken {
			return &brokenLinkError{detail: sugr.Error}
		}

		p.updateListOfModes()

		params.Mode = p.currentMode()
		p.engine.SetParameters(params)
		for i := range p.modes {
			p.modes[i].Selected = p.modes[i].Enabled && p.modes[i].Mode == params.Mode
		}

		plm, ok, err := p.engine.CalculateAttachedPlacement(p.obj.Placement)
		if err != nil {
			return err
		}
		if !ok {
			p.message = "Not attached"
			return nil
		}
		attached = true
		p.message = fmt.Sprintf("Attached with mode %s", p.engine.ModeInfo(params.Mode).UserFriendlyName)
		if !model.PlacementsFuzzyEqual(p.obj.Placement, plm) {
			p.host.SetPlacement(p.obj.Name, plm)
		}
		return nil
	}()
	if err != nil {
		p.message = fmt.Sprintf("Error: %s", err)
	}

	if attached {
		p.superTitle = "Extra placement:"
	} else {
		p.superTitle = "Extra placement (inactive - not attached):"
	}
}

// currentMode is the selected enabled mode, else the best fit when the last
// suggestion succeeded, else the engine's mode.
func (p *Panel) currentMode() string {
	for _, it := range p.modes {
		if it.Selected && it.Enabled {
			return it.Mode
		}
	}
	if p.lastSugr != nil && p.lastSugr.Message == model.SuggestOK {
		return p.lastSugr.BestFitMode
	}
	return p.engine.Parameters().Mode
}

func (p *Panel) cleanUp() {
	p.sel.RemoveObserver(p)
	p.vis.Restore()
}

// Accept writes the parameters, commits the transaction and closes.
func (p *Panel) Accept() {
	if p.closed {
		return
	}
	if p.attachable {
		p.writeParameters()
	}
	if p.opts.CreateTransaction {
		p.host.CommitTransaction()
	}
	p.close()
	p.log.Debug("attachment accepted", slog.String("mode", p.engine.Parameters().Mode))
	if p.opts.OnOK != nil {
		p.opts.OnOK()
	}
}

// Reject aborts the transaction and closes.
func (p *Panel) Reject() {
	if p.closed {
		return
	}
	if p.opts.CreateTransaction {
		p.host.AbortTransaction()
	}
	p.close()
	p.log.Debug("attachment rejected")
	if p.opts.OnCancel != nil {
		p.opts.OnCancel()
	}
}

// Apply writes the parameters without closing.
func (p *Panel) Apply() {
	if p.closed {
		return
	}
	if p.attachable {
		p.writeParameters()
	}
	p.updatePreview()
	p.render()
	if p.opts.OnApply != nil {
		p.opts.OnApply()
	}
}

func (p *Panel) close() {
	p.cleanUp()
	p.closed = true
	p.view.Close()
}
