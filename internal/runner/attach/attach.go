// Package attach edits the attachment of one object from the command line.
package attach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/engine"
	"github.com/piwi3910/AttachEdit/internal/model"
	"github.com/piwi3910/AttachEdit/internal/project"
)

// Super placement field indices.
const (
	X = iota
	Y
	Z
	Yaw
	Pitch
	Roll
)

// ErrNotAttachable is returned for objects without attachment support.
var ErrNotAttachable = errors.New("object is not attachable")

// Attach sets references, mode, flip and extra placement of Object and
// moves it to the attached placement.
type Attach struct {
	Path   string
	Object string

	// Links replaces the references when non-nil.
	Links []string
	// Mode is the mode to use. Empty keeps the current mode when it still
	// applies and picks the best fit otherwise.
	Mode string
	// Reverse flips the attachment when non-nil.
	Reverse *bool
	// Super holds X, Y, Z, yaw, pitch and roll; empty fields are kept.
	Super [6]string

	// Suggest only lists the modes for the references.
	Suggest bool
	DryRun  bool

	Out io.Writer
}

// Result describes the outcome of Apply.
type Result struct {
	Params     model.AttachParams
	Suggestion model.Suggestion
	Attached   bool
	Placement  model.Placement
	// Moved is false when the new placement equals the old one.
	Moved bool
}

func (a *Attach) out() io.Writer {
	if a.Out == nil {
		return color.Output
	}
	return a.Out
}

func (a *Attach) Do(ctx context.Context) error {
	doc, err := project.LoadDocument(a.Path)
	if err != nil {
		return err
	}
	res, err := a.Apply(doc)
	if err != nil {
		return err
	}

	att := engine.New(doc)
	if a.Suggest {
		a.printSuggestion(att, res.Suggestion)
		return nil
	}

	name := att.ModeInfo(res.Params.Mode).UserFriendlyName
	switch {
	case !res.Attached:
		_, _ = color.New(color.FgYellow).Fprintf(a.out(), "%s: not attached\n", a.Object)
	case res.Moved:
		_, _ = color.New(color.FgGreen).Fprintf(a.out(), "%s: attached with mode %s\n", a.Object, name)
	default:
		_, _ = color.New(color.FgGreen).Fprintf(a.out(), "%s: attached with mode %s, placement unchanged\n", a.Object, name)
	}

	if a.DryRun {
		_, _ = color.New(color.Faint).Fprintln(a.out(), "dry run, document not saved")
		return nil
	}
	return project.SaveDocument(a.Path, doc)
}

// Apply edits the attachment inside doc.
func (a *Attach) Apply(doc *document.Document) (Result, error) {
	obj, ok := doc.Object(a.Object)
	if !ok {
		return Result{}, fmt.Errorf("no object named %s", a.Object)
	}
	if !obj.Attachable {
		return Result{}, fmt.Errorf("%s: %w", a.Object, ErrNotAttachable)
	}

	att := engine.New(doc)
	att.ReadParametersFromFeature(obj)
	params := att.Parameters()
	// an object deactivated with references stays detached unless a mode is given
	keepDeactivated := params.Mode == model.ModeDeactivated && len(params.References) > 0

	if a.Links != nil {
		refs, err := model.RefsFromLinks(a.Links, doc)
		if err != nil {
			return Result{}, err
		}
		params.References = refs
	}
	if a.Reverse != nil {
		params.Reverse = *a.Reverse
	}
	sp, err := superPlacement(params.SuperPlacement, a.Super)
	if err != nil {
		return Result{}, err
	}
	params.SuperPlacement = sp
	att.SetParameters(params)

	sugr := att.SuggestModes()
	res := Result{Suggestion: sugr}
	if sugr.Message == model.SuggestLinkBroken {
		return res, fmt.Errorf("failed to resolve links: %s", sugr.Error)
	}
	if a.Suggest {
		res.Params = params
		return res, nil
	}

	switch {
	case a.Mode != "":
		if !slices.Contains(sugr.AllApplicableModes, a.Mode) {
			return res, fmt.Errorf("mode %s does not accept the references", a.Mode)
		}
		params.Mode = a.Mode
	case sugr.Message == model.SuggestOK &&
		(params.Mode == model.ModeDeactivated && !keepDeactivated || !slices.Contains(sugr.AllApplicableModes, params.Mode)):
		params.Mode = sugr.BestFitMode
	}
	att.SetParameters(params)
	res.Params = params

	plm, attached, err := att.CalculateAttachedPlacement(obj.Placement)
	if err != nil {
		return res, err
	}
	res.Attached = attached
	res.Placement = obj.Placement
	if attached {
		res.Placement = plm
		if !model.PlacementsFuzzyEqual(obj.Placement, plm) {
			doc.SetPlacement(obj.Name, plm)
			res.Moved = true
		}
	}
	att.WriteParametersToFeature(obj)
	return res, nil
}

func superPlacement(sp model.Placement, fields [6]string) (model.Placement, error) {
	yaw, pitch, roll := sp.Rotation.ToEuler()
	targets := [6]*float64{&sp.Base.X, &sp.Base.Y, &sp.Base.Z, &yaw, &pitch, &roll}
	for i, text := range fields {
		if text == "" {
			continue
		}
		kind := model.Length
		if i >= Yaw {
			kind = model.Angle
		}
		v, err := model.ParseQuantity(text, kind)
		if err != nil {
			return sp, err
		}
		*targets[i] = v
	}
	sp.Rotation = model.NewRotationFromEuler(yaw, pitch, roll)
	return sp, nil
}

func (a *Attach) printSuggestion(att *engine.Attacher, s model.Suggestion) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	for _, m := range s.AllApplicableModes {
		line := att.ModeInfo(m).UserFriendlyName + " (" + m + ")"
		if m == s.BestFitMode {
			_, _ = bold.Fprintln(a.out(), line+" *")
			continue
		}
		_, _ = fmt.Fprintln(a.out(), line)
	}
	for _, r := range s.ReachableModes {
		var adds []string
		for _, missing := range r.Missing {
			names := make([]string, len(missing))
			for i, t := range missing {
				names[i] = att.RefTypeInfo(t).UserFriendlyName
			}
			adds = append(adds, strings.Join(names, "+"))
		}
		_, _ = faint.Fprintf(a.out(), "%s (add %s)\n", att.ModeInfo(r.Mode).UserFriendlyName, strings.Join(adds, " or "))
	}
}
