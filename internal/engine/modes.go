package engine

import "github.com/piwi3910/AttachEdit/internal/model"

// modeDef describes one attachment mode and the reference type
// combinations it accepts.
type modeDef struct {
	name   string
	info   model.ModeInfo
	combos [][]model.RefType
}

func combos(c ...[]model.RefType) [][]model.RefType { return c }

func types(t ...model.RefType) []model.RefType { return t }

// modeTable lists the modes in best-fit priority order. Deactivated is kept
// out of it and appended to every suggestion as the last applicable mode.
var modeTable = []modeDef{
	{
		name: model.ModeFlatFace,
		info: model.ModeInfo{
			UserFriendlyName: "Plane face",
			BriefDocu:        "Plane is aligned to coincide with a planar face.",
		},
		combos: combos(types(model.RefFace)),
	},
	{
		name: model.ModeNormalToEdge,
		info: model.ModeInfo{
			UserFriendlyName: "Normal to edge",
			BriefDocu:        "Z axis is aligned along the edge, origin at its start. Two vertices define the same axis.",
		},
		combos: combos(types(model.RefEdge), types(model.RefVertex, model.RefVertex)),
	},
	{
		name: model.ModeThreePointsPlane,
		info: model.ModeInfo{
			UserFriendlyName: "XY on three points",
			BriefDocu:        "XY plane passes through three vertices. X axis points from the first to the second.",
		},
		combos: combos(types(model.RefVertex, model.RefVertex, model.RefVertex)),
	},
	{
		name: model.ModeTranslate,
		info: model.ModeInfo{
			UserFriendlyName: "Translate origin",
			BriefDocu:        "Origin is moved to the vertex. Orientation is kept.",
		},
		combos: combos(types(model.RefVertex)),
	},
	{
		name: model.ModeObjectXY,
		info: model.ModeInfo{
			UserFriendlyName: "Object's XY",
			BriefDocu:        "Placement is copied from the referenced object.",
		},
		combos: combos(types(model.RefObject)),
	},
	{
		name: model.ModeObjectXZ,
		info: model.ModeInfo{
			UserFriendlyName: "Object's XZ",
			BriefDocu:        "XY plane is aligned to the XZ plane of the referenced object.",
		},
		combos: combos(types(model.RefObject)),
	},
}

var deactivated = modeDef{
	name: model.ModeDeactivated,
	info: model.ModeInfo{
		UserFriendlyName: "Deactivated",
		BriefDocu:        "Attachment is disabled. Placement can be edited freely.",
	},
}

var refTypeNames = map[model.RefType]string{
	model.RefAny:    "Any",
	model.RefVertex: "Vertex",
	model.RefEdge:   "Edge",
	model.RefFace:   "Face",
	model.RefObject: "Object",
}

func lookupMode(name string) (modeDef, bool) {
	if name == model.ModeDeactivated {
		return deactivated, true
	}
	for _, m := range modeTable {
		if m.name == name {
			return m, true
		}
	}
	return modeDef{}, false
}

// Modes returns every mode name, Deactivated first.
func Modes() []string {
	out := []string{model.ModeDeactivated}
	for _, m := range modeTable {
		out = append(out, m.name)
	}
	return out
}

// matchesExactly reports whether refs satisfies combo slot by slot.
func matchesExactly(combo, refs []model.RefType) bool {
	if len(combo) != len(refs) {
		return false
	}
	return matchesPrefix(combo, refs)
}

// matchesPrefix reports whether refs satisfies the first len(refs) slots
// of combo.
func matchesPrefix(combo, refs []model.RefType) bool {
	if len(refs) > len(combo) {
		return false
	}
	for i, t := range refs {
		if !combo[i].Accepts(t) {
			return false
		}
	}
	return true
}
