package model

// RefType classifies what a reference points at.
type RefType string

const (
	RefAny    RefType = "Any"
	RefVertex RefType = "Vertex"
	RefEdge   RefType = "Edge"
	RefFace   RefType = "Face"
	RefObject RefType = "Object"
)

// Accepts reports whether a reference of type t satisfies slot type r.
func (r RefType) Accepts(t RefType) bool {
	return r == RefAny || r == t
}

// Attachment mode identifiers.
const (
	ModeDeactivated      = "Deactivated"
	ModeTranslate        = "Translate"
	ModeObjectXY         = "ObjectXY"
	ModeObjectXZ         = "ObjectXZ"
	ModeFlatFace         = "FlatFace"
	ModeNormalToEdge     = "NormalToEdge"
	ModeThreePointsPlane = "ThreePointsPlane"
)

// SuggestionMessage is the overall status of a mode suggestion.
type SuggestionMessage string

const (
	SuggestOK                   SuggestionMessage = "OK"
	SuggestLinkBroken           SuggestionMessage = "LinkBroken"
	SuggestNoModesFit           SuggestionMessage = "NoModesFit"
	SuggestIncompatibleGeometry SuggestionMessage = "IncompatibleGeometry"
	SuggestUnexpectedError      SuggestionMessage = "UnexpectedError"
)

// ReachableMode is a mode that becomes valid once more references are added.
// Missing lists, per matching combination, the reference types still needed.
type ReachableMode struct {
	Mode    string
	Missing [][]RefType
}

// Suggestion is the engine's classification of modes for the current
// references. It is derived, never persisted.
type Suggestion struct {
	Message            SuggestionMessage
	BestFitMode        string
	AllApplicableModes []string
	ReachableModes     []ReachableMode
	ReferenceTypes     []RefType
	Error              string
}

// ModeInfo describes an attachment mode for display.
type ModeInfo struct {
	UserFriendlyName      string
	BriefDocu             string
	ReferenceCombinations [][]RefType
}

// RefTypeInfo describes a reference type for display.
type RefTypeInfo struct {
	UserFriendlyName string
}
