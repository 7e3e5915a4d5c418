package model

// CommandID identifies an executable code action handler.
type CommandID string

const (
	// CommandCtorFromProperties generates a constructor from the class properties.
	CommandCtorFromProperties CommandID = "seesharp.ctorFromProperties"
	// CommandInitializeMemberFromCtor declares and assigns a member from a constructor parameter.
	CommandInitializeMemberFromCtor CommandID = "seesharp.initializeMemberFromCtor"
)

// MemberVariant selects which declaration/assignment pair is synthesized for a
// constructor parameter.
type MemberVariant int

const (
	// VariantPrivateField generates a private readonly field.
	VariantPrivateField MemberVariant = iota
	// VariantReadonlyProperty generates a get-only auto-property.
	VariantReadonlyProperty
	// VariantProperty generates a get/set auto-property.
	VariantProperty
)

// MemberVariants lists every variant in the order actions are offered.
var MemberVariants = []MemberVariant{VariantPrivateField, VariantReadonlyProperty, VariantProperty}

func (v MemberVariant) String() string {
	switch v {
	case VariantPrivateField:
		return "private-field"
	case VariantReadonlyProperty:
		return "readonly-property"
	case VariantProperty:
		return "property"
	default:
		return "unknown"
	}
}

// Title returns the label shown to the user for the variant.
func (v MemberVariant) Title() string {
	switch v {
	case VariantPrivateField:
		return "Initialize field from parameter..."
	case VariantReadonlyProperty:
		return "Initialize readonly property from parameter..."
	case VariantProperty:
		return "Initialize property from parameter..."
	default:
		return ""
	}
}

// MemberGenerationPlan holds the two fragments inserted for a constructor parameter:
// the declaration above the constructor and the assignment inside its body.
type MemberGenerationPlan struct {
	Variant     MemberVariant `yaml:"variant"`
	Declaration string        `yaml:"declaration"`
	Assignment  string        `yaml:"assignment"`
}

// MemberInitialization is the argument of CommandInitializeMemberFromCtor.
type MemberInitialization struct {
	Path                 Path                 `yaml:"path"`
	Type                 string               `yaml:"type"`
	Name                 string               `yaml:"name"`
	Plan                 MemberGenerationPlan `yaml:"plan"`
	ConstructorStart     Position             `yaml:"constructor_start"`
	ConstructorBodyStart Position             `yaml:"constructor_body_start"`
}

// ConstructorFromPropertiesPlan is the argument of CommandCtorFromProperties.
// Properties are sorted by ascending declaration line.
type ConstructorFromPropertiesPlan struct {
	Path          Path                 `yaml:"path"`
	Class         ClassDefinition      `yaml:"class"`
	Properties    []PropertyDefinition `yaml:"properties"`
	InsertionLine int                  `yaml:"insertion_line"`
}

// CodeAction is a deferred refactoring offered to the user. Nothing is edited
// until the action is executed through its Command.
type CodeAction struct {
	Title    string    `yaml:"title"`
	Command  CommandID `yaml:"command"`
	Argument any       `yaml:"argument"`
}

// ApplyResult reports what executing a code action changed.
type ApplyResult struct {
	Edits       []TextEdit
	FormatEdits []TextEdit
	// Skipped lists fragments that were already present in the document.
	Skipped []string
	// Text is the document content after all edits; empty when nothing changed.
	Text string
}

// Changed reports whether any edit reached the document.
func (r ApplyResult) Changed() bool {
	return len(r.Edits) > 0 || len(r.FormatEdits) > 0
}

// MarshalYAML renders the variant by name.
func (v MemberVariant) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}
