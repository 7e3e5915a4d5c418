package domain

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"seesharp.dev/pkg/seesharp/internal/adapter"
	m "seesharp.dev/pkg/seesharp/internal/model"
)

const (
	ctorFromPropertiesTitle = "Initialize ctor from properties..."

	// signatureWindowLines is the number of lines scanned on each side of the
	// cursor when recovering a wrapped parameter list.
	signatureWindowLines = 2

	thisPrefix = "this."
)

// CodeActionProvider synthesizes the refactorings available at a cursor.
type CodeActionProvider interface {
	ProvideCodeActions(doc adapter.Document, cursor m.Position, settings m.Settings) []m.CodeAction
}

type synthesizer struct {
	logger *slog.Logger
}

// NewCodeActionProvider creates a CodeActionProvider.
func NewCodeActionProvider(logger *slog.Logger) CodeActionProvider {
	if logger == nil {
		logger = slog.Default()
	}

	return &synthesizer{logger: logger}
}

// ProvideCodeActions returns the member initializations (field, readonly
// property, property) followed by the constructor-from-properties action.
// Anything that cannot be resolved is silently left out.
func (s *synthesizer) ProvideCodeActions(doc adapter.Document, cursor m.Position, settings m.Settings) []m.CodeAction {
	actions := make([]m.CodeAction, 0, len(m.MemberVariants)+1)

	for _, variant := range m.MemberVariants {
		if action, ok := s.initializeMemberAction(doc, cursor, settings, variant); ok {
			actions = append(actions, action)
		}
	}

	if action, ok := s.ctorFromPropertiesAction(doc, cursor); ok {
		actions = append(actions, action)
	}

	s.logger.Debug("code actions computed", "path", doc.Path(), "line", cursor.Line, "column", cursor.Column, "count", len(actions))

	return actions
}

func (s *synthesizer) ctorFromPropertiesAction(doc adapter.Document, cursor m.Position) (m.CodeAction, bool) {
	class, ok := FindEnclosingClass(doc, cursor.Line)
	if !ok {
		return m.CodeAction{}, false
	}

	properties := ClassProperties(doc, class)
	if len(properties) == 0 {
		return m.CodeAction{}, false
	}

	return m.CodeAction{
		Title:   ctorFromPropertiesTitle,
		Command: m.CommandCtorFromProperties,
		Argument: &m.ConstructorFromPropertiesPlan{
			Path:          doc.Path(),
			Class:         class,
			Properties:    properties,
			InsertionLine: properties[0].Line,
		},
	}, true
}

// ClassProperties returns the single-line auto-properties whose nearest
// enclosing class is class, sorted by declaration line.
func ClassProperties(doc adapter.Document, class m.ClassDefinition) []m.PropertyDefinition {
	var properties []m.PropertyDefinition

	for line := 0; line < doc.LineCount(); line++ {
		property, ok := DetectReadonlyProperty(line, doc.LineAt(line))
		if !ok {
			continue
		}

		owner, ok := FindEnclosingClass(doc, line)
		if !ok || !owner.Same(class) {
			continue
		}

		property.Class = owner
		properties = append(properties, property)
	}

	sort.SliceStable(properties, func(i, j int) bool {
		return properties[i].Line < properties[j].Line
	})

	return properties
}

// parameterAtCursor resolves the word under the cursor against the parameter
// list of the nearest signature.
func parameterAtCursor(doc adapter.Document, cursor m.Position) (name, typ string, ok bool) {
	wordRange, ok := doc.WordRangeAt(cursor)
	if !ok {
		return "", "", false
	}

	window := doc.TextInRange(m.Range{
		Start: m.Position{Line: cursor.Line - signatureWindowLines},
		End:   m.Position{Line: cursor.Line + signatureWindowLines},
	})

	signature, ok := DetectSignature(window)
	if !ok {
		return "", "", false
	}

	name = doc.TextInRange(wordRange)

	typ, ok = ParameterType(signature.Parameters, name)
	if !ok {
		return "", "", false
	}

	return name, typ, true
}

func (s *synthesizer) initializeMemberAction(doc adapter.Document, cursor m.Position, settings m.Settings, variant m.MemberVariant) (m.CodeAction, bool) {
	name, typ, ok := parameterAtCursor(doc, cursor)
	if !ok {
		return m.CodeAction{}, false
	}

	bodyStart, ok := FindConstructorBodyStart(doc, cursor)
	if !ok {
		return m.CodeAction{}, false
	}

	return m.CodeAction{
		Title:   variant.Title(),
		Command: m.CommandInitializeMemberFromCtor,
		Argument: &m.MemberInitialization{
			Path:                 doc.Path(),
			Type:                 typ,
			Name:                 name,
			Plan:                 PlanMember(variant, typ, name, settings, doc.EOL()),
			ConstructorStart:     FindConstructorStart(doc, cursor),
			ConstructorBodyStart: bodyStart,
		},
	}, true
}

// PlanMember builds the declaration and assignment text for a constructor
// parameter. Declarations are indented two tab-stops, assignments three.
func PlanMember(variant m.MemberVariant, typ, name string, settings m.Settings, eol string) m.MemberGenerationPlan {
	tab := tabSize(settings)
	declIndent := strings.Repeat(" ", 2*tab)
	assignIndent := strings.Repeat(" ", 3*tab)

	self := ""
	if settings.UseThis {
		self = thisPrefix
	}

	plan := m.MemberGenerationPlan{Variant: variant}

	switch variant {
	case m.VariantPrivateField:
		member := settings.PrivateMemberPrefix + name
		plan.Declaration = fmt.Sprintf("%sprivate readonly %s %s;%s", declIndent, typ, member, eol)
		plan.Assignment = fmt.Sprintf("%s%s%s = %s;%s", assignIndent, self, member, name, eol)
	case m.VariantReadonlyProperty:
		member := Capitalize(name)
		plan.Declaration = fmt.Sprintf("%spublic %s %s { get; }%s", declIndent, typ, member, eol)
		plan.Assignment = fmt.Sprintf("%s%s%s = %s;%s", assignIndent, self, member, name, eol)
	case m.VariantProperty:
		member := Capitalize(name)
		plan.Declaration = fmt.Sprintf("%spublic %s %s { get; set; }%s", declIndent, typ, member, eol)
		plan.Assignment = fmt.Sprintf("%s%s%s = %s;%s", assignIndent, self, member, name, eol)
	}

	return plan
}

// ConstructorText renders a constructor assigning every property from a
// camel-cased parameter. indent is the indentation of the class members.
func ConstructorText(plan *m.ConstructorFromPropertiesPlan, indent string, settings m.Settings, eol string) string {
	tab := strings.Repeat(" ", tabSize(settings))
	params := ConstructorParameters(plan)

	var b strings.Builder

	fmt.Fprintf(&b, "%s%s %s(%s)%s", indent, plan.Class.AccessModifier, plan.Class.Name, strings.Join(params, ", "), eol)
	fmt.Fprintf(&b, "%s{%s", indent, eol)

	for _, property := range plan.Properties {
		fmt.Fprintf(&b, "%s%s%s%s = %s;%s", indent, tab, thisPrefix, property.Name, Camelize(property.Name), eol)
	}

	fmt.Fprintf(&b, "%s}%s%s", indent, eol, eol)

	return b.String()
}

// ConstructorParameters returns `Type camelName` for every property, in plan order.
func ConstructorParameters(plan *m.ConstructorFromPropertiesPlan) []string {
	params := make([]string, 0, len(plan.Properties))
	for _, property := range plan.Properties {
		params = append(params, property.Type+" "+Camelize(property.Name))
	}

	return params
}

func tabSize(settings m.Settings) int {
	if settings.TabSize <= 0 {
		return m.DefaultTabSize
	}

	return settings.TabSize
}
