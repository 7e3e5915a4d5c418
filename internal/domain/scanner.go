package domain

import (
	"regexp"
	"strings"

	m "seesharp.dev/pkg/seesharp/internal/model"
)

var (
	classPattern = regexp.MustCompile(`(private|internal|public|protected)\s+(?:(?:static|abstract|sealed|partial)\s+)*class\s+(\w+)`)

	// Only single-line bodies are recognized: `{ get; }`, `{ get; set; }`, `{ get; private set; }`.
	readonlyPropertyPattern = regexp.MustCompile(`(public|private|protected|internal)\s+([\w.?<>\[\]]+)\s+(\w+)\s*\{\s*get;\s*(?:private\s+)?(?:set;)?\s*\}`)

	signaturePattern = regexp.MustCompile(`(?i)(public|private|protected|internal)\s(.*?)\(([\s\S]*?)\)`)
)

// Signature is a method or constructor header recovered from a text window.
type Signature struct {
	Modifier   string
	Name       string
	Parameters string
}

// Parameter is one entry of a parameter list.
type Parameter struct {
	Type string
	Name string
}

// DetectClass recognizes a class declaration on the given line.
func DetectClass(line int, text string) (m.ClassDefinition, bool) {
	match := classPattern.FindStringSubmatch(text)
	if match == nil {
		return m.ClassDefinition{}, false
	}

	return m.ClassDefinition{
		StartLine:      line,
		EndLine:        m.UnresolvedLine,
		Name:           match[2],
		AccessModifier: match[1],
		Statement:      match[0],
	}, true
}

// DetectReadonlyProperty recognizes an auto-property declared on the given line.
// The owning class is left empty; callers resolve it.
func DetectReadonlyProperty(line int, text string) (m.PropertyDefinition, bool) {
	match := readonlyPropertyPattern.FindStringSubmatch(text)
	if match == nil {
		return m.PropertyDefinition{}, false
	}

	return m.PropertyDefinition{
		AccessModifier: match[1],
		Type:           match[2],
		Name:           match[3],
		Line:           line,
		Statement:      match[0],
	}, true
}

// DetectSignature finds the first `<modifier> <name>(<parameters>)` shape in
// window. The parameter list may span several lines.
func DetectSignature(window string) (Signature, bool) {
	match := signaturePattern.FindStringSubmatch(window)
	if match == nil {
		return Signature{}, false
	}

	return Signature{
		Modifier:   match[1],
		Name:       strings.TrimSpace(match[2]),
		Parameters: match[3],
	}, true
}

// ParseParameters splits a raw parameter list by commas, then by whitespace.
// Default values are dropped; the last token is the name and the one before
// it the type.
func ParseParameters(raw string) []Parameter {
	var params []Parameter

	for _, part := range strings.Split(raw, ",") {
		declaration, _, _ := strings.Cut(part, "=")

		fields := strings.Fields(declaration)
		if len(fields) < 2 {
			continue
		}

		params = append(params, Parameter{
			Type: fields[len(fields)-2],
			Name: fields[len(fields)-1],
		})
	}

	return params
}

// ParameterType returns the declared type of the parameter called name.
// The first parameter with that exact name wins.
func ParameterType(raw, name string) (string, bool) {
	for _, param := range ParseParameters(raw) {
		if param.Name == name {
			return param.Type, true
		}
	}

	return "", false
}
