// Package model defines the data structures shared by the scanner, the code
// action synthesizer and the namespace resolver.
package model

// UnresolvedLine marks a line number that the line scanner could not determine.
const UnresolvedLine = -1

// ClassDefinition describes a class declaration found on a single line.
type ClassDefinition struct {
	StartLine      int    `yaml:"start_line"`
	EndLine        int    `yaml:"end_line"`
	Name           string `yaml:"name"`
	AccessModifier string `yaml:"access_modifier"`
	Statement      string `yaml:"statement"`
}

// Same reports whether both definitions were produced by the same declaration line.
func (c ClassDefinition) Same(other ClassDefinition) bool {
	return c.StartLine == other.StartLine && c.Name == other.Name
}

// PropertyDefinition describes an auto-property declared on a single line.
// Class is a lookup-only copy of the enclosing class.
type PropertyDefinition struct {
	Class          ClassDefinition `yaml:"-"`
	AccessModifier string          `yaml:"access_modifier"`
	Type           string          `yaml:"type"`
	Name           string          `yaml:"name"`
	Line           int             `yaml:"line"`
	Statement      string          `yaml:"statement"`
}
