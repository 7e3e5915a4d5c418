package model

// Path represents a file system path.
type Path string

// Position is a zero-based line/column location inside a document.
type Position struct {
	Line   int `yaml:"line"`
	Column int `yaml:"column"`
}

// Range spans two positions. An empty range (Start == End) marks an insertion point.
type Range struct {
	Start Position `yaml:"start"`
	End   Position `yaml:"end"`
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// TextEdit replaces the text covered by Range with NewText.
type TextEdit struct {
	Range   Range  `yaml:"range"`
	NewText string `yaml:"new_text"`
}

// Insert builds a TextEdit inserting text at pos.
func Insert(pos Position, text string) TextEdit {
	return TextEdit{Range: Range{Start: pos, End: pos}, NewText: text}
}
