package adapter

import (
	"strings"

	"github.com/tidwall/gjson"
)

const manifestNamespacePath = "tooling.defaultNamespace"

// ProjectJSONReader implements ManifestReader for project.json files.
type ProjectJSONReader struct{}

// NewProjectJSONReader constructs a ProjectJSONReader.
func NewProjectJSONReader() *ProjectJSONReader {
	return &ProjectJSONReader{}
}

// RootNamespace returns tooling.defaultNamespace when it is a non-blank string.
func (r *ProjectJSONReader) RootNamespace(content []byte) (string, bool) {
	if !gjson.ValidBytes(content) {
		return "", false
	}

	value := gjson.GetBytes(content, manifestNamespacePath)
	if value.Type != gjson.String {
		return "", false
	}

	ns := strings.TrimSpace(value.String())
	if ns == "" {
		return "", false
	}

	return ns, true
}
