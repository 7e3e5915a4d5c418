package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "seesharp.dev/pkg/seesharp/internal/model"
)

func TestCsprojReader_ReadProject(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "examples", "library", "Library.csproj"))
	require.NoError(t, err)

	project := NewCsprojReader(nil).ReadProject(content)

	assert.Equal(t, "Acme.Library", project.RootNamespace)
	assert.Equal(t, []m.PackageReference{
		{Include: "Newtonsoft.Json", Version: "13.0.3"},
		{Include: "Serilog", Version: "3.1.1"},
	}, project.PackageReferences)
	assert.Equal(t, []m.ProjectReference{{Include: `..\Core\Core.csproj`}}, project.ProjectReferences)
}

func TestCsprojReader_RootNamespace(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "absent",
			content: `<Project><PropertyGroup><TargetFramework>net8.0</TargetFramework></PropertyGroup></Project>`,
			want:    "",
		},
		{
			name:    "blank",
			content: `<Project><PropertyGroup><RootNamespace> </RootNamespace></PropertyGroup></Project>`,
			want:    "",
		},
		{
			name: "first non-blank group wins",
			content: `<Project>
  <PropertyGroup><RootNamespace></RootNamespace></PropertyGroup>
  <PropertyGroup><RootNamespace> Acme.Core </RootNamespace></PropertyGroup>
  <PropertyGroup><RootNamespace>Other</RootNamespace></PropertyGroup>
</Project>`,
			want: "Acme.Core",
		},
		{
			name:    "malformed",
			content: `<Project><PropertyGroup><RootNamespace>Acme`,
			want:    "",
		},
		{
			name:    "not a project",
			content: `<Solution><PropertyGroup><RootNamespace>Acme</RootNamespace></PropertyGroup></Solution>`,
			want:    "",
		},
		{
			name:    "empty",
			content: ``,
			want:    "",
		},
	}

	reader := NewCsprojReader(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reader.ReadProject([]byte(tt.content)).RootNamespace)
		})
	}
}

func TestProjectJSONReader_RootNamespace(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantOK  bool
	}{
		{"declared", `{"tooling": {"defaultNamespace": "Legacy.Web"}}`, "Legacy.Web", true},
		{"trimmed", `{"tooling": {"defaultNamespace": "  Legacy  "}}`, "Legacy", true},
		{"blank", `{"tooling": {"defaultNamespace": " "}}`, "", false},
		{"not a string", `{"tooling": {"defaultNamespace": 42}}`, "", false},
		{"missing tooling", `{"version": "1.0.0"}`, "", false},
		{"malformed", `{"tooling": {`, "", false},
		{"empty", ``, "", false},
	}

	reader := NewProjectJSONReader()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reader.RootNamespace([]byte(tt.content))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
